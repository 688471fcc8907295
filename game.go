package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rollball/ability"
	"github.com/milk9111/rollball/assets"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/config"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/ecs/entity"
	"github.com/milk9111/rollball/ecs/system"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/lifecycle"
	"github.com/milk9111/rollball/prefabs"
	"go.uber.org/zap"
)

const ballPrefab = "ball.yaml"

// Options are the command line overrides applied on top of the settings file.
type Options struct {
	Level string
	// Inflation overrides the ball's starting inflation when not negative.
	Inflation float64
}

type Game struct {
	settings config.Settings
	opts     Options
	log      *zap.Logger

	level    *levels.Level
	ballSpec *prefabs.BallSpec
	effect   *prefabs.EffectSpec

	world *ecs.World
	ball  ecs.Entity

	input     *system.InputSystem
	inflation *system.InflationSystem
	before    *ecs.Scheduler
	fixed     *ecs.Scheduler
	after     *ecs.Scheduler
	stepper   *ecs.Stepper
	render    *system.RenderSystem
	hud       *HUD
	sounds    *assets.Sounds
	watcher   *prefabs.Watcher

	paused bool
	quit   bool
}

// NewGame loads the level and prefabs and builds the first session. Any
// loader error is returned so main can refuse to start.
func NewGame(settings config.Settings, opts Options, log *zap.Logger) (*Game, error) {
	log = common.OrNop(log)
	if opts.Level == "" {
		opts.Level = settings.Game.Level
	}

	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}
	spec, err := prefabs.LoadBallSpec(ballPrefab)
	if err != nil {
		return nil, err
	}
	var effect *prefabs.EffectSpec
	if spec.DeathEffect != "" {
		if effect, err = prefabs.LoadEffectSpec(spec.DeathEffect); err != nil {
			log.Warn("death effect unavailable", zap.String("effect", spec.DeathEffect), zap.Error(err))
		}
	}

	g := &Game{
		settings: settings,
		opts:     opts,
		log:      log,
		level:    lvl,
		ballSpec: spec,
		effect:   effect,
		stepper:  ecs.NewStepper(settings.Loop.FixedStep, settings.Loop.MaxStepsPerFrame),
		render:   system.NewRenderSystem(),
		sounds:   assets.NewSounds(),
	}
	g.input = system.NewInputSystem()
	g.inflation = system.NewInflationSystem(log)
	g.before = ecs.NewScheduler(
		g.input,
		g.inflation,
		system.NewAbilitySystem(log),
	)
	g.fixed = ecs.NewScheduler(
		system.NewMotionSystem(log),
		system.NewPhysicsSystem(log),
	)
	g.after = ecs.NewScheduler(
		system.NewButtonSystem(log),
		system.NewTutorialTextSystem(),
		system.NewGaugeSystem(),
		system.NewCameraSystem(),
		system.NewZoneVisualSystem(),
		system.NewParticleSystem(),
		system.NewTTLSystem(),
	)
	g.hud = NewHUD(PauseActions{
		Resume:  func() { g.paused = false },
		Restart: func() {
			g.paused = false
			g.requestRestart()
		},
		Quit: func() { g.quit = true },
	})

	if settings.Game.Debug && settings.Game.HotReload {
		g.watcher = startWatcher(log)
	}

	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// startWatcher watches the on-disk prefab folders when they exist. The game
// runs from embedded prefabs otherwise.
func startWatcher(log *zap.Logger) *prefabs.Watcher {
	var dirs []string
	for _, dir := range []string{prefabs.Dir, filepath.Join(prefabs.Dir, "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Warn("prefab hot reload disabled", zap.Error(err))
		return nil
	}
	log.Info("watching prefabs", zap.Strings("dirs", dirs))
	return w
}

func (g *Game) restart() error {
	w, ball, err := entity.NewGameWorld(g.level, g.ballSpec, g.effect, g.log)
	if err != nil {
		return fmt.Errorf("game: build %s: %w", g.level.Name, err)
	}
	if g.opts.Inflation >= 0 {
		if inf, ok := ecs.Get(w, ball, component.InflationComponent.Kind()); ok {
			inf.Value = common.Clamp(g.opts.Inflation, 0, inf.Max)
		}
	}
	g.world = w
	g.ball = ball
	g.stepper.Reset()
	g.log.Info("level started", zap.String("level", g.level.Name), zap.Stringer("ball", ball))
	return nil
}

func (g *Game) requestRestart() {
	if err := g.restart(); err != nil {
		g.log.Error("restart failed", zap.Error(err))
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	g.hud.Update(g.world, g.paused)
	if g.paused {
		return nil
	}

	g.applyReloads()

	dt := g.settings.FrameDelta()
	g.before.Update(g.world, dt)
	if in, ok := ecs.Get(g.world, g.ball, component.InputComponent.Kind()); ok && in.Restart {
		g.requestRestart()
		return nil
	}
	for i, n := 0, g.stepper.Advance(dt); i < n; i++ {
		g.fixed.Update(g.world, g.stepper.Step)
	}
	g.after.Update(g.world, dt)
	g.handleEvents()
	return nil
}

func (g *Game) handleEvents() {
	for _, evt := range g.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventBallDied:
			g.sounds.Play(assets.SoundPop)
			if death, ok := evt.Data.(lifecycle.DeathEvent); ok {
				g.log.Debug("death handled", zap.Float64("effect_expiry", death.EffectExpiry))
			}
		case ecs.EventStateChanged:
			if change, ok := evt.Data.(system.StateChange); ok && change.To == ability.Flying.String() {
				g.sounds.Play(assets.SoundLaunch)
			}
		case ecs.EventButtonPushed:
			g.sounds.Play(assets.SoundClick)
			g.log.Info("level button pushed", zap.String("level", g.level.Name))
		}
	}
}

// applyReloads re-applies prefab edits picked up by the watcher. A rejected
// file keeps the previous tuning.
func (g *Game) applyReloads() {
	names, errs := g.watcher.Poll()
	for _, err := range errs {
		g.log.Warn("prefab watcher error", zap.Error(err))
	}
	for _, name := range names {
		base := filepath.Base(name)
		switch {
		case prefabs.IsScriptFile(name):
			g.inflation.Invalidate(base)
			g.log.Info("script reloaded", zap.String("script", base))
		case prefabs.IsSpecFile(name) && base == ballPrefab:
			spec, err := prefabs.LoadBallSpec(base)
			if err == nil {
				err = entity.ApplyBallSpec(g.world, g.ball, spec)
			}
			if err != nil {
				g.log.Error("ball reload rejected", zap.String("file", name), zap.Error(err))
				continue
			}
			g.ballSpec = spec
			g.log.Info("ball reloaded", zap.String("file", name))
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.hud.Draw(g.world, screen, g.paused)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

// Close stops the prefab watcher.
func (g *Game) Close() error {
	if g == nil || g.watcher == nil {
		return nil
	}
	err := g.watcher.Close()
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
