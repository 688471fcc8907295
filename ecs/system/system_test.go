package system

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollball/ability"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/ecs/entity"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/motion"
	"github.com/milk9111/rollball/prefabs"
	"github.com/milk9111/rollball/zone"
	"golang.org/x/image/colornames"
)

const step = 0.02

type fixture struct {
	w    *ecs.World
	e    ecs.Entity
	ball *component.Ball
	inf  *component.Inflation
	in   *component.Input
	tr   *component.Transform
}

func newFixture(t *testing.T, mutate func(*levels.Level)) *fixture {
	t.Helper()
	lvl := &levels.Level{
		Name:      "test",
		Spawn:     levels.Point{X: 0, Y: 0.5},
		KillY:     -5,
		Camera:    levels.Camera{Zoom: 1},
		Platforms: []levels.Rect{{X: -10, Y: -1, W: 20, H: 1}},
	}
	if mutate != nil {
		mutate(lvl)
	}
	spec := prefabs.DefaultBallSpec()
	w, e, err := entity.NewGameWorld(lvl, &spec, nil, nil)
	if err != nil {
		t.Fatalf("new game world: %v", err)
	}
	f := &fixture{w: w, e: e}
	f.ball, _ = ecs.Get(w, e, component.BallComponent.Kind())
	f.inf, _ = ecs.Get(w, e, component.InflationComponent.Kind())
	f.in, _ = ecs.Get(w, e, component.InputComponent.Kind())
	f.tr, _ = ecs.Get(w, e, component.TransformComponent.Kind())
	return f
}

func drainTypes(w *ecs.World) []ecs.EventType {
	var out []ecs.EventType
	for _, evt := range w.Events().Drain() {
		out = append(out, evt.Type)
	}
	return out
}

func TestAbilitySystemStateChangeCancelsJump(t *testing.T) {
	f := newFixture(t, nil)
	f.ball.Jump.Request(mgl64.Vec3{})
	f.inf.Value = 0.4

	NewAbilitySystem(nil).Update(f.w, step)

	if f.ball.Gate.State() != ability.NoJump || f.ball.Caps.CanJump {
		t.Fatalf("state = %v caps = %+v", f.ball.Gate.State(), f.ball.Caps)
	}
	if f.ball.Jump.Pending() {
		t.Fatalf("jump must be cancelled when jumping is not allowed")
	}
	events := f.w.Events().Drain()
	if len(events) != 1 || events[0].Type != ecs.EventStateChanged {
		t.Fatalf("events = %+v", events)
	}
	change, ok := events[0].Data.(StateChange)
	if !ok || change.From != "normal" || change.To != "no_jump" {
		t.Fatalf("change = %+v", events[0].Data)
	}
}

func TestAbilitySystemJumpRequest(t *testing.T) {
	cases := []struct {
		name     string
		grounded bool
		pressed  bool
		value    float64
		want     bool
	}{
		{"grounded_normal", true, true, 0.8, true},
		{"airborne", false, true, 0.8, false},
		{"not_pressed", true, false, 0.8, false},
		{"no_jump_band", true, true, 0.4, false},
		{"flying", true, true, 1.4, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.inf.Value = c.value
			f.ball.Zones.Grounded = c.grounded
			f.in.JumpPressed = c.pressed
			f.in.MoveX = 1

			NewAbilitySystem(nil).Update(f.w, step)

			if f.ball.Jump.Pending() != c.want {
				t.Fatalf("pending = %v, want %v", f.ball.Jump.Pending(), c.want)
			}
			if c.want && f.ball.Jump.Direction() != (mgl64.Vec3{1, 0, 0}) {
				t.Fatalf("direction = %v", f.ball.Jump.Direction())
			}
		})
	}
}

func TestMotionSystemGroundsAndJumps(t *testing.T) {
	f := newFixture(t, nil)
	NewAbilitySystem(nil).Update(f.w, step)

	f.ball.Jump.Request(mgl64.Vec3{})
	NewMotionSystem(nil).Update(f.w, step)

	if f.ball.LastTier != motion.TierJump {
		t.Fatalf("tier = %v, want jump", f.ball.LastTier)
	}
	if f.ball.Zones.Grounded {
		t.Fatalf("launch must clear grounded")
	}
	if v := f.ball.Body.Velocity(); math.Abs(v[1]-5) > 1e-9 {
		t.Fatalf("vertical velocity = %v, want 5", v[1])
	}
}

func TestMotionSystemProbesGround(t *testing.T) {
	f := newFixture(t, nil)
	NewMotionSystem(nil).Update(f.w, step)
	if !f.ball.Zones.Grounded {
		t.Fatalf("ball resting on the platform must be grounded")
	}

	f.ball.Body.SetPosition(mgl64.Vec3{0, 3, 0})
	NewMotionSystem(nil).Update(f.w, step)
	if f.ball.Zones.Grounded {
		t.Fatalf("ball in the air must not be grounded")
	}
}

func TestPhysicsSystemSyncsTransform(t *testing.T) {
	f := newFixture(t, nil)
	f.ball.Body.SetPosition(mgl64.Vec3{2, 4, 0})
	NewPhysicsSystem(nil).Update(f.w, step)
	if math.Abs(f.tr.X-2) > 1e-6 || f.tr.Y >= 4 {
		t.Fatalf("transform = (%v, %v), want x=2 and falling", f.tr.X, f.tr.Y)
	}
}

func TestPhysicsSystemKillPlane(t *testing.T) {
	f := newFixture(t, nil)
	f.ball.Body.SetPosition(mgl64.Vec3{0, -6, 0})
	NewPhysicsSystem(nil).Update(f.w, step)

	if !f.ball.Life.Dead() {
		t.Fatalf("ball below the kill plane must die")
	}
	if types := drainTypes(f.w); len(types) != 1 || types[0] != ecs.EventBallDied {
		t.Fatalf("events = %v", types)
	}

	NewPhysicsSystem(nil).Update(f.w, step)
	if f.w.Events().Len() != 0 {
		t.Fatalf("death must be reported once")
	}
}

func TestPhysicsSystemZones(t *testing.T) {
	cases := []struct {
		name  string
		tag   zone.Tag
		check func(t *testing.T, f *fixture)
	}{
		{"water", zone.TagWater, func(t *testing.T, f *fixture) {
			if !f.ball.Zones.InWater || f.ball.Body.Drag() != 2 {
				t.Fatalf("water membership = %+v drag = %v", f.ball.Zones.Membership, f.ball.Body.Drag())
			}
		}},
		{"wind", zone.TagWind, func(t *testing.T, f *fixture) {
			if !f.ball.Zones.InWind || f.ball.Zones.WindDirection != (mgl64.Vec3{1, 0, 0}) {
				t.Fatalf("wind membership = %+v", f.ball.Zones.Membership)
			}
		}},
		{"death", zone.TagDeath, func(t *testing.T, f *fixture) {
			if !f.ball.Life.Dead() || !f.ball.Zones.InDeathZone {
				t.Fatalf("death zone must kill the ball")
			}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t, func(l *levels.Level) {
				l.Zones = []levels.Zone{{Tag: c.tag, X: -2, Y: 0, W: 4, H: 2, Forward: []float64{1, 0.5, 0}}}
			})
			NewPhysicsSystem(nil).Update(f.w, step)
			c.check(t, f)
		})
	}
}

func TestTTLSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: 0.05}); err != nil {
		t.Fatalf("add ttl: %v", err)
	}
	s := NewTTLSystem()
	s.Update(w, step)
	s.Update(w, step)
	if !ecs.IsAlive(w, e) {
		t.Fatalf("entity destroyed early")
	}
	s.Update(w, step)
	if ecs.IsAlive(w, e) {
		t.Fatalf("entity must be destroyed once its time runs out")
	}
}

func TestParticleSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := &component.Transform{}
	p := &component.Particle{VX: 1, VY: 2, Gravity: 10}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), tr)
	_ = ecs.Add(w, e, component.ParticleComponent.Kind(), p)

	NewParticleSystem().Update(w, 0.1)
	if math.Abs(p.VY-1) > 1e-9 || math.Abs(tr.X-0.1) > 1e-9 || math.Abs(tr.Y-0.1) > 1e-9 {
		t.Fatalf("particle = %+v transform = %+v", p, tr)
	}
}

func TestGaugeColor(t *testing.T) {
	th := ability.DefaultThresholds()
	cases := []struct {
		v    float64
		want any
	}{
		{0, colornames.White},
		{0.3, colornames.Green},
		{0.5, colornames.Yellow},
		{0.7, colornames.Orange},
		{0.89, colornames.Orange},
		{0.9, colornames.Red},
		{2, colornames.Red},
	}
	for _, c := range cases {
		if got := GaugeColor(c.v, th); got != c.want {
			t.Fatalf("GaugeColor(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestGaugeSystemSnapsThenSmooths(t *testing.T) {
	f := newFixture(t, nil)
	var g *component.Gauge
	ecs.ForEach(f.w, component.GaugeComponent.Kind(), func(_ ecs.Entity, gg *component.Gauge) { g = gg })

	s := NewGaugeSystem()
	s.Update(f.w, step)
	if g.Current != 0.8 || g.Percent != 80 || math.Abs(g.Fill-0.4) > 1e-9 {
		t.Fatalf("gauge after snap = %+v", g)
	}

	f.inf.Value = 1.8
	s.Update(f.w, step)
	want := 0.8 + (1.8-0.8)*0.2
	if math.Abs(g.Current-want) > 1e-9 {
		t.Fatalf("current = %v, want %v", g.Current, want)
	}
	if g.Color != colornames.Red {
		t.Fatalf("color = %v, want red", g.Color)
	}
}

func TestButtonSystem(t *testing.T) {
	f := newFixture(t, func(l *levels.Level) {
		l.Buttons = []levels.Rect{{X: 2, Y: 0, W: 1.2, H: 0.3}}
	})
	var btn *component.Button
	var bt *component.Transform
	ecs.ForEach2(f.w, component.ButtonComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Button, t *component.Transform) {
		btn, bt = b, t
	})
	f.tr.X, f.tr.Y = 2.6, 0.8

	s := NewButtonSystem(nil)
	s.Update(f.w, step)
	if btn.Pressed || !btn.Touching {
		t.Fatalf("normal ball must not press the button: %+v", btn)
	}

	f.inf.Value = 0.4
	NewAbilitySystem(nil).Update(f.w, step)
	f.w.Events().Drain()

	s.Update(f.w, step)
	if btn.Pressed {
		t.Fatalf("deflating while resting on the button must not press it")
	}

	f.tr.X = 6
	s.Update(f.w, step)
	if btn.Pressed || btn.Touching {
		t.Fatalf("button after the ball left = %+v", btn)
	}

	f.tr.X = 2.6
	s.Update(f.w, step)
	if !btn.Pressed || bt.ScaleY != 1 {
		t.Fatalf("button = %+v scale = %v", btn, bt.ScaleY)
	}
	if types := drainTypes(f.w); len(types) != 1 || types[0] != ecs.EventButtonPushed {
		t.Fatalf("events = %v", types)
	}

	s.Update(f.w, component.ButtonPressDuration)
	if math.Abs(bt.ScaleY-component.ButtonPressedScaleY) > 1e-9 {
		t.Fatalf("scale = %v, want %v", bt.ScaleY, component.ButtonPressedScaleY)
	}
	s.Update(f.w, step)
	if f.w.Events().Len() != 0 {
		t.Fatalf("button must only fire once")
	}
}

func TestTutorialTextFades(t *testing.T) {
	f := newFixture(t, func(l *levels.Level) {
		l.Texts = []levels.Tutorial{{Text: "roll", Trigger: levels.Rect{X: -1, Y: 0, W: 2, H: 2}, TargetAlpha: 0.6}}
	})
	var txt *component.TutorialText
	ecs.ForEach(f.w, component.TutorialTextComponent.Kind(), func(_ ecs.Entity, tt *component.TutorialText) { txt = tt })

	s := NewTutorialTextSystem()
	s.Update(f.w, 0)
	if !txt.Inside || !txt.Visible || txt.Alpha.Value() != 0 {
		t.Fatalf("text after enter = %+v", txt)
	}
	s.Update(f.w, component.TutorialFadeDuration)
	if math.Abs(txt.Alpha.Value()-0.6) > 1e-9 {
		t.Fatalf("alpha = %v, want 0.6", txt.Alpha.Value())
	}

	f.tr.X = 5
	s.Update(f.w, component.TutorialFadeDuration/2)
	if !txt.Visible || math.Abs(txt.Alpha.Value()-0.3) > 1e-9 {
		t.Fatalf("alpha mid fade = %v", txt.Alpha.Value())
	}
	s.Update(f.w, component.TutorialFadeDuration/2)
	if txt.Visible || txt.Alpha.Value() != 0 {
		t.Fatalf("text must hide after fading out: %+v", txt)
	}
}

func TestCameraSystem(t *testing.T) {
	f := newFixture(t, nil)
	camEntity, _ := ecs.First(f.w, component.CameraRigComponent.Kind())
	cam, _ := ecs.Get(f.w, camEntity, component.CameraRigComponent.Kind())

	s := NewCameraSystem()
	s.Update(f.w, step)
	if !cam.Snapped || cam.X != f.tr.X || cam.Y != f.tr.Y {
		t.Fatalf("camera did not snap: %+v", cam)
	}

	f.tr.X += 10
	s.Update(f.w, 0.05)
	want := 10 * cam.Smoothness * 0.05
	if math.Abs(cam.X-want) > 1e-9 {
		t.Fatalf("camera x = %v, want %v", cam.X, want)
	}
}

func TestInflationSystem(t *testing.T) {
	const script = `
rate := -leak_rate
if pump { rate = rate + pump_rate }
if release { rate = rate - release_rate }
inflation = inflation + rate * dt
`
	cases := []struct {
		name    string
		pump    bool
		release bool
		start   float64
		dt      float64
		want    float64
	}{
		{"idle", false, false, 0.8, 1, 0.8},
		{"pump", true, false, 0.8, 0.5, 1.05},
		{"release", false, true, 0.8, 0.5, 0.55},
		{"clamped_high", true, false, 1.4, 1, 1.5},
		{"clamped_low", false, true, 0.1, 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t, nil)
			s := NewInflationSystem(nil)
			s.load = func(string) ([]byte, error) { return []byte(script), nil }
			f.inf.Value = c.start
			f.in.Pump, f.in.Release = c.pump, c.release

			s.Update(f.w, c.dt)
			if math.Abs(f.inf.Value-c.want) > 1e-9 {
				t.Fatalf("inflation = %v, want %v", f.inf.Value, c.want)
			}
		})
	}
}

func TestInflationSystemBrokenScript(t *testing.T) {
	f := newFixture(t, nil)
	s := NewInflationSystem(nil)
	loads := 0
	s.load = func(string) ([]byte, error) {
		loads++
		return nil, errors.New("missing")
	}
	f.in.Pump = true

	s.Update(f.w, 1)
	s.Update(f.w, 1)
	if f.inf.Value != 0.8 {
		t.Fatalf("value changed by a broken script: %v", f.inf.Value)
	}
	if loads != 1 {
		t.Fatalf("loads = %d, broken scripts must not be retried every frame", loads)
	}

	s.Invalidate(f.inf.Script)
	s.Update(f.w, 1)
	if loads != 2 {
		t.Fatalf("invalidate must allow a reload, loads = %d", loads)
	}
}

func TestInflationSystemSkipsDeadBall(t *testing.T) {
	f := newFixture(t, nil)
	s := NewInflationSystem(nil)
	s.load = func(string) ([]byte, error) { return []byte(`inflation = 0`), nil }
	f.ball.Life.TriggerDeath()
	s.Update(f.w, step)
	if f.inf.Value != 0.8 {
		t.Fatalf("dead ball inflation changed to %v", f.inf.Value)
	}
}

func TestZoneVisualSystemScrollsWindOnly(t *testing.T) {
	f := newFixture(t, func(l *levels.Level) {
		l.Zones = []levels.Zone{
			{Tag: zone.TagWind, X: 20, Y: 0, W: 4, H: 4, Forward: []float64{1, 0, 0}},
			{Tag: zone.TagWater, X: 30, Y: 0, W: 4, H: 4},
		}
	})
	NewZoneVisualSystem().Update(f.w, 0.5)
	ecs.ForEach(f.w, component.ZoneVolumeComponent.Kind(), func(_ ecs.Entity, z *component.ZoneVolume) {
		want := 0.0
		if z.Tag == zone.TagWind {
			want = windStreakSpeed * 0.5
		}
		if z.Phase != want {
			t.Fatalf("%s phase = %v, want %v", z.Tag, z.Phase, want)
		}
	})
}

func TestViewToScreen(t *testing.T) {
	v := NewView(&component.CameraRig{X: 1, Y: 1, Zoom: 2}, 960, 540)
	x, y := v.ToScreen(1, 1)
	if x != 480 || y != 270 {
		t.Fatalf("camera centre maps to (%v, %v)", x, y)
	}
	_, above := v.ToScreen(1, 2)
	if above >= 270 {
		t.Fatalf("world up must be screen up, got y=%v", above)
	}
}
