package entity

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollball/ability"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/lifecycle"
	"github.com/milk9111/rollball/motion"
	"github.com/milk9111/rollball/physics"
	"github.com/milk9111/rollball/prefabs"
	"github.com/milk9111/rollball/zone"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

var ErrNoPhysics = errors.New("entity: world has no physics")

const ballLayer = 2

// NewBall spawns the player ball at (x, y). effect may be nil, in which case
// the death burst falls back to its default duration.
func NewBall(w *ecs.World, spec *prefabs.BallSpec, effect *prefabs.EffectSpec, x, y float64, log *zap.Logger) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("entity: ball: nil spec")
	}
	pw := w.Physics()
	if pw == nil {
		return 0, ErrNoPhysics
	}
	log = common.OrNop(log)

	gate, err := ability.NewGate(spec.Thresholds, spec.Multipliers, spec.JumpForce)
	if err != nil {
		return 0, fmt.Errorf("entity: ball: %w", err)
	}
	mask, err := physics.ParseLayers(spec.Ground.Layers)
	if err != nil {
		return 0, fmt.Errorf("entity: ball: %w", err)
	}

	body := pw.NewBall(mgl64.Vec3{x, y, 0}, spec.Radius, spec.Mass, spec.Friction, spec.Drag)
	e := ecs.CreateEntity(w)

	var life *lifecycle.Controller
	tracker := zone.NewTracker(spec.Zones, body, func() { life.TriggerDeath() })
	life = lifecycle.NewController(lifecycle.Deps{
		Body:     body,
		Collider: body,
		Visual:   &visual{w: w, e: e},
		Effect:   &burst{w: w, spec: effect, log: log},
	})
	life.Subscribe(func(evt lifecycle.DeathEvent) {
		log.Info("ball died",
			zap.Float64("x", evt.Position[0]),
			zap.Float64("y", evt.Position[1]),
			zap.Float64("effect_expiry", evt.EffectExpiry),
		)
		w.Events().Push(ecs.Event{Type: ecs.EventBallDied, Entity: e, Data: evt})
	})
	life.Subscribe(func(lifecycle.DeathEvent) { tracker.Clear() })

	ball := &component.Ball{
		Gate:          gate,
		Resolver:      motion.NewResolver(spec.Movement),
		Zones:         tracker,
		Life:          life,
		Body:          body,
		Caps:          gate.Capabilities(),
		ProbeDistance: zone.ProbeDistance(spec.Radius, spec.Ground.Margin),
		GroundMask:    mask,
	}
	inflation := &component.Inflation{
		Value:       spec.Inflation.Start,
		Max:         spec.Inflation.Max,
		PumpRate:    spec.Inflation.PumpRate,
		ReleaseRate: spec.Inflation.ReleaseRate,
		LeakRate:    spec.Inflation.LeakRate,
		Script:      spec.Inflation.Script,
	}

	adds := []error{
		ecs.Add(w, e, component.BallComponent.Kind(), ball),
		ecs.Add(w, e, component.InflationComponent.Kind(), inflation),
		ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}),
		ecs.Add(w, e, component.RenderableComponent.Kind(), &component.Renderable{
			Shape:  component.ShapeCircle,
			Radius: spec.Radius,
			Color:  spec.Color.ColorOr(colornames.Whitesmoke),
		}),
		ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: ballLayer}),
	}
	if err := errors.Join(adds...); err != nil {
		return 0, fmt.Errorf("entity: ball: %w", err)
	}
	return e, nil
}

// ApplyBallSpec retunes a live ball. The previous tuning stays in place when
// spec is rejected.
func ApplyBallSpec(w *ecs.World, e ecs.Entity, spec *prefabs.BallSpec) error {
	if spec == nil {
		return fmt.Errorf("entity: apply ball spec: nil spec")
	}
	ball, ok := ecs.Get(w, e, component.BallComponent.Kind())
	if !ok {
		return fmt.Errorf("entity: apply ball spec: %s has no ball", e)
	}
	mask, err := physics.ParseLayers(spec.Ground.Layers)
	if err != nil {
		return fmt.Errorf("entity: apply ball spec: %w", err)
	}
	if err := ball.Gate.Reconfigure(spec.Thresholds, spec.Multipliers, spec.JumpForce); err != nil {
		return fmt.Errorf("entity: apply ball spec: %w", err)
	}
	ball.Resolver.Tuning = spec.Movement
	ball.Zones.SetConfig(spec.Zones)
	ball.ProbeDistance = zone.ProbeDistance(ball.Body.Radius(), spec.Ground.Margin)
	ball.GroundMask = mask

	if inf, ok := ecs.Get(w, e, component.InflationComponent.Kind()); ok {
		inf.Max = spec.Inflation.Max
		inf.PumpRate = spec.Inflation.PumpRate
		inf.ReleaseRate = spec.Inflation.ReleaseRate
		inf.LeakRate = spec.Inflation.LeakRate
		inf.Script = spec.Inflation.Script
		inf.Value = common.Clamp(inf.Value, 0, inf.Max)
	}
	return nil
}
