package system

import (
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/physics"
	"go.uber.org/zap"
)

// PhysicsSystem steps the space, applies buffered zone transitions, copies
// body state into transforms and enforces the kill plane.
type PhysicsSystem struct {
	log *zap.Logger
}

func NewPhysicsSystem(log *zap.Logger) *PhysicsSystem {
	return &PhysicsSystem{log: common.OrNop(log)}
}

func (s *PhysicsSystem) Update(w *ecs.World, dt float64) {
	pw := w.Physics()
	if pw == nil {
		return
	}
	pw.Step(dt)
	events := pw.DrainZoneEvents()

	killY, hasKill := 0.0, false
	if e, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind()); ok {
			killY, hasKill = b.KillY, true
		}
	}

	ecs.ForEach2(w, component.BallComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, ball *component.Ball, t *component.Transform) {
		if ball.Body == nil {
			return
		}
		for _, evt := range events {
			if evt.Body != ball.Body || ball.Life.Dead() {
				continue
			}
			s.applyZoneEvent(ball, evt)
		}

		pos := ball.Body.Position()
		t.X = pos[0]
		t.Y = pos[1]
		t.Rotation = ball.Body.Angle()

		if hasKill && pos[1] < killY && ball.Life.TriggerDeath() {
			s.log.Info("ball fell out of the level", zap.Float64("y", pos[1]), zap.Float64("kill_y", killY))
		}
	})
}

func (s *PhysicsSystem) applyZoneEvent(ball *component.Ball, evt physics.ZoneEvent) {
	if evt.Enter {
		s.log.Debug("zone enter", zap.String("tag", string(evt.Volume.Tag)), zap.Uint64("volume", uint64(evt.Volume.ID)))
		ball.Zones.OnEnter(evt.Volume.ID, evt.Volume.Tag, evt.Volume.Forward)
		return
	}
	s.log.Debug("zone exit", zap.String("tag", string(evt.Volume.Tag)), zap.Uint64("volume", uint64(evt.Volume.ID)))
	ball.Zones.OnExit(evt.Volume.ID, evt.Volume.Tag)
}
