package system

import (
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/motion"
	"github.com/milk9111/rollball/zone"
	"go.uber.org/zap"
)

// MotionSystem runs once per fixed step before the physics step: it probes
// for ground and resolves the ball's forces.
type MotionSystem struct {
	log *zap.Logger
}

func NewMotionSystem(log *zap.Logger) *MotionSystem {
	return &MotionSystem{log: common.OrNop(log)}
}

func (s *MotionSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	var prober zone.Prober
	if pw := w.Physics(); pw != nil {
		prober = pw
	}

	ecs.ForEach(w, component.BallComponent.Kind(), func(_ ecs.Entity, ball *component.Ball) {
		if ball.Life.Dead() || ball.Body == nil {
			return
		}
		ball.Zones.ProbeGround(prober, ball.Body.Position(), ball.ProbeDistance, ball.GroundMask)

		var zones *zone.Membership
		if ball.Zones != nil {
			zones = &ball.Zones.Membership
		}
		tier := ball.Resolver.Resolve(ball.Body, motion.Frame{
			Intent: ball.Intent,
			State:  ball.Gate.State(),
			Caps:   ball.Caps,
			Zones:  zones,
			Jump:   &ball.Jump,
		})
		if tier == motion.TierJump {
			s.log.Debug("jump", zap.Float64("force", ball.Caps.JumpForce))
		}
		if tier != ball.LastTier {
			s.log.Debug("motion tier changed", zap.Stringer("from", ball.LastTier), zap.Stringer("to", tier))
			ball.LastTier = tier
		}
	})
}
