package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/motion"
	"go.uber.org/zap"
)

// AbilitySystem is the per-frame stage of the ball: it classifies the
// inflation value, derives capabilities, projects input onto the camera and
// records jump requests.
type AbilitySystem struct {
	log *zap.Logger
}

func NewAbilitySystem(log *zap.Logger) *AbilitySystem {
	return &AbilitySystem{log: common.OrNop(log)}
}

// StateChange is the payload of ecs.EventStateChanged.
type StateChange struct {
	From string
	To   string
}

func (s *AbilitySystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}

	var cam *component.CameraRig
	if e, ok := ecs.First(w, component.CameraRigComponent.Kind()); ok {
		cam, _ = ecs.Get(w, e, component.CameraRigComponent.Kind())
	}

	ecs.ForEach2(w, component.BallComponent.Kind(), component.InflationComponent.Kind(), func(e ecs.Entity, ball *component.Ball, inf *component.Inflation) {
		if ball.Life.Dead() {
			return
		}

		prev := ball.Gate.State()
		caps, changed := ball.Gate.Update(inf.Value)
		ball.Caps = caps
		if changed {
			next := ball.Gate.State()
			s.log.Info("ability state changed",
				zap.Stringer("from", prev),
				zap.Stringer("to", next),
				zap.Float64("inflation", inf.Value),
			)
			w.Events().Push(ecs.Event{Type: ecs.EventStateChanged, Entity: e, Data: StateChange{From: prev.String(), To: next.String()}})
		}
		if !caps.CanJump {
			ball.Jump.Cancel()
		}

		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			ball.Intent = mgl64.Vec3{}
			return
		}
		ball.Intent = motion.ProjectInput(cam.Right(), cam.Forward(), in.MoveX, in.MoveY)

		if in.JumpPressed && caps.CanJump && ball.Zones != nil && ball.Zones.Grounded {
			if ball.Jump.Request(ball.Intent) {
				s.log.Debug("jump requested", zap.Stringer("state", ball.Gate.State()))
			}
		}
	})
}
