package system

import (
	"github.com/milk9111/rollball/ability"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"go.uber.org/zap"
)

// contactSlop widens the button upward so a ball resting on it counts as touching.
const contactSlop = 0.05

// ButtonSystem latches buttons the ball lands on while in the NoJump state
// and squashes them down. A ball already resting on a button does not press
// it by deflating.
type ButtonSystem struct {
	log *zap.Logger
}

func NewButtonSystem(log *zap.Logger) *ButtonSystem {
	return &ButtonSystem{log: common.OrNop(log)}
}

func (s *ButtonSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	_, ball, bt, hasBall := firstBall(w)

	ecs.ForEach2(w, component.ButtonComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Button, t *component.Transform) {
		if b.Pressed {
			t.ScaleY = b.Press.Advance(dt)
			return
		}
		touching := false
		if hasBall && !ball.Life.Dead() {
			r := ball.Body.Radius()
			ballBox := centeredAABB(bt.X, bt.Y, r*2, r*2)
			buttonBox := centeredAABB(t.X, t.Y, b.Width, b.Height+contactSlop*2)
			touching = overlapsAABB(ballBox, buttonBox)
		}
		entered := touching && !b.Touching
		b.Touching = touching
		if !entered || ball.Gate.State() != ability.NoJump {
			return
		}
		b.Pressed = true
		b.Press = common.NewTween(1, component.ButtonPressedScaleY, component.ButtonPressDuration)
		t.ScaleY = b.Press.Advance(0)
		w.Events().Push(ecs.Event{Type: ecs.EventButtonPushed, Entity: e})
		s.log.Info("button pressed", zap.Stringer("entity", e))
	})
}
