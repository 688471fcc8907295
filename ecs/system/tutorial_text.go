package system

import (
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
)

// TutorialTextSystem fades texts in while the ball is inside their trigger
// and out once it leaves.
type TutorialTextSystem struct{}

func NewTutorialTextSystem() *TutorialTextSystem {
	return &TutorialTextSystem{}
}

func (s *TutorialTextSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	_, ball, bt, hasBall := firstBall(w)
	alive := hasBall && !ball.Life.Dead()

	ecs.ForEach(w, component.TutorialTextComponent.Kind(), func(_ ecs.Entity, txt *component.TutorialText) {
		inside := alive &&
			bt.X >= txt.TriggerX && bt.X <= txt.TriggerX+txt.TriggerW &&
			bt.Y >= txt.TriggerY && bt.Y <= txt.TriggerY+txt.TriggerH

		if inside != txt.Inside {
			txt.Inside = inside
			goal := 0.0
			if inside {
				goal = txt.TargetAlpha
				txt.Visible = true
			}
			if txt.Alpha.Value() != goal {
				txt.Alpha.Restart(goal, component.TutorialFadeDuration)
			}
		}

		txt.Alpha.Advance(dt)
		if !txt.Inside && txt.Alpha.Done() && txt.Alpha.Value() <= 0 {
			txt.Visible = false
		}
	})
}
