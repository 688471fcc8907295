package component

import "github.com/milk9111/rollball/common"

const TutorialFadeDuration = 0.5

type TutorialText struct {
	Text        string
	TriggerX    float64
	TriggerY    float64
	TriggerW    float64
	TriggerH    float64
	TargetAlpha float64

	Alpha   common.Tween
	Visible bool
	Inside  bool
}

var TutorialTextComponent = NewComponent[TutorialText]()
