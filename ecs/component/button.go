package component

import "github.com/milk9111/rollball/common"

const (
	ButtonPressDuration = 0.1
	ButtonPressedScaleY = 0.4
)

// Button latches once when a soft enough ball rolls onto it.
type Button struct {
	Width   float64
	Height  float64
	Pressed bool
	Press   common.Tween
	// Touching is the ball overlap seen on the previous frame. Only a new
	// contact can press the button.
	Touching bool
}

var ButtonComponent = NewComponent[Button]()
