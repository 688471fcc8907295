package component

import "image/color"

const (
	GaugeMax         = 2.0
	GaugeSmoothSpeed = 10.0
)

// Gauge smooths the inflation value for the HUD.
type Gauge struct {
	Max         float64
	SmoothSpeed float64
	Current     float64
	Target      float64
	Fill        float64
	Percent     int
	Color       color.Color
	Initialized bool
}

var GaugeComponent = NewComponent[Gauge]()
