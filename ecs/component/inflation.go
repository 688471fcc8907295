package component

// Inflation is the scalar that gates the ball's abilities.
type Inflation struct {
	Value       float64
	Max         float64
	PumpRate    float64
	ReleaseRate float64
	LeakRate    float64
	Script      string
}

var InflationComponent = NewComponent[Inflation]()
