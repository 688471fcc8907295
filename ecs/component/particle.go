package component

import "image/color"

// Particle is one fragment of a burst effect, integrated without physics.
type Particle struct {
	VX      float64
	VY      float64
	Gravity float64
	Size    float64
	Color   color.Color
}

var ParticleComponent = NewComponent[Particle]()
