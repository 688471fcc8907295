package common

const (
	BaseWidth  = 960
	BaseHeight = 540

	// PixelsPerUnit converts physics meters to screen pixels.
	PixelsPerUnit = 48.0

	// FixedStep is the default physics tick in seconds.
	FixedStep = 0.02
	Gravity   = 9.81
)
