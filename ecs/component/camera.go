package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraRig orbits the ball. Yaw turns about Y, pitch tilts down toward the
// target. X and Y are the world point at the screen centre.
type CameraRig struct {
	Yaw        float64
	Pitch      float64
	Zoom       float64
	Smoothness float64
	X          float64
	Y          float64
	Snapped    bool
}

// Right is the camera's horizontal right axis.
func (c *CameraRig) Right() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{1, 0, 0}
	}
	return mgl64.Vec3{math.Cos(c.Yaw), 0, -math.Sin(c.Yaw)}
}

// Forward is the viewing direction including pitch.
func (c *CameraRig) Forward() mgl64.Vec3 {
	if c == nil {
		return mgl64.Vec3{0, 0, 1}
	}
	cosPitch := math.Cos(c.Pitch)
	return mgl64.Vec3{math.Sin(c.Yaw) * cosPitch, -math.Sin(c.Pitch), math.Cos(c.Yaw) * cosPitch}
}

var CameraRigComponent = NewComponent[CameraRig]()
