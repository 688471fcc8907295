package motion

import "github.com/go-gl/mathgl/mgl64"

// ForceMode selects how AddForce is integrated.
type ForceMode int

const (
	// Force is a continuous, mass-scaled push for one step.
	Force ForceMode = iota
	// Acceleration is a continuous push that ignores mass.
	Acceleration
	// Impulse is an instantaneous, mass-scaled change of momentum.
	Impulse
)

func (m ForceMode) String() string {
	switch m {
	case Force:
		return "force"
	case Acceleration:
		return "acceleration"
	case Impulse:
		return "impulse"
	default:
		return "unknown"
	}
}

// Body is the rigid body the resolver drives. Y is up.
type Body interface {
	AddForce(f mgl64.Vec3, mode ForceMode)
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
}
