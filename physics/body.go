package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/motion"
)

// Body wraps a dynamic Chipmunk circle. The Z component of every vector is
// dropped on the way in and zero on the way out.
type Body struct {
	body   *cp.Body
	shape  *cp.Shape
	radius float64
	drag   float64

	frozen            bool
	collisionDisabled bool
}

func (b *Body) AddForce(f mgl64.Vec3, mode motion.ForceMode) {
	if b == nil || b.body == nil || b.frozen {
		return
	}
	v := toCP(f)
	at := b.body.Position()
	switch mode {
	case motion.Impulse:
		b.body.ApplyImpulseAtWorldPoint(v, at)
	case motion.Acceleration:
		b.body.ApplyForceAtWorldPoint(v.Mult(b.body.Mass()), at)
	default:
		b.body.ApplyForceAtWorldPoint(v, at)
	}
}

func (b *Body) Velocity() mgl64.Vec3 {
	if b == nil || b.body == nil {
		return mgl64.Vec3{}
	}
	return fromCP(b.body.Velocity())
}

func (b *Body) SetVelocity(v mgl64.Vec3) {
	if b == nil || b.body == nil || b.frozen {
		return
	}
	b.body.SetVelocityVector(toCP(v))
}

func (b *Body) Position() mgl64.Vec3 {
	if b == nil || b.body == nil {
		return mgl64.Vec3{}
	}
	return fromCP(b.body.Position())
}

// SetPosition teleports the body and clears its motion.
func (b *Body) SetPosition(p mgl64.Vec3) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(toCP(p))
	b.body.SetVelocityVector(cp.Vector{})
	b.body.SetAngularVelocity(0)
}

// Angle is the roll of the ball in radians.
func (b *Body) Angle() float64 {
	if b == nil || b.body == nil {
		return 0
	}
	return b.body.Angle()
}

func (b *Body) Radius() float64 {
	if b == nil {
		return 0
	}
	return b.radius
}

func (b *Body) Drag() float64 {
	if b == nil {
		return 0
	}
	return b.drag
}

func (b *Body) SetDrag(d float64) {
	if b == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	b.drag = d
}

// Freeze stops the body and takes it out of the simulation's dynamics.
func (b *Body) Freeze() {
	if b == nil || b.body == nil || b.frozen {
		return
	}
	b.body.SetVelocityVector(cp.Vector{})
	b.body.SetAngularVelocity(0)
	b.body.SetType(cp.BODY_KINEMATIC)
	b.frozen = true
}

func (b *Body) Frozen() bool {
	return b != nil && b.frozen
}

// DisableCollision removes the ball from every contact and sensor test.
func (b *Body) DisableCollision() {
	if b == nil || b.shape == nil || b.collisionDisabled {
		return
	}
	b.shape.SetFilter(cp.SHAPE_FILTER_NONE)
	b.collisionDisabled = true
}

func (b *Body) CollisionDisabled() bool {
	return b != nil && b.collisionDisabled
}
