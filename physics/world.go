package physics

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/zone"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBall
	collisionTypeZone
)

// Layer bits used as shape filter categories and probe masks.
const (
	LayerGround uint = 1 << iota
	LayerBall
	LayerZone
)

var layerNames = map[string]uint{
	"ground": LayerGround,
	"ball":   LayerBall,
	"zone":   LayerZone,
}

// ParseLayers turns layer names into a mask. An empty list selects every layer.
func ParseLayers(names []string) (uint, error) {
	if len(names) == 0 {
		return cp.ALL_CATEGORIES, nil
	}
	var mask uint
	for _, n := range names {
		bit, ok := layerNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("physics: unknown layer %q", n)
		}
		mask |= bit
	}
	return mask, nil
}

// Volume is a trigger zone registered with the world.
type Volume struct {
	ID      zone.VolumeID
	Tag     zone.Tag
	Forward mgl64.Vec3
}

// ZoneEvent is a buffered sensor transition for one ball.
type ZoneEvent struct {
	Body   *Body
	Volume Volume
	Enter  bool
}

// World owns the Chipmunk space. Y is up and one unit is one meter.
type World struct {
	space *cp.Space

	volumes    map[*cp.Shape]Volume
	ballShapes map[*cp.Shape]*Body
	events     []ZoneEvent
	nextVolume zone.VolumeID
}

func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})

	w := &World{
		space:      space,
		volumes:    make(map[*cp.Shape]Volume),
		ballShapes: make(map[*cp.Shape]*Body),
	}
	w.setupHandlers()
	return w
}

// AddBox adds a static solid with its lower-left corner at (x, y).
func (w *World) AddBox(x, y, width, height, friction float64) *cp.Shape {
	if w == nil || w.space == nil || width <= 0 || height <= 0 {
		return nil
	}
	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: LayerGround, Mask: cp.ALL_CATEGORIES})
	w.space.AddShape(shape)
	return shape
}

// AddZone adds a sensor volume and returns its identity.
func (w *World) AddZone(x, y, width, height float64, tag zone.Tag, forward mgl64.Vec3) zone.VolumeID {
	if w == nil || w.space == nil || width <= 0 || height <= 0 {
		return 0
	}
	w.nextVolume++
	id := w.nextVolume

	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeZone)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: LayerZone, Mask: LayerBall})
	w.space.AddShape(shape)
	w.volumes[shape] = Volume{ID: id, Tag: tag, Forward: forward}
	return id
}

// NewBall adds a dynamic circle centred at pos.
func (w *World) NewBall(pos mgl64.Vec3, radius, mass, friction, drag float64) *Body {
	if w == nil || w.space == nil {
		return nil
	}
	if radius <= 0 {
		radius = 0.5
	}
	if mass <= 0 {
		mass = 1
	}

	b := &Body{radius: radius, drag: drag}
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(toCP(pos))
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity, damping, dt)
		scale := 1 - b.drag*dt
		if scale < 0 {
			scale = 0
		}
		body.SetVelocityVector(body.Velocity().Mult(scale))
	})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(friction)
	shape.SetCollisionType(collisionTypeBall)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: LayerBall, Mask: LayerGround | LayerZone})

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b.body = body
	b.shape = shape
	w.ballShapes[shape] = b
	return b
}

// Step advances the simulation. Zone transitions are buffered until drained.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// DrainZoneEvents returns buffered zone transitions in order and clears them.
func (w *World) DrainZoneEvents() []ZoneEvent {
	if w == nil || len(w.events) == 0 {
		return nil
	}
	out := w.events
	w.events = nil
	return out
}

// Raycast reports whether a segment from origin hits a shape in layerMask.
func (w *World) Raycast(origin, direction mgl64.Vec3, maxDistance float64, layerMask uint) bool {
	if w == nil || w.space == nil || maxDistance <= 0 {
		return false
	}
	dir := toCP(direction)
	if dir.LengthSq() == 0 {
		return false
	}
	start := toCP(origin)
	end := start.Add(dir.Normalize().Mult(maxDistance))
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: layerMask}
	info := w.space.SegmentQueryFirst(start, end, 0, filter)
	return info.Shape != nil
}

func (w *World) setupHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeBall, collisionTypeZone)
	handler.UserData = w
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if world, ok := userData.(*World); ok && world != nil {
			world.recordZone(arb, true)
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if world, ok := userData.(*World); ok && world != nil {
			world.recordZone(arb, false)
		}
	}
}

func (w *World) recordZone(arb *cp.Arbiter, enter bool) {
	shapeA, shapeB := arb.Shapes()
	vol, ok := w.volumes[shapeA]
	if !ok {
		vol, ok = w.volumes[shapeB]
	}
	if !ok {
		return
	}
	ball := w.ballShapes[shapeA]
	if ball == nil {
		ball = w.ballShapes[shapeB]
	}
	if ball == nil || ball.collisionDisabled {
		return
	}
	w.events = append(w.events, ZoneEvent{Body: ball, Volume: vol, Enter: enter})
}

func toCP(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v[0], Y: v[1]}
}

func fromCP(v cp.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, 0}
}
