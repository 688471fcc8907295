package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/motion"
	"github.com/milk9111/rollball/zone"
)

var down = mgl64.Vec3{0, -1, 0}

func TestParseLayers(t *testing.T) {
	cases := []struct {
		name    string
		in      []string
		want    uint
		wantErr bool
	}{
		{"empty_is_all", nil, cp.ALL_CATEGORIES, false},
		{"ground", []string{"ground"}, LayerGround, false},
		{"mixed_case", []string{" Ground", "ZONE"}, LayerGround | LayerZone, false},
		{"unknown", []string{"lava"}, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseLayers(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if got != c.want {
				t.Fatalf("mask = %b, want %b", got, c.want)
			}
		})
	}
}

func TestRaycastRespectsDistanceAndMask(t *testing.T) {
	w := NewWorld(9.81)
	w.AddBox(-5, 0, 10, 1, 0.5)
	w.AddZone(-5, 3, 10, 2, zone.TagWater, mgl64.Vec3{})

	origin := mgl64.Vec3{0, 1.5, 0}
	if !w.Raycast(origin, down, 0.6, LayerGround) {
		t.Fatalf("expected ground hit within 0.6")
	}
	if w.Raycast(origin, down, 0.4, LayerGround) {
		t.Fatalf("ground is 0.5 away, 0.4 must miss")
	}
	if w.Raycast(origin, down, 0.6, LayerZone) {
		t.Fatalf("ground must be filtered out by a zone-only mask")
	}
	if w.Raycast(mgl64.Vec3{0, 5.5, 0}, down, 1, LayerGround) {
		t.Fatalf("sensors must not count as ground")
	}
	if w.Raycast(origin, mgl64.Vec3{}, 1, LayerGround) {
		t.Fatalf("zero direction must miss")
	}
}

func TestImpulseAndAccelerationModes(t *testing.T) {
	w := NewWorld(0)
	b := w.NewBall(mgl64.Vec3{}, 0.5, 2, 0.5, 0)

	b.AddForce(mgl64.Vec3{4, 0, 7}, motion.Impulse)
	if v := b.Velocity(); math.Abs(v[0]-2) > 1e-9 || v[2] != 0 {
		t.Fatalf("velocity after impulse = %v, want (2,0,0)", v)
	}

	b.SetVelocity(mgl64.Vec3{})
	b.AddForce(mgl64.Vec3{1, 0, 0}, motion.Acceleration)
	w.Step(0.5)
	if v := b.Velocity(); math.Abs(v[0]-0.5) > 1e-9 {
		t.Fatalf("velocity after acceleration = %v, want 0.5", v[0])
	}
}

func TestForceModeDividesByMass(t *testing.T) {
	w := NewWorld(0)
	b := w.NewBall(mgl64.Vec3{}, 0.5, 2, 0.5, 0)
	b.AddForce(mgl64.Vec3{2, 0, 0}, motion.Force)
	w.Step(0.5)
	if v := b.Velocity(); math.Abs(v[0]-0.5) > 1e-9 {
		t.Fatalf("velocity after force = %v, want 0.5", v[0])
	}
}

func TestDragSlowsBody(t *testing.T) {
	w := NewWorld(0)
	b := w.NewBall(mgl64.Vec3{}, 0.5, 1, 0.5, 0)
	b.SetDrag(10)
	b.SetVelocity(mgl64.Vec3{4, 0, 0})
	w.Step(0.02)
	if v := b.Velocity(); math.Abs(v[0]-3.2) > 1e-9 {
		t.Fatalf("velocity after drag = %v, want 3.2", v[0])
	}
	b.SetDrag(-1)
	if b.Drag() != 0 {
		t.Fatalf("negative drag must clamp to zero")
	}
}

func TestFreezeAndDisableCollision(t *testing.T) {
	w := NewWorld(9.81)
	b := w.NewBall(mgl64.Vec3{0, 3, 0}, 0.5, 1, 0.5, 0)
	b.SetVelocity(mgl64.Vec3{1, -2, 0})

	b.Freeze()
	b.DisableCollision()
	w.Step(0.02)

	if !b.Frozen() || !b.CollisionDisabled() {
		t.Fatalf("expected frozen and collision disabled")
	}
	if b.Velocity() != (mgl64.Vec3{}) {
		t.Fatalf("frozen body moved: %v", b.Velocity())
	}
	if p := b.Position(); math.Abs(p[1]-3) > 1e-9 {
		t.Fatalf("frozen body fell: %v", p)
	}
	b.AddForce(mgl64.Vec3{0, 10, 0}, motion.Impulse)
	if b.Velocity() != (mgl64.Vec3{}) {
		t.Fatalf("frozen body accepted an impulse")
	}
}

func TestZoneEventsAreBufferedUntilDrained(t *testing.T) {
	w := NewWorld(0)
	id := w.AddZone(-1, -1, 2, 2, zone.TagWind, mgl64.Vec3{1, 0, 0})
	b := w.NewBall(mgl64.Vec3{}, 0.5, 1, 0.5, 0)

	w.Step(0.02)
	events := w.DrainZoneEvents()
	if len(events) != 1 || !events[0].Enter || events[0].Body != b || events[0].Volume.ID != id || events[0].Volume.Tag != zone.TagWind {
		t.Fatalf("expected one wind enter, got %+v", events)
	}
	if again := w.DrainZoneEvents(); again != nil {
		t.Fatalf("drain must clear the buffer, got %+v", again)
	}

	b.SetPosition(mgl64.Vec3{10, 0, 0})
	w.Step(0.02)
	events = w.DrainZoneEvents()
	if len(events) != 1 || events[0].Enter || events[0].Volume.ID != id {
		t.Fatalf("expected one wind exit, got %+v", events)
	}
}

func TestNilWorldAndBodyAreInert(t *testing.T) {
	var w *World
	w.Step(0.02)
	if w.Raycast(mgl64.Vec3{}, down, 1, LayerGround) || w.DrainZoneEvents() != nil {
		t.Fatalf("nil world must be inert")
	}
	if w.NewBall(mgl64.Vec3{}, 1, 1, 0, 0) != nil || w.AddZone(0, 0, 1, 1, zone.TagDeath, mgl64.Vec3{}) != 0 {
		t.Fatalf("nil world must not create bodies")
	}

	var b *Body
	b.AddForce(mgl64.Vec3{1, 0, 0}, motion.Force)
	b.Freeze()
	b.DisableCollision()
	if b.Velocity() != (mgl64.Vec3{}) || b.Radius() != 0 {
		t.Fatalf("nil body must be inert")
	}
}

func TestSetPositionTeleportsAndStops(t *testing.T) {
	w := NewWorld(0)
	w.AddBox(9, -2, 2, 1, 0.5)
	b := w.NewBall(mgl64.Vec3{}, 0.5, 1, 0.5, 0)
	b.SetVelocity(mgl64.Vec3{3, 1, 0})

	b.SetPosition(mgl64.Vec3{10, 0, 0})
	if p := b.Position(); p[0] != 10 || p[1] != 0 {
		t.Fatalf("position = %v, want (10,0)", p)
	}
	if b.Velocity() != (mgl64.Vec3{}) {
		t.Fatalf("teleport must clear velocity, got %v", b.Velocity())
	}
	if !w.Raycast(b.Position(), down, 1.1, LayerGround) {
		t.Fatalf("ground under the new position not found")
	}
	w.Step(0.02)
	if p := b.Position(); math.Abs(p[0]-10) > 1e-9 {
		t.Fatalf("body drifted after teleport: %v", p)
	}
}
