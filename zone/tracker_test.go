package zone

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeDrag struct{ d float64 }

func (f *fakeDrag) Drag() float64     { return f.d }
func (f *fakeDrag) SetDrag(d float64) { f.d = d }

type fakeProber struct {
	hit      bool
	origin   mgl64.Vec3
	dir      mgl64.Vec3
	distance float64
	mask     uint
}

func (f *fakeProber) Raycast(origin, direction mgl64.Vec3, maxDistance float64, layerMask uint) bool {
	f.origin = origin
	f.dir = direction
	f.distance = maxDistance
	f.mask = layerMask
	return f.hit
}

func TestWaterDragRestoresBaseline(t *testing.T) {
	drag := &fakeDrag{d: 0.5}
	tr := NewTracker(DefaultConfig(), drag, nil)

	tr.OnEnter(1, TagWater, mgl64.Vec3{})
	if !tr.InWater || drag.d != 2 {
		t.Fatalf("expected water with drag 2, got in=%v drag=%v", tr.InWater, drag.d)
	}

	// nested volume replaces the tracked one
	tr.OnEnter(2, TagWater, mgl64.Vec3{})
	tr.OnExit(1, TagWater)
	if !tr.InWater {
		t.Fatalf("stale exit from replaced volume must not clear membership")
	}
	tr.OnExit(2, TagWater)
	if tr.InWater || drag.d != 0.5 {
		t.Fatalf("expected restored drag 0.5, got in=%v drag=%v", tr.InWater, drag.d)
	}

	for i := 0; i < 3; i++ {
		id := VolumeID(10 + i)
		tr.OnEnter(id, TagWater, mgl64.Vec3{})
		tr.OnExit(id, TagWater)
	}
	if drag.d != 0.5 {
		t.Fatalf("drag drifted after repeated cycles: %v", drag.d)
	}
}

func TestWaterNeverLowersHigherDrag(t *testing.T) {
	drag := &fakeDrag{d: 4}
	tr := NewTracker(DefaultConfig(), drag, nil)
	tr.OnEnter(1, TagWater, mgl64.Vec3{})
	if drag.d != 4 {
		t.Fatalf("expected drag to stay 4, got %v", drag.d)
	}
}

func TestWindDirection(t *testing.T) {
	cases := []struct {
		name     string
		vertical bool
		forward  mgl64.Vec3
		want     mgl64.Vec3
	}{
		{"flattened", false, mgl64.Vec3{3, 4, 0}, mgl64.Vec3{1, 0, 0}},
		{"vertical_kept", true, mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 1, 0}},
		{"straight_up_flattened_to_zero", false, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.WindAffectsVertical = c.vertical
			tr := NewTracker(cfg, nil, nil)
			tr.OnEnter(7, TagWind, c.forward)
			if !tr.InWind {
				t.Fatalf("expected in wind")
			}
			if !tr.WindDirection.ApproxEqual(c.want) {
				t.Fatalf("direction = %v, want %v", tr.WindDirection, c.want)
			}
		})
	}
}

func TestWindExitByIdentity(t *testing.T) {
	tr := NewTracker(DefaultConfig(), nil, nil)
	tr.OnEnter(1, TagWind, mgl64.Vec3{1, 0, 0})
	tr.OnEnter(2, TagWind, mgl64.Vec3{0, 0, 1})
	tr.OnExit(1, TagWind)
	if !tr.InWind || !tr.WindDirection.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("stale wind exit changed state: in=%v dir=%v", tr.InWind, tr.WindDirection)
	}
	tr.OnExit(2, TagWind)
	if tr.InWind || tr.WindDirection != (mgl64.Vec3{}) {
		t.Fatalf("expected wind cleared")
	}
	// exit with a water tag for the wind id is ignored
	tr.OnEnter(3, TagWind, mgl64.Vec3{1, 0, 0})
	tr.OnExit(3, TagWater)
	if !tr.InWind {
		t.Fatalf("exit tag mismatch must be ignored")
	}
}

func TestDeathZoneCallsHandler(t *testing.T) {
	calls := 0
	tr := NewTracker(DefaultConfig(), nil, func() { calls++ })
	tr.OnEnter(9, TagDeath, mgl64.Vec3{})
	if !tr.InDeathZone || calls != 1 {
		t.Fatalf("expected death handler once, got %d", calls)
	}
}

func TestProbeGround(t *testing.T) {
	tr := NewTracker(DefaultConfig(), nil, nil)
	p := &fakeProber{hit: true}
	origin := mgl64.Vec3{1, 2, 3}
	if !tr.ProbeGround(p, origin, ProbeDistance(0.5, 0.05), 1) {
		t.Fatalf("expected grounded")
	}
	if p.dir != (mgl64.Vec3{0, -1, 0}) || p.origin != origin || math.Abs(p.distance-0.55) > 1e-9 || p.mask != 1 {
		t.Fatalf("unexpected ray: %+v", p)
	}
	p.hit = false
	if tr.ProbeGround(p, origin, 0.55, 1) || tr.Grounded {
		t.Fatalf("expected airborne")
	}
	tr.Grounded = true
	if tr.ProbeGround(nil, origin, 0.55, 1) {
		t.Fatalf("nil prober must report airborne")
	}
}
