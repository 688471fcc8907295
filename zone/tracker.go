package zone

import "github.com/go-gl/mathgl/mgl64"

// Tag classifies a trigger volume.
type Tag string

const (
	TagWater Tag = "water"
	TagWind  Tag = "wind"
	TagDeath Tag = "death"
)

// VolumeID identifies one volume instance. Zero means none.
type VolumeID uint64

// Membership is the zone state read by the motion resolver.
type Membership struct {
	Grounded      bool
	InWater       bool
	InWind        bool
	WindDirection mgl64.Vec3
	InDeathZone   bool
}

// Drag is the damping knob of the tracked body.
type Drag interface {
	Drag() float64
	SetDrag(d float64)
}

// Prober casts a ray against the layers in layerMask.
type Prober interface {
	Raycast(origin, direction mgl64.Vec3, maxDistance float64, layerMask uint) bool
}

type Config struct {
	WaterDragFloor      float64 `yaml:"water_drag_floor"`
	WindAffectsVertical bool    `yaml:"wind_affects_vertical"`
}

func DefaultConfig() Config {
	return Config{WaterDragFloor: 2}
}

const windNormalizeEpsilon = 0.001

var down = mgl64.Vec3{0, -1, 0}

// Tracker keeps zone membership for one actor.
type Tracker struct {
	Membership

	cfg      Config
	drag     Drag
	baseDrag float64
	water    VolumeID
	wind     VolumeID
	onDeath  func()
}

// NewTracker records the body's drag as the baseline restored on water exit.
func NewTracker(cfg Config, drag Drag, onDeath func()) *Tracker {
	t := &Tracker{cfg: cfg, drag: drag, onDeath: onDeath}
	if drag != nil {
		t.baseDrag = drag.Drag()
	}
	return t
}

func (t *Tracker) SetConfig(cfg Config) {
	if t == nil {
		return
	}
	t.cfg = cfg
}

func (t *Tracker) BaseDrag() float64 {
	if t == nil {
		return 0
	}
	return t.baseDrag
}

// OnEnter applies an enter event. forward is the volume's facing at entry.
func (t *Tracker) OnEnter(id VolumeID, tag Tag, forward mgl64.Vec3) {
	if t == nil {
		return
	}
	switch tag {
	case TagWater:
		t.InWater = true
		t.water = id
		if t.drag != nil {
			d := t.drag.Drag()
			if t.cfg.WaterDragFloor > d {
				d = t.cfg.WaterDragFloor
			}
			t.drag.SetDrag(d)
		}
	case TagWind:
		dir := forward
		if !t.cfg.WindAffectsVertical {
			dir[1] = 0
		}
		if dir.LenSqr() > windNormalizeEpsilon {
			dir = dir.Normalize()
		}
		t.InWind = true
		t.wind = id
		t.WindDirection = dir
	case TagDeath:
		t.InDeathZone = true
		if t.onDeath != nil {
			t.onDeath()
		}
	}
}

// OnExit clears membership only when id is the volume currently tracked for tag.
func (t *Tracker) OnExit(id VolumeID, tag Tag) {
	if t == nil {
		return
	}
	switch tag {
	case TagWater:
		if !t.InWater || id != t.water {
			return
		}
		t.InWater = false
		t.water = 0
		if t.drag != nil {
			t.drag.SetDrag(t.baseDrag)
		}
	case TagWind:
		if !t.InWind || id != t.wind {
			return
		}
		t.InWind = false
		t.wind = 0
		t.WindDirection = mgl64.Vec3{}
	}
}

// ProbeGround casts straight down from origin and stores the result.
func (t *Tracker) ProbeGround(p Prober, origin mgl64.Vec3, maxDistance float64, layerMask uint) bool {
	if t == nil {
		return false
	}
	t.Grounded = p != nil && p.Raycast(origin, down, maxDistance, layerMask)
	return t.Grounded
}

// Clear drops water and wind membership without touching drag.
func (t *Tracker) Clear() {
	if t == nil {
		return
	}
	t.InWater = false
	t.InWind = false
	t.water = 0
	t.wind = 0
	t.WindDirection = mgl64.Vec3{}
}

// ProbeDistance is the ray length for a body of the given half height.
func ProbeDistance(halfHeight, margin float64) float64 {
	return halfHeight + margin
}
