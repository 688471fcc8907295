package motion

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollball/ability"
	"github.com/milk9111/rollball/zone"
)

// Tuning holds the force magnitudes used by the resolver.
type Tuning struct {
	Speed                float64 `yaml:"speed"`
	FlyUpForce           float64 `yaml:"fly_up_force"`
	WaterBuoyancy        float64 `yaml:"water_buoyancy"`
	WaterSink            float64 `yaml:"water_sink"`
	WaterSpeedMultiplier float64 `yaml:"water_speed_multiplier"`
	WaterDownDamping     float64 `yaml:"water_down_damping"`
	WindForce            float64 `yaml:"wind_force"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Speed:                3,
		FlyUpForce:           5,
		WaterBuoyancy:        9,
		WaterSink:            4,
		WaterSpeedMultiplier: 0.6,
		WaterDownDamping:     0.3,
		WindForce:            10,
	}
}

// Tier is the branch that finished a resolve step.
type Tier int

const (
	TierNone Tier = iota
	TierFlight
	TierJump
	TierWater
	TierGround
)

func (t Tier) String() string {
	switch t {
	case TierFlight:
		return "flight"
	case TierJump:
		return "jump"
	case TierWater:
		return "water"
	case TierGround:
		return "ground"
	default:
		return "none"
	}
}

var up = mgl64.Vec3{0, 1, 0}

// Frame is everything one resolve step reads. Zones and Jump are mutated:
// a launch clears the request and drops Grounded.
type Frame struct {
	Intent mgl64.Vec3
	State  ability.State
	Caps   ability.Capabilities
	Zones  *zone.Membership
	Jump   *JumpRequest
}

type Resolver struct {
	Tuning Tuning
}

func NewResolver(t Tuning) *Resolver {
	return &Resolver{Tuning: t}
}

// Resolve applies this step's forces to body. Wind is always layered first;
// after that the first matching tier wins.
func (r *Resolver) Resolve(body Body, f Frame) Tier {
	if r == nil || body == nil {
		return TierNone
	}
	zones := f.Zones
	if zones == nil {
		zones = &zone.Membership{}
	}

	if zones.InWind {
		body.AddForce(zones.WindDirection.Mul(r.Tuning.WindForce), Force)
	}

	if f.Caps.IsFlying {
		if f.Caps.CanMove {
			body.AddForce(f.Intent.Mul(r.Tuning.Speed), Force)
		}
		body.AddForce(up.Mul(r.Tuning.FlyUpForce), Acceleration)
		return TierFlight
	}

	if f.Jump.Pending() && zones.Grounded && f.Caps.CanJump && f.Caps.JumpForce > 0 {
		force := f.Caps.JumpForce
		impulse := up.Mul(force).Add(f.Jump.Direction().Mul(force))
		body.AddForce(impulse, Impulse)
		f.Jump.Cancel()
		zones.Grounded = false
		return TierJump
	}

	if zones.InWater {
		r.resolveWater(body, f)
		return TierWater
	}

	if f.Caps.CanMove {
		body.AddForce(f.Intent.Mul(r.Tuning.Speed), Force)
	} else {
		v := body.Velocity()
		body.SetVelocity(mgl64.Vec3{0, v[1], 0})
	}
	return TierGround
}

func (r *Resolver) resolveWater(body Body, f Frame) {
	if f.Caps.CanMove {
		body.AddForce(f.Intent.Mul(r.Tuning.Speed*r.Tuning.WaterSpeedMultiplier), Force)
	}
	if Sinkable(f.State) {
		body.AddForce(up.Mul(r.Tuning.WaterSink), Acceleration)
		return
	}
	body.AddForce(up.Mul(r.Tuning.WaterBuoyancy), Acceleration)
	if v := body.Velocity(); v[1] < 0 {
		v[1] *= r.Tuning.WaterDownDamping
		body.SetVelocity(v)
	}
}

// Sinkable reports whether a ball in state s drifts down in water.
func Sinkable(s ability.State) bool {
	return s == ability.HalfPower || s == ability.NoJump
}
