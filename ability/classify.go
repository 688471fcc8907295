package ability

import (
	"errors"
	"fmt"
	"math"
)

// State is one of the six inflation bands. Higher values are more inflated.
type State int

const (
	NoMove State = iota
	NoJump
	HalfPower
	Normal
	Boosted
	Flying
)

var stateNames = [...]string{
	NoMove:    "no_move",
	NoJump:    "no_jump",
	HalfPower: "half_power",
	Normal:    "normal",
	Boosted:   "boosted",
	Flying:    "flying",
}

func (s State) String() string {
	if s < NoMove || s > Flying {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

var ErrThresholdOrder = errors.New("ability: thresholds must be strictly descending")

// Thresholds are the lower bounds of each band above NoMove.
type Thresholds struct {
	Fly       float64 `yaml:"fly"`
	Boost     float64 `yaml:"boost"`
	Normal    float64 `yaml:"normal"`
	HalfPower float64 `yaml:"half_power"`
	NoJump    float64 `yaml:"no_jump"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{Fly: 1.2, Boost: 0.9, Normal: 0.7, HalfPower: 0.5, NoJump: 0.3}
}

// Validate reports a wrapped ErrThresholdOrder for the first pair that is not
// strictly descending.
func (t Thresholds) Validate() error {
	chain := []struct {
		name  string
		value float64
	}{
		{"fly", t.Fly},
		{"boost", t.Boost},
		{"normal", t.Normal},
		{"half_power", t.HalfPower},
		{"no_jump", t.NoJump},
	}
	for i, c := range chain {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s is %v", ErrThresholdOrder, c.name, c.value)
		}
		if i == 0 {
			continue
		}
		prev := chain[i-1]
		if c.value >= prev.value {
			return fmt.Errorf("%w: %s %.3f >= %s %.3f", ErrThresholdOrder, c.name, c.value, prev.name, prev.value)
		}
	}
	return nil
}

// Classify maps an inflation value to its band. A value equal to a threshold
// falls into the lower band.
func (t Thresholds) Classify(v float64) State {
	switch {
	case v > t.Fly:
		return Flying
	case v > t.Boost:
		return Boosted
	case v > t.Normal:
		return Normal
	case v > t.HalfPower:
		return HalfPower
	case v > t.NoJump:
		return NoJump
	default:
		return NoMove
	}
}
