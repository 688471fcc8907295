package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/rollball/ability"
	"github.com/milk9111/rollball/motion"
	"github.com/milk9111/rollball/zone"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeSpec[T](filename, data)
}

func DecodeSpec[T any](filename string, data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

type GroundSpec struct {
	Margin float64  `yaml:"margin"`
	Layers []string `yaml:"layers"`
}

type InflationSpec struct {
	Start       float64 `yaml:"start"`
	Max         float64 `yaml:"max"`
	Script      string  `yaml:"script"`
	PumpRate    float64 `yaml:"pump_rate"`
	ReleaseRate float64 `yaml:"release_rate"`
	LeakRate    float64 `yaml:"leak_rate"`
}

// BallSpec is every tuning value of the player ball.
type BallSpec struct {
	Name        string              `yaml:"name"`
	Radius      float64             `yaml:"radius"`
	Mass        float64             `yaml:"mass"`
	Friction    float64             `yaml:"friction"`
	Drag        float64             `yaml:"drag"`
	JumpForce   float64             `yaml:"jump_force"`
	Color       *YAMLColor          `yaml:"color"`
	Ground      GroundSpec          `yaml:"ground"`
	Movement    motion.Tuning       `yaml:"movement"`
	Thresholds  ability.Thresholds  `yaml:"thresholds"`
	Multipliers ability.Multipliers `yaml:"multipliers"`
	Zones       zone.Config         `yaml:"zones"`
	Inflation   InflationSpec       `yaml:"inflation"`
	DeathEffect string              `yaml:"death_effect"`
}

// DefaultBallSpec holds the values used for keys a file leaves out.
func DefaultBallSpec() BallSpec {
	return BallSpec{
		Name:        "ball",
		Radius:      0.5,
		Mass:        1,
		Friction:    0.7,
		JumpForce:   5,
		Ground:      GroundSpec{Margin: 0.05, Layers: []string{"ground"}},
		Movement:    motion.DefaultTuning(),
		Thresholds:  ability.DefaultThresholds(),
		Multipliers: ability.DefaultMultipliers(),
		Zones:       zone.DefaultConfig(),
		Inflation:   InflationSpec{Start: 0.8, Max: 1.5, Script: "inflation.tengo", PumpRate: 0.5, ReleaseRate: 0.5},
	}
}

func (s BallSpec) Validate() error {
	if err := s.Thresholds.Validate(); err != nil {
		return fmt.Errorf("prefabs: ball %q: %w", s.Name, err)
	}
	switch {
	case s.Radius <= 0:
		return fmt.Errorf("%w: ball radius %v", ErrInvalidSpec, s.Radius)
	case s.Mass <= 0:
		return fmt.Errorf("%w: ball mass %v", ErrInvalidSpec, s.Mass)
	case s.Drag < 0:
		return fmt.Errorf("%w: ball drag %v", ErrInvalidSpec, s.Drag)
	case s.Ground.Margin < 0:
		return fmt.Errorf("%w: ground margin %v", ErrInvalidSpec, s.Ground.Margin)
	case s.Inflation.Max <= 0:
		return fmt.Errorf("%w: inflation max %v", ErrInvalidSpec, s.Inflation.Max)
	case s.Inflation.Start < 0 || s.Inflation.Start > s.Inflation.Max:
		return fmt.Errorf("%w: inflation start %v outside [0, %v]", ErrInvalidSpec, s.Inflation.Start, s.Inflation.Max)
	}
	return nil
}

// LoadBallSpec decodes name over DefaultBallSpec and validates the result.
func LoadBallSpec(name string) (*BallSpec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return ParseBallSpec(name, data)
}

func ParseBallSpec(name string, data []byte) (*BallSpec, error) {
	spec := DefaultBallSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// EffectSpec describes a one-shot particle burst.
type EffectSpec struct {
	Name      string     `yaml:"name"`
	Particles int        `yaml:"particles"`
	Speed     float64    `yaml:"speed"`
	Gravity   float64    `yaml:"gravity"`
	Size      float64    `yaml:"size"`
	Lifetime  float64    `yaml:"lifetime"`
	Color     *YAMLColor `yaml:"color"`
}

func LoadEffectSpec(name string) (*EffectSpec, error) {
	spec, err := LoadSpec[EffectSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.Particles < 0 {
		return nil, fmt.Errorf("%w: effect %q particles %d", ErrInvalidSpec, spec.Name, spec.Particles)
	}
	return &spec, nil
}

// YAMLColor accepts #rrggbb, #rrggbbaa or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

// ColorOr returns the decoded colour, or fallback when unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
