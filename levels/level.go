package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollball/zone"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is in world units with Y up. Rectangles are anchored at their
// lower-left corner.
type Level struct {
	Name      string     `yaml:"name"`
	Spawn     Point      `yaml:"spawn"`
	KillY     float64    `yaml:"kill_y"`
	Camera    Camera     `yaml:"camera"`
	Platforms []Rect     `yaml:"platforms"`
	Zones     []Zone     `yaml:"zones"`
	Buttons   []Rect     `yaml:"buttons"`
	Texts     []Tutorial `yaml:"texts"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

type Camera struct {
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
	Zoom  float64 `yaml:"zoom"`
}

type Zone struct {
	Tag     zone.Tag  `yaml:"tag"`
	X       float64   `yaml:"x"`
	Y       float64   `yaml:"y"`
	W       float64   `yaml:"w"`
	H       float64   `yaml:"h"`
	Forward []float64 `yaml:"forward"`
}

func (z Zone) Rect() Rect {
	return Rect{X: z.X, Y: z.Y, W: z.W, H: z.H}
}

// ForwardVec pads or truncates Forward to three components.
func (z Zone) ForwardVec() mgl64.Vec3 {
	var v mgl64.Vec3
	for i := 0; i < len(z.Forward) && i < 3; i++ {
		v[i] = z.Forward[i]
	}
	return v
}

type Tutorial struct {
	Text        string  `yaml:"text"`
	Trigger     Rect    `yaml:"trigger"`
	At          Point   `yaml:"at"`
	TargetAlpha float64 `yaml:"target_alpha"`
}

// Load reads name from the disk levels directory when present, otherwise from
// the embedded set. The .yaml extension is optional.
func Load(name string) (*Level, error) {
	file := name
	if filepath.Ext(file) == "" {
		file += ".yaml"
	}
	data, err := os.ReadFile(filepath.Join("levels", file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(name, data)
}

func Parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	if lvl.Camera.Zoom <= 0 {
		lvl.Camera.Zoom = 1
	}
	for i := range lvl.Texts {
		if lvl.Texts[i].TargetAlpha <= 0 {
			lvl.Texts[i].TargetAlpha = 1
		}
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.KillY >= l.Spawn.Y {
		return fmt.Errorf("%w: %s: kill_y %v is not below spawn %v", ErrInvalidLevel, l.Name, l.KillY, l.Spawn.Y)
	}
	for i, p := range l.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return fmt.Errorf("%w: %s: platform %d has size %vx%v", ErrInvalidLevel, l.Name, i, p.W, p.H)
		}
	}
	for i, z := range l.Zones {
		switch z.Tag {
		case zone.TagWater, zone.TagWind, zone.TagDeath:
		default:
			return fmt.Errorf("%w: %s: zone %d has unknown tag %q", ErrInvalidLevel, l.Name, i, z.Tag)
		}
		if z.W <= 0 || z.H <= 0 {
			return fmt.Errorf("%w: %s: zone %d has size %vx%v", ErrInvalidLevel, l.Name, i, z.W, z.H)
		}
	}
	for i, b := range l.Buttons {
		if b.W <= 0 || b.H <= 0 {
			return fmt.Errorf("%w: %s: button %d has size %vx%v", ErrInvalidLevel, l.Name, i, b.W, b.H)
		}
	}
	return nil
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return out
}
