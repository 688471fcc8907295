package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed settings.toml
var defaultSettings string

var ErrInvalidSettings = errors.New("config: invalid settings")

type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type Loop struct {
	TicksPerSecond   int     `toml:"ticks_per_second"`
	FixedStep        float64 `toml:"fixed_step"`
	MaxStepsPerFrame int     `toml:"max_steps_per_frame"`
}

type Game struct {
	Level     string `toml:"level"`
	Debug     bool   `toml:"debug"`
	HotReload bool   `toml:"hot_reload"`
	LogLevel  string `toml:"log_level"`
}

type Settings struct {
	Window Window `toml:"window"`
	Loop   Loop   `toml:"loop"`
	Game   Game   `toml:"game"`

	// Undecoded lists keys present in the file that no field consumed.
	Undecoded []string `toml:"-"`
}

// Default returns the embedded settings.
func Default() (Settings, error) {
	var s Settings
	if _, err := toml.Decode(defaultSettings, &s); err != nil {
		return Settings{}, fmt.Errorf("config: decode embedded settings: %w", err)
	}
	return s, nil
}

// Load overlays the file at path on the embedded defaults. A missing file is
// not an error.
func Load(path string) (Settings, error) {
	s, err := Default()
	if err != nil {
		return Settings{}, err
	}
	if path == "" {
		return s, s.Validate()
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		return s, s.Validate()
	}

	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Settings{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		s.Undecoded = append(s.Undecoded, key.String())
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalidSettings, s.Window.Width, s.Window.Height)
	case s.Loop.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticks_per_second %d", ErrInvalidSettings, s.Loop.TicksPerSecond)
	case s.Loop.FixedStep <= 0:
		return fmt.Errorf("%w: fixed_step %v", ErrInvalidSettings, s.Loop.FixedStep)
	case s.Loop.MaxStepsPerFrame <= 0:
		return fmt.Errorf("%w: max_steps_per_frame %d", ErrInvalidSettings, s.Loop.MaxStepsPerFrame)
	case s.Game.Level == "":
		return fmt.Errorf("%w: empty level", ErrInvalidSettings)
	}
	return nil
}

// FrameDelta is the duration of one ebiten update in seconds.
func (s Settings) FrameDelta() float64 {
	if s.Loop.TicksPerSecond <= 0 {
		return 0
	}
	return 1 / float64(s.Loop.TicksPerSecond)
}
