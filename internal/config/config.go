package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 500
	WindowHeight = 620

	// Dial geometry, in window pixels
	DialRadius     = 250
	HoleRadius     = 200
	HoleSize       = 28
	FingerStopLen  = 250
	FingerStopSize = 24

	// Return animation
	ReturnSpeed = 100 // degrees per second
	SettleMs    = 100

	// Audio
	SampleRate  = 44100
	ClickMs     = 6
	Volume      = 0.0
	LevelWindow = 2048
)

// Config is the runtime configuration. Keys missing from a YAML file keep
// their defaults.
type Config struct {
	Window Window `yaml:"window"`
	Dial   Dial   `yaml:"dial"`
	Audio  Audio  `yaml:"audio"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Dial struct {
	Radius      float64 `yaml:"radius"`
	HoleRadius  float64 `yaml:"hole_radius"`
	ReturnSpeed float64 `yaml:"return_speed"`
	SettleMs    int     `yaml:"settle_ms"`
}

type Audio struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	ClickMs    int     `yaml:"click_ms"`
	Volume     float64 `yaml:"volume"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "Rotary Dial - drag a hole to the finger stop, C: copy, M: mute, Esc/Q: quit",
		},
		Dial: Dial{
			Radius:      DialRadius,
			HoleRadius:  HoleRadius,
			ReturnSpeed: ReturnSpeed,
			SettleMs:    SettleMs,
		},
		Audio: Audio{
			Enabled:    true,
			SampleRate: SampleRate,
			ClickMs:    ClickMs,
			Volume:     Volume,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg and validates the result. Unknown keys
// are an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}
	return cfg.Validate()
}

// Validate rejects values the dial cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Dial.Radius <= 0 {
		errs = append(errs, fmt.Errorf("dial radius %v must be positive", c.Dial.Radius))
	}
	if c.Dial.HoleRadius <= 0 || c.Dial.HoleRadius > c.Dial.Radius {
		errs = append(errs, fmt.Errorf("hole radius %v must be in (0, %v]", c.Dial.HoleRadius, c.Dial.Radius))
	}
	if c.Dial.ReturnSpeed <= 0 {
		errs = append(errs, fmt.Errorf("return speed %v must be positive", c.Dial.ReturnSpeed))
	}
	if c.Dial.SettleMs < 0 {
		errs = append(errs, fmt.Errorf("settle %dms must not be negative", c.Dial.SettleMs))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample rate %d must be positive", c.Audio.SampleRate))
	}
	if c.Audio.ClickMs <= 0 {
		errs = append(errs, fmt.Errorf("click length %dms must be positive", c.Audio.ClickMs))
	}
	return errors.Join(errs...)
}
