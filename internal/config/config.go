package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStiffness     = 0.05
	DefaultDamping       = 0.6
	DefaultMargin        = 50.0
	DefaultRestP1        = 0.33
	DefaultRestP2        = 0.66
	DefaultOffsetX       = 120.0
	DefaultSamples       = 100
	DefaultTangentStride = 10
	DefaultTangentLength = 50.0
	DefaultFPS           = 60
	DefaultTerminalScale = 5.0
	DefaultTheme         = "neon"
	DefaultWidth         = 800
	DefaultHeight        = 600
)

type Config struct {
	Spring   SpringConfig   `yaml:"spring"`
	Layout   Layout         `yaml:"layout"`
	Render   RenderConfig   `yaml:"render"`
	Viewport ViewportConfig `yaml:"viewport"`
}

type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

// Layout places the anchors and the resting spring targets relative to the
// viewport, and offsets the spring targets from the pointer.
type Layout struct {
	Margin   float64 `yaml:"margin"`
	RestP1   float64 `yaml:"rest_p1"`
	RestP2   float64 `yaml:"rest_p2"`
	OffsetP1 Offset  `yaml:"offset_p1"`
	OffsetP2 Offset  `yaml:"offset_p2"`
}

type Offset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RenderConfig struct {
	Samples       int     `yaml:"samples"`
	TangentStride int     `yaml:"tangent_stride"`
	TangentLength float64 `yaml:"tangent_length"`
	FPS           int     `yaml:"fps"`
	Grid          bool    `yaml:"grid"`
	Tangents      bool    `yaml:"tangents"`
	// TerminalScale is the number of scene units per braille sub-pixel.
	TerminalScale float64 `yaml:"terminal_scale"`
	Theme         string  `yaml:"theme"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultLayout() Layout {
	return Layout{
		Margin:   DefaultMargin,
		RestP1:   DefaultRestP1,
		RestP2:   DefaultRestP2,
		OffsetP1: Offset{X: -DefaultOffsetX},
		OffsetP2: Offset{X: DefaultOffsetX},
	}
}

func DefaultConfig() *Config {
	return &Config{
		Spring: SpringConfig{
			Stiffness: DefaultStiffness,
			Damping:   DefaultDamping,
		},
		Layout: DefaultLayout(),
		Render: RenderConfig{
			Samples:       DefaultSamples,
			TangentStride: DefaultTangentStride,
			TangentLength: DefaultTangentLength,
			FPS:           DefaultFPS,
			Grid:          true,
			Tangents:      true,
			TerminalScale: DefaultTerminalScale,
			Theme:         DefaultTheme,
		},
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the render and viewport settings. Spring tuning is left
// alone: out-of-range stiffness or damping is allowed to oscillate or diverge.
func (c *Config) Validate() error {
	if c.Render.Samples <= 0 {
		return fmt.Errorf("render.samples must be positive, got %d", c.Render.Samples)
	}
	if c.Render.TangentStride <= 0 {
		return fmt.Errorf("render.tangent_stride must be positive, got %d", c.Render.TangentStride)
	}
	if c.Render.FPS <= 0 {
		return fmt.Errorf("render.fps must be positive, got %d", c.Render.FPS)
	}
	if c.Render.TerminalScale <= 0 {
		return fmt.Errorf("render.terminal_scale must be positive, got %g", c.Render.TerminalScale)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

// Clone returns a copy of c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
