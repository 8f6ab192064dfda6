// Package config loads engine and mouse-look settings from a YAML file with
// environment variable overrides, and watches the file for hot reload.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	MouseLook MouseLookConfig `yaml:"mouse_look"`
	Window    WindowConfig    `yaml:"window"`
	Engine    EngineConfig    `yaml:"engine"`
	Log       LogConfig       `yaml:"log"`
}

// MouseLookConfig mirrors the component options: enabled and sensitivity.
type MouseLookConfig struct {
	Enabled     bool    `yaml:"enabled"     env:"OXY_LOOK_ENABLED"`
	Sensitivity float64 `yaml:"sensitivity" env:"OXY_LOOK_SENSITIVITY"`
}

// WindowConfig controls the window created by the demo host.
type WindowConfig struct {
	Title          string `yaml:"title"            env:"OXY_WINDOW_TITLE"`
	Width          int    `yaml:"width"            env:"OXY_WINDOW_WIDTH"`
	Height         int    `yaml:"height"           env:"OXY_WINDOW_HEIGHT"`
	RawMouseMotion bool   `yaml:"raw_mouse_motion" env:"OXY_WINDOW_RAW_MOUSE_MOTION"`
}

// EngineConfig controls the frame loop.
type EngineConfig struct {
	// FrameLimit caps frames per second; 0 is uncapped.
	FrameLimit float64 `yaml:"frame_limit" env:"OXY_FRAME_LIMIT"`
	Profiling  bool    `yaml:"profiling"   env:"OXY_PROFILING"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `yaml:"level" env:"OXY_LOG_LEVEL"`
}

// Default returns the configuration used when no file is given.
// Parse decodes on top of it, so keys missing from a file keep these values.
func Default() Config {
	return Config{
		MouseLook: MouseLookConfig{
			Enabled:     true,
			Sensitivity: 1,
		},
		Window: WindowConfig{
			Title:          "Oxy Look",
			Width:          1280,
			Height:         720,
			RawMouseMotion: true,
		},
		Engine: EngineConfig{
			FrameLimit: 144,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks value ranges. A sensitivity of 0 is valid and freezes rotation.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig, or nil
func (c Config) Validate() error {
	s := c.MouseLook.Sensitivity
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
		return fmt.Errorf("%w: mouse_look.sensitivity must be a finite value >= 0, got %v", ErrInvalidConfig, s)
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("%w: window size must not be negative, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Engine.FrameLimit < 0 {
		return fmt.Errorf("%w: engine.frame_limit must not be negative, got %v", ErrInvalidConfig, c.Engine.FrameLimit)
	}
	return nil
}

// Parse decodes YAML over the defaults, applies environment overrides, and validates.
//
// Parameters:
//   - data: YAML document (may be empty)
//
// Returns:
//   - Config: the resulting configuration
//   - error: decode, environment or validation failure
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses a YAML file. An empty path yields the defaults with environment overrides.
//
// Parameters:
//   - path: the file to read, or ""
//
// Returns:
//   - Config: the resulting configuration
//   - error: read or parse failure
func Load(path string) (Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
