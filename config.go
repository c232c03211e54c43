// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package guidemo

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("guidemo: invalid config")

// Defaults used by DefaultConfig.
const (
	DefaultTitle  = "wgpu with gg example"
	DefaultWidth  = 600
	DefaultHeight = 600
	DefaultSeed   = 2
)

// BackendNames lists the accepted values of Config.Backend.
var BackendNames = []string{"auto", "vulkan", "metal", "dx12", "gles", "software"}

// Config holds the application settings. The zero value is not valid;
// start from DefaultConfig or NewConfig.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Seed       uint64     `toml:"seed"`
	Background [4]float64 `toml:"background"`
	Backend    string     `toml:"backend"`
	LogLevel   string     `toml:"log_level"`
}

// DefaultConfig returns the built-in settings: a 600x600 window, seed 2
// and a dark blue background.
func DefaultConfig() Config {
	return Config{
		Title:      DefaultTitle,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Seed:       DefaultSeed,
		Background: [4]float64{0.1, 0.2, 0.3, 1.0},
		Backend:    "auto",
		LogLevel:   "info",
	}
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// LoadConfig reads a TOML file over DefaultConfig and then applies opts.
// Keys not present in the file keep their defaults; unknown keys are an error.
//
// Example file:
//
//	title = "demo"
//	width = 800
//	height = 600
//	seed = 42
//	background = [0.0, 0.0, 0.0, 1.0]
func LoadConfig(path string, opts ...Option) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("guidemo: open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return Config{}, fmt.Errorf("guidemo: decode %s: %w", path, err)
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	for i, v := range c.Background {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: background channel %d = %g, want [0, 1]", ErrInvalidConfig, i, v)
		}
	}
	if c.Background[3] != 1 {
		return fmt.Errorf("%w: background alpha = %g, want 1", ErrInvalidConfig, c.Background[3])
	}
	if !slices.Contains(BackendNames, c.Backend) {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
}
