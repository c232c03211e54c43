// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package guidemo

// Option configures a Config.
//
// Example:
//
//	cfg := guidemo.NewConfig(
//	    guidemo.WithSize(800, 600),
//	    guidemo.WithSeed(42),
//	)
type Option func(*Config)

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithSize sets the initial window size in pixels.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithSeed sets the seed of the background color generator.
// The same seed always yields the same color sequence.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithBackground sets the initial background color. Channels are in [0, 1].
func WithBackground(r, g, b, a float64) Option {
	return func(c *Config) {
		c.Background = [4]float64{r, g, b, a}
	}
}

// WithBackend selects the GPU backend by name ("auto", "vulkan", "metal",
// "dx12", "gles" or "software").
func WithBackend(name string) Option {
	return func(c *Config) {
		c.Backend = name
	}
}

// WithLogLevel sets the log level name ("debug", "info", "warn", "error").
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}
