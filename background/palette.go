// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package background

import (
	"math/rand/v2"

	"github.com/gogpu/gputypes"
)

// Palette is the background clear color plus the seeded generator that
// randomizes it. Two palettes with the same seed and initial color produce
// the same color sequence.
type Palette struct {
	rng   *rand.Rand
	color gputypes.Color
}

// NewPalette creates a palette starting at initial.
func NewPalette(seed uint64, initial gputypes.Color) *Palette {
	return &Palette{
		rng:   rand.New(rand.NewPCG(seed, seed)),
		color: initial,
	}
}

// Randomize replaces R, G and B with fresh draws in [0, 1) and makes the
// color opaque.
func (p *Palette) Randomize() gputypes.Color {
	p.color.R = p.rng.Float64()
	p.color.G = p.rng.Float64()
	p.color.B = p.rng.Float64()
	p.color.A = 1
	return p.color
}

// Color returns the current color.
func (p *Palette) Color() gputypes.Color {
	return p.color
}
