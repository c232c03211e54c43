// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package background

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPaletteDeterministic(t *testing.T) {
	a := NewPalette(DefaultSeed, DefaultColor)
	b := NewPalette(DefaultSeed, DefaultColor)

	for i := range 16 {
		ca, cb := a.Randomize(), b.Randomize()
		if ca != cb {
			t.Fatalf("draw %d: %v != %v", i, ca, cb)
		}
	}
}

func TestPaletteDefaultSeedSequence(t *testing.T) {
	p := NewPalette(DefaultSeed, DefaultColor)
	want := [][3]float64{
		{0.07829106836655642, 0.12028125220465102, 0.5887399866260645},
		{0.09394155348052158, 0.8079950851417738, 0.5930610781251047},
		{0.1187885943741942, 0.33810023286829993, 0.3531231784672041},
	}
	for i, w := range want {
		c := p.Randomize()
		if got := [3]float64{c.R, c.G, c.B}; got != w {
			t.Errorf("draw %d = %v, want %v", i, got, w)
		}
	}
}

func TestPaletteSeedsDiffer(t *testing.T) {
	a := NewPalette(1, DefaultColor)
	b := NewPalette(2, DefaultColor)
	if a.Randomize() == b.Randomize() {
		t.Error("different seeds produced the same first color")
	}
}

func TestPaletteRandomizeRangeAndAlpha(t *testing.T) {
	p := NewPalette(DefaultSeed, DefaultColor)
	for i := range 100 {
		c := p.Randomize()
		for _, ch := range []float64{c.R, c.G, c.B} {
			if ch < 0 || ch >= 1 {
				t.Fatalf("draw %d: channel %v out of [0,1)", i, ch)
			}
		}
		if c.A != 1 {
			t.Fatalf("draw %d: alpha = %v, want 1", i, c.A)
		}
	}
}

func TestPaletteRandomizeMakesOpaque(t *testing.T) {
	p := NewPalette(DefaultSeed, gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 0.5})
	if c := p.Randomize(); c.A != 1 {
		t.Errorf("alpha after Randomize = %v, want 1", c.A)
	}
}

func TestPaletteColorStableUntilRandomize(t *testing.T) {
	initial := gputypes.Color{R: 0.5, G: 0.25, B: 0.75, A: 1}
	p := NewPalette(7, initial)
	if p.Color() != initial {
		t.Errorf("Color() = %v, want %v", p.Color(), initial)
	}
	if p.Color() != p.Color() {
		t.Error("Color() changed without Randomize")
	}
	next := p.Randomize()
	if p.Color() != next {
		t.Errorf("Color() = %v after Randomize, want %v", p.Color(), next)
	}
}
