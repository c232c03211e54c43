// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"context"
	"testing"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/guidemo"
)

func TestHeadlessFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping GPU test in short mode")
	}
	const size = 600
	s, off, err := InitializeHeadless(size, size, guidemo.NewConfig(guidemo.WithBackend("software")))
	if err != nil {
		t.Skipf("no headless device: %v", err)
	}
	defer s.Release()

	if err := s.Redraw(); err != nil {
		t.Fatalf("Redraw() error = %v", err)
	}
	if s.Frames() != 1 {
		t.Fatalf("Frames() = %d, want 1", s.Frames())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pixels, err := off.ReadPixels(ctx)
	if err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	if len(pixels) != size*size*4 {
		t.Fatalf("len(pixels) = %d, want %d", len(pixels), size*size*4)
	}
	at := func(x, y int) []byte {
		i := (y*size + x) * 4
		return pixels[i : i+4]
	}

	// These points lie outside the triangle and the GUI window. At mid
	// height the triangle spans x in [size/4, 3*size/4].
	want := [4]int{26, 51, 77, 255}
	for _, p := range [][2]int{{0, 0}, {2, size / 2}, {size - 3, size / 2}, {2, size - 40}} {
		bg := at(p[0], p[1])
		for i := range 4 {
			if d := int(bg[i]) - want[i]; d < -1 || d > 1 {
				t.Errorf("background pixel at %v = %v, want ~%v", p, bg, want)
				break
			}
		}
	}
	if t.Failed() {
		return
	}

	if s.Device().Info().DeviceType == gputypes.DeviceTypeCPU {
		t.Skip("software adapter does not rasterize triangles")
	}
	// Centroid of (0,1), (-1,-1), (1,-1) in NDC.
	c := at(size/2, size*2/3)
	for i, v := range c[:3] {
		if v < 50 || v > 120 {
			t.Errorf("centroid channel %d = %d, want an even blend of red, green and blue", i, v)
		}
	}
	if c[3] != 255 {
		t.Errorf("centroid alpha = %d, want 255", c[3])
	}
}

func TestInitializeHeadlessRejectsEmptySize(t *testing.T) {
	if _, _, err := InitializeHeadless(0, 600, guidemo.DefaultConfig()); err == nil {
		t.Error("InitializeHeadless(0, 600) error = nil")
	}
}

func TestInitializeRejectsInvalidConfig(t *testing.T) {
	cfg := guidemo.NewConfig(guidemo.WithBackend("glide"))
	if _, err := Initialize(nil, cfg); err == nil {
		t.Error("Initialize() with unknown backend error = nil")
	}
}
