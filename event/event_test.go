// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package event

import (
	"testing"

	"github.com/gogpu/gpucontext"
)

func TestNameCoversAllVariants(t *testing.T) {
	all := []Event{
		CloseRequested{},
		Resized{Width: 1, Height: 1},
		ScaleFactorChanged{Scale: 2},
		KeyboardInput{Key: gpucontext.KeySpace},
		PointerMoved{},
		PointerButton{},
		PointerLeft{},
		Scroll{},
		Focused{},
		RedrawRequested{},
	}
	seen := make(map[string]bool)
	for _, ev := range all {
		name := Name(ev)
		if name == "unknown" {
			t.Errorf("Name(%T) = unknown", ev)
		}
		if seen[name] {
			t.Errorf("Name(%T) = %q is not unique", ev, name)
		}
		seen[name] = true
	}
	if Name(nil) != "unknown" {
		t.Errorf("Name(nil) = %q, want unknown", Name(nil))
	}
}

func TestIsPlainPress(t *testing.T) {
	tests := []struct {
		name string
		ev   KeyboardInput
		want bool
	}{
		{"plain press", KeyboardInput{Key: gpucontext.KeySpace, Pressed: true}, true},
		{"release", KeyboardInput{Key: gpucontext.KeySpace}, false},
		{"synthetic", KeyboardInput{Key: gpucontext.KeySpace, Pressed: true, Synthetic: true}, false},
		{"other key", KeyboardInput{Key: gpucontext.KeyEnter, Pressed: true}, false},
		{"shift held", KeyboardInput{Key: gpucontext.KeySpace, Pressed: true, Mods: gpucontext.ModShift}, false},
		{"control held", KeyboardInput{Key: gpucontext.KeySpace, Pressed: true, Mods: gpucontext.ModControl}, false},
		{"caps lock on", KeyboardInput{Key: gpucontext.KeySpace, Pressed: true, Mods: gpucontext.ModCapsLock}, true},
		{"num lock and alt", KeyboardInput{Key: gpucontext.KeySpace, Pressed: true, Mods: gpucontext.ModNumLock | gpucontext.ModAlt}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.IsPlainPress(gpucontext.KeySpace); got != tt.want {
				t.Errorf("IsPlainPress() = %v, want %v", got, tt.want)
			}
		})
	}
}
