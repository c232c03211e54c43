// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package event defines the closed set of window events the application
// reacts to.
//
// Event is a sealed interface: only the types in this package implement it,
// so a type switch over the variants below is exhaustive.
//
//	switch e := ev.(type) {
//	case event.Resized:
//	    state.Resize(e.Width, e.Height)
//	case event.KeyboardInput:
//	    ...
//	}
package event

import "github.com/gogpu/gpucontext"

// Event is a window or input event.
type Event interface {
	isEvent()
}

// CloseRequested is sent when the user asks to close the window.
type CloseRequested struct{}

// Resized reports the new framebuffer size in physical pixels.
// Either dimension may be zero while the window is minimized.
type Resized struct {
	Width  int
	Height int
}

// ScaleFactorChanged reports a new DPI scale and the resulting
// framebuffer size in physical pixels.
type ScaleFactorChanged struct {
	Scale  float64
	Width  int
	Height int
}

// KeyboardInput reports a key press or release.
//
// Synthetic is set for events the platform generates on its own, such as
// the key state replay some systems send when a window gains focus.
// Repeats are reported as presses.
type KeyboardInput struct {
	Key       gpucontext.Key
	Pressed   bool
	Synthetic bool
	Mods      gpucontext.Modifiers
}

// lockMods are modifier bits that describe a toggle state rather than a
// held key.
const lockMods = gpucontext.ModCapsLock | gpucontext.ModNumLock

// IsPlainPress reports whether e is a real (non-synthetic) press of key
// with no modifier keys held. Caps Lock and Num Lock are ignored.
func (e KeyboardInput) IsPlainPress(key gpucontext.Key) bool {
	return e.Pressed && !e.Synthetic && e.Key == key && e.Mods&^lockMods == 0
}

// PointerMoved reports the cursor position in physical pixels relative to
// the top-left corner of the window.
type PointerMoved struct {
	X, Y float64
}

// PointerButton reports a mouse button change at the given position.
type PointerButton struct {
	Button  gpucontext.MouseButton
	Pressed bool
	X, Y    float64
	Mods    gpucontext.Modifiers
}

// PointerLeft is sent when the cursor leaves the window.
type PointerLeft struct{}

// Scroll reports a wheel or touchpad scroll in lines.
type Scroll struct {
	DX, DY float64
}

// Focused reports a change of keyboard focus.
type Focused struct {
	Focused bool
}

// RedrawRequested asks for a new frame.
type RedrawRequested struct{}

func (CloseRequested) isEvent()     {}
func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (KeyboardInput) isEvent()      {}
func (PointerMoved) isEvent()       {}
func (PointerButton) isEvent()      {}
func (PointerLeft) isEvent()        {}
func (Scroll) isEvent()             {}
func (Focused) isEvent()            {}
func (RedrawRequested) isEvent()    {}

// Name returns a short name of the event variant, for logs.
func Name(ev Event) string {
	switch ev.(type) {
	case CloseRequested:
		return "close-requested"
	case Resized:
		return "resized"
	case ScaleFactorChanged:
		return "scale-factor-changed"
	case KeyboardInput:
		return "keyboard-input"
	case PointerMoved:
		return "pointer-moved"
	case PointerButton:
		return "pointer-button"
	case PointerLeft:
		return "pointer-left"
	case Scroll:
		return "scroll"
	case Focused:
		return "focused"
	case RedrawRequested:
		return "redraw-requested"
	default:
		return "unknown"
	}
}
