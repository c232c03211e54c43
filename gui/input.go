// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gui

import "github.com/gogpu/gpucontext"

// RawInput is everything a Context needs to run one frame.
type RawInput struct {
	// Screen is the drawable area in points.
	Screen Rect

	// PixelsPerPoint is the display scale factor. Values <= 0 mean 1.
	PixelsPerPoint float32

	// Events are the inputs since the previous frame, oldest first.
	Events []Input

	// Focused reports whether the host window has keyboard focus.
	Focused bool
}

// Input is one GUI input event. The variants are the types in this file.
type Input interface {
	isInput()
}

// PointerMoved reports the pointer position in points.
type PointerMoved struct {
	Pos Vec2
}

// PointerButton reports a button press or release at Pos.
type PointerButton struct {
	Pos     Vec2
	Button  gpucontext.MouseButton
	Pressed bool
	Mods    gpucontext.Modifiers
}

// PointerGone reports that the pointer left the window.
type PointerGone struct{}

// Key reports a key press or release.
type Key struct {
	Key     gpucontext.Key
	Pressed bool
	Mods    gpucontext.Modifiers
}

// Scroll reports a wheel or trackpad delta in points.
type Scroll struct {
	Delta Vec2
}

func (PointerMoved) isInput()  {}
func (PointerButton) isInput() {}
func (PointerGone) isInput()   {}
func (Key) isInput()           {}
func (Scroll) isInput()        {}
