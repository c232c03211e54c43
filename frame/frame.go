// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frame composes the background and overlay renderers into one
// frame loop. A State owns every GPU object of the demo and is driven by
// a single thread: DispatchInput for each window event, then Tick and
// RenderFrame once per redraw.
package frame

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/guidemo"
	"github.com/gogpu/guidemo/event"
	"github.com/gogpu/guidemo/render"
)

var (
	// ErrFatal marks frame errors the loop cannot recover from.
	ErrFatal = errors.New("frame: unrecoverable error")

	// ErrNilComponent is returned by New when a component is missing.
	ErrNilComponent = errors.New("frame: nil component")
)

// RandomizeKey is the key that picks a new background color.
const RandomizeKey = gpucontext.KeySpace

// Surface is the presentation target. *render.Surface and
// *render.Offscreen implement it.
type Surface interface {
	Configure(width, height uint32) error
	Acquire() (render.Frame, error)
}

// Submitter records and submits command buffers. *render.Device
// implements it.
type Submitter interface {
	NewEncoder(label string) (*wgpu.CommandEncoder, error)
	Submit(enc *wgpu.CommandEncoder) error
}

// Background clears the target and draws the triangle.
type Background interface {
	RandomizeColor()
	Render(enc *wgpu.CommandEncoder, view *wgpu.TextureView) error
	Release()
}

// Overlay draws the GUI on top of the background.
type Overlay interface {
	HandleInput(ev event.Event) bool
	Update(win gpucontext.WindowProvider)
	Render(enc *wgpu.CommandEncoder, view *wgpu.TextureView, win gpucontext.WindowProvider, width, height uint32) error
	Cursor() gpucontext.CursorShape
	Release()
}

// State is the frame orchestrator.
type State struct {
	surface    Surface
	gpu        Submitter
	background Background
	overlay    Overlay
	win        gpucontext.WindowProvider

	width  uint32
	height uint32
	frames uint64

	// Set by Initialize and InitializeHeadless, released in reverse order.
	device   *render.Device
	owned    []func()
	released bool
}

// New composes a State from its parts and configures surface at
// width x height. A zero dimension leaves the surface unconfigured until
// the first non-empty Resize.
func New(surface Surface, gpu Submitter, bg Background, ov Overlay, win gpucontext.WindowProvider, width, height uint32) (*State, error) {
	switch {
	case surface == nil:
		return nil, fmt.Errorf("%w: surface", ErrNilComponent)
	case gpu == nil:
		return nil, fmt.Errorf("%w: submitter", ErrNilComponent)
	case bg == nil:
		return nil, fmt.Errorf("%w: background", ErrNilComponent)
	case ov == nil:
		return nil, fmt.Errorf("%w: overlay", ErrNilComponent)
	}
	s := &State{
		surface:    surface,
		gpu:        gpu,
		background: bg,
		overlay:    ov,
		win:        win,
	}
	if err := s.Resize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// Size returns the configured surface size in pixels.
func (s *State) Size() (width, height uint32) {
	return s.width, s.height
}

// Frames returns the number of presented frames.
func (s *State) Frames() uint64 {
	return s.frames
}

// Device returns the device created by Initialize or InitializeHeadless,
// or nil for a State built with New.
func (s *State) Device() *render.Device {
	return s.device
}

// Cursor returns the cursor shape the GUI asked for.
func (s *State) Cursor() gpucontext.CursorShape {
	return s.overlay.Cursor()
}

// Resize reconfigures the surface. Sizes with a zero dimension, as sent
// while the window is minimized, are ignored.
func (s *State) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	if err := s.surface.Configure(width, height); err != nil {
		return err
	}
	s.width, s.height = width, height
	return nil
}

// DispatchInput offers ev to the overlay first and reports whether it was
// consumed. An unconsumed plain press of RandomizeKey randomizes the
// background color. Size changes are applied whether or not the overlay
// consumed them.
func (s *State) DispatchInput(ev event.Event) bool {
	consumed := s.overlay.HandleInput(ev)

	switch e := ev.(type) {
	case event.Resized:
		s.resizeLogged(e.Width, e.Height)
	case event.ScaleFactorChanged:
		s.resizeLogged(e.Width, e.Height)
	}
	if consumed {
		return true
	}

	if key, ok := ev.(event.KeyboardInput); ok && key.IsPlainPress(RandomizeKey) {
		s.background.RandomizeColor()
		return true
	}
	return false
}

func (s *State) resizeLogged(width, height int) {
	if err := s.Resize(dim(width), dim(height)); err != nil {
		guidemo.Logger().Warn("frame: resize failed", "width", width, "height", height, "err", err)
	}
}

func dim(v int) uint32 {
	if v <= 0 {
		return 0
	}
	return uint32(v)
}

// Tick runs one GUI frame. Call it once before each RenderFrame.
func (s *State) Tick() {
	s.overlay.Update(s.win)
}

// RenderFrame acquires the next surface texture, records the background
// pass followed by the overlay pass into one encoder, submits it and
// presents. Acquisition errors are returned as is for HandleFrameError.
func (s *State) RenderFrame() error {
	frame, err := s.surface.Acquire()
	if err != nil {
		return err
	}

	enc, err := s.gpu.NewEncoder("guidemo frame")
	if err != nil {
		frame.Discard()
		return err
	}
	if err := s.background.Render(enc, frame.View()); err != nil {
		frame.Discard()
		return err
	}
	width, height := uint32(frame.Width()), uint32(frame.Height())
	if err := s.overlay.Render(enc, frame.View(), s.win, width, height); err != nil {
		frame.Discard()
		return err
	}
	if err := s.gpu.Submit(enc); err != nil {
		frame.Discard()
		return err
	}
	if err := frame.Present(); err != nil {
		return fmt.Errorf("frame: present: %w", err)
	}
	s.frames++
	return nil
}

// HandleFrameError classifies a RenderFrame error. A lost surface is
// reconfigured at the current size and the frame skipped. Out of memory
// and device loss are returned wrapped in ErrFatal. Anything else is
// logged and the frame skipped.
func (s *State) HandleFrameError(err error) error {
	log := guidemo.Logger()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, wgpu.ErrSurfaceLost):
		log.Info("frame: surface lost, reconfiguring", "width", s.width, "height", s.height)
		if cerr := s.surface.Configure(s.width, s.height); cerr != nil {
			log.Warn("frame: reconfigure lost surface", "err", cerr)
		}
		return nil
	case errors.Is(err, wgpu.ErrOutOfMemory), errors.Is(err, wgpu.ErrDeviceLost):
		log.Error("frame: unrecoverable", "err", err)
		return fmt.Errorf("%w: %w", ErrFatal, err)
	default:
		log.Warn("frame: skipped", "err", err)
		return nil
	}
}

// Redraw runs Tick and RenderFrame and classifies the outcome. A non-nil
// result wraps ErrFatal.
func (s *State) Redraw() error {
	s.Tick()
	return s.HandleFrameError(s.RenderFrame())
}

// Release waits for the GPU to finish and releases the components in
// reverse creation order. Components passed to New are left to the
// caller.
func (s *State) Release() {
	if s.released {
		return
	}
	s.released = true
	if s.device != nil {
		if err := s.device.WaitIdle(); err != nil {
			guidemo.Logger().Warn("frame: wait idle", "err", err)
		}
	}
	for i := len(s.owned) - 1; i >= 0; i-- {
		s.owned[i]()
	}
	s.owned = nil
}
