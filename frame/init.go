// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/guidemo"
	"github.com/gogpu/guidemo/background"
	"github.com/gogpu/guidemo/overlay"
	"github.com/gogpu/guidemo/render"
)

// Window is the host window a State presents to.
type Window interface {
	gpucontext.WindowProvider

	// SurfaceHandles returns the native display and window handles.
	SurfaceHandles() (display, window uintptr, err error)

	// PixelSize returns the framebuffer size in physical pixels.
	PixelSize() (width, height int)
}

// Initialize creates the GPU device for win, configures a vsync surface
// at the window's pixel size and builds both renderers for the negotiated
// format. Any error is fatal for the application.
func Initialize(win Window, cfg guidemo.Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	backends, err := render.ParseBackends(cfg.Backend)
	if err != nil {
		return nil, err
	}

	s := &State{}
	inst, err := render.NewInstance(backends)
	if err != nil {
		return nil, err
	}
	s.own(inst.Release)

	display, handle, err := win.SurfaceHandles()
	if err != nil {
		return s.fail(err)
	}
	surface, err := render.NewSurface(inst, display, handle)
	if err != nil {
		return s.fail(err)
	}
	dev, err := render.RequestDevice(inst, surface, deviceOptions(cfg)...)
	if err != nil {
		surface.Release()
		return s.fail(err)
	}
	s.device = dev
	s.own(dev.Release)
	s.own(surface.Release)

	w, h := win.PixelSize()
	if err := s.compose(surface, win, dim(w), dim(h), cfg); err != nil {
		return s.fail(err)
	}
	return s, nil
}

// InitializeHeadless builds a State that renders into an offscreen
// texture of width x height pixels instead of a window. The Offscreen is
// returned for pixel readback and is released with the State.
func InitializeHeadless(width, height int, cfg guidemo.Config) (*State, *render.Offscreen, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, nil, fmt.Errorf("%w: %dx%d", render.ErrInvalidSize, width, height)
	}
	backends, err := render.ParseBackends(cfg.Backend)
	if err != nil {
		return nil, nil, err
	}

	s := &State{}
	inst, err := render.NewInstance(backends)
	if err != nil {
		return nil, nil, err
	}
	s.own(inst.Release)

	dev, err := render.RequestDevice(inst, nil, deviceOptions(cfg)...)
	if err != nil {
		s.Release()
		return nil, nil, err
	}
	s.device = dev
	s.own(dev.Release)

	off, err := render.NewOffscreen(dev)
	if err != nil {
		s.Release()
		return nil, nil, err
	}
	s.own(off.Release)

	win := gpucontext.NullWindowProvider{W: width, H: height}
	if err := s.compose(off, win, uint32(width), uint32(height), cfg); err != nil {
		s.Release()
		return nil, nil, err
	}
	return s, off, nil
}

func deviceOptions(cfg guidemo.Config) []render.DeviceOption {
	return []render.DeviceOption{
		render.WithPowerPreference(gputypes.PowerPreferenceHighPerformance),
		render.WithForceFallback(cfg.Backend == "software"),
	}
}

func (s *State) compose(surface Surface, win gpucontext.WindowProvider, width, height uint32, cfg guidemo.Config) error {
	format := s.device.SurfaceFormat()

	bg, err := background.New(s.device, format,
		background.WithSeed(cfg.Seed),
		background.WithInitialColor(gputypes.Color{
			R: cfg.Background[0],
			G: cfg.Background[1],
			B: cfg.Background[2],
			A: cfg.Background[3],
		}),
	)
	if err != nil {
		return err
	}
	s.own(bg.Release)

	ov, err := overlay.New(s.device, format)
	if err != nil {
		return err
	}
	s.own(ov.Release)

	s.surface = surface
	s.gpu = s.device
	s.background = bg
	s.overlay = ov
	s.win = win
	return s.Resize(width, height)
}

func (s *State) own(release func()) {
	s.owned = append(s.owned, release)
}

func (s *State) fail(err error) (*State, error) {
	s.Release()
	return nil, err
}
