// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/guidemo"
)

// Surface is the presentable target bound to a window.
//
// Create it with NewSurface before RequestDevice, pass it to RequestDevice
// so the adapter can present to it, then call Configure.
type Surface struct {
	raw    *wgpu.Surface
	device *wgpu.Device
	format gputypes.TextureFormat
	width  uint32
	height uint32
}

// NewSurface creates a surface from native window handles (X11 display and
// window, Wayland display and surface, or HINSTANCE and HWND).
func NewSurface(instance *wgpu.Instance, display, window uintptr) (*Surface, error) {
	raw, err := instance.CreateSurface(display, window)
	if err != nil {
		return nil, fmt.Errorf("render: create surface: %w", err)
	}
	return &Surface{raw: raw}, nil
}

func (s *Surface) bind(d *Device) {
	s.device = d.device
	s.format = d.format
}

// Raw returns the wgpu surface.
func (s *Surface) Raw() *wgpu.Surface { return s.raw }

// Format returns the negotiated color format.
func (s *Surface) Format() gputypes.TextureFormat { return s.format }

// Size returns the configured size in pixels.
func (s *Surface) Size() (width, height uint32) { return s.width, s.height }

// Configure (re)configures the swapchain with vsync presentation.
// Zero dimensions are rejected with ErrInvalidSize.
func (s *Surface) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if s.device == nil {
		return fmt.Errorf("%w: surface has no device", ErrNotConfigured)
	}
	err := s.raw.Configure(s.device, &wgpu.SurfaceConfiguration{
		Width:       width,
		Height:      height,
		Format:      s.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: gputypes.PresentModeFifo,
		AlphaMode:   gputypes.CompositeAlphaModeAuto,
	})
	if err != nil {
		return fmt.Errorf("render: configure surface %dx%d: %w", width, height, err)
	}
	s.width, s.height = width, height
	guidemo.Logger().Debug("render: surface configured", "width", width, "height", height, "format", s.format)
	return nil
}

// Acquire returns the next swapchain texture as a Frame. Acquisition
// errors wrap the wgpu error (wgpu.ErrSurfaceLost, wgpu.ErrOutOfMemory,
// ...) so callers can classify them with errors.Is.
func (s *Surface) Acquire() (Frame, error) {
	if s.width == 0 {
		return nil, ErrNotConfigured
	}
	tex, suboptimal, err := s.raw.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("render: acquire surface texture: %w", err)
	}
	if suboptimal {
		guidemo.Logger().Debug("render: surface texture is suboptimal")
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		s.raw.DiscardTexture()
		return nil, fmt.Errorf("render: surface texture view: %w", err)
	}
	return &surfaceFrame{surface: s, texture: tex, view: view}, nil
}

// Release unconfigures and destroys the surface.
func (s *Surface) Release() {
	if s.raw == nil {
		return
	}
	if s.width != 0 {
		s.raw.Unconfigure()
	}
	s.raw.Release()
	s.raw = nil
}

type surfaceFrame struct {
	surface *Surface
	texture *wgpu.SurfaceTexture
	view    *wgpu.TextureView
}

func (f *surfaceFrame) Width() int                     { return int(f.surface.width) }
func (f *surfaceFrame) Height() int                    { return int(f.surface.height) }
func (f *surfaceFrame) Format() gputypes.TextureFormat { return f.surface.format }
func (f *surfaceFrame) View() *wgpu.TextureView        { return f.view }

func (f *surfaceFrame) Present() error {
	f.view.Release()
	if err := f.surface.raw.Present(f.texture); err != nil {
		return fmt.Errorf("render: present: %w", err)
	}
	return nil
}

func (f *surfaceFrame) Discard() {
	f.view.Release()
	f.surface.raw.DiscardTexture()
}
