// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// Target is a color attachment that render passes draw into.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// View returns the texture view to attach to a render pass.
	View() *wgpu.TextureView
}

// Frame is a Target acquired for exactly one frame. Every acquired frame
// must end with either Present or Discard.
type Frame interface {
	Target

	// Present shows the frame (no-op for offscreen targets).
	Present() error

	// Discard drops the frame without presenting it.
	Discard()
}

// copyRowAlignment is the required BytesPerRow alignment of
// texture-to-buffer copies.
const copyRowAlignment = 256

// Offscreen is a texture-backed stand-in for a window surface. It has the
// same Configure/Acquire contract as Surface, and its pixels can be read
// back after the frame is submitted.
//
// Example:
//
//	off, _ := render.NewOffscreen(dev)
//	_ = off.Configure(600, 600)
//	frame, _ := off.Acquire()
//	// record passes into frame.View(), submit
//	pixels, _ := off.ReadPixels(ctx)
type Offscreen struct {
	device  *wgpu.Device
	queue   *wgpu.Queue
	format  gputypes.TextureFormat
	width   uint32
	height  uint32
	texture *wgpu.Texture
	view    *wgpu.TextureView

	// packed is set on the software adapter, whose texture-to-buffer
	// copies ignore BytesPerRow and write rows back to back.
	packed bool
}

// NewOffscreen creates an unconfigured offscreen target on the provider's
// device, using the provider's surface format (RGBA8Unorm if undefined).
func NewOffscreen(provider DeviceHandle) (*Offscreen, error) {
	device, queue, err := WGPU(provider)
	if err != nil {
		return nil, err
	}
	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	return &Offscreen{
		device: device,
		queue:  queue,
		format: format,
		packed: provider.AdapterInfo().Type == gpucontext.AdapterTypeSoftware,
	}, nil
}

// Format returns the color format of the target texture.
func (o *Offscreen) Format() gputypes.TextureFormat { return o.format }

// Size returns the configured size in pixels.
func (o *Offscreen) Size() (width, height uint32) { return o.width, o.height }

// Configure (re)creates the backing texture at the given size.
func (o *Offscreen) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	tex, err := o.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "offscreen target",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        o.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("render: create offscreen texture: %w", err)
	}
	view, err := o.device.CreateTextureView(tex, nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("render: create offscreen view: %w", err)
	}
	o.releaseTexture()
	o.texture, o.view = tex, view
	o.width, o.height = width, height
	return nil
}

// Acquire returns the offscreen texture as a frame.
func (o *Offscreen) Acquire() (Frame, error) {
	if o.texture == nil {
		return nil, ErrNotConfigured
	}
	return offscreenFrame{o}, nil
}

// ReadPixels copies the texture to host memory and returns tightly packed
// RGBA rows, top row first. BGRA targets are swizzled to RGBA. Call it
// after the frame's commands were submitted.
func (o *Offscreen) ReadPixels(ctx context.Context) ([]byte, error) {
	if o.texture == nil {
		return nil, ErrNotConfigured
	}
	rowBytes := o.width * 4
	paddedRow := (rowBytes + copyRowAlignment - 1) / copyRowAlignment * copyRowAlignment
	size := uint64(paddedRow) * uint64(o.height)

	buf, err := o.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "offscreen readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create readback buffer: %w", err)
	}
	defer buf.Release()

	enc, err := o.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "offscreen readback"})
	if err != nil {
		return nil, fmt.Errorf("render: create readback encoder: %w", err)
	}
	enc.CopyTextureToBuffer(o.texture, buf, []wgpu.BufferTextureCopy{{
		BufferLayout: wgpu.ImageDataLayout{BytesPerRow: paddedRow, RowsPerImage: o.height},
		TextureBase:  wgpu.ImageCopyTexture{Texture: o.texture, Aspect: gputypes.TextureAspectAll},
		Size:         wgpu.Extent3D{Width: o.width, Height: o.height, DepthOrArrayLayers: 1},
	}})
	cmd, err := enc.Finish()
	if err != nil {
		return nil, fmt.Errorf("render: finish readback: %w", err)
	}
	if _, err := o.queue.Submit(cmd); err != nil {
		return nil, fmt.Errorf("render: submit readback: %w", err)
	}

	if err := buf.Map(ctx, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("render: map readback: %w", err)
	}
	defer func() { _ = buf.Unmap() }()
	rng, err := buf.MappedRange(0, size)
	if err != nil {
		return nil, fmt.Errorf("render: mapped range: %w", err)
	}
	defer rng.Release()

	stride := paddedRow
	if o.packed {
		stride = rowBytes
	}
	out := unpadRows(rng.Bytes(), rowBytes, stride, o.height)
	if isBGRA(o.format) {
		for i := 0; i < len(out); i += 4 {
			out[i], out[i+2] = out[i+2], out[i]
		}
	}
	return out, nil
}

// Release destroys the backing texture.
func (o *Offscreen) Release() {
	o.releaseTexture()
	o.width, o.height = 0, 0
}

func (o *Offscreen) releaseTexture() {
	if o.view != nil {
		o.view.Release()
		o.view = nil
	}
	if o.texture != nil {
		o.texture.Release()
		o.texture = nil
	}
}

// unpadRows copies height rows of rowBytes each, laid out stride bytes
// apart in src, into a tightly packed slice.
func unpadRows(src []byte, rowBytes, stride, height uint32) []byte {
	out := make([]byte, int(rowBytes)*int(height))
	for y := range int(height) {
		start := y * int(stride)
		if start >= len(src) {
			break
		}
		copy(out[y*int(rowBytes):(y+1)*int(rowBytes)], src[start:])
	}
	return out
}

func isBGRA(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatBGRA8Unorm || f == gputypes.TextureFormatBGRA8UnormSrgb
}

type offscreenFrame struct {
	o *Offscreen
}

func (f offscreenFrame) Width() int                     { return int(f.o.width) }
func (f offscreenFrame) Height() int                    { return int(f.o.height) }
func (f offscreenFrame) Format() gputypes.TextureFormat { return f.o.format }
func (f offscreenFrame) View() *wgpu.TextureView        { return f.o.view }
func (f offscreenFrame) Present() error                 { return nil }
func (f offscreenFrame) Discard()                       {}

var (
	_ Frame = (*surfaceFrame)(nil)
	_ Frame = offscreenFrame{}
)
