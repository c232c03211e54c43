// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package background draws the lower layer of every frame: a clear to the
// current background color followed by the fixed vertex-colored triangle.
package background

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/guidemo"
	"github.com/gogpu/guidemo/render"
)

//go:embed shader.wgsl
var shaderSource string

// ErrNilProvider is returned by New when no device provider is given.
var ErrNilProvider = errors.New("background: nil device provider")

// DefaultSeed seeds the palette when no WithSeed option is given.
const DefaultSeed = guidemo.DefaultSeed

// DefaultColor is the clear color before the first randomization.
var DefaultColor = gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	seed    uint64
	initial gputypes.Color
}

// WithSeed sets the palette seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithInitialColor sets the clear color used until the first randomization.
func WithInitialColor(c gputypes.Color) Option {
	return func(o *options) {
		o.initial = c
	}
}

// Renderer owns the triangle pipeline, its buffers and the palette.
type Renderer struct {
	palette *Palette

	shader   *wgpu.ShaderModule
	layout   *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
	vertices *wgpu.Buffer
	indices  *wgpu.Buffer
	count    uint32
}

// New compiles the triangle shader, builds the pipeline for format and
// uploads the geometry.
func New(provider render.DeviceHandle, format gputypes.TextureFormat, opts ...Option) (*Renderer, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	o := options{seed: DefaultSeed, initial: DefaultColor}
	for _, opt := range opts {
		opt(&o)
	}
	device, queue, err := render.WGPU(provider)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		palette: NewPalette(o.seed, o.initial),
		count:   uint32(len(Indices)),
	}
	if err := r.init(device, queue, format); err != nil {
		r.Release()
		return nil, fmt.Errorf("background: %w", err)
	}
	guidemo.Logger().Debug("background: renderer ready", "format", format, "seed", o.seed)
	return r, nil
}

func (r *Renderer) init(device *wgpu.Device, queue *wgpu.Queue, format gputypes.TextureFormat) error {
	var err error
	r.shader, err = render.CompileShader(device, "simple color shader", shaderSource, "vs_main", "fs_main")
	if err != nil {
		return err
	}

	vdata := vertexBytes(Vertices[:])
	r.vertices, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "triangle vertices",
		Size:  uint64(len(vdata)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	if err := queue.WriteBuffer(r.vertices, 0, vdata); err != nil {
		return fmt.Errorf("write vertex buffer: %w", err)
	}

	idata := indexBytes(Indices[:])
	r.indices, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "triangle indices",
		Size:  uint64(len(idata)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create index buffer: %w", err)
	}
	if err := queue.WriteBuffer(r.indices, 0, idata); err != nil {
		return fmt.Errorf("write index buffer: %w", err)
	}

	r.layout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{Label: "triangle layout"})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	r.pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "triangle pipeline",
		Layout: r.layout,
		Vertex: wgpu.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Primitive: pipelinePrimitive,
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &wgpu.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets:    []wgpu.ColorTargetState{colorTarget(format)},
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	return nil
}

var pipelinePrimitive = gputypes.PrimitiveState{
	Topology:  gputypes.PrimitiveTopologyTriangleList,
	FrontFace: gputypes.FrontFaceCCW,
	CullMode:  gputypes.CullModeBack,
}

func colorTarget(format gputypes.TextureFormat) wgpu.ColorTargetState {
	blend := gputypes.BlendStateReplace()
	return wgpu.ColorTargetState{
		Format:    format,
		Blend:     &blend,
		WriteMask: gputypes.ColorWriteMaskAll,
	}
}

// RandomizeColor draws a new background color from the palette.
func (r *Renderer) RandomizeColor() {
	c := r.palette.Randomize()
	guidemo.Logger().Debug("background: color randomized", "r", c.R, "g", c.G, "b", c.B)
}

// Color returns the current clear color.
func (r *Renderer) Color() gputypes.Color {
	return r.palette.Color()
}

// Render records one pass into enc: clear view to the current color and
// draw the triangle.
func (r *Renderer) Render(enc *wgpu.CommandEncoder, view *wgpu.TextureView) error {
	pass, err := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "background pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.palette.Color(),
		}},
	})
	if err != nil {
		return fmt.Errorf("background: begin pass: %w", err)
	}
	pass.SetPipeline(r.pipeline)
	pass.SetVertexBuffer(0, r.vertices, 0)
	pass.SetIndexBuffer(r.indices, gputypes.IndexFormatUint16, 0)
	pass.DrawIndexed(r.count, 1, 0, 0, 0)
	if err := pass.End(); err != nil {
		return fmt.Errorf("background: end pass: %w", err)
	}
	return nil
}

// Release destroys the GPU resources. The palette stays usable.
func (r *Renderer) Release() {
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.layout != nil {
		r.layout.Release()
		r.layout = nil
	}
	if r.indices != nil {
		r.indices.Release()
		r.indices = nil
	}
	if r.vertices != nil {
		r.vertices.Release()
		r.vertices = nil
	}
	if r.shader != nil {
		r.shader.Release()
		r.shader = nil
	}
}
