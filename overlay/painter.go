// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/guidemo"
	"github.com/gogpu/guidemo/gui"
	"github.com/gogpu/guidemo/render"
)

//go:embed shader.wgsl
var shaderSource string

// Painter draws tessellated GUI output. Textures are addressed by the ids
// the gui package allocates.
type Painter interface {
	// SetTexture creates or replaces the texture img.ID.
	SetTexture(img gui.ImageDelta) error

	// FreeTexture releases texture id. Unknown ids are ignored.
	FreeTexture(id gui.TextureID)

	// Paint records one render pass over view that loads the existing
	// contents and draws prims on top.
	Paint(enc *wgpu.CommandEncoder, view *wgpu.TextureView, prims []gui.ClippedPrimitive, screen ScreenDescriptor) error

	// Release destroys every GPU resource of the painter.
	Release()
}

type guiTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	group   *wgpu.BindGroup
	width   int
	height  int
}

func (t *guiTexture) release() {
	if t.group != nil {
		t.group.Release()
	}
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
}

// minBufferSize is the smallest vertex or index buffer allocation.
const minBufferSize = 1 << 12

// uniformSize holds the screen size in points plus padding.
const uniformSize = 16

// wgpuPainter is the Painter on a wgpu device.
type wgpuPainter struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	shader         *wgpu.ShaderModule
	uniformLayout  *wgpu.BindGroupLayout
	textureLayout  *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	pipeline       *wgpu.RenderPipeline
	sampler        *wgpu.Sampler
	uniforms       *wgpu.Buffer
	uniformGroup   *wgpu.BindGroup

	vertices    *wgpu.Buffer
	vertexCap   uint64
	indices     *wgpu.Buffer
	indexCap    uint64
	lastUniform [uniformSize]byte

	textures map[gui.TextureID]*guiTexture
}

// NewPainter builds the GUI pipeline for color targets of format.
func NewPainter(provider render.DeviceHandle, format gputypes.TextureFormat) (Painter, error) {
	device, queue, err := render.WGPU(provider)
	if err != nil {
		return nil, err
	}
	p := &wgpuPainter{
		device:   device,
		queue:    queue,
		textures: make(map[gui.TextureID]*guiTexture),
	}
	if err := p.init(format); err != nil {
		p.Release()
		return nil, fmt.Errorf("overlay: %w", err)
	}
	return p, nil
}

func (p *wgpuPainter) init(format gputypes.TextureFormat) error {
	var err error
	p.shader, err = render.CompileShader(p.device, "gui shader", shaderSource, "vs_main", "fs_main")
	if err != nil {
		return err
	}

	p.uniformLayout, err = p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "gui uniform layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}

	p.textureLayout, err = p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "gui texture layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create texture layout: %w", err)
	}

	p.pipelineLayout, err = p.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "gui pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.uniformLayout, p.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	blend := gputypes.BlendStatePremultiplied()
	p.pipeline, err = p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "gui pipeline",
		Layout: p.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: vertexStride,
				StepMode:    gputypes.VertexStepModeVertex,
				Attributes: []gputypes.VertexAttribute{
					{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Fragment: &wgpu.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}

	p.sampler, err = p.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:        "gui sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		LodMaxClamp:  32,
	})
	if err != nil {
		return fmt.Errorf("create sampler: %w", err)
	}

	p.uniforms, err = p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "gui uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}

	p.uniformGroup, err = p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "gui uniforms",
		Layout: p.uniformLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.uniforms, Size: uniformSize},
			{Binding: 1, Sampler: p.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform bind group: %w", err)
	}
	return nil
}

func (p *wgpuPainter) SetTexture(img gui.ImageDelta) error {
	if img.Width <= 0 || img.Height <= 0 || len(img.Pixels) != img.Width*img.Height*4 {
		return fmt.Errorf("overlay: texture %d: bad image %dx%d with %d bytes", img.ID, img.Width, img.Height, len(img.Pixels))
	}
	t, ok := p.textures[img.ID]
	if !ok || t.width != img.Width || t.height != img.Height {
		nt, err := p.createTexture(img.Width, img.Height)
		if err != nil {
			return fmt.Errorf("overlay: texture %d: %w", img.ID, err)
		}
		if ok {
			t.release()
		}
		t = nt
		p.textures[img.ID] = t
	}

	w, h := uint32(img.Width), uint32(img.Height)
	err := p.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: t.texture, Aspect: gputypes.TextureAspectAll},
		img.Pixels,
		&wgpu.ImageDataLayout{BytesPerRow: 4 * w, RowsPerImage: h},
		&wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("overlay: upload texture %d: %w", img.ID, err)
	}
	return nil
}

func (p *wgpuPainter) createTexture(width, height int) (*guiTexture, error) {
	t := &guiTexture{width: width, height: height}
	var err error
	t.texture, err = p.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "gui texture",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	t.view, err = p.device.CreateTextureView(t.texture, nil)
	if err != nil {
		t.release()
		return nil, err
	}
	t.group, err = p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "gui texture",
		Layout:  p.textureLayout,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, TextureView: t.view}},
	})
	if err != nil {
		t.release()
		return nil, err
	}
	return t, nil
}

func (p *wgpuPainter) FreeTexture(id gui.TextureID) {
	if t, ok := p.textures[id]; ok {
		t.release()
		delete(p.textures, id)
	}
}

func (p *wgpuPainter) Paint(enc *wgpu.CommandEncoder, view *wgpu.TextureView, prims []gui.ClippedPrimitive, screen ScreenDescriptor) error {
	vdata, idata, draws := packPrimitives(prims)
	if len(draws) > 0 {
		if err := p.upload(vdata, idata, screen); err != nil {
			return err
		}
	}

	pass, err := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "gui pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	})
	if err != nil {
		return fmt.Errorf("overlay: begin pass: %w", err)
	}

	if len(draws) > 0 {
		pass.SetPipeline(p.pipeline)
		pass.SetBindGroup(0, p.uniformGroup, nil)
		pass.SetVertexBuffer(0, p.vertices, 0)
		pass.SetIndexBuffer(p.indices, gputypes.IndexFormatUint32, 0)
	}
	for _, d := range draws {
		sc := clipToPixels(d.clip, screen)
		if sc.W == 0 || sc.H == 0 {
			continue
		}
		t, ok := p.textures[d.texture]
		if !ok {
			guidemo.Logger().Warn("overlay: draw with unknown texture", "id", d.texture)
			continue
		}
		pass.SetBindGroup(1, t.group, nil)
		pass.SetScissorRect(sc.X, sc.Y, sc.W, sc.H)
		pass.DrawIndexed(d.indexCount, 1, d.firstIndex, d.baseVertex, 0)
	}

	if err := pass.End(); err != nil {
		return fmt.Errorf("overlay: end pass: %w", err)
	}
	return nil
}

// upload writes the frame's geometry and the screen size uniform,
// growing the buffers as needed.
func (p *wgpuPainter) upload(vdata, idata []byte, screen ScreenDescriptor) error {
	var err error
	p.vertices, p.vertexCap, err = p.ensureBuffer(p.vertices, p.vertexCap, uint64(len(vdata)), "gui vertices", gputypes.BufferUsageVertex)
	if err != nil {
		return err
	}
	p.indices, p.indexCap, err = p.ensureBuffer(p.indices, p.indexCap, uint64(len(idata)), "gui indices", gputypes.BufferUsageIndex)
	if err != nil {
		return err
	}
	if err := p.queue.WriteBuffer(p.vertices, 0, vdata); err != nil {
		return fmt.Errorf("overlay: write vertices: %w", err)
	}
	if err := p.queue.WriteBuffer(p.indices, 0, idata); err != nil {
		return fmt.Errorf("overlay: write indices: %w", err)
	}

	var u [uniformSize]byte
	w, h := screen.SizeInPoints()
	binary.LittleEndian.PutUint32(u[0:], math.Float32bits(w))
	binary.LittleEndian.PutUint32(u[4:], math.Float32bits(h))
	if u != p.lastUniform {
		if err := p.queue.WriteBuffer(p.uniforms, 0, u[:]); err != nil {
			return fmt.Errorf("overlay: write uniforms: %w", err)
		}
		p.lastUniform = u
	}
	return nil
}

func (p *wgpuPainter) ensureBuffer(buf *wgpu.Buffer, capacity, need uint64, label string, usage gputypes.BufferUsage) (*wgpu.Buffer, uint64, error) {
	if buf != nil && need <= capacity {
		return buf, capacity, nil
	}
	size := uint64(minBufferSize)
	for size < need {
		size *= 2
	}
	nb, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return buf, capacity, fmt.Errorf("overlay: create %s: %w", label, err)
	}
	if buf != nil {
		buf.Release()
	}
	return nb, size, nil
}

func (p *wgpuPainter) Release() {
	for id, t := range p.textures {
		t.release()
		delete(p.textures, id)
	}
	if p.indices != nil {
		p.indices.Release()
		p.indices = nil
	}
	if p.vertices != nil {
		p.vertices.Release()
		p.vertices = nil
	}
	if p.uniformGroup != nil {
		p.uniformGroup.Release()
		p.uniformGroup = nil
	}
	if p.uniforms != nil {
		p.uniforms.Release()
		p.uniforms = nil
	}
	if p.sampler != nil {
		p.sampler.Release()
		p.sampler = nil
	}
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.pipelineLayout != nil {
		p.pipelineLayout.Release()
		p.pipelineLayout = nil
	}
	if p.textureLayout != nil {
		p.textureLayout.Release()
		p.textureLayout = nil
	}
	if p.uniformLayout != nil {
		p.uniformLayout.Release()
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.shader.Release()
		p.shader = nil
	}
}

var _ Painter = (*wgpuPainter)(nil)
