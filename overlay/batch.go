// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/guidemo/gui"
)

// vertexStride is the encoded size of a gui.Vertex: pos, uv, color.
const vertexStride = (2 + 2 + 4) * 4

// ScreenDescriptor is the render target size and its scale.
type ScreenDescriptor struct {
	Width          uint32
	Height         uint32
	PixelsPerPoint float32
}

// SizeInPoints returns the target size in points.
func (s ScreenDescriptor) SizeInPoints() (w, h float32) {
	ppp := s.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}
	return float32(s.Width) / ppp, float32(s.Height) / ppp
}

// scissor is a clip rectangle in physical pixels.
type scissor struct {
	X, Y, W, H uint32
}

// clipToPixels converts a clip rectangle in points to a scissor rectangle
// clamped to the target. The result may be empty.
func clipToPixels(clip gui.Rect, s ScreenDescriptor) scissor {
	ppp := s.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}
	w, h := float32(s.Width), float32(s.Height)
	minX := math32.Max(0, math32.Min(math32.Round(clip.Min.X*ppp), w))
	minY := math32.Max(0, math32.Min(math32.Round(clip.Min.Y*ppp), h))
	maxX := math32.Max(minX, math32.Min(math32.Round(clip.Max.X*ppp), w))
	maxY := math32.Max(minY, math32.Min(math32.Round(clip.Max.Y*ppp), h))
	return scissor{
		X: uint32(minX),
		Y: uint32(minY),
		W: uint32(maxX - minX),
		H: uint32(maxY - minY),
	}
}

// drawCall is one primitive inside the packed buffers.
type drawCall struct {
	texture    gui.TextureID
	clip       gui.Rect
	firstIndex uint32
	indexCount uint32
	baseVertex int32
}

// packPrimitives concatenates every mesh into one vertex and one index
// stream. Primitives without indices are skipped.
func packPrimitives(prims []gui.ClippedPrimitive) (vertices, indices []byte, draws []drawCall) {
	var nv, ni int
	for _, p := range prims {
		nv += len(p.Mesh.Vertices)
		ni += len(p.Mesh.Indices)
	}
	vertices = make([]byte, 0, nv*vertexStride)
	indices = make([]byte, 0, ni*4)

	var baseVertex, firstIndex int
	for _, p := range prims {
		if len(p.Mesh.Indices) == 0 {
			continue
		}
		for _, v := range p.Mesh.Vertices {
			vertices = appendFloats(vertices, v.Pos[:]...)
			vertices = appendFloats(vertices, v.UV[:]...)
			vertices = appendFloats(vertices, v.Color[:]...)
		}
		for _, i := range p.Mesh.Indices {
			indices = binary.LittleEndian.AppendUint32(indices, i)
		}
		draws = append(draws, drawCall{
			texture:    p.Mesh.Texture,
			clip:       p.Clip,
			firstIndex: uint32(firstIndex),
			indexCount: uint32(len(p.Mesh.Indices)),
			baseVertex: int32(baseVertex),
		})
		baseVertex += len(p.Mesh.Vertices)
		firstIndex += len(p.Mesh.Indices)
	}
	return vertices, indices, draws
}

func appendFloats(buf []byte, fs ...float32) []byte {
	for _, f := range fs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}
