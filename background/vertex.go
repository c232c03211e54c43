// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package background

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex is one corner of the triangle: clip-space position and RGB color.
type Vertex struct {
	Position [2]float32
	Color    [3]float32
}

// VertexStride is the size of an encoded Vertex in bytes.
const VertexStride = 5 * 4

// Vertices is the fixed triangle: red apex at the top, green bottom-left,
// blue bottom-right. Counter-clockwise in clip space.
var Vertices = [3]Vertex{
	{Position: [2]float32{0, 1}, Color: [3]float32{1, 0, 0}},
	{Position: [2]float32{-1, -1}, Color: [3]float32{0, 1, 0}},
	{Position: [2]float32{1, -1}, Color: [3]float32{0, 0, 1}},
}

// Indices draws Vertices once.
var Indices = [3]uint16{0, 1, 2}

// vertexLayout describes Vertex to the pipeline: position at location 0,
// color at location 1.
var vertexLayout = gputypes.VertexBufferLayout{
	ArrayStride: VertexStride,
	StepMode:    gputypes.VertexStepModeVertex,
	Attributes: []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 1},
	},
}

// vertexBytes encodes vertices as tightly packed little-endian float32s.
func vertexBytes(vertices []Vertex) []byte {
	buf := make([]byte, 0, len(vertices)*VertexStride)
	for _, v := range vertices {
		for _, f := range v.Position {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
		for _, f := range v.Color {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

// indexBytes encodes indices padded to a 4-byte multiple, as buffer
// writes require.
func indexBytes(indices []uint16) []byte {
	buf := make([]byte, 0, (len(indices)*2+3)&^3)
	for _, i := range indices {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	return buf
}
