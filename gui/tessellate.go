// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gui

import "github.com/chewxy/math32"

// Shape is a textured rectangle in points. UV spans the texture region to
// sample; Tint multiplies the sampled premultiplied color.
type Shape struct {
	Rect    Rect
	UV      Rect
	Texture TextureID
	Tint    [4]float32
}

// ClippedShape is a Shape plus the clip rectangle (points) it is drawn in.
type ClippedShape struct {
	Clip  Rect
	Shape Shape
}

// Vertex is a mesh vertex: position in points, texture coordinate and
// premultiplied linear color.
type Vertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// Mesh is an indexed triangle list sampling a single texture.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Texture  TextureID
}

// ClippedPrimitive is a Mesh plus its clip rectangle in points.
type ClippedPrimitive struct {
	Clip Rect
	Mesh Mesh
}

// Tessellate turns shapes into meshes. Rectangle edges are snapped to the
// physical pixel grid at ppp; shapes that are clipped away are dropped, and
// consecutive shapes sharing a texture and clip rectangle share a mesh.
func Tessellate(shapes []ClippedShape, ppp float32) []ClippedPrimitive {
	if ppp <= 0 {
		ppp = 1
	}
	var out []ClippedPrimitive
	for _, cs := range shapes {
		r := snapRect(cs.Shape.Rect, ppp)
		if r.IsEmpty() || cs.Clip.Intersect(r).IsEmpty() {
			continue
		}
		n := len(out)
		if n == 0 || out[n-1].Clip != cs.Clip || out[n-1].Mesh.Texture != cs.Shape.Texture {
			out = append(out, ClippedPrimitive{
				Clip: cs.Clip,
				Mesh: Mesh{Texture: cs.Shape.Texture},
			})
			n++
		}
		appendRect(&out[n-1].Mesh, r, cs.Shape.UV, cs.Shape.Tint)
	}
	return out
}

func snap(v, ppp float32) float32 {
	return math32.Round(v*ppp) / ppp
}

func snapRect(r Rect, ppp float32) Rect {
	return Rect{
		Min: Vec2{snap(r.Min.X, ppp), snap(r.Min.Y, ppp)},
		Max: Vec2{snap(r.Max.X, ppp), snap(r.Max.Y, ppp)},
	}
}

// appendRect adds the two triangles covering r.
func appendRect(m *Mesh, r, uv Rect, tint [4]float32) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: [2]float32{r.Min.X, r.Min.Y}, UV: [2]float32{uv.Min.X, uv.Min.Y}, Color: tint},
		Vertex{Pos: [2]float32{r.Max.X, r.Min.Y}, UV: [2]float32{uv.Max.X, uv.Min.Y}, Color: tint},
		Vertex{Pos: [2]float32{r.Max.X, r.Max.Y}, UV: [2]float32{uv.Max.X, uv.Max.Y}, Color: tint},
		Vertex{Pos: [2]float32{r.Min.X, r.Max.Y}, UV: [2]float32{uv.Min.X, uv.Max.Y}, Color: tint},
	)
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}
