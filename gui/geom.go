// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gui

import "github.com/chewxy/math32"

// Vec2 is a position or size in points.
type Vec2 struct {
	X, Y float32
}

// V2 returns Vec2{x, y}.
func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns a*s.
func (a Vec2) Scale(s float32) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Rect is an axis-aligned rectangle. Min is inclusive, Max exclusive.
type Rect struct {
	Min, Max Vec2
}

// RectFromMinSize returns the rectangle at origin with the given size.
func RectFromMinSize(origin, size Vec2) Rect {
	return Rect{Min: origin, Max: origin.Add(size)}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Size returns the extent as a vector.
func (r Rect) Size() Vec2 { return Vec2{r.Width(), r.Height()} }

// IsEmpty reports whether r contains no points.
func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and o. The result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Min: Vec2{math32.Max(r.Min.X, o.Min.X), math32.Max(r.Min.Y, o.Min.Y)},
		Max: Vec2{math32.Min(r.Max.X, o.Max.X), math32.Min(r.Max.Y, o.Max.Y)},
	}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Scale returns r with both corners multiplied by s.
func (r Rect) Scale(s float32) Rect {
	return Rect{Min: r.Min.Scale(s), Max: r.Max.Scale(s)}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}
