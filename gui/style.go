// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gui

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Style holds the metrics (in points) and colors of window panels.
type Style struct {
	Padding     float32
	Spacing     float32
	TitleHeight float32
	Rounding    float32
	MinWidth    float32

	TitleSize   float32
	HeadingSize float32
	BodySize    float32

	WindowFill gg.RGBA
	TitleFill  gg.RGBA
	Stroke     gg.RGBA
	Text       gg.RGBA
	Strong     gg.RGBA
}

// DefaultStyle returns a dark theme.
func DefaultStyle() Style {
	return Style{
		Padding:     8,
		Spacing:     6,
		TitleHeight: 24,
		Rounding:    6,
		MinWidth:    120,

		TitleSize:   14,
		HeadingSize: 20,
		BodySize:    14,

		WindowFill: gg.RGBA{R: 0.106, G: 0.106, B: 0.106, A: 0.96},
		TitleFill:  gg.RGBA{R: 0.16, G: 0.16, B: 0.16, A: 1},
		Stroke:     gg.RGBA{R: 0.24, G: 0.24, B: 0.24, A: 1},
		Text:       gg.RGBA{R: 0.82, G: 0.82, B: 0.82, A: 1},
		Strong:     gg.RGBA{R: 1, G: 1, B: 1, A: 1},
	}
}

type faceKey struct {
	bold bool
	size float64
}

// fonts lazily parses the Go fonts and caches faces per size.
type fonts struct {
	regular *text.FontSource
	bold    *text.FontSource
	faces   map[faceKey]text.Face
}

func loadFonts() (*fonts, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("gui: load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		_ = regular.Close()
		return nil, fmt.Errorf("gui: load bold font: %w", err)
	}
	return &fonts{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]text.Face),
	}, nil
}

func (f *fonts) face(bold bool, size float64) text.Face {
	k := faceKey{bold: bold, size: size}
	if face, ok := f.faces[k]; ok {
		return face
	}
	src := f.regular
	if bold {
		src = f.bold
	}
	face := src.Face(size)
	f.faces[k] = face
	return face
}

// measure returns the advance width and line height of s.
func (f *fonts) measure(s string, bold bool, size float32) Vec2 {
	face := f.face(bold, float64(size))
	w, _ := text.Measure(s, face)
	m := face.Metrics()
	return Vec2{float32(w), float32(m.Ascent + m.Descent)}
}

func (f *fonts) close() error {
	f.faces = nil
	errR := f.regular.Close()
	errB := f.bold.Close()
	if errR != nil {
		return errR
	}
	return errB
}
