// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gui

import (
	"errors"
	"slices"

	"github.com/gogpu/gpucontext"
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("gui: context is closed")

// FullOutput is everything one Run produced for the host and the painter.
type FullOutput struct {
	// Shapes are the frame's shapes, back to front.
	Shapes []ClippedShape

	// Textures must be applied around painting Shapes.
	Textures TexturesDelta

	// Platform carries requests to the windowing host.
	Platform PlatformOutput

	// PixelsPerPoint is the scale the frame was laid out for.
	PixelsPerPoint float32
}

// PlatformOutput is what the GUI asks of the windowing host.
type PlatformOutput struct {
	Cursor gpucontext.CursorShape
}

// area is the persistent state of one window.
type area struct {
	title   string
	pos     Vec2
	size    Vec2
	shown   bool
	texture TextureID
}

func (a *area) rect() Rect { return RectFromMinSize(a.pos, a.size) }

func (a *area) titleBar(s Style) Rect {
	return RectFromMinSize(a.pos, Vec2{a.size.X, s.TitleHeight})
}

type dragState struct {
	title string
	grab  Vec2 // pointer position relative to the window origin
}

// Context is an immediate-mode GUI: the caller re-declares its windows
// every frame inside Run, and the Context remembers positions, z-order and
// drag state between frames.
//
// Context is NOT safe for concurrent use.
type Context struct {
	style Style
	fonts *fonts

	areas map[string]*area
	order []string // back to front

	pointer    Vec2
	hasPointer bool
	drag       *dragState

	screen  Rect
	ppp     float32
	running bool
	err     error
	closed  bool

	textures *textureCache
	delta    TexturesDelta
	cursor   gpucontext.CursorShape
	wants    bool
}

// NewContext returns a Context with DefaultStyle.
func NewContext() *Context {
	return &Context{
		style:    DefaultStyle(),
		areas:    make(map[string]*area),
		textures: newTextureCache(),
		ppp:      1,
	}
}

// SetStyle replaces the style from the next frame on.
func (c *Context) SetStyle(s Style) {
	c.style = s
}

// Style returns the current style.
func (c *Context) Style() Style {
	return c.style
}

// Run processes in, calls ui to declare this frame's windows and returns
// the frame output. Textures of windows not shown this frame are freed.
func (c *Context) Run(in RawInput, ui func(*Context)) (FullOutput, error) {
	if c.closed {
		return FullOutput{}, ErrClosed
	}
	c.screen = in.Screen
	c.ppp = in.PixelsPerPoint
	if c.ppp <= 0 {
		c.ppp = 1
	}
	c.delta = TexturesDelta{}
	c.err = nil

	// Interaction uses last frame's layout.
	for _, ev := range in.Events {
		c.handle(ev)
	}
	for _, a := range c.areas {
		a.shown = false
	}

	c.running = true
	if ui != nil {
		ui(c)
	}
	c.running = false

	c.textures.sweep(&c.delta)
	if c.drag != nil {
		if a, ok := c.areas[c.drag.title]; !ok || !a.shown {
			c.drag = nil
		}
	}
	c.wants = c.drag != nil || (c.hasPointer && c.topAreaAt(c.pointer) != nil)
	c.cursor = c.cursorShape()

	out := FullOutput{
		Shapes:         c.shapes(),
		Textures:       c.delta,
		Platform:       PlatformOutput{Cursor: c.cursor},
		PixelsPerPoint: c.ppp,
	}
	c.delta = TexturesDelta{}
	return out, c.err
}

// WantsPointerInput reports whether the pointer is over a window or
// dragging one, as of the last Run.
func (c *Context) WantsPointerInput() bool {
	return c.wants
}

// IsUsingPointer reports whether a window is being dragged.
func (c *Context) IsUsingPointer() bool {
	return c.drag != nil
}

// WantsKeyboardInput reports whether a widget has keyboard focus. No
// widget takes focus, so this is always false.
func (c *Context) WantsKeyboardInput() bool {
	return false
}

// AreaRect returns the on-screen rectangle of the window titled title.
func (c *Context) AreaRect(title string) (Rect, bool) {
	a, ok := c.areas[title]
	if !ok {
		return Rect{}, false
	}
	return a.rect(), true
}

// Close releases the fonts. Live textures are returned for freeing.
func (c *Context) Close() (TexturesDelta, error) {
	if c.closed {
		return TexturesDelta{}, nil
	}
	c.closed = true
	var delta TexturesDelta
	c.textures.freeAll(&delta)
	if c.fonts != nil {
		err := c.fonts.close()
		c.fonts = nil
		return delta, err
	}
	return delta, nil
}

func (c *Context) loadFonts() (*fonts, error) {
	if c.fonts != nil {
		return c.fonts, nil
	}
	fs, err := loadFonts()
	if err != nil {
		return nil, err
	}
	c.fonts = fs
	return fs, nil
}

func (c *Context) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// area returns the persistent state for title, creating it on top of the
// z-order on first use.
func (c *Context) area(title string, defaultPos *Vec2) *area {
	if a, ok := c.areas[title]; ok {
		return a
	}
	pos := Vec2{8, 8}.Add(Vec2{16, 16}.Scale(float32(len(c.areas))))
	if defaultPos != nil {
		pos = *defaultPos
	}
	a := &area{title: title, pos: c.screen.Min.Add(pos)}
	c.areas[title] = a
	c.order = append(c.order, title)
	return a
}

// clampArea keeps the title bar of a on screen.
func (c *Context) clampArea(a *area) {
	if c.screen.IsEmpty() {
		return
	}
	maxX := c.screen.Max.X - a.size.X
	if maxX < c.screen.Min.X {
		maxX = c.screen.Min.X
	}
	maxY := c.screen.Max.Y - c.style.TitleHeight
	if maxY < c.screen.Min.Y {
		maxY = c.screen.Min.Y
	}
	a.pos.X = clamp(a.pos.X, c.screen.Min.X, maxX)
	a.pos.Y = clamp(a.pos.Y, c.screen.Min.Y, maxY)
}

func (c *Context) raise(title string) {
	i := slices.Index(c.order, title)
	if i < 0 || i == len(c.order)-1 {
		return
	}
	c.order = append(slices.Delete(c.order, i, i+1), title)
}

// topAreaAt returns the front-most shown window containing p.
func (c *Context) topAreaAt(p Vec2) *area {
	for i := len(c.order) - 1; i >= 0; i-- {
		a := c.areas[c.order[i]]
		if a.shown && a.rect().Contains(p) {
			return a
		}
	}
	return nil
}

func (c *Context) handle(ev Input) {
	switch e := ev.(type) {
	case PointerMoved:
		c.pointer, c.hasPointer = e.Pos, true
		if c.drag != nil {
			if a, ok := c.areas[c.drag.title]; ok {
				a.pos = e.Pos.Sub(c.drag.grab)
				c.clampArea(a)
			}
		}
	case PointerButton:
		c.pointer, c.hasPointer = e.Pos, true
		if e.Button != gpucontext.MouseButtonLeft {
			return
		}
		if !e.Pressed {
			c.drag = nil
			return
		}
		a := c.topAreaAt(e.Pos)
		if a == nil {
			return
		}
		c.raise(a.title)
		if a.titleBar(c.style).Contains(e.Pos) {
			c.drag = &dragState{title: a.title, grab: e.Pos.Sub(a.pos)}
		}
	case PointerGone:
		c.hasPointer = false
		c.drag = nil
	case Key, Scroll:
		// No focusable or scrollable widgets.
	}
}

func (c *Context) cursorShape() gpucontext.CursorShape {
	if c.drag != nil {
		return gpucontext.CursorMove
	}
	if c.hasPointer {
		if a := c.topAreaAt(c.pointer); a != nil && a.titleBar(c.style).Contains(c.pointer) {
			return gpucontext.CursorMove
		}
	}
	return gpucontext.CursorDefault
}

// shapes emits one textured rectangle per shown window, back to front.
func (c *Context) shapes() []ClippedShape {
	var out []ClippedShape
	for _, title := range c.order {
		a := c.areas[title]
		if !a.shown || a.texture == 0 {
			continue
		}
		out = append(out, ClippedShape{
			Clip: c.screen,
			Shape: Shape{
				Rect:    a.rect(),
				UV:      Rect{Max: Vec2{1, 1}},
				Texture: a.texture,
				Tint:    [4]float32{1, 1, 1, 1},
			},
		})
	}
	return out
}
