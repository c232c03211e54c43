// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package overlay draws the GUI layer on top of the background. It feeds
// window events to a gui.Context, runs one GUI frame per tick and paints
// the result with a LOAD pass so the layer below stays visible.
package overlay

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/guidemo"
	"github.com/gogpu/guidemo/event"
	"github.com/gogpu/guidemo/gui"
	"github.com/gogpu/guidemo/render"
)

// ErrNilProvider is returned by New without a device provider or painter.
var ErrNilProvider = errors.New("overlay: nil device provider")

const (
	// WindowTitle is the title of the demo window.
	WindowTitle = "test window"

	// Heading is the heading shown inside the demo window.
	Heading = "wgpu and gg integration example"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPainter replaces the wgpu painter. The provider passed to New may
// then be nil.
func WithPainter(p Painter) Option {
	return func(r *Renderer) {
		r.painter = p
	}
}

// WithUI replaces the demo window with a custom GUI declaration.
func WithUI(ui func(*gui.Context)) Option {
	return func(r *Renderer) {
		r.ui = ui
	}
}

// Renderer is the GUI overlay. It is driven from the frame loop thread and
// is not safe for concurrent use.
type Renderer struct {
	ctx     *gui.Context
	painter Painter
	ui      func(*gui.Context)

	events  []gui.Input
	ppp     float32
	focused bool

	pending *gui.FullOutput
	cursor  gpucontext.CursorShape

	// unapplied holds texture changes a failed Render did not reach.
	unapplied gui.TexturesDelta
}

// New creates the overlay for color targets of format.
func New(provider render.DeviceHandle, format gputypes.TextureFormat, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		ctx:     gui.NewContext(),
		ui:      demoUI,
		ppp:     1,
		focused: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.painter == nil {
		if provider == nil {
			return nil, ErrNilProvider
		}
		p, err := NewPainter(provider, format)
		if err != nil {
			return nil, err
		}
		r.painter = p
	}
	return r, nil
}

func demoUI(ctx *gui.Context) {
	ctx.Window(WindowTitle).Show(func(ui *gui.Ui) {
		ui.Heading(Heading)
	})
}

// HandleInput queues ev for the next Update and reports whether the GUI
// consumed it, based on the GUI state after the last Update. Pointer
// events are consumed over a window or during a drag; keys only while a
// widget has keyboard focus. Window-level events are never consumed.
func (r *Renderer) HandleInput(ev event.Event) bool {
	switch e := ev.(type) {
	case event.ScaleFactorChanged:
		if e.Scale > 0 {
			r.ppp = float32(e.Scale)
		}
		return false
	case event.Focused:
		r.focused = e.Focused
		return false
	}

	in, ok := toGUI(ev, r.ppp)
	if !ok {
		return false
	}
	r.events = append(r.events, in)

	switch ev.(type) {
	case event.PointerMoved:
		return r.ctx.IsUsingPointer()
	case event.PointerButton, event.Scroll:
		return r.ctx.WantsPointerInput()
	case event.KeyboardInput:
		return r.ctx.WantsKeyboardInput()
	default:
		return false
	}
}

// Update runs one GUI frame for win and keeps its output for Render.
func (r *Renderer) Update(win gpucontext.WindowProvider) {
	if win != nil {
		if s := float32(win.ScaleFactor()); s > 0 {
			r.ppp = s
		}
	}
	in := gui.RawInput{
		Screen:         r.screen(win),
		PixelsPerPoint: r.ppp,
		Events:         r.events,
		Focused:        r.focused,
	}
	r.events = nil

	out, err := r.ctx.Run(in, r.ui)
	if errors.Is(err, gui.ErrClosed) {
		return
	}
	if err != nil {
		guidemo.Logger().Warn("overlay: gui frame incomplete", "err", err)
	}

	// Texture changes of frames that were never rendered still have to
	// reach the painter, ahead of this frame's.
	delta := r.unapplied
	r.unapplied = gui.TexturesDelta{}
	if r.pending != nil {
		delta.Append(r.pending.Textures)
	}
	if !delta.IsEmpty() {
		delta.Append(out.Textures)
		out.Textures = delta
	}
	r.pending = &out
	r.cursor = out.Platform.Cursor
}

func (r *Renderer) screen(win gpucontext.WindowProvider) gui.Rect {
	if win == nil {
		return gui.Rect{}
	}
	w, h := win.Size()
	return gui.Rect{Max: gui.V2(float32(w), float32(h))}
}

// HasPending reports whether an Update output awaits rendering.
func (r *Renderer) HasPending() bool {
	return r.pending != nil
}

// Cursor returns the cursor shape the GUI asked for in the last Update.
func (r *Renderer) Cursor() gpucontext.CursorShape {
	return r.cursor
}

// Render paints the pending GUI output into view, a width x height
// target. Without pending output it records nothing. Texture uploads
// happen before the pass and texture frees after it; the pending output
// is consumed on every path. Uploads a failure skipped are retried by the
// next Update.
func (r *Renderer) Render(enc *wgpu.CommandEncoder, view *wgpu.TextureView, win gpucontext.WindowProvider, width, height uint32) error {
	if r.pending == nil {
		return nil
	}
	out := r.pending
	r.pending = nil
	defer func() {
		for _, id := range out.Textures.Free {
			r.painter.FreeTexture(id)
		}
	}()

	for i, img := range out.Textures.Set {
		if err := r.painter.SetTexture(img); err != nil {
			r.unapplied.Set = append(r.unapplied.Set, out.Textures.Set[i:]...)
			return err
		}
	}

	ppp := out.PixelsPerPoint
	if win != nil {
		ppp = float32(win.ScaleFactor())
	}
	prims := gui.Tessellate(out.Shapes, ppp)
	screen := ScreenDescriptor{Width: width, Height: height, PixelsPerPoint: ppp}
	if err := r.painter.Paint(enc, view, prims, screen); err != nil {
		return fmt.Errorf("overlay: paint: %w", err)
	}
	return nil
}

// Release frees the GUI textures and the painter.
func (r *Renderer) Release() {
	delta, err := r.ctx.Close()
	if err != nil {
		guidemo.Logger().Warn("overlay: close gui", "err", err)
	}
	for _, id := range delta.Free {
		r.painter.FreeTexture(id)
	}
	r.painter.Release()
	r.pending = nil
	r.unapplied = gui.TexturesDelta{}
}
