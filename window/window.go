// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window hosts the demo in a GLFW window. It creates a window
// without a client API for a WebGPU surface, translates GLFW callbacks
// into event values and pumps the frame loop.
//
// GLFW must be driven from the main thread; the package locks it in init.
package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/guidemo"
	"github.com/gogpu/guidemo/event"
)

func init() {
	runtime.LockOSThread()
}

// ErrInit is returned when GLFW or the window cannot be created.
var ErrInit = errors.New("window: init failed")

// Loop is the per-frame work driven by Run. *frame.State implements it.
type Loop interface {
	DispatchInput(ev event.Event) bool
	Redraw() error
	Cursor() gpucontext.CursorShape
}

// Window is a GLFW window. It implements gpucontext.WindowProvider.
type Window struct {
	glw     *glfw.Window
	events  []event.Event
	cursors map[glfw.StandardCursor]*glfw.Cursor
	cursor  gpucontext.CursorShape
}

// New initializes GLFW and opens a cfg.Width x cfg.Height window titled
// cfg.Title.
func New(cfg guidemo.Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	glw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %w", ErrInit, err)
	}

	w := &Window{
		glw:     glw,
		cursors: make(map[glfw.StandardCursor]*glfw.Cursor),
	}
	w.install()
	guidemo.Logger().Info("window: created", "title", cfg.Title, "scale", w.ScaleFactor())
	return w, nil
}

func (w *Window) push(ev event.Event) {
	w.events = append(w.events, ev)
}

func (w *Window) install() {
	w.glw.SetCloseCallback(func(*glfw.Window) {
		w.push(event.CloseRequested{})
	})
	w.glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(event.Resized{Width: width, Height: height})
	})
	w.glw.SetContentScaleCallback(func(g *glfw.Window, x, _ float32) {
		width, height := g.GetFramebufferSize()
		w.push(event.ScaleFactorChanged{Scale: float64(x), Width: width, Height: height})
	})
	w.glw.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.push(event.Focused{Focused: focused})
	})
	w.glw.SetRefreshCallback(func(*glfw.Window) {
		w.push(event.RedrawRequested{})
	})
	w.glw.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		w.push(event.KeyboardInput{
			Key:     translateKey(key),
			Pressed: action != glfw.Release,
			Mods:    translateMods(mods),
		})
	})
	w.glw.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		r := w.pixelRatio()
		w.push(event.PointerMoved{X: x * r, Y: y * r})
	})
	w.glw.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			w.push(event.PointerLeft{})
		}
	})
	w.glw.SetMouseButtonCallback(func(g *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		x, y := g.GetCursorPos()
		r := w.pixelRatio()
		w.push(event.PointerButton{
			Button:  b,
			Pressed: action == glfw.Press,
			X:       x * r,
			Y:       y * r,
			Mods:    translateMods(mods),
		})
	})
	w.glw.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.push(event.Scroll{DX: dx, DY: dy})
	})
}

// pixelRatio converts GLFW screen coordinates to framebuffer pixels.
// It is 1 except where the OS scales coordinates (macOS).
func (w *Window) pixelRatio() float64 {
	ww, _ := w.glw.GetSize()
	fw, _ := w.glw.GetFramebufferSize()
	if ww == 0 || fw == 0 {
		return 1
	}
	return float64(fw) / float64(ww)
}

// Size returns the framebuffer size in logical points.
func (w *Window) Size() (width, height int) {
	fw, fh := w.glw.GetFramebufferSize()
	s := w.ScaleFactor()
	return int(float64(fw)/s + 0.5), int(float64(fh)/s + 0.5)
}

// PixelSize returns the framebuffer size in physical pixels.
func (w *Window) PixelSize() (width, height int) {
	return w.glw.GetFramebufferSize()
}

// ScaleFactor returns the monitor content scale.
func (w *Window) ScaleFactor() float64 {
	x, _ := w.glw.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

// RequestRedraw wakes the event loop.
func (w *Window) RequestRedraw() {
	glfw.PostEmptyEvent()
}

// SetCursor switches to the GLFW standard cursor closest to c.
func (w *Window) SetCursor(c gpucontext.CursorShape) {
	if c == w.cursor {
		return
	}
	w.cursor = c
	shape, ok := standardCursor(c)
	if !ok {
		w.glw.SetCursor(nil)
		return
	}
	cur, ok := w.cursors[shape]
	if !ok {
		cur = glfw.CreateStandardCursor(shape)
		w.cursors[shape] = cur
	}
	w.glw.SetCursor(cur)
}

// Run pumps window events into loop and redraws once per iteration until
// the window is closed or loop reports a fatal error. While the window
// is minimized it blocks for events instead of rendering.
func (w *Window) Run(loop Loop) error {
	for {
		if w.minimized() {
			glfw.WaitEvents()
		} else {
			glfw.PollEvents()
		}

		events := w.events
		w.events = nil
		for _, ev := range events {
			if _, ok := ev.(event.CloseRequested); ok {
				guidemo.Logger().Info("window: close requested")
				return nil
			}
			loop.DispatchInput(ev)
		}
		if w.glw.ShouldClose() {
			return nil
		}
		if w.minimized() {
			continue
		}

		if err := loop.Redraw(); err != nil {
			return err
		}
		w.SetCursor(loop.Cursor())
	}
}

func (w *Window) minimized() bool {
	fw, fh := w.glw.GetFramebufferSize()
	return fw == 0 || fh == 0
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	for _, c := range w.cursors {
		c.Destroy()
	}
	w.cursors = nil
	w.glw.Destroy()
	glfw.Terminate()
}

var _ gpucontext.WindowProvider = (*Window)(nil)
