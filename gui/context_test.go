// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gui

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
)

const testTitle = "test window"

var testScreen = Rect{Max: V2(600, 600)}

func showTestWindow(ctx *Context) {
	ctx.Window(testTitle).Show(func(ui *Ui) {
		ui.Heading("wgpu and gg integration example")
	})
}

func runFrame(t *testing.T, c *Context, ppp float32, ui func(*Context), events ...Input) FullOutput {
	t.Helper()
	out, err := c.Run(RawInput{Screen: testScreen, PixelsPerPoint: ppp, Events: events}, ui)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out
}

func press(p Vec2) Input {
	return PointerButton{Pos: p, Button: gpucontext.MouseButtonLeft, Pressed: true}
}

func release(p Vec2) Input {
	return PointerButton{Pos: p, Button: gpucontext.MouseButtonLeft, Pressed: false}
}

func TestRunFirstFrameUploadsTexture(t *testing.T) {
	c := NewContext()
	out := runFrame(t, c, 1, showTestWindow)

	if len(out.Textures.Set) != 1 || len(out.Textures.Free) != 0 {
		t.Fatalf("delta = %d set / %d free, want 1 / 0", len(out.Textures.Set), len(out.Textures.Free))
	}
	img := out.Textures.Set[0]
	if img.ID == 0 {
		t.Error("texture id 0 allocated")
	}
	if len(img.Pixels) != img.Width*img.Height*4 {
		t.Errorf("len(Pixels) = %d, want %d", len(img.Pixels), img.Width*img.Height*4)
	}

	if len(out.Shapes) != 1 {
		t.Fatalf("len(Shapes) = %d, want 1", len(out.Shapes))
	}
	s := out.Shapes[0].Shape
	if s.Texture != img.ID {
		t.Errorf("shape texture = %d, want %d", s.Texture, img.ID)
	}
	r, ok := c.AreaRect(testTitle)
	if !ok {
		t.Fatal("window area not remembered")
	}
	if s.Rect != r {
		t.Errorf("shape rect %v != area %v", s.Rect, r)
	}
	if int(r.Width()) != img.Width || int(r.Height()) != img.Height {
		t.Errorf("image %dx%d does not match area %v at 1 ppp", img.Width, img.Height, r)
	}
	if r.Width() < c.Style().MinWidth {
		t.Errorf("width %v below MinWidth", r.Width())
	}
}

func TestRunReusesTexture(t *testing.T) {
	c := NewContext()
	first := runFrame(t, c, 1, showTestWindow)
	second := runFrame(t, c, 1, showTestWindow)

	if !second.Textures.IsEmpty() {
		t.Errorf("unchanged window produced delta %+v", second.Textures)
	}
	if second.Shapes[0].Shape.Texture != first.Textures.Set[0].ID {
		t.Error("unchanged window switched texture")
	}
}

func TestRunScaleChangeReplacesTexture(t *testing.T) {
	c := NewContext()
	first := runFrame(t, c, 1, showTestWindow)
	second := runFrame(t, c, 2, showTestWindow)

	if len(second.Textures.Set) != 1 {
		t.Fatalf("len(Set) = %d, want 1", len(second.Textures.Set))
	}
	oldID := first.Textures.Set[0].ID
	if len(second.Textures.Free) != 1 || second.Textures.Free[0] != oldID {
		t.Errorf("Free = %v, want [%d]", second.Textures.Free, oldID)
	}
	if second.Textures.Set[0].ID == oldID {
		t.Error("new rasterization reused the old id")
	}
	if second.Textures.Set[0].Width != 2*first.Textures.Set[0].Width {
		t.Errorf("width at 2 ppp = %d, want %d", second.Textures.Set[0].Width, 2*first.Textures.Set[0].Width)
	}
	if second.PixelsPerPoint != 2 {
		t.Errorf("PixelsPerPoint = %v, want 2", second.PixelsPerPoint)
	}
}

func TestRunContentChangeReplacesTexture(t *testing.T) {
	c := NewContext()
	first := runFrame(t, c, 1, showTestWindow)
	second := runFrame(t, c, 1, func(ctx *Context) {
		ctx.Window(testTitle).Show(func(ui *Ui) {
			ui.Heading("wgpu and gg integration example")
			ui.Separator()
			ui.Label("press space")
		})
	})
	if len(second.Textures.Set) != 1 || len(second.Textures.Free) != 1 {
		t.Fatalf("delta = %+v, want one set and one free", second.Textures)
	}
	if second.Textures.Free[0] != first.Textures.Set[0].ID {
		t.Errorf("freed %d, want %d", second.Textures.Free[0], first.Textures.Set[0].ID)
	}
}

func TestRunHiddenWindowFreesTexture(t *testing.T) {
	c := NewContext()
	first := runFrame(t, c, 1, showTestWindow)
	second := runFrame(t, c, 1, nil)

	if len(second.Shapes) != 0 {
		t.Errorf("len(Shapes) = %d, want 0", len(second.Shapes))
	}
	if len(second.Textures.Free) != 1 || second.Textures.Free[0] != first.Textures.Set[0].ID {
		t.Errorf("Free = %v, want [%d]", second.Textures.Free, first.Textures.Set[0].ID)
	}
}

func TestDragMovesWindow(t *testing.T) {
	c := NewContext()
	runFrame(t, c, 1, showTestWindow)
	start, _ := c.AreaRect(testTitle)

	grab := start.Min.Add(V2(10, 10))
	out := runFrame(t, c, 1, showTestWindow,
		PointerMoved{Pos: grab},
		press(grab),
		PointerMoved{Pos: grab.Add(V2(50, 30))},
	)
	moved, _ := c.AreaRect(testTitle)
	if moved.Min != start.Min.Add(V2(50, 30)) {
		t.Errorf("window at %v, want %v", moved.Min, start.Min.Add(V2(50, 30)))
	}
	if !c.IsUsingPointer() || !c.WantsPointerInput() {
		t.Error("dragging should use and want the pointer")
	}
	if out.Platform.Cursor != gpucontext.CursorMove {
		t.Errorf("cursor = %v, want CursorMove", out.Platform.Cursor)
	}

	end := grab.Add(V2(50, 30))
	runFrame(t, c, 1, showTestWindow, release(end), PointerMoved{Pos: end.Add(V2(100, 100))})
	after, _ := c.AreaRect(testTitle)
	if after != moved {
		t.Errorf("window moved after release: %v -> %v", moved, after)
	}
	if c.IsUsingPointer() {
		t.Error("drag still active after release")
	}
}

func TestDragClampsTitleBarOnScreen(t *testing.T) {
	c := NewContext()
	runFrame(t, c, 1, showTestWindow)
	r, _ := c.AreaRect(testTitle)
	grab := r.Min.Add(V2(5, 5))

	runFrame(t, c, 1, showTestWindow, press(grab), PointerMoved{Pos: V2(-1000, -1000)})
	got, _ := c.AreaRect(testTitle)
	if got.Min != V2(0, 0) {
		t.Errorf("dragged past top-left: min = %v, want (0,0)", got.Min)
	}

	runFrame(t, c, 1, showTestWindow, PointerMoved{Pos: V2(5000, 5000)})
	got, _ = c.AreaRect(testTitle)
	want := V2(600-r.Width(), 600-c.Style().TitleHeight)
	if got.Min != want {
		t.Errorf("dragged past bottom-right: min = %v, want %v", got.Min, want)
	}
}

func TestPressInBodyDoesNotDrag(t *testing.T) {
	c := NewContext()
	runFrame(t, c, 1, showTestWindow)
	r, _ := c.AreaRect(testTitle)
	body := V2(r.Min.X+10, r.Max.Y-2)

	runFrame(t, c, 1, showTestWindow, press(body), PointerMoved{Pos: body.Add(V2(40, 40))})
	got, _ := c.AreaRect(testTitle)
	if got != r {
		t.Errorf("body press moved window: %v -> %v", r, got)
	}
	if c.IsUsingPointer() {
		t.Error("body press started a drag")
	}
}

func TestWantsPointerInput(t *testing.T) {
	c := NewContext()
	runFrame(t, c, 1, showTestWindow)
	r, _ := c.AreaRect(testTitle)

	tests := []struct {
		name string
		ev   Input
		want bool
	}{
		{"over window", PointerMoved{Pos: r.Min.Add(V2(2, 2))}, true},
		{"outside", PointerMoved{Pos: V2(590, 590)}, false},
		{"gone", PointerGone{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runFrame(t, c, 1, showTestWindow, tt.ev)
			if got := c.WantsPointerInput(); got != tt.want {
				t.Errorf("WantsPointerInput() = %v, want %v", got, tt.want)
			}
		})
	}
	if c.WantsKeyboardInput() {
		t.Error("WantsKeyboardInput() = true with no focusable widgets")
	}
}

func TestPressRaisesWindow(t *testing.T) {
	c := NewContext()
	ui := func(ctx *Context) {
		ctx.Window("back").DefaultPos(V2(100, 100)).Show(func(ui *Ui) { ui.Label("back") })
		ctx.Window("front").DefaultPos(V2(110, 110)).Show(func(ui *Ui) { ui.Label("front") })
	}
	out := runFrame(t, c, 1, ui)
	if len(out.Shapes) != 2 {
		t.Fatalf("len(Shapes) = %d, want 2", len(out.Shapes))
	}
	frontTex := out.Shapes[1].Shape.Texture

	// (105, 105) is covered only by "back".
	out = runFrame(t, c, 1, ui, press(V2(105, 105)), release(V2(105, 105)))
	if out.Shapes[1].Shape.Texture == frontTex {
		t.Error("pressed window was not raised to the front")
	}
}

func TestRunAfterClose(t *testing.T) {
	c := NewContext()
	first := runFrame(t, c, 1, showTestWindow)

	delta, err := c.Close()
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(delta.Free) != 1 || delta.Free[0] != first.Textures.Set[0].ID {
		t.Errorf("Close() frees %v, want [%d]", delta.Free, first.Textures.Set[0].ID)
	}
	if _, err := c.Run(RawInput{Screen: testScreen}, showTestWindow); !errors.Is(err, ErrClosed) {
		t.Errorf("Run() after Close error = %v, want ErrClosed", err)
	}
	if _, err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestShowOutsideRunIsIgnored(t *testing.T) {
	c := NewContext()
	showTestWindow(c)
	if _, ok := c.AreaRect(testTitle); ok {
		t.Error("Show outside Run created a window")
	}
}
