// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/guidemo/event"
	"github.com/gogpu/guidemo/gui"
)

// mockPainter records painter calls in order.
type mockPainter struct {
	calls    []string
	prims    []gui.ClippedPrimitive
	screen   ScreenDescriptor
	live     map[gui.TextureID]bool
	paintErr error
	setErr   error
	released bool
}

func newMockPainter() *mockPainter {
	return &mockPainter{live: make(map[gui.TextureID]bool)}
}

func (m *mockPainter) SetTexture(img gui.ImageDelta) error {
	if m.setErr != nil {
		m.calls = append(m.calls, fmt.Sprintf("set %d failed", img.ID))
		return m.setErr
	}
	m.calls = append(m.calls, fmt.Sprintf("set %d", img.ID))
	m.live[img.ID] = true
	return nil
}

func (m *mockPainter) FreeTexture(id gui.TextureID) {
	m.calls = append(m.calls, fmt.Sprintf("free %d", id))
	delete(m.live, id)
}

func (m *mockPainter) Paint(_ *wgpu.CommandEncoder, _ *wgpu.TextureView, prims []gui.ClippedPrimitive, screen ScreenDescriptor) error {
	m.calls = append(m.calls, "paint")
	m.prims = prims
	m.screen = screen
	return m.paintErr
}

func (m *mockPainter) Release() { m.released = true }

func newTestRenderer(t *testing.T) (*Renderer, *mockPainter) {
	t.Helper()
	p := newMockPainter()
	r, err := New(nil, gputypes.TextureFormatRGBA8Unorm, WithPainter(p))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r, p
}

var testWindow = gpucontext.NullWindowProvider{W: 600, H: 600}

func TestNewRequiresProviderOrPainter(t *testing.T) {
	if _, err := New(nil, gputypes.TextureFormatRGBA8Unorm); !errors.Is(err, ErrNilProvider) {
		t.Errorf("New(nil) error = %v, want ErrNilProvider", err)
	}
}

func TestRenderWithoutUpdateIsNoop(t *testing.T) {
	r, p := newTestRenderer(t)
	if err := r.Render(nil, nil, testWindow, 600, 600); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(p.calls) != 0 {
		t.Errorf("painter calls = %v, want none", p.calls)
	}
}

func TestUpdateRenderOrder(t *testing.T) {
	r, p := newTestRenderer(t)

	r.Update(testWindow)
	if !r.HasPending() {
		t.Fatal("Update left nothing pending")
	}
	if err := r.Render(nil, nil, testWindow, 600, 600); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if r.HasPending() {
		t.Error("Render did not consume the pending output")
	}
	if len(p.calls) != 2 || p.calls[0] != "set 1" || p.calls[1] != "paint" {
		t.Fatalf("calls = %v, want [set 1 paint]", p.calls)
	}
	if len(p.prims) != 1 || p.prims[0].Mesh.Texture != 1 {
		t.Errorf("prims = %+v, want one mesh on texture 1", p.prims)
	}
	if p.screen != (ScreenDescriptor{Width: 600, Height: 600, PixelsPerPoint: 1}) {
		t.Errorf("screen = %+v", p.screen)
	}

	// Second render in the same frame does nothing.
	p.calls = nil
	if err := r.Render(nil, nil, testWindow, 600, 600); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(p.calls) != 0 {
		t.Errorf("calls = %v, want none", p.calls)
	}
}

func TestScaleChangeFreesAfterPaint(t *testing.T) {
	r, p := newTestRenderer(t)
	r.Update(testWindow)
	if err := r.Render(nil, nil, testWindow, 600, 600); err != nil {
		t.Fatal(err)
	}

	p.calls = nil
	hidpi := gpucontext.NullWindowProvider{W: 600, H: 600, SF: 2}
	r.Update(hidpi)
	if err := r.Render(nil, nil, hidpi, 1200, 1200); err != nil {
		t.Fatal(err)
	}
	want := []string{"set 2", "paint", "free 1"}
	if fmt.Sprint(p.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
	if len(p.live) != 1 || !p.live[2] {
		t.Errorf("live textures = %v, want only 2", p.live)
	}
}

func TestPaintErrorConsumesPending(t *testing.T) {
	r, p := newTestRenderer(t)
	p.paintErr = errors.New("boom")
	r.Update(testWindow)
	if err := r.Render(nil, nil, testWindow, 600, 600); err == nil {
		t.Fatal("Render() error = nil, want paint error")
	}
	if r.HasPending() {
		t.Error("pending output kept after a failed render")
	}
}

// checkDrawnTexturesLive fails if the last paint drew a texture the painter
// does not hold.
func checkDrawnTexturesLive(t *testing.T, p *mockPainter) {
	t.Helper()
	for _, prim := range p.prims {
		if !p.live[prim.Mesh.Texture] {
			t.Errorf("paint used texture %d, live = %v", prim.Mesh.Texture, p.live)
		}
	}
}

func TestUpdateTwiceKeepsTextureUploads(t *testing.T) {
	r, p := newTestRenderer(t)

	// The first frame is skipped before Render, as after a lost surface.
	r.Update(testWindow)
	r.Update(testWindow)
	if err := r.Render(nil, nil, testWindow, 600, 600); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := []string{"set 1", "paint"}; fmt.Sprint(p.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
	checkDrawnTexturesLive(t, p)

	for i := range 3 {
		r.Update(testWindow)
		if err := r.Render(nil, nil, testWindow, 600, 600); err != nil {
			t.Fatalf("frame %d: Render() error = %v", i, err)
		}
		checkDrawnTexturesLive(t, p)
	}
}

func TestSkippedFrameKeepsSetAndFreeOrder(t *testing.T) {
	r, p := newTestRenderer(t)
	r.Update(testWindow)
	if err := r.Render(nil, nil, testWindow, 600, 600); err != nil {
		t.Fatal(err)
	}

	p.calls = nil
	hidpi := gpucontext.NullWindowProvider{W: 600, H: 600, SF: 2}
	r.Update(hidpi)
	r.Update(hidpi)
	if err := r.Render(nil, nil, hidpi, 1200, 1200); err != nil {
		t.Fatal(err)
	}
	if want := []string{"set 2", "paint", "free 1"}; fmt.Sprint(p.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
	checkDrawnTexturesLive(t, p)
}

func TestSetTextureErrorRetriesUpload(t *testing.T) {
	r, p := newTestRenderer(t)
	p.setErr = errors.New("out of memory")
	r.Update(testWindow)
	if err := r.Render(nil, nil, testWindow, 600, 600); err == nil {
		t.Fatal("Render() error = nil, want upload error")
	}
	if r.HasPending() {
		t.Error("pending output kept after a failed upload")
	}

	p.setErr = nil
	p.calls = nil
	r.Update(testWindow)
	if err := r.Render(nil, nil, testWindow, 600, 600); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := []string{"set 1", "paint"}; fmt.Sprint(p.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
	checkDrawnTexturesLive(t, p)
}

func TestHandleInputConsumption(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Update(testWindow)
	r.Render(nil, nil, testWindow, 600, 600)

	area, ok := r.ctx.AreaRect(WindowTitle)
	if !ok {
		t.Fatal("demo window missing")
	}
	inside := area.Min.Add(gui.V2(4, 4))

	tests := []struct {
		name string
		ev   event.Event
		want bool
	}{
		{"press before any hover", event.PointerButton{Button: gpucontext.MouseButtonLeft, Pressed: true, X: float64(inside.X), Y: float64(inside.Y)}, false},
		{"space", event.KeyboardInput{Key: gpucontext.KeySpace, Pressed: true}, false},
		{"resize", event.Resized{Width: 10, Height: 10}, false},
		{"close", event.CloseRequested{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.HandleInput(tt.ev); got != tt.want {
				t.Errorf("HandleInput(%s) = %v, want %v", event.Name(tt.ev), got, tt.want)
			}
		})
	}
}

func TestHandleInputWantsPointerAfterHover(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Update(testWindow)
	area, _ := r.ctx.AreaRect(WindowTitle)
	inside := area.Min.Add(gui.V2(4, 4))

	r.HandleInput(event.PointerMoved{X: float64(inside.X), Y: float64(inside.Y)})
	r.Update(testWindow)

	press := event.PointerButton{Button: gpucontext.MouseButtonLeft, Pressed: true, X: float64(inside.X), Y: float64(inside.Y)}
	if !r.HandleInput(press) {
		t.Error("press over hovered window not consumed")
	}
	r.Update(testWindow)
	if !r.HandleInput(event.PointerMoved{X: float64(inside.X) + 20, Y: float64(inside.Y)}) {
		t.Error("move during drag not consumed")
	}
	if r.Cursor() != gpucontext.CursorMove {
		t.Errorf("Cursor() = %v, want CursorMove", r.Cursor())
	}
	if r.HandleInput(event.KeyboardInput{Key: gpucontext.KeySpace, Pressed: true}) {
		t.Error("space consumed with no focused widget")
	}
}

func TestReleaseFreesTextures(t *testing.T) {
	r, p := newTestRenderer(t)
	r.Update(testWindow)
	r.Render(nil, nil, testWindow, 600, 600)

	r.Release()
	if len(p.live) != 0 {
		t.Errorf("live textures after Release = %v", p.live)
	}
	if !p.released {
		t.Error("painter not released")
	}
	r.Update(testWindow)
	if r.HasPending() {
		t.Error("Update after Release produced output")
	}
}
