// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gui

import (
	"fmt"
	"math"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gogpu/gg"
)

type widgetKind uint8

const (
	widgetLabel widgetKind = iota
	widgetHeading
	widgetSeparator
)

type widget struct {
	kind widgetKind
	text string
}

// Ui collects the widgets of one window, top to bottom.
type Ui struct {
	widgets []widget
}

// Heading adds a large bold line of text.
func (u *Ui) Heading(s string) {
	u.widgets = append(u.widgets, widget{kind: widgetHeading, text: s})
}

// Label adds a line of body text.
func (u *Ui) Label(s string) {
	u.widgets = append(u.widgets, widget{kind: widgetLabel, text: s})
}

// Separator adds a horizontal rule.
func (u *Ui) Separator() {
	u.widgets = append(u.widgets, widget{kind: widgetSeparator})
}

// Window declares a titled, draggable panel. Titles identify windows
// across frames.
type Window struct {
	ctx        *Context
	title      string
	defaultPos *Vec2
}

// Window starts declaring the window titled title. Call Show to add it to
// the current frame.
func (c *Context) Window(title string) *Window {
	return &Window{ctx: c, title: title}
}

// DefaultPos sets where the window first appears.
func (w *Window) DefaultPos(p Vec2) *Window {
	w.defaultPos = &p
	return w
}

// Show lays out the widgets added by add and puts the window on screen.
// It must be called from inside Context.Run.
func (w *Window) Show(add func(*Ui)) {
	c := w.ctx
	if !c.running {
		return
	}
	ui := &Ui{}
	if add != nil {
		add(ui)
	}
	fs, err := c.loadFonts()
	if err != nil {
		c.fail(err)
		return
	}

	a := c.area(w.title, w.defaultPos)
	l := layoutWindow(fs, c.style, w.title, ui.widgets)
	a.size = l.size
	a.shown = true
	c.clampArea(a)

	key := panelKey(w.title, ui.widgets, l.size, c.ppp)
	id, ok := c.textures.lookup(w.title, key)
	if !ok {
		img, err := rasterizePanel(fs, c.style, w.title, l, c.ppp)
		if err != nil {
			a.texture = 0
			c.fail(err)
			return
		}
		id = c.textures.store(w.title, key, img, &c.delta)
	}
	a.texture = id
}

type placement struct {
	widget
	y    float32 // top in points, relative to the window
	size Vec2
}

type windowLayout struct {
	size  Vec2
	items []placement
}

func widgetFont(s Style, k widgetKind) (bold bool, size float32) {
	if k == widgetHeading {
		return true, s.HeadingSize
	}
	return false, s.BodySize
}

func layoutWindow(fs *fonts, s Style, title string, widgets []widget) windowLayout {
	titleW := fs.measure(title, true, s.TitleSize).X
	width := math32.Max(s.MinWidth, titleW+2*s.Padding)

	y := s.TitleHeight + s.Padding
	items := make([]placement, 0, len(widgets))
	for i, w := range widgets {
		if i > 0 {
			y += s.Spacing
		}
		var size Vec2
		if w.kind == widgetSeparator {
			size = Vec2{0, 1}
		} else {
			bold, pt := widgetFont(s, w.kind)
			size = fs.measure(w.text, bold, pt)
		}
		items = append(items, placement{widget: w, y: y, size: size})
		width = math32.Max(width, size.X+2*s.Padding)
		y += size.Y
	}
	return windowLayout{
		size:  Vec2{math32.Ceil(width), math32.Ceil(y + s.Padding)},
		items: items,
	}
}

// panelKey identifies a rasterization: equal keys render identical pixels.
func panelKey(title string, widgets []widget, size Vec2, ppp float32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q %gx%g@%g", title, size.X, size.Y, ppp)
	for _, w := range widgets {
		fmt.Fprintf(&b, "|%d:%q", w.kind, w.text)
	}
	return b.String()
}

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

// rasterizePanel draws a window with gg at ppp physical pixels per point.
func rasterizePanel(fs *fonts, s Style, title string, l windowLayout, ppp float32) (ImageDelta, error) {
	pw := int(math32.Ceil(l.size.X * ppp))
	ph := int(math32.Ceil(l.size.Y * ppp))
	if pw <= 0 || ph <= 0 {
		return ImageDelta{}, fmt.Errorf("gui: empty window %q", title)
	}
	k := float64(ppp)
	w, h := float64(pw), float64(ph)
	r := float64(s.Rounding) * k
	titleH := float64(s.TitleHeight) * k
	pad := float64(s.Padding) * k

	dc := gg.NewContext(pw, ph)
	defer func() { _ = dc.Close() }()

	// Title bar color everywhere, then the body with square top corners.
	setColor(dc, s.TitleFill)
	dc.DrawRoundedRectangle(0, 0, w, h, r)
	if err := dc.Fill(); err != nil {
		return ImageDelta{}, fmt.Errorf("gui: fill title: %w", err)
	}
	setColor(dc, s.WindowFill)
	dc.DrawRoundedRectangle(0, titleH, w, h-titleH, r)
	dc.DrawRectangle(0, titleH, w, math.Min(r, h-titleH))
	if err := dc.Fill(); err != nil {
		return ImageDelta{}, fmt.Errorf("gui: fill body: %w", err)
	}

	setColor(dc, s.Stroke)
	dc.SetLineWidth(k)
	dc.DrawRoundedRectangle(0.5*k, 0.5*k, w-k, h-k, r)
	dc.DrawLine(0, titleH, w, titleH)
	if err := dc.Stroke(); err != nil {
		return ImageDelta{}, fmt.Errorf("gui: stroke frame: %w", err)
	}

	face := fs.face(true, float64(s.TitleSize)*k)
	m := face.Metrics()
	dc.SetFont(face)
	setColor(dc, s.Strong)
	dc.DrawString(title, pad, (titleH+m.Ascent-m.Descent)/2)

	for _, it := range l.items {
		top := float64(it.y) * k
		if it.kind == widgetSeparator {
			setColor(dc, s.Stroke)
			dc.DrawLine(pad, top+0.5*k, w-pad, top+0.5*k)
			if err := dc.Stroke(); err != nil {
				return ImageDelta{}, fmt.Errorf("gui: stroke separator: %w", err)
			}
			continue
		}
		bold, pt := widgetFont(s, it.kind)
		face := fs.face(bold, float64(pt)*k)
		dc.SetFont(face)
		if it.kind == widgetHeading {
			setColor(dc, s.Strong)
		} else {
			setColor(dc, s.Text)
		}
		dc.DrawString(it.text, pad, top+face.Metrics().Ascent)
	}

	src := dc.ResizeTarget().Data()
	pixels := make([]byte, len(src))
	copy(pixels, src)
	return ImageDelta{Width: pw, Height: ph, Pixels: pixels}, nil
}
