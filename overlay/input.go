// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"github.com/gogpu/guidemo/event"
	"github.com/gogpu/guidemo/gui"
)

// pointsPerLine converts scroll lines to points.
const pointsPerLine = 50

// toGUI converts a window event into GUI input. Positions arrive in
// physical pixels and are divided by ppp. The second result is false for
// events the GUI has no input for.
func toGUI(ev event.Event, ppp float32) (gui.Input, bool) {
	if ppp <= 0 {
		ppp = 1
	}
	pos := func(x, y float64) gui.Vec2 {
		return gui.V2(float32(x)/ppp, float32(y)/ppp)
	}
	switch e := ev.(type) {
	case event.PointerMoved:
		return gui.PointerMoved{Pos: pos(e.X, e.Y)}, true
	case event.PointerButton:
		return gui.PointerButton{Pos: pos(e.X, e.Y), Button: e.Button, Pressed: e.Pressed, Mods: e.Mods}, true
	case event.PointerLeft:
		return gui.PointerGone{}, true
	case event.Scroll:
		return gui.Scroll{Delta: gui.V2(float32(e.DX)*pointsPerLine, float32(e.DY)*pointsPerLine)}, true
	case event.KeyboardInput:
		return gui.Key{Key: e.Key, Pressed: e.Pressed, Mods: e.Mods}, true
	default:
		return nil, false
	}
}
