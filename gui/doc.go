// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gui is a small immediate-mode GUI.
//
// Each frame the host feeds a RawInput to Context.Run and declares its
// windows inside the callback:
//
//	out, err := ctx.Run(input, func(ctx *gui.Context) {
//		ctx.Window("test window").Show(func(ui *gui.Ui) {
//			ui.Heading("hello")
//		})
//	})
//
// Windows are rasterized on the CPU with gg and handed to the painter as
// textures (FullOutput.Textures) plus textured rectangles
// (FullOutput.Shapes), which Tessellate converts into indexed meshes. A
// window is re-rasterized only when its content, size or scale changes.
//
// Coordinates are in points; multiply by PixelsPerPoint for physical
// pixels.
package gui
