// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build (linux || freebsd || netbsd || openbsd) && wayland

package window

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SurfaceHandles returns the wl_display and wl_surface.
func (w *Window) SurfaceHandles() (display, window uintptr, err error) {
	return uintptr(unsafe.Pointer(glfw.GetWaylandDisplay())), uintptr(unsafe.Pointer(w.glw.GetWaylandWindow())), nil
}
