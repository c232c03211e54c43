// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !linux && !freebsd && !netbsd && !openbsd && !windows

package window

import (
	"fmt"
	"runtime"

	"github.com/gogpu/guidemo/render"
)

// SurfaceHandles is not implemented on this platform; macOS needs a
// CAMetalLayer-backed NSView that GLFW 3.3 does not expose.
func (w *Window) SurfaceHandles() (display, window uintptr, err error) {
	return 0, 0, fmt.Errorf("%w: %s", render.ErrUnsupportedPlatform, runtime.GOOS)
}
