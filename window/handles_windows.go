// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package window

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// SurfaceHandles returns the HINSTANCE of the executable and the HWND.
func (w *Window) SurfaceHandles() (display, window uintptr, err error) {
	var module windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &module); err != nil {
		return 0, 0, fmt.Errorf("window: module handle: %w", err)
	}
	return uintptr(module), uintptr(unsafe.Pointer(w.glw.GetWin32Window())), nil
}
