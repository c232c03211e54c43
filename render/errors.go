// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

var (
	// ErrNoAdapter is returned when no adapter or device can be obtained.
	ErrNoAdapter = errors.New("render: no compatible GPU adapter")

	// ErrUnsupportedPlatform is returned when a window surface cannot be
	// created on the current platform.
	ErrUnsupportedPlatform = errors.New("render: unsupported platform")

	// ErrShaderInvalid is returned when WGSL source fails validation.
	ErrShaderInvalid = errors.New("render: invalid shader")

	// ErrNotWGPU is returned when a DeviceProvider does not carry wgpu objects.
	ErrNotWGPU = errors.New("render: provider is not backed by wgpu")

	// ErrInvalidSize is returned when a surface or target is configured
	// with a zero dimension.
	ErrInvalidSize = errors.New("render: invalid size")

	// ErrNotConfigured is returned by Acquire before Configure succeeded.
	ErrNotConfigured = errors.New("render: target not configured")
)
