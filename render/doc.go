// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render owns the GPU side of the application: instance, adapter
// and device bootstrap, the window surface, an offscreen target for
// headless frames, and WGSL validation.
//
// # Device
//
// RequestDevice picks a high-performance adapter compatible with the
// window surface and negotiates the surface format. The returned *Device
// implements gpucontext.DeviceProvider, so renderers receive the device the
// same way any gpucontext consumer does and unwrap it with WGPU.
//
// # Targets
//
// A Frame is one acquired render target. Surface hands out frames backed by
// the swapchain; Offscreen hands out frames backed by an owned texture whose
// pixels can be read back with ReadPixels.
//
// # Shaders
//
// ValidateShader runs WGSL through naga before the device sees it, so a
// broken shader fails at startup with a source-level error.
package render
