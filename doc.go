// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package guidemo is a small wgpu application: a vertex-colored triangle
// drawn over a background color, with an immediate-mode GUI window
// composited on top. Pressing Space picks a new background color from a
// seeded generator.
//
// # Architecture
//
// The root package holds the shared logger and the Config. The work is
// split into packages composed by frame.State:
//   - event: the closed set of window events the application reacts to
//   - render: GPU device, surfaces, offscreen targets and shader validation
//   - background: triangle pipeline and background color
//   - gui: immediate-mode GUI core rasterized with gg
//   - overlay: GUI input handling and GPU painting in a load pass
//   - frame: per-frame orchestration and frame error policy
//   - window: GLFW host feeding events into frame.State
//
// Each frame records two passes into one command encoder: the background
// pass clears and draws the triangle, then the overlay pass loads the
// result and draws the GUI on top.
package guidemo
