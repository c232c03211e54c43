// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	_ "github.com/gogpu/wgpu/hal/allbackends" // register platform backends
)

// BackendsSoftware selects only the CPU rasterizer.
const BackendsSoftware = wgpu.Backends(1 << gputypes.BackendEmpty)

// ParseBackends maps a backend name to a wgpu backend mask.
// "auto" enables every backend with the CPU rasterizer as last resort.
func ParseBackends(name string) (wgpu.Backends, error) {
	switch name {
	case "auto", "":
		return wgpu.BackendsAll | BackendsSoftware, nil
	case "vulkan":
		return gputypes.BackendsVulkan, nil
	case "metal":
		return gputypes.BackendsMetal, nil
	case "dx12":
		return gputypes.BackendsDX12, nil
	case "gles":
		return gputypes.BackendsGL, nil
	case "software":
		return BackendsSoftware, nil
	default:
		return 0, fmt.Errorf("render: unknown backend %q", name)
	}
}

// NewInstance creates a wgpu instance limited to backends.
func NewInstance(backends wgpu.Backends) (*wgpu.Instance, error) {
	inst, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: backends})
	if err != nil {
		return nil, fmt.Errorf("render: create instance: %w", err)
	}
	return inst, nil
}
