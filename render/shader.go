// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"
)

// ValidateShader parses, lowers and validates WGSL source with naga and
// checks that every named entry point is declared. Failures wrap
// ErrShaderInvalid.
func ValidateShader(src string, entryPoints ...string) error {
	ast, err := naga.Parse(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShaderInvalid, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShaderInvalid, err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShaderInvalid, err)
	}
	if len(verrs) > 0 {
		return fmt.Errorf("%w: %w", ErrShaderInvalid, &verrs[0])
	}

	declared := make(map[string]bool, len(module.EntryPoints))
	for _, ep := range module.EntryPoints {
		declared[ep.Name] = true
	}
	for _, name := range entryPoints {
		if !declared[name] {
			return fmt.Errorf("%w: missing entry point %q", ErrShaderInvalid, name)
		}
	}
	return nil
}

// CompileShader validates src and creates a shader module from it.
func CompileShader(device *wgpu.Device, label, src string, entryPoints ...string) (*wgpu.ShaderModule, error) {
	if err := ValidateShader(src, entryPoints...); err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSL:  src,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create shader module %s: %w", label, err)
	}
	return module, nil
}
