// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"testing"
)

const testShader = `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var pos = array<vec2<f32>, 3>(
        vec2<f32>(0.0, 0.5),
        vec2<f32>(-0.5, -0.5),
        vec2<f32>(0.5, -0.5)
    );
    return vec4<f32>(pos[idx], 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

func TestValidateShader(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		entryPoints []string
		wantErr     bool
	}{
		{"valid", testShader, []string{"vs_main", "fs_main"}, false},
		{"no entry points requested", testShader, nil, false},
		{"missing entry point", testShader, []string{"vs_main", "main"}, true},
		{"syntax error", "@vertex fn broken( {", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShader(tt.src, tt.entryPoints...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateShader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrShaderInvalid) {
				t.Errorf("error %v does not wrap ErrShaderInvalid", err)
			}
		})
	}
}
