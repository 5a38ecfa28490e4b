// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build nogpu

package wgpu

import (
	"github.com/gogpu/raytrace"
	"github.com/gogpu/raytrace/backend"
)

// init registers a factory that always fails when the nogpu tag is set,
// so backend.OpenDefault falls back to the CPU backend.
func init() {
	backend.Register(backend.NameWGPU, func(raytrace.Scene, ...raytrace.Option) (raytrace.Backend, error) {
		return nil, raytrace.ErrBackendNotAvailable
	})
}
