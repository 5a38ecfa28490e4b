// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/gogpu/naga"

	"github.com/gogpu/raytrace"
)

//go:embed shaders/trace.wgsl.tmpl
var kernelTemplateSource string

var kernelTemplate = template.Must(template.New("trace.wgsl").Parse(kernelTemplateSource))

// BuildError reports a kernel that failed to compile. Log holds the
// compiler diagnostics and Source the generated WGSL.
type BuildError struct {
	Log    string
	Source string
}

func (e *BuildError) Error() string {
	return "wgpu: kernel build failed: " + e.Log
}

// kernelConfig holds the values substituted into the kernel template.
type kernelConfig struct {
	WorkGroupSize   int
	StackSize       int
	PrimitiveStride int
	TrailerWords    []int
	SphereKind      uint32
	BoxKind         uint32
	MissDistance    string
	ShadeHitTest    uint32
	ShadeNormals    uint32
	ShadeAmbient    uint32
}

func newKernelConfig(l Layout, workGroupSize, maxBounces int) kernelConfig {
	return kernelConfig{
		WorkGroupSize:   workGroupSize,
		StackSize:       maxBounces + 2,
		PrimitiveStride: l.PrimitiveStride(),
		TrailerWords:    l.trailerWords(),
		SphereKind:      uint32(raytrace.Sphere),
		BoxKind:         uint32(raytrace.Box),
		MissDistance:    "3.4e38",
		ShadeHitTest:    uint32(raytrace.ShadeHitTest),
		ShadeNormals:    uint32(raytrace.ShadeNormals),
		ShadeAmbient:    uint32(raytrace.ShadeAmbient),
	}
}

// renderKernel expands the kernel template for one configuration.
func renderKernel(cfg kernelConfig) (string, error) {
	var sb strings.Builder
	if err := kernelTemplate.Execute(&sb, cfg); err != nil {
		return "", fmt.Errorf("wgpu: render kernel template: %w", err)
	}
	return sb.String(), nil
}

// compileFunc turns WGSL source into SPIR-V words.
type compileFunc func(source string) ([]uint32, error)

// compileKernel compiles WGSL with naga. Failures are returned as *BuildError.
func compileKernel(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, &BuildError{Log: err.Error(), Source: source}
	}
	if len(spirvBytes)%4 != 0 {
		return nil, &BuildError{
			Log:    fmt.Sprintf("SPIR-V output of %d bytes is not word aligned", len(spirvBytes)),
			Source: source,
		}
	}

	// Convert bytes to uint32 slice for SPIR-V
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}
