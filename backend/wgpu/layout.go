// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
)

// Record sizes shared by the marshaller and the kernel, in bytes.
const (
	vec4Size      = 16
	mat4Size      = 64
	materialSize  = 4 * vec4Size // ambient, diffuse, specular, coefficients
	lightSize     = 4 * vec4Size // ambient, diffuse, specular, position
	raySize       = 2 * vec4Size // origin, direction
	colorSize     = vec4Size     // rgb + unused w
	paramsSize    = 48 // counts, background + skin, shade mode + padding
	primitiveHead = materialSize + 3*mat4Size + 4 // material, three matrices, kind

	// minBufferSize keeps storage bindings non-empty for scenes without
	// primitives or lights.
	minBufferSize = 16
)

// DefaultPrimitiveTrailer is the end-of-record padding after the primitive
// kind word. With it a primitive record is 272 bytes.
const DefaultPrimitiveTrailer = 12

// ErrInvalidLayout is returned by Layout.Validate.
var ErrInvalidLayout = errors.New("wgpu: invalid record layout")

// Layout describes the device-side primitive record.
//
// The primitive record is the material, the model-view, inverse and
// inverse-transpose matrices, the kind word and PrimitiveTrailer bytes of
// padding. The same Layout generates the kernel's struct declaration, so the
// host and the kernel always agree on the stride.
type Layout struct {
	PrimitiveTrailer int
}

// DefaultLayout returns the 272-byte primitive layout.
func DefaultLayout() Layout {
	return Layout{PrimitiveTrailer: DefaultPrimitiveTrailer}
}

// PrimitiveStride returns the size of one primitive record in bytes.
func (l Layout) PrimitiveStride() int {
	return primitiveHead + l.PrimitiveTrailer
}

// Validate checks that the trailer is whole 32-bit words and that the stride
// satisfies the 16-byte alignment of storage structs.
func (l Layout) Validate() error {
	if l.PrimitiveTrailer < 0 || l.PrimitiveTrailer%4 != 0 {
		return fmt.Errorf("%w: trailer %d is not a multiple of 4", ErrInvalidLayout, l.PrimitiveTrailer)
	}
	if s := l.PrimitiveStride(); s%16 != 0 {
		return fmt.Errorf("%w: primitive stride %d is not a multiple of 16", ErrInvalidLayout, s)
	}
	return nil
}

// trailerWords returns the indices of the padding words, for the kernel template.
func (l Layout) trailerWords() []int {
	words := make([]int, l.PrimitiveTrailer/4)
	for i := range words {
		words[i] = i
	}
	return words
}
