// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/raytrace"
)

// The device mirror records are produced by the pure functions below. They
// never touch domain types beyond reading them, and every value is written
// little-endian as float32 or uint32.

func putF32(dst []byte, v float64) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v)))
}

func putVec4(dst []byte, x, y, z, w float64) {
	putF32(dst[0:], x)
	putF32(dst[4:], y)
	putF32(dst[8:], z)
	putF32(dst[12:], w)
}

func putColor(dst []byte, c raytrace.Color) {
	putVec4(dst, c.R, c.G, c.B, 0)
}

// putMat4 writes m column by column, which is both mgl64's storage order and
// the layout of mat4x4<f32>.
func putMat4(dst []byte, m mgl64.Mat4) {
	for i, v := range m {
		putF32(dst[i*4:], v)
	}
}

// marshalMaterial writes the 64-byte material record.
func marshalMaterial(dst []byte, m raytrace.Material) {
	putColor(dst[0:], m.Ambient)
	putColor(dst[16:], m.Diffuse)
	putColor(dst[32:], m.Specular)
	putVec4(dst[48:], m.Absorption, m.Reflection, m.Transparency, m.Shininess)
}

// marshalPrimitive writes one primitive record of l.PrimitiveStride() bytes.
// Trailer bytes are zeroed.
func marshalPrimitive(dst []byte, p raytrace.Primitive, l Layout) {
	marshalMaterial(dst, p.Material())
	off := materialSize
	putMat4(dst[off:], p.Transform())
	off += mat4Size
	putMat4(dst[off:], p.Inverse())
	off += mat4Size
	putMat4(dst[off:], p.InverseTranspose())
	off += mat4Size
	binary.LittleEndian.PutUint32(dst[off:], uint32(p.Kind()))
	clear(dst[primitiveHead:l.PrimitiveStride()])
}

// marshalLight writes the 64-byte light record.
func marshalLight(dst []byte, light raytrace.Light) {
	putColor(dst[0:], light.Ambient)
	putColor(dst[16:], light.Diffuse)
	putColor(dst[32:], light.Specular)
	pos := light.Position
	putVec4(dst[48:], pos.X(), pos.Y(), pos.Z(), pos.W())
}

// marshalRay writes the 32-byte ray record. The origin is a point (w=1) and
// the direction a vector (w=0); the direction is not normalized.
func marshalRay(dst []byte, r raytrace.Ray) {
	putVec4(dst[0:], r.Origin.X(), r.Origin.Y(), r.Origin.Z(), 1)
	putVec4(dst[16:], r.Direction.X(), r.Direction.Y(), r.Direction.Z(), 0)
}

// kernelParams is the uniform block of one dispatch.
type kernelParams struct {
	RayCount       uint32
	PrimitiveCount uint32
	LightCount     uint32
	MaxBounces     uint32
	Background     raytrace.Color
	Skin           float64
	ShadeMode      raytrace.ShadeMode
}

// marshalParams returns the 48-byte uniform record.
func marshalParams(p kernelParams) []byte {
	buf := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(buf[0:], p.RayCount)
	binary.LittleEndian.PutUint32(buf[4:], p.PrimitiveCount)
	binary.LittleEndian.PutUint32(buf[8:], p.LightCount)
	binary.LittleEndian.PutUint32(buf[12:], p.MaxBounces)
	putVec4(buf[16:], p.Background.R, p.Background.G, p.Background.B, p.Skin)
	binary.LittleEndian.PutUint32(buf[32:], uint32(p.ShadeMode))
	return buf
}

// marshalPrimitives packs every primitive. The result is never smaller than
// minBufferSize.
func marshalPrimitives(prims []raytrace.Primitive, l Layout) []byte {
	stride := l.PrimitiveStride()
	buf := make([]byte, max(len(prims)*stride, minBufferSize))
	for i, p := range prims {
		marshalPrimitive(buf[i*stride:], p, l)
	}
	return buf
}

// marshalLights packs every light. The result is never smaller than
// minBufferSize.
func marshalLights(lights []raytrace.Light) []byte {
	buf := make([]byte, max(len(lights)*lightSize, minBufferSize))
	for i, light := range lights {
		marshalLight(buf[i*lightSize:], light)
	}
	return buf
}

// marshalRays packs a ray batch.
func marshalRays(rays []raytrace.Ray) []byte {
	buf := make([]byte, max(len(rays)*raySize, minBufferSize))
	for i, r := range rays {
		marshalRay(buf[i*raySize:], r)
	}
	return buf
}

// unmarshalColors reads n vec4 colors. A short buffer is a programming
// error and panics.
func unmarshalColors(src []byte, n int) []raytrace.Color {
	if len(src) < n*colorSize {
		panic(fmt.Sprintf("wgpu: readback of %d bytes cannot hold %d colors", len(src), n))
	}
	out := make([]raytrace.Color, n)
	for i := range out {
		b := src[i*colorSize:]
		out[i] = raytrace.Color{
			R: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
			G: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
			B: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
		}
	}
	return out
}
