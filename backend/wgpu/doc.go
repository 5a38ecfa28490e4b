// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements the compute-kernel ray tracing backend on top of
// gogpu/wgpu.
//
// # Phases
//
// New performs the whole setup: it opens a Vulkan device (or borrows one
// through WithDeviceProvider or WithHAL), renders the WGSL kernel from
// shaders/trace.wgsl.tmpl, compiles it with naga, creates the compute
// pipeline and uploads the scene's primitives and lights once.
//
// Trace uploads a ray batch, dispatches ceil(n/WorkGroupSize) work groups of
// one invocation per ray, polls the queue until the submission completes and
// maps the staging buffer to read the colors back. Render repeats the last
// dispatch without uploading anything. A dispatch that exceeds WithTimeout
// waits for the device to go idle before its command buffer is freed, and
// Close does the same before releasing anything.
//
// # Records
//
// Host data is copied into device mirror records by pure marshal functions:
//
//	Material   64 bytes   ambient, diffuse, specular, (absorption, reflection, transparency, shininess)
//	Primitive 272 bytes   material, model-view, inverse, inverse-transpose, kind, 12-byte trailer
//	Light      64 bytes   ambient, diffuse, specular, position
//	Ray        32 bytes   origin (w=1), direction (w=0)
//	Params     48 bytes   counts, max bounces, background, skin offset, shade mode
//
// The primitive trailer is configurable with WithLayout; the kernel's struct
// declaration is generated from the same Layout.
//
// # Build Tags
//
// Building with -tags nogpu replaces the backend with a stub whose factory
// returns raytrace.ErrBackendNotAvailable.
package wgpu
