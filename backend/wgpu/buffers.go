// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Buffer names. releaseAll destroys them in this order.
const (
	bufRays       = "rays"
	bufOutput     = "output"
	bufStaging    = "staging"
	bufParams     = "params"
	bufPrimitives = "primitives"
	bufLights     = "lights"
)

var bufferOrder = []string{bufRays, bufOutput, bufStaging, bufParams, bufPrimitives, bufLights}

// Buffer usages per role. Inputs are bound read-only; the kernel only writes
// the output buffer, which is copied into a mappable staging buffer.
const (
	usageInput   = gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst
	usageParams  = gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
	usageOutput  = gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc
	usageStaging = gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst
)

// deviceBuffer is a device allocation that must be released exactly once.
type deviceBuffer struct {
	name     string
	buf      hal.Buffer
	size     uint64
	released bool
}

// release destroys the allocation. Releasing twice is a programming error.
func (b *deviceBuffer) release(device hal.Device) {
	if b.released {
		panic(fmt.Sprintf("wgpu: buffer %q released twice", b.name))
	}
	b.released = true
	if b.buf != nil {
		device.DestroyBuffer(b.buf)
		b.buf = nil
	}
}

// binding returns the whole-buffer binding resource.
func (b *deviceBuffer) binding() gputypes.BufferBinding {
	return gputypes.BufferBinding{Buffer: b.buf.NativeHandle(), Offset: 0, Size: b.size}
}

// bufferSet owns the named buffers of one backend instance.
type bufferSet struct {
	device hal.Device
	queue  hal.Queue
	bufs   map[string]*deviceBuffer
}

func newBufferSet(device hal.Device, queue hal.Queue) *bufferSet {
	return &bufferSet{device: device, queue: queue, bufs: make(map[string]*deviceBuffer)}
}

// alloc creates the named buffer, replacing and releasing any previous one.
func (s *bufferSet) alloc(name string, size uint64, usage gputypes.BufferUsage) (*deviceBuffer, error) {
	size = max(size, minBufferSize)
	buf, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "raytrace_" + name,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s buffer (%d bytes): %w", name, size, err)
	}
	if old, ok := s.bufs[name]; ok {
		old.release(s.device)
	}
	b := &deviceBuffer{name: name, buf: buf, size: size}
	s.bufs[name] = b
	return b, nil
}

// upload allocates the named buffer sized to data and writes data into it.
func (s *bufferSet) upload(name string, data []byte, usage gputypes.BufferUsage) (*deviceBuffer, error) {
	b, err := s.alloc(name, uint64(len(data)), usage)
	if err != nil {
		return nil, err
	}
	if err := s.queue.WriteBuffer(b.buf, 0, data); err != nil {
		return nil, fmt.Errorf("write %s buffer: %w", name, err)
	}
	return b, nil
}

// write overwrites the start of an existing buffer.
func (s *bufferSet) write(name string, data []byte) error {
	if err := s.queue.WriteBuffer(s.bufs[name].buf, 0, data); err != nil {
		return fmt.Errorf("write %s buffer: %w", name, err)
	}
	return nil
}

// get returns the named buffer, or nil.
func (s *bufferSet) get(name string) *deviceBuffer {
	return s.bufs[name]
}

// live returns the number of unreleased buffers.
func (s *bufferSet) live() int {
	return len(s.bufs)
}

// releaseAll releases every buffer once, in bufferOrder.
func (s *bufferSet) releaseAll() {
	for _, name := range bufferOrder {
		if b, ok := s.bufs[name]; ok {
			b.release(s.device)
			delete(s.bufs, name)
		}
	}
	for name, b := range s.bufs {
		b.release(s.device)
		delete(s.bufs, name)
	}
}
