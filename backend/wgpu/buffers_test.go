// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"strings"
	"testing"
)

func TestDeviceBufferDoubleReleasePanics(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	set := newBufferSet(device, queue)
	b, err := set.alloc(bufRays, 64, usageInput)
	if err != nil {
		t.Fatal(err)
	}
	b.release(device)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("second release did not panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "released twice") {
			t.Errorf("panic = %v, want double-release message", r)
		}
	}()
	b.release(device)
}

func TestBufferSetAllocReplaces(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	set := newBufferSet(device, queue)
	first, err := set.alloc(bufOutput, 128, usageOutput)
	if err != nil {
		t.Fatal(err)
	}
	second, err := set.alloc(bufOutput, 256, usageOutput)
	if err != nil {
		t.Fatal(err)
	}

	if !first.released {
		t.Error("replaced buffer was not released")
	}
	if second.released || set.get(bufOutput) != second {
		t.Error("new buffer not installed")
	}
	if set.live() != 1 {
		t.Errorf("live() = %d, want 1", set.live())
	}
}

func TestBufferSetMinimumSize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	set := newBufferSet(device, queue)
	b, err := set.upload(bufLights, nil, usageInput)
	if err != nil {
		t.Fatal(err)
	}
	if b.size != minBufferSize {
		t.Errorf("size = %d, want %d", b.size, minBufferSize)
	}
	set.releaseAll()
}

func TestBufferSetReleaseAll(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	set := newBufferSet(device, queue)
	var bufs []*deviceBuffer
	for _, name := range bufferOrder {
		b, err := set.alloc(name, 64, usageInput)
		if err != nil {
			t.Fatal(err)
		}
		bufs = append(bufs, b)
	}

	set.releaseAll()
	if set.live() != 0 {
		t.Errorf("live() = %d after releaseAll, want 0", set.live())
	}
	for _, b := range bufs {
		if !b.released {
			t.Errorf("buffer %q not released", b.name)
		}
	}

	// A second pass finds nothing left to release and must not panic.
	set.releaseAll()
}
