// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/raytrace"
)

// ErrNoDevice is returned when no usable GPU device can be opened.
var ErrNoDevice = errors.New("wgpu: no GPU device")

// gpuDevice is the device and queue a backend dispatches on.
type gpuDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	name     string

	// external is true when the device belongs to someone else and must
	// not be destroyed by the backend.
	external bool
}

// openDevice creates a Vulkan instance and opens the best adapter,
// preferring discrete and integrated GPUs over software ones.
func openDevice() (*gpuDevice, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not available", ErrNoDevice)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %v", ErrNoDevice, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no GPU adapters found", ErrNoDevice)
	}
	selected := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %v", ErrNoDevice, err)
	}

	raytrace.Logger().Info("wgpu: GPU selected",
		"name", selected.Info.Name,
		"type", selected.Info.DeviceType)
	return &gpuDevice{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		name:     selected.Info.Name,
	}, nil
}

// sharedDevice wraps a device owned by the caller.
func sharedDevice(device hal.Device, queue hal.Queue) (*gpuDevice, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w: nil shared device or queue", ErrNoDevice)
	}
	return &gpuDevice{device: device, queue: queue, name: "shared", external: true}, nil
}

// providerDevice extracts HAL handles from a device provider such as a
// windowing host. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func providerDevice(provider gpucontext.DeviceProvider) (*gpuDevice, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose HAL types", ErrNoDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNoDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNoDevice)
	}
	return sharedDevice(device, queue)
}

// destroy releases the device and instance unless they are shared.
func (d *gpuDevice) destroy() {
	if d.external {
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}
