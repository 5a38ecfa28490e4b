// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/raytrace"
)

// Defaults for the dispatch configuration.
const (
	DefaultWorkGroupSize = 32
	DefaultTimeout       = 10 * time.Second
)

type options struct {
	trace         []raytrace.Option
	layout        Layout
	workGroupSize int
	timeout       time.Duration

	provider gpucontext.DeviceProvider
	device   hal.Device
	queue    hal.Queue

	compile compileFunc
}

func defaultOptions() options {
	return options{
		layout:        DefaultLayout(),
		workGroupSize: DefaultWorkGroupSize,
		timeout:       DefaultTimeout,
		compile:       compileKernel,
	}
}

// Option configures a device backend.
type Option func(*options)

// WithTrace applies shared tracing options (bounce limit, background).
func WithTrace(opts ...raytrace.Option) Option {
	return func(o *options) {
		o.trace = append(o.trace, opts...)
	}
}

// WithLayout overrides the device record layout. The layout is validated
// by New.
func WithLayout(l Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithWorkGroupSize sets the number of invocations per work group.
// Non-positive values keep DefaultWorkGroupSize.
func WithWorkGroupSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workGroupSize = n
		}
	}
}

// WithTimeout bounds how long one dispatch may run before Trace fails.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithDeviceProvider dispatches on a device owned by provider (e.g. a
// window host) instead of opening one. The provider must also implement
// HalDevice() any and HalQueue() any. The shared device is never destroyed
// by the backend.
func WithDeviceProvider(provider gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithHAL dispatches on an existing HAL device and queue. The backend does
// not destroy them.
func WithHAL(device hal.Device, queue hal.Queue) Option {
	return func(o *options) {
		o.device = device
		o.queue = queue
	}
}

// withCompiler replaces the WGSL compiler.
func withCompiler(fn compileFunc) Option {
	return func(o *options) {
		o.compile = fn
	}
}
