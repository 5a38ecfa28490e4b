// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package wgpu

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/raytrace"
	"github.com/gogpu/raytrace/backend"
)

func init() {
	backend.Register(backend.NameWGPU, func(scene raytrace.Scene, opts ...raytrace.Option) (raytrace.Backend, error) {
		return New(scene, WithTrace(opts...))
	})
}

// ErrNoBatch is returned by Render before any rays were uploaded.
var ErrNoBatch = errors.New("wgpu: no ray batch uploaded")

// Backend traces rays with a compute kernel.
//
// Setup happens once in New: device acquisition, kernel compilation, the
// pipeline and the scene buffers. Each Trace uploads a ray batch, dispatches
// one compute pass and blocks until the colors are read back.
//
// Backend is safe for concurrent use; dispatches are serialized.
type Backend struct {
	mu sync.Mutex

	dev           *gpuDevice
	layout        Layout
	cfg           raytrace.Config
	workGroupSize int
	timeout       time.Duration

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
	bindGroup  hal.BindGroup

	buffers        *bufferSet
	primitiveCount int
	lightCount     int
	rayCount       int

	closeOnce sync.Once
	closed    bool
}

// Compile-time interface check.
var _ raytrace.Backend = (*Backend)(nil)

// Stats counts the device resources a backend currently holds.
type Stats struct {
	Buffers     int
	BindGroups  int
	Pipelines   int
	Layouts     int
	Shaders     int
	OwnsDevice  bool
	RayCapacity int
}

// New sets up a device backend for scene.
//
// On failure every resource created so far is released and the error is
// returned: ErrNoDevice when no device could be acquired, ErrInvalidLayout
// for a bad WithLayout, or *BuildError when the kernel does not compile.
func New(scene raytrace.Scene, opts ...Option) (*Backend, error) {
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.layout.Validate(); err != nil {
		return nil, err
	}

	dev, err := acquireDevice(&o)
	if err != nil {
		return nil, err
	}

	b := &Backend{
		dev:           dev,
		layout:        o.layout,
		cfg:           raytrace.NewConfig(o.trace...),
		workGroupSize: o.workGroupSize,
		timeout:       o.timeout,
		buffers:       newBufferSet(dev.device, dev.queue),
	}
	if err := b.setup(scene, o.compile); err != nil {
		b.release()
		return nil, err
	}
	return b, nil
}

func acquireDevice(o *options) (*gpuDevice, error) {
	switch {
	case o.device != nil || o.queue != nil:
		return sharedDevice(o.device, o.queue)
	case o.provider != nil:
		return providerDevice(o.provider)
	default:
		return openDevice()
	}
}

func (b *Backend) setup(scene raytrace.Scene, compile compileFunc) error {
	source, err := renderKernel(newKernelConfig(b.layout, b.workGroupSize, b.cfg.MaxBounces))
	if err != nil {
		return err
	}
	spirv, err := compile(source)
	if err != nil {
		return err
	}
	raytrace.Logger().Info("wgpu: kernel built",
		"words", len(spirv),
		"workGroupSize", b.workGroupSize,
		"stack", b.cfg.MaxBounces+2)

	if err := b.createPipeline(spirv); err != nil {
		return err
	}
	return b.uploadScene(scene)
}

func (b *Backend) createPipeline(spirv []uint32) error {
	device := b.dev.device

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "raytrace_kernel",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create shader module: %w", err)
	}
	b.shader = shader

	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "raytrace_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 3, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 4, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	b.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "raytrace_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout

	pipeline, err := device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   "raytrace_pipeline",
		Layout:  b.pipeLayout,
		Compute: hal.ComputeState{Module: b.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create compute pipeline: %w", err)
	}
	b.pipeline = pipeline
	return nil
}

// uploadScene marshals primitives, lights and the initial params once.
func (b *Backend) uploadScene(scene raytrace.Scene) error {
	prims := marshalPrimitives(scene.Primitives, b.layout)
	if _, err := b.buffers.upload(bufPrimitives, prims, usageInput); err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	lights := marshalLights(scene.Lights)
	if _, err := b.buffers.upload(bufLights, lights, usageInput); err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	b.primitiveCount = len(scene.Primitives)
	b.lightCount = len(scene.Lights)

	if _, err := b.buffers.upload(bufParams, marshalParams(b.params(0)), usageParams); err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}

	raytrace.Logger().Debug("wgpu: scene uploaded",
		"primitives", b.primitiveCount,
		"primitiveBytes", len(prims),
		"lights", b.lightCount,
		"lightBytes", len(lights))
	return nil
}

func (b *Backend) params(rays int) kernelParams {
	return kernelParams{
		RayCount:       uint32(rays),             //nolint:gosec // batch sizes fit uint32
		PrimitiveCount: uint32(b.primitiveCount), //nolint:gosec // scene sizes fit uint32
		LightCount:     uint32(b.lightCount),     //nolint:gosec // scene sizes fit uint32
		MaxBounces:     uint32(b.cfg.MaxBounces), //nolint:gosec // non-negative by construction
		Background:     b.cfg.Background,
		Skin:           raytrace.SkinOffset,
		ShadeMode:      b.cfg.ShadeMode,
	}
}

// Name returns "wgpu".
func (b *Backend) Name() string { return backend.NameWGPU }

// Config returns the tracing configuration bound at construction.
func (b *Backend) Config() raytrace.Config { return b.cfg }

// Trace uploads rays, runs the kernel once over them and returns one color
// per ray. Device buffers are reused while the batch size stays the same.
func (b *Backend) Trace(rays []raytrace.Ray) ([]raytrace.Color, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, raytrace.ErrClosed
	}
	if len(rays) == 0 {
		return []raytrace.Color{}, nil
	}

	if err := b.prepareBatch(len(rays)); err != nil {
		return nil, err
	}
	if err := b.buffers.write(bufRays, marshalRays(rays)); err != nil {
		return nil, fmt.Errorf("wgpu: %w", err)
	}
	if err := b.buffers.write(bufParams, marshalParams(b.params(len(rays)))); err != nil {
		return nil, fmt.Errorf("wgpu: %w", err)
	}
	return b.dispatch()
}

// Render dispatches the kernel again over the most recently uploaded batch.
func (b *Backend) Render() ([]raytrace.Color, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, raytrace.ErrClosed
	}
	if b.rayCount == 0 {
		return nil, ErrNoBatch
	}
	return b.dispatch()
}

// prepareBatch (re)allocates the per-batch buffers and the bind group when
// the batch size changes.
func (b *Backend) prepareBatch(n int) error {
	if n == b.rayCount && b.bindGroup != nil {
		return nil
	}
	if b.bindGroup != nil {
		b.dev.device.DestroyBindGroup(b.bindGroup)
		b.bindGroup = nil
	}
	b.rayCount = 0

	outSize := uint64(n) * colorSize
	if _, err := b.buffers.alloc(bufRays, uint64(n)*raySize, usageInput); err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	if _, err := b.buffers.alloc(bufOutput, outSize, usageOutput); err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}
	if _, err := b.buffers.alloc(bufStaging, outSize, usageStaging); err != nil {
		return fmt.Errorf("wgpu: %w", err)
	}

	bg, err := b.dev.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "raytrace_bind",
		Layout: b.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: b.buffers.get(bufParams).binding()},
			{Binding: 1, Resource: b.buffers.get(bufPrimitives).binding()},
			{Binding: 2, Resource: b.buffers.get(bufLights).binding()},
			{Binding: 3, Resource: b.buffers.get(bufRays).binding()},
			{Binding: 4, Resource: b.buffers.get(bufOutput).binding()},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}
	b.bindGroup = bg
	b.rayCount = n

	raytrace.Logger().Debug("wgpu: batch buffers allocated",
		"rays", n, "rayBytes", n*raySize, "outputBytes", outSize)
	return nil
}

// workGroups returns the number of work groups covering n invocations.
func workGroups(n, size int) uint32 {
	return uint32((n + size - 1) / size) //nolint:gosec // batch sizes fit uint32
}

// pollInterval is how long dispatch sleeps between completion polls.
const pollInterval = 50 * time.Microsecond

// dispatch records one compute pass over the current batch, waits for it
// and reads the colors back.
func (b *Backend) dispatch() ([]raytrace.Color, error) {
	start := time.Now()
	device, queue := b.dev.device, b.dev.queue
	n := b.rayCount
	outSize := uint64(n) * colorSize

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "raytrace_encoder"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("raytrace"); err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "raytrace_pass"})
	pass.SetPipeline(b.pipeline)
	pass.SetBindGroup(0, b.bindGroup, nil)
	pass.Dispatch(workGroups(n, b.workGroupSize), 1, 1)
	pass.End()

	staging := b.buffers.get(bufStaging).buf
	encoder.CopyBufferToBuffer(b.buffers.get(bufOutput).buf, staging, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: outSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	idx, err := queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return nil, fmt.Errorf("wgpu: submit: %w", err)
	}
	if !waitSubmission(queue, idx, b.timeout) {
		// The command buffer is still in flight; it must not be freed yet.
		b.drain()
		return nil, fmt.Errorf("wgpu: wait for GPU: timed out after %v", b.timeout)
	}

	mapping, err := device.MapBuffer(staging, 0, outSize)
	if err != nil {
		return nil, fmt.Errorf("wgpu: map staging buffer: %w", err)
	}
	colors := unmarshalColors(unsafe.Slice((*byte)(mapping.Ptr), outSize), n)
	if err := device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("wgpu: unmap staging buffer: %w", err)
	}

	raytrace.Logger().Debug("wgpu: dispatch complete",
		"rays", n,
		"groups", workGroups(n, b.workGroupSize),
		"elapsed", time.Since(start))
	return colors, nil
}

// waitSubmission polls queue until submission idx completes or timeout
// elapses. It reports whether the submission completed.
func waitSubmission(queue hal.Queue, idx uint64, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for queue.PollCompleted() < idx {
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
	return true
}

// drain blocks until the device has finished all submitted work.
func (b *Backend) drain() {
	if err := b.dev.device.WaitIdle(); err != nil {
		raytrace.Logger().Warn("wgpu: wait idle failed", "err", err)
	}
}

// Stats reports the resources currently held.
func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Stats{
		Buffers:     b.buffers.live(),
		OwnsDevice:  b.dev != nil && !b.dev.external && b.dev.device != nil,
		RayCapacity: b.rayCount,
	}
	if b.bindGroup != nil {
		s.BindGroups = 1
	}
	if b.pipeline != nil {
		s.Pipelines = 1
	}
	if b.pipeLayout != nil {
		s.Layouts++
	}
	if b.bindLayout != nil {
		s.Layouts++
	}
	if b.shader != nil {
		s.Shaders = 1
	}
	return s
}

// Close releases every device resource in dependency order. A shared device
// is left untouched. Close is safe to call more than once.
func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.closed = true
		b.release()
	})
	return nil
}

// release waits for the device to go idle, then destroys whatever has been
// created so far: bind group, buffers, pipeline, pipeline layout, bind group
// layout, shader, then the device.
func (b *Backend) release() {
	device := b.dev.device
	if device != nil {
		b.drain()
	}
	if b.bindGroup != nil {
		device.DestroyBindGroup(b.bindGroup)
		b.bindGroup = nil
	}
	b.buffers.releaseAll()
	b.rayCount = 0
	if b.pipeline != nil {
		device.DestroyComputePipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.pipeLayout != nil {
		device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.bindLayout != nil {
		device.DestroyBindGroupLayout(b.bindLayout)
		b.bindLayout = nil
	}
	if b.shader != nil {
		device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
	b.dev.destroy()
}
