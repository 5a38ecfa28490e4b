// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cpu implements the host ray tracing backend.
//
// Every ray is evaluated with raytrace.Trace, which follows reflection and
// transmission bounces recursively up to the configured limit. By default
// rays are processed strictly in order on the calling goroutine; WithWorkers
// splits a batch into disjoint chunks traced by a worker pool.
package cpu

import (
	"sync"
	"time"

	"github.com/gogpu/raytrace"
	"github.com/gogpu/raytrace/backend"
	"github.com/gogpu/raytrace/internal/parallel"
)

func init() {
	backend.Register(backend.NameCPU, func(scene raytrace.Scene, opts ...raytrace.Option) (raytrace.Backend, error) {
		return New(scene, WithTrace(opts...))
	})
}

// Backend traces rays on the host.
//
// A Backend is not safe for concurrent Trace calls.
type Backend struct {
	scene raytrace.Scene
	cfg   raytrace.Config

	workers   int
	chunkSize int
	pool      *parallel.Pool

	closeOnce sync.Once
	closed    bool
}

// Compile-time interface check.
var _ raytrace.Backend = (*Backend)(nil)

// New creates a CPU backend bound to scene.
// It returns an error if a material in scene is invalid.
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

	b := &Backend{
		scene:     scene,
		cfg:       raytrace.NewConfig(o.trace...),
		workers:   o.workers,
		chunkSize: o.chunkSize,
	}
	if b.workers > 1 {
		b.pool = parallel.NewPool(b.workers)
	}

	raytrace.Logger().Debug("cpu: backend ready",
		"primitives", len(scene.Primitives),
		"lights", len(scene.Lights),
		"maxBounces", b.cfg.MaxBounces,
		"workers", max(b.workers, 1))
	return b, nil
}

// Name returns "cpu".
func (b *Backend) Name() string { return backend.NameCPU }

// Config returns the tracing configuration bound at construction.
func (b *Backend) Config() raytrace.Config { return b.cfg }

// Trace returns the color of every ray, index-aligned with rays.
func (b *Backend) Trace(rays []raytrace.Ray) ([]raytrace.Color, error) {
	if b.closed {
		return nil, raytrace.ErrClosed
	}

	start := time.Now()
	out := make([]raytrace.Color, len(rays))
	if b.pool == nil {
		b.traceRange(rays, out, 0, len(rays))
	} else {
		b.pool.Range(len(rays), b.chunkSize, func(lo, hi int) {
			b.traceRange(rays, out, lo, hi)
		})
	}

	raytrace.Logger().Debug("cpu: traced batch",
		"rays", len(rays), "elapsed", time.Since(start))
	return out, nil
}

// traceRange writes out[lo:hi]. Chunks never overlap, so no locking is needed.
func (b *Backend) traceRange(rays []raytrace.Ray, out []raytrace.Color, lo, hi int) {
	for i := lo; i < hi; i++ {
		out[i] = raytrace.Trace(rays[i], &b.scene, b.cfg)
	}
}

// Close stops the worker pool, if any. It is safe to call more than once.
func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		b.closed = true
		if b.pool != nil {
			b.pool.Close()
		}
	})
	return nil
}
