// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cpu

import "github.com/gogpu/raytrace"

type options struct {
	trace     []raytrace.Option
	workers   int
	chunkSize int
}

func defaultOptions() options {
	return options{
		workers:   1,
		chunkSize: 256,
	}
}

// Option configures a CPU backend.
type Option func(*options)

// WithTrace applies shared tracing options (bounce limit, background).
func WithTrace(opts ...raytrace.Option) Option {
	return func(o *options) {
		o.trace = append(o.trace, opts...)
	}
}

// WithWorkers traces batches on n goroutines. Values below 2 keep the
// default strictly sequential evaluation.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChunkSize sets how many consecutive rays one worker traces at a time.
// It only matters together with WithWorkers. Non-positive values are ignored.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}
