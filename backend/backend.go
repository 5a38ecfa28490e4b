package backend

import (
	"errors"

	"github.com/gogpu/raytrace"
)

// Backend names registered by this module.
const (
	// NameCPU is the host evaluator in backend/cpu.
	NameCPU = "cpu"

	// NameWGPU is the compute-kernel evaluator in backend/wgpu.
	NameWGPU = "wgpu"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no registered backend could be
	// set up. It is the same value as raytrace.ErrBackendNotAvailable.
	ErrBackendNotAvailable = raytrace.ErrBackendNotAvailable

	// ErrUnknownBackend is returned when a requested backend name is not registered.
	ErrUnknownBackend = errors.New("backend: unknown backend")
)

// Factory creates a backend bound to scene. It performs the whole setup phase
// and returns an error if any step fails; on error nothing stays allocated.
type Factory func(scene raytrace.Scene, opts ...raytrace.Option) (raytrace.Backend, error)
