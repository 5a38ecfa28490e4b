// Package backend selects ray tracing backends by name.
//
// Backend packages register a Factory from init(), so importing them for
// side effects makes them available:
//
//	import (
//		_ "github.com/gogpu/raytrace/backend/cpu"
//		_ "github.com/gogpu/raytrace/backend/wgpu"
//	)
//
// # Backend Selection
//
// Use OpenDefault to get the best backend that sets up on this machine, or
// Open to request one by name:
//
//	b, err := backend.OpenDefault(scene, raytrace.WithMaxBounces(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	colors, err := b.Trace(rays)
//
// # Available Backends
//
//   - "cpu": host evaluator with recursive bounces (always available)
//   - "wgpu": compute kernel dispatched through gogpu/wgpu (needs a GPU)
package backend
