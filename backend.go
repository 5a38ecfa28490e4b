package raytrace

// Backend traces batches of rays against a scene bound at construction.
//
// Implementations process every ray independently and return one color per
// ray, index-aligned with the input. Trace may be called repeatedly on the
// same instance; scene setup is not redone. Close releases everything the
// backend acquired; Trace after Close returns ErrClosed.
//
// Two implementations live in this module:
//   - backend/cpu evaluates rays on the host with recursive bounces
//   - backend/wgpu dispatches a compute kernel with an iterative bounce loop
type Backend interface {
	// Name returns the backend identifier (e.g. "cpu", "wgpu").
	Name() string

	// Trace returns the color of every ray.
	Trace(rays []Ray) ([]Color, error)

	// Close releases backend resources. It is safe to call more than once.
	Close() error
}
