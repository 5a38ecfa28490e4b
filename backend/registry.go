package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/raytrace"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for backend selection (first that sets up wins).
	// The device backend is preferred; the CPU backend always works.
	backendPriority = []string{NameWGPU, NameCPU}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the sorted names of registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

func lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Open creates the named backend for scene.
func Open(name string, scene raytrace.Scene, opts ...raytrace.Option) (raytrace.Backend, error) {
	factory, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	b, err := factory(scene, opts...)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return b, nil
}

// OpenDefault creates the best backend that sets up successfully.
// Priority order: wgpu > cpu, then any other registered backend in name order.
// A backend that fails setup is logged at Warn level and skipped.
func OpenDefault(scene raytrace.Scene, opts ...raytrace.Option) (raytrace.Backend, error) {
	tried := make(map[string]bool)
	order := make([]string, 0, len(backendPriority))
	order = append(order, backendPriority...)
	order = append(order, Available()...)

	for _, name := range order {
		if tried[name] {
			continue
		}
		tried[name] = true

		factory, ok := lookup(name)
		if !ok {
			continue
		}
		b, err := factory(scene, opts...)
		if err != nil {
			raytrace.Logger().Warn("backend: setup failed, falling back",
				"backend", name, "err", err)
			continue
		}
		raytrace.Logger().Info("backend: selected", "backend", name)
		return b, nil
	}
	return nil, ErrBackendNotAvailable
}
