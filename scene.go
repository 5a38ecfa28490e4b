package raytrace

import (
	"fmt"
	"io"
)

// Scene is the read-only input of a render: primitives and the lights that
// illuminate them.
type Scene struct {
	Primitives []Primitive
	Lights     []Light
}

// Validate checks every primitive's material.
func (s Scene) Validate() error {
	for i, p := range s.Primitives {
		if err := p.material.Validate(); err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
	}
	return nil
}

// SceneLoader produces a fully populated Scene from an encoded description.
// Package sceneio provides a JSON implementation.
type SceneLoader interface {
	Load(r io.Reader) (Scene, error)
}
