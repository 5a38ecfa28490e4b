package raytrace

import "errors"

// Geometry model errors.
var (
	// ErrSingularTransform is returned when a primitive transform has no inverse.
	ErrSingularTransform = errors.New("raytrace: singular transform")

	// ErrUnknownKind is returned for a primitive kind the engines cannot intersect.
	ErrUnknownKind = errors.New("raytrace: unknown primitive kind")

	// ErrInvalidMaterial is returned by Material.Validate.
	ErrInvalidMaterial = errors.New("raytrace: invalid material")

	// ErrUnknownShadeMode is returned by ParseShadeMode.
	ErrUnknownShadeMode = errors.New("raytrace: unknown shade mode")
)

// Backend errors.
var (
	// ErrClosed is returned by Trace after Close.
	ErrClosed = errors.New("raytrace: backend is closed")

	// ErrBackendNotAvailable is returned when a backend cannot run in this
	// build or on this machine.
	ErrBackendNotAvailable = errors.New("raytrace: backend not available")
)
