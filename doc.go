// Package raytrace renders static 3D scenes by ray tracing.
//
// # Overview
//
// A scene is a list of primitives (unit spheres and unit boxes placed by a
// model-to-view transform) and a list of point or directional lights. A render
// job is a scene plus one ray per pixel. The package provides the pieces every
// backend shares:
//
//   - the geometry model: [Ray], [Material], [Primitive], [Light], [HitRecord]
//   - the intersection engine: [Intersect]
//   - the shading engine: [Shade] and the recursive bounce tracer [Trace]
//   - the backend contract: [Backend]
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/raytrace"
//	    "github.com/gogpu/raytrace/backend"
//	    _ "github.com/gogpu/raytrace/backend/cpu"
//	    "github.com/gogpu/raytrace/camera"
//	)
//
//	sphere, _ := raytrace.NewSphere(mgl64.Vec3{0, 0, -5}, 1, mat)
//	scene := raytrace.Scene{
//	    Primitives: []raytrace.Primitive{sphere},
//	    Lights:     []raytrace.Light{raytrace.NewPointLight(mgl64.Vec3{5, 5, 0}, white)},
//	}
//
//	b, err := backend.Open("cpu", scene, raytrace.WithMaxBounces(4))
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	colors, err := b.Trace(camera.Pinhole{Width: 640, Height: 480, FOV: 60}.Rays())
//
// # Backends
//
// Two backends implement [Backend]:
//   - backend/cpu: evaluates rays on the host, sequentially by default
//   - backend/wgpu: marshals the scene into GPU storage buffers once and
//     dispatches a WGSL compute kernel per Trace call
//
// Both produce colors index-aligned with the input rays. Colors are unclamped;
// quantization to a display range is done by the image writer (package imageio).
//
// # Coordinate System
//
// All geometry lives in view space: the eye sits at the origin and looks down
// -Z. The view direction used by the specular term is the negated hit point.
//
// # Debug Views
//
// [WithShadeMode] replaces Phong shading with a flat view of the first hit:
// [ShadeHitTest] paints hits white, [ShadeNormals] maps the normal into
// [0,1], and [ShadeAmbient] shows the unlit ambient color.
package raytrace

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
