package raytrace

// Trace returns the color seen along ray.
//
// The local color is Shade weighted by the material's Absorption. While the
// bounce budget lasts, a mirror ray weighted by Reflection and a
// straight-through ray weighted by Transparency are traced recursively and
// added. Beyond cfg.MaxBounces secondary contributions are zero. Rays that
// miss return cfg.Background.
//
// A debug cfg.ShadeMode colors the first hit with that view and stops.
func Trace(ray Ray, scene *Scene, cfg Config) Color {
	return traceDepth(ray, scene, cfg, 0)
}

func traceDepth(ray Ray, scene *Scene, cfg Config, depth int) Color {
	hit := Intersect(ray, scene.Primitives)
	if !hit.Hit() {
		return cfg.Background
	}
	if cfg.ShadeMode != ShadePhong {
		return shadeDebug(cfg.ShadeMode, hit)
	}

	mat := hit.Material
	out := Shade(hit, scene.Lights, scene.Primitives).Scale(mat.Absorption)
	if depth >= cfg.MaxBounces {
		return out
	}

	if mat.Reflection > 0 {
		dir := reflect(safeNormalize(ray.Direction), hit.Normal)
		next := Ray{Origin: hit.Point, Direction: dir}.Skin(SkinOffset)
		out = out.Add(traceDepth(next, scene, cfg, depth+1).Scale(mat.Reflection))
	}
	if mat.Transparency > 0 {
		next := Ray{Origin: hit.Point, Direction: ray.Direction}.Skin(SkinOffset)
		out = out.Add(traceDepth(next, scene, cfg, depth+1).Scale(mat.Transparency))
	}
	return out
}
