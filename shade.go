package raytrace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shade returns the local Phong color of hit lit by lights.
//
// For every light a shadow ray is cast from the hit point toward the light.
// A point light is occluded when the shadow ray hits something strictly
// between the surface and the light (0 < t < 1, the light sits at t = 1).
// A directional light is occluded by any hit. Occluded lights keep their
// ambient term and lose diffuse and specular.
//
// The view direction is the negated hit point, i.e. toward the eye at the
// origin. The result is not clamped. A miss shades to Black.
func Shade(hit HitRecord, lights []Light, prims []Primitive) Color {
	if !hit.Hit() {
		return Black
	}

	mat := hit.Material
	n := hit.Normal
	v := safeNormalize(hit.Point.Mul(-1))

	var out Color
	for i := range lights {
		light := &lights[i]
		out = out.Add(mat.Ambient.Mul(light.Ambient))

		toLight := light.vectorFrom(hit.Point)
		if occluded(hit.Point, toLight, light.IsDirectional(), prims) {
			continue
		}

		l := safeNormalize(toLight)
		nDotL := n.Dot(l)
		out = out.Add(mat.Diffuse.Mul(light.Diffuse).Scale(math.Max(nDotL, 0)))

		if nDotL > 0 {
			r := reflect(l.Mul(-1), n)
			rDotV := math.Max(safeNormalize(r).Dot(v), 0)
			out = out.Add(mat.Specular.Mul(light.Specular).Scale(math.Pow(rDotV, mat.SpecularExponent())))
		}
	}
	return out
}

// occluded casts a shadow ray from p along toLight.
func occluded(p, toLight mgl64.Vec3, directional bool, prims []Primitive) bool {
	shadow := Ray{Origin: p, Direction: toLight}.Skin(SkinOffset)
	return shadowBlocks(Intersect(shadow, prims), directional)
}

// shadowBlocks decides whether a shadow-ray hit lies between the surface and
// the light. For a point light the light sits at t == 1, which is not
// considered blocking.
func shadowBlocks(h HitRecord, directional bool) bool {
	if !h.Hit() {
		return false
	}
	if directional {
		return true
	}
	return h.T < 1
}

// reflect mirrors d about the unit normal n.
func reflect(d, n mgl64.Vec3) mgl64.Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}
