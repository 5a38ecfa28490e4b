package raytrace

import "github.com/go-gl/mathgl/mgl64"

// SkinOffset is the distance a secondary ray origin is pushed along its own
// direction so that it does not re-intersect the surface it starts on.
const SkinOffset = 0.01

// Ray is a half-line in view space. Direction need not be unit length; hit
// parameters are measured in multiples of Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay creates a ray.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point Origin + t*Direction.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Skin returns a copy of the ray whose origin is moved eps along the
// normalized direction. A zero direction is left untouched.
func (r Ray) Skin(eps float64) Ray {
	l := r.Direction.Len()
	if l == 0 {
		return r
	}
	r.Origin = r.Origin.Add(r.Direction.Mul(eps / l))
	return r
}

// transform maps the ray through m. The origin is treated as a point and the
// direction as a vector; the direction is not renormalized, so a hit parameter
// found in the target space is valid in the source space too.
func (r Ray) transform(m mgl64.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin.Vec4(1)).Vec3(),
		Direction: m.Mul4x1(r.Direction.Vec4(0)).Vec3(),
	}
}
