package raytrace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Intersect returns the nearest hit of ray against prims, or NoHit.
//
// Every primitive is tested in its own object space: the ray is mapped by the
// primitive's inverse transform and tested against the canonical shape. The
// hit point is mapped back by the forward transform and the normal by the
// inverse-transpose. On equal distances the earlier primitive wins.
//
// Intersect only reads its arguments and is safe for concurrent use.
func Intersect(ray Ray, prims []Primitive) HitRecord {
	best := -1
	bestT := MissDistance
	var bestObj Ray
	var bestNormal mgl64.Vec3

	for i := range prims {
		obj := ray.transform(prims[i].inverse)
		t, n, ok := intersectCanonical(prims[i].kind, obj)
		if ok && t < bestT {
			best, bestT, bestObj, bestNormal = i, t, obj, n
		}
	}
	if best < 0 {
		return NoHit()
	}

	p := &prims[best]
	world := p.transform.Mul4x1(bestObj.At(bestT).Vec4(1)).Vec3()
	normal := p.inverseTranspose.Mul4x1(bestNormal.Vec4(0)).Vec3()
	if l := normal.Len(); l > 0 {
		normal = normal.Mul(1 / l)
	}
	return HitRecord{
		T:        bestT,
		Point:    world,
		Normal:   normal,
		Material: p.material,
	}
}

// IntersectPrimitive returns the ray parameter of the nearest positive hit of
// ray against a single primitive.
func IntersectPrimitive(ray Ray, p Primitive) (float64, bool) {
	t, _, ok := intersectCanonical(p.kind, ray.transform(p.inverse))
	return t, ok
}

// intersectCanonical tests an object-space ray against the canonical shape of
// kind and returns the hit parameter and the object-space normal.
func intersectCanonical(kind PrimitiveKind, r Ray) (float64, mgl64.Vec3, bool) {
	switch kind {
	case Sphere:
		return intersectUnitSphere(r)
	case Box:
		return intersectUnitBox(r)
	default:
		return 0, mgl64.Vec3{}, false
	}
}

// intersectUnitSphere solves |O + tD|² = 1 and returns the smallest positive root.
func intersectUnitSphere(r Ray) (float64, mgl64.Vec3, bool) {
	a := r.Direction.Dot(r.Direction)
	if a == 0 {
		return 0, mgl64.Vec3{}, false
	}
	halfB := r.Origin.Dot(r.Direction)
	c := r.Origin.Dot(r.Origin) - 1

	disc := halfB*halfB - a*c
	if disc < 0 {
		return 0, mgl64.Vec3{}, false
	}
	sq := math.Sqrt(disc)

	t := (-halfB - sq) / a
	if t <= 0 {
		t = (-halfB + sq) / a
		if t <= 0 {
			return 0, mgl64.Vec3{}, false
		}
	}
	// The outward normal of the unit sphere is the hit point itself.
	return t, r.At(t), true
}

// intersectUnitBox runs the slab test against [-1,1]³. A hit requires a
// non-empty interval with a positive near bound, so rays starting inside the
// box do not hit it.
func intersectUnitBox(r Ray) (float64, mgl64.Vec3, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	nearAxis := -1

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < -1 || o > 1 {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t0 := (-1 - o) / d
		t1 := (1 - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear = t0
			nearAxis = axis
		}
		if t1 < tFar {
			tFar = t1
		}
	}

	if nearAxis < 0 || tNear > tFar || tNear <= 0 {
		return 0, mgl64.Vec3{}, false
	}

	var n mgl64.Vec3
	if r.Direction[nearAxis] > 0 {
		n[nearAxis] = -1
	} else {
		n[nearAxis] = 1
	}
	return tNear, n, true
}
