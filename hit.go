package raytrace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MissDistance is the ray parameter stored in a HitRecord that did not hit
// anything.
const MissDistance = math.MaxFloat64

// HitRecord describes the nearest intersection found for a ray.
type HitRecord struct {
	// T is the ray parameter of the hit. MissDistance means no hit.
	T float64

	// Point is the view-space intersection point.
	Point mgl64.Vec3

	// Normal is the unit view-space surface normal at Point.
	Normal mgl64.Vec3

	// Material is a copy of the hit primitive's material.
	Material Material
}

// NoHit returns the sentinel record for a ray that hits nothing.
func NoHit() HitRecord {
	return HitRecord{T: MissDistance}
}

// Hit reports whether the record describes a real intersection.
func (h HitRecord) Hit() bool {
	return h.T > 0 && h.T < MissDistance
}
