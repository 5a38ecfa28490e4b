package raytrace

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PrimitiveKind selects the canonical object-space shape of a primitive.
type PrimitiveKind uint32

const (
	// Sphere is the unit sphere centered at the origin.
	Sphere PrimitiveKind = iota

	// Box is the axis-aligned cube [-1,1]³.
	Box
)

// String returns the kind name.
func (k PrimitiveKind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Box:
		return "box"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", uint32(k))
	}
}

// Valid reports whether k is a known kind.
func (k PrimitiveKind) Valid() bool {
	return k == Sphere || k == Box
}

// Primitive is a canonical shape placed in view space by a model-to-view
// transform. The inverse and inverse-transpose are computed once by
// NewPrimitive and cannot be changed independently of the transform.
type Primitive struct {
	kind     PrimitiveKind
	material Material

	transform        mgl64.Mat4
	inverse          mgl64.Mat4
	inverseTranspose mgl64.Mat4
}

// NewPrimitive creates a primitive of the given kind.
// It returns ErrSingularTransform if transform cannot be inverted or holds
// non-finite entries, and ErrUnknownKind for an unrecognized kind.
func NewPrimitive(kind PrimitiveKind, mat Material, transform mgl64.Mat4) (Primitive, error) {
	if !kind.Valid() {
		return Primitive{}, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	if !finiteMat(transform) {
		return Primitive{}, fmt.Errorf("%w: non-finite entry", ErrSingularTransform)
	}
	det := transform.Det()
	if det == 0 || math.IsNaN(det) {
		return Primitive{}, ErrSingularTransform
	}
	inv := transform.Inv()
	if !finiteMat(inv) {
		return Primitive{}, fmt.Errorf("%w: non-finite inverse", ErrSingularTransform)
	}
	return Primitive{
		kind:             kind,
		material:         mat,
		transform:        transform,
		inverse:          inv,
		inverseTranspose: inv.Transpose(),
	}, nil
}

// NewSphere creates a sphere of the given radius centered at center.
func NewSphere(center mgl64.Vec3, radius float64, mat Material) (Primitive, error) {
	m := mgl64.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(mgl64.Scale3D(radius, radius, radius))
	return NewPrimitive(Sphere, mat, m)
}

// NewBox creates an axis-aligned box centered at center. halfExtents gives
// the distance from the center to each face along X, Y and Z.
func NewBox(center, halfExtents mgl64.Vec3, mat Material) (Primitive, error) {
	m := mgl64.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(mgl64.Scale3D(halfExtents.X(), halfExtents.Y(), halfExtents.Z()))
	return NewPrimitive(Box, mat, m)
}

// Kind returns the canonical shape.
func (p Primitive) Kind() PrimitiveKind { return p.kind }

// Material returns a copy of the primitive's material.
func (p Primitive) Material() Material { return p.material }

// Transform returns the model-to-view matrix.
func (p Primitive) Transform() mgl64.Mat4 { return p.transform }

// Inverse returns the view-to-model matrix.
func (p Primitive) Inverse() mgl64.Mat4 { return p.inverse }

// InverseTranspose returns the transpose of Inverse, used to carry
// object-space normals into view space.
func (p Primitive) InverseTranspose() mgl64.Mat4 { return p.inverseTranspose }

func finiteMat(m mgl64.Mat4) bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
