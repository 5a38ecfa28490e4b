package raytrace

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewPrimitiveErrors(t *testing.T) {
	tests := []struct {
		name      string
		kind      PrimitiveKind
		transform mgl64.Mat4
		wantErr   error
	}{
		{"unknown kind", PrimitiveKind(7), mgl64.Ident4(), ErrUnknownKind},
		{"zero scale", Sphere, mgl64.Scale3D(1, 0, 1), ErrSingularTransform},
		{"zero matrix", Box, mgl64.Mat4{}, ErrSingularTransform},
		{"nan entry", Sphere, mgl64.Translate3D(math.NaN(), 0, 0), ErrSingularTransform},
		{"inf entry", Box, mgl64.Scale3D(math.Inf(1), 1, 1), ErrSingularTransform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPrimitive(tt.kind, DefaultMaterial(), tt.transform)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewPrimitive() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPrimitiveDerivedMatrices(t *testing.T) {
	m := mgl64.Translate3D(1, -2, 3).
		Mul4(mgl64.HomogRotate3DY(0.7)).
		Mul4(mgl64.Scale3D(2, 0.5, 3))
	p, err := NewPrimitive(Box, DefaultMaterial(), m)
	if err != nil {
		t.Fatal(err)
	}

	if !matNear(p.Transform().Mul4(p.Inverse()), mgl64.Ident4(), 1e-12) {
		t.Error("Transform * Inverse is not identity")
	}
	if p.InverseTranspose() != p.Inverse().Transpose() {
		t.Error("InverseTranspose does not match Inverse().Transpose()")
	}
	if p.Kind() != Box {
		t.Errorf("Kind() = %v, want box", p.Kind())
	}
}

func TestMatNearAroundZero(t *testing.T) {
	// Off-diagonal entries of T*Inv are rounding noise around zero; they
	// must compare equal to the identity's exact zeros.
	noisy := mgl64.Ident4()
	noisy.Set(0, 1, 2.22e-16)
	noisy.Set(2, 3, -1.1e-16)
	if !matNear(noisy, mgl64.Ident4(), 1e-12) {
		t.Error("matNear rejected rounding noise next to zero")
	}
	noisy.Set(1, 0, 1e-6)
	if matNear(noisy, mgl64.Ident4(), 1e-12) {
		t.Error("matNear accepted an off-diagonal error of 1e-6")
	}
}

func TestNewPrimitiveInverseManyTransforms(t *testing.T) {
	for i := range 16 {
		a := float64(i) * 0.4
		m := mgl64.Translate3D(a, -a/2, 3-a).
			Mul4(mgl64.HomogRotate3D(a, mgl64.Vec3{1, 2, 3}.Normalize())).
			Mul4(mgl64.Scale3D(1+a, 0.5+a/3, 2))
		p, err := NewPrimitive(Sphere, DefaultMaterial(), m)
		if err != nil {
			t.Fatal(err)
		}
		if !matNear(p.Inverse().Mul4(p.Transform()), mgl64.Ident4(), 1e-12) {
			t.Errorf("transform %d: Inverse * Transform is not identity", i)
		}
	}
}

func TestNewSphereAndBoxPlacement(t *testing.T) {
	s, err := NewSphere(mgl64.Vec3{1, 2, 3}, 2, DefaultMaterial())
	if err != nil {
		t.Fatal(err)
	}
	got := mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, s.Transform())
	if !vecNear(got, mgl64.Vec3{3, 2, 3}, 1e-12) {
		t.Errorf("sphere maps (1,0,0) to %v, want (3,2,3)", got)
	}

	b, err := NewBox(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{1, 2, 3}, DefaultMaterial())
	if err != nil {
		t.Fatal(err)
	}
	got = mgl64.TransformCoordinate(mgl64.Vec3{-1, 1, 1}, b.Transform())
	if !vecNear(got, mgl64.Vec3{-1, 2, -2}, 1e-12) {
		t.Errorf("box maps (-1,1,1) to %v, want (-1,2,-2)", got)
	}

	if _, err := NewSphere(mgl64.Vec3{}, 0, DefaultMaterial()); !errors.Is(err, ErrSingularTransform) {
		t.Errorf("zero radius error = %v, want ErrSingularTransform", err)
	}
}

func TestPrimitiveKindString(t *testing.T) {
	tests := []struct {
		kind PrimitiveKind
		want string
	}{
		{Sphere, "sphere"},
		{Box, "box"},
		{PrimitiveKind(9), "PrimitiveKind(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMaterialValidate(t *testing.T) {
	if err := DefaultMaterial().Validate(); err != nil {
		t.Errorf("DefaultMaterial().Validate() = %v", err)
	}

	bad := []func(*Material){
		func(m *Material) { m.Diffuse = RGB(-1, 0, 0) },
		func(m *Material) { m.Reflection = -0.1 },
		func(m *Material) { m.Transparency = math.NaN() },
		func(m *Material) { m.Shininess = math.Inf(1) },
	}
	for i, mutate := range bad {
		m := DefaultMaterial()
		mutate(&m)
		if err := m.Validate(); !errors.Is(err, ErrInvalidMaterial) {
			t.Errorf("case %d: Validate() = %v, want ErrInvalidMaterial", i, err)
		}
	}
}

func TestMaterialSpecularExponent(t *testing.T) {
	m := DefaultMaterial()
	m.Shininess = 0.2
	if got := m.SpecularExponent(); got != 1 {
		t.Errorf("SpecularExponent() = %v, want 1", got)
	}
	m.Shininess = 32
	if got := m.SpecularExponent(); got != 32 {
		t.Errorf("SpecularExponent() = %v, want 32", got)
	}
}

func TestSceneValidate(t *testing.T) {
	bad := DefaultMaterial()
	bad.Absorption = -1
	s := Scene{Primitives: []Primitive{
		mustSphere(t, mgl64.Vec3{}, 1, DefaultMaterial()),
		mustSphere(t, mgl64.Vec3{}, 1, bad),
	}}
	if err := s.Validate(); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("Validate() = %v, want ErrInvalidMaterial", err)
	}
}

func TestLightVectorFrom(t *testing.T) {
	p := mgl64.Vec3{1, 1, 1}

	point := NewPointLight(mgl64.Vec3{1, 5, 1}, White)
	if point.IsDirectional() {
		t.Error("point light reports directional")
	}
	if got := point.vectorFrom(p); got != (mgl64.Vec3{0, 4, 0}) {
		t.Errorf("point vectorFrom = %v, want (0,4,0)", got)
	}

	dir := NewDirectionalLight(mgl64.Vec3{0, -2, 0}, White)
	if !dir.IsDirectional() {
		t.Error("directional light reports point")
	}
	if got := dir.vectorFrom(p); got != (mgl64.Vec3{0, 2, 0}) {
		t.Errorf("directional vectorFrom = %v, want (0,2,0)", got)
	}
}
