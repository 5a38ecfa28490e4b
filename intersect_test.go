package raytrace

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const geomEps = 1e-9

func mustSphere(t *testing.T, center mgl64.Vec3, radius float64, mat Material) Primitive {
	t.Helper()
	p, err := NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return p
}

func mustBox(t *testing.T, center, half mgl64.Vec3, mat Material) Primitive {
	t.Helper()
	p, err := NewBox(center, half, mat)
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	return p
}

// vecNear compares components by absolute difference. mgl64's
// ApproxEqualThreshold is relative and far stricter around zero.
func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return cmp.Equal(a, b, cmpopts.EquateApprox(0, eps))
}

// matNear is vecNear for matrices.
func matNear(a, b mgl64.Mat4, eps float64) bool {
	return cmp.Equal(a, b, cmpopts.EquateApprox(0, eps))
}

func TestIntersectUnitSphereAnalyticRoot(t *testing.T) {
	sphere := mustSphere(t, mgl64.Vec3{}, 1, DefaultMaterial())
	ray := NewRay(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, 1})

	hit := Intersect(ray, []Primitive{sphere})
	if !hit.Hit() {
		t.Fatal("expected a hit")
	}

	// |O + tD|² = 1 with O = (0,0,-5), D = (0,0,1): t² - 10t + 24 = 0.
	want := (10 - math.Sqrt(100-4*24)) / 2
	if math.Abs(hit.T-want) > geomEps {
		t.Errorf("T = %v, want %v", hit.T, want)
	}
	if l := hit.Point.Len(); math.Abs(l-1) > geomEps {
		t.Errorf("|Point| = %v, want 1", l)
	}
	if !vecNear(hit.Normal, mgl64.Vec3{0, 0, -1}, geomEps) {
		t.Errorf("Normal = %v, want (0,0,-1)", hit.Normal)
	}
}

func TestIntersectUnnormalizedDirection(t *testing.T) {
	sphere := mustSphere(t, mgl64.Vec3{}, 1, DefaultMaterial())
	ray := NewRay(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, 2})

	hit := Intersect(ray, []Primitive{sphere})
	if math.Abs(hit.T-2) > geomEps {
		t.Errorf("T = %v, want 2 (distance measured in direction lengths)", hit.T)
	}
	if !vecNear(hit.Point, ray.At(hit.T), geomEps) {
		t.Errorf("Point = %v, want %v", hit.Point, ray.At(hit.T))
	}
}

func TestIntersectBehindOrigin(t *testing.T) {
	tests := []struct {
		name string
		prim func(t *testing.T) Primitive
	}{
		{"sphere", func(t *testing.T) Primitive {
			return mustSphere(t, mgl64.Vec3{0, 0, -5}, 1, DefaultMaterial())
		}},
		{"box", func(t *testing.T) Primitive {
			return mustBox(t, mgl64.Vec3{0, 0, -5}, mgl64.Vec3{1, 1, 1}, DefaultMaterial())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1})
			hit := Intersect(ray, []Primitive{tt.prim(t)})
			if hit.Hit() {
				t.Fatalf("expected no hit, got T=%v", hit.T)
			}
			if hit.T != MissDistance {
				t.Errorf("T = %v, want sentinel %v", hit.T, MissDistance)
			}
		})
	}
}

func TestIntersectFromInsideSphere(t *testing.T) {
	sphere := mustSphere(t, mgl64.Vec3{}, 10, DefaultMaterial())
	hit := Intersect(NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}), []Primitive{sphere})
	if math.Abs(hit.T-10) > geomEps {
		t.Fatalf("T = %v, want 10 (far root)", hit.T)
	}
	// Normals stay outward-facing.
	if !vecNear(hit.Normal, mgl64.Vec3{0, 0, -1}, geomEps) {
		t.Errorf("Normal = %v, want (0,0,-1)", hit.Normal)
	}
}

func TestIntersectBox(t *testing.T) {
	box := mustBox(t, mgl64.Vec3{0, 0, -5}, mgl64.Vec3{1, 2, 1}, DefaultMaterial())

	tests := []struct {
		name       string
		ray        Ray
		wantHit    bool
		wantT      float64
		wantNormal mgl64.Vec3
	}{
		{"front face", NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}), true, 4, mgl64.Vec3{0, 0, 1}},
		{"left face", NewRay(mgl64.Vec3{-5, 0, -5}, mgl64.Vec3{1, 0, 0}), true, 4, mgl64.Vec3{-1, 0, 0}},
		{"top face scaled", NewRay(mgl64.Vec3{0, 10, -5}, mgl64.Vec3{0, -2, 0}), true, 4, mgl64.Vec3{0, 1, 0}},
		{"parallel outside slab", NewRay(mgl64.Vec3{0, 3, -5}, mgl64.Vec3{1, 0, 0}), false, 0, mgl64.Vec3{}},
		{"passes beside", NewRay(mgl64.Vec3{}, mgl64.Vec3{1, 0, -1}), false, 0, mgl64.Vec3{}},
		{"origin inside", NewRay(mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, -1}), false, 0, mgl64.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := Intersect(tt.ray, []Primitive{box})
			if hit.Hit() != tt.wantHit {
				t.Fatalf("Hit() = %v, want %v (T=%v)", hit.Hit(), tt.wantHit, hit.T)
			}
			if !tt.wantHit {
				return
			}
			if math.Abs(hit.T-tt.wantT) > geomEps {
				t.Errorf("T = %v, want %v", hit.T, tt.wantT)
			}
			if !vecNear(hit.Normal, tt.wantNormal, geomEps) {
				t.Errorf("Normal = %v, want %v", hit.Normal, tt.wantNormal)
			}
		})
	}
}

func TestIntersectNonUniformScaleNormal(t *testing.T) {
	// Ellipsoid x²/4 + y² + z² = 1. The true normal is the gradient
	// (x/4, y, z); transforming the object normal by the forward matrix
	// instead of the inverse-transpose would give (x, y, z).
	m := mgl64.Scale3D(2, 1, 1)
	ellipsoid, err := NewPrimitive(Sphere, DefaultMaterial(), m)
	if err != nil {
		t.Fatal(err)
	}

	hit := Intersect(NewRay(mgl64.Vec3{1, 0, -5}, mgl64.Vec3{0, 0, 1}), []Primitive{ellipsoid})
	if !hit.Hit() {
		t.Fatal("expected a hit")
	}
	p := hit.Point
	if v := p.X()*p.X()/4 + p.Y()*p.Y() + p.Z()*p.Z(); math.Abs(v-1) > 1e-9 {
		t.Errorf("hit point %v not on the ellipsoid (value %v)", p, v)
	}
	want := mgl64.Vec3{p.X() / 4, p.Y(), p.Z()}.Normalize()
	if !vecNear(hit.Normal, want, 1e-9) {
		t.Errorf("Normal = %v, want %v", hit.Normal, want)
	}
}

func TestIntersectNearestWins(t *testing.T) {
	near := DefaultMaterial()
	near.Ambient = RGB(1, 0, 0)
	far := DefaultMaterial()
	far.Ambient = RGB(0, 0, 1)

	a := mustSphere(t, mgl64.Vec3{0, 0, -10}, 1, far)
	b := mustSphere(t, mgl64.Vec3{0, 0, -5}, 1, near)
	ray := NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1})

	for _, order := range [][]Primitive{{a, b}, {b, a}} {
		hit := Intersect(ray, order)
		if math.Abs(hit.T-4) > geomEps {
			t.Errorf("T = %v, want 4", hit.T)
		}
		if hit.Material.Ambient != near.Ambient {
			t.Errorf("material = %+v, want the nearer sphere's", hit.Material.Ambient)
		}
	}
}

func TestIntersectTieKeepsScanOrder(t *testing.T) {
	first := DefaultMaterial()
	first.Ambient = RGB(1, 0, 0)
	second := DefaultMaterial()
	second.Ambient = RGB(0, 1, 0)

	prims := []Primitive{
		mustSphere(t, mgl64.Vec3{0, 0, -5}, 1, first),
		mustSphere(t, mgl64.Vec3{0, 0, -5}, 1, second),
	}
	hit := Intersect(NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}), prims)
	if hit.Material.Ambient != first.Ambient {
		t.Errorf("tie resolved to %+v, want first primitive", hit.Material.Ambient)
	}
}

func TestIntersectEmptyScene(t *testing.T) {
	hit := Intersect(NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}), nil)
	if hit.Hit() {
		t.Error("empty scene must not produce a hit")
	}
}

func TestIntersectPrimitive(t *testing.T) {
	sphere := mustSphere(t, mgl64.Vec3{0, 0, -5}, 2, DefaultMaterial())
	tHit, ok := IntersectPrimitive(NewRay(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}), sphere)
	if !ok || math.Abs(tHit-3) > geomEps {
		t.Errorf("IntersectPrimitive = (%v, %v), want (3, true)", tHit, ok)
	}
}

func TestRaySkin(t *testing.T) {
	r := NewRay(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0, 0, 4}).Skin(0.5)
	if !vecNear(r.Origin, mgl64.Vec3{1, 1, 1.5}, geomEps) {
		t.Errorf("Origin = %v, want (1,1,1.5)", r.Origin)
	}
	if r.Direction != (mgl64.Vec3{0, 0, 4}) {
		t.Errorf("Direction changed to %v", r.Direction)
	}

	zero := NewRay(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{})
	if zero.Skin(1) != zero {
		t.Error("Skin with zero direction must not move the origin")
	}
}
