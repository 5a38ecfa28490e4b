package raytrace

import "github.com/go-gl/mathgl/mgl64"

// Light is a point or directional light with Phong color terms.
//
// Position is homogeneous. With W == 1 it is the light's location; with
// W == 0 it is the direction the light travels (pointing away from the
// light, toward the scene).
type Light struct {
	Ambient  Color
	Diffuse  Color
	Specular Color

	Position mgl64.Vec4
}

// NewPointLight creates a light at pos whose diffuse and specular terms are c.
func NewPointLight(pos mgl64.Vec3, c Color) Light {
	return Light{Diffuse: c, Specular: c, Position: pos.Vec4(1)}
}

// NewDirectionalLight creates a light at infinity travelling along dir.
func NewDirectionalLight(dir mgl64.Vec3, c Color) Light {
	return Light{Diffuse: c, Specular: c, Position: dir.Vec4(0)}
}

// NewAmbientLight creates a light that only contributes an ambient term.
// It is positioned at the eye so its zero diffuse and specular terms are
// never shadow tested in a meaningful way.
func NewAmbientLight(c Color) Light {
	return Light{Ambient: c, Position: mgl64.Vec4{0, 0, 0, 1}}
}

// IsDirectional reports whether the light is at infinity.
func (l Light) IsDirectional() bool {
	return l.Position.W() == 0
}

// vectorFrom returns the unnormalized vector from p toward the light.
func (l Light) vectorFrom(p mgl64.Vec3) mgl64.Vec3 {
	if l.IsDirectional() {
		return l.Position.Vec3().Mul(-1)
	}
	return l.Position.Vec3().Sub(p)
}
