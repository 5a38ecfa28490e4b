package raytrace

import (
	"fmt"
	"math"
)

// Material describes how a primitive responds to light.
//
// Ambient, Diffuse and Specular scale the matching light terms channel by
// channel. Absorption weights the local (Phong) color, Reflection weights the
// mirror bounce and Transparency weights the straight-through bounce.
// Shininess is the specular exponent; values below 1 are treated as 1.
type Material struct {
	Ambient  Color
	Diffuse  Color
	Specular Color

	Absorption   float64
	Reflection   float64
	Transparency float64
	Shininess    float64
}

// DefaultMaterial returns a black, fully absorbing, non-reflective material.
func DefaultMaterial() Material {
	return Material{
		Absorption: 1,
		Shininess:  1,
	}
}

// SpecularExponent returns Shininess clamped to at least 1.
func (m Material) SpecularExponent() float64 {
	return math.Max(m.Shininess, 1)
}

// Validate reports negative or non-finite coefficients.
func (m Material) Validate() error {
	if m.Ambient.hasNegative() || m.Diffuse.hasNegative() || m.Specular.hasNegative() {
		return fmt.Errorf("%w: negative color coefficient", ErrInvalidMaterial)
	}
	for _, v := range [...]float64{m.Absorption, m.Reflection, m.Transparency, m.Shininess} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: coefficient %v", ErrInvalidMaterial, v)
		}
	}
	return nil
}
