package raytrace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Color is a linear RGB triple. Channels are non-negative and unbounded;
// nothing in the tracing pipeline clamps them.
type Color struct {
	R, G, B float64
}

// Common colors.
var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

// RGB creates a color from its channels.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Gray creates a color with all three channels set to v.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Mul returns the component-wise (Hadamard) product.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// IsBlack reports whether all channels are exactly zero.
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// ApproxEqual reports whether every channel differs by at most eps.
func (c Color) ApproxEqual(o Color, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps &&
		math.Abs(c.G-o.G) <= eps &&
		math.Abs(c.B-o.B) <= eps
}

// MaxDiff returns the largest per-channel absolute difference.
func (c Color) MaxDiff(o Color) float64 {
	return math.Max(math.Abs(c.R-o.R), math.Max(math.Abs(c.G-o.G), math.Abs(c.B-o.B)))
}

// Vec3 returns the color as a vector.
func (c Color) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{c.R, c.G, c.B}
}

// hasNegative reports whether any channel is below zero.
func (c Color) hasNegative() bool {
	return c.R < 0 || c.G < 0 || c.B < 0
}
