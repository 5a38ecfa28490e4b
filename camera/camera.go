// Package camera generates primary rays for a pinhole eye.
//
// The eye sits at the view-space origin looking down -Z with +Y up. Rays are
// produced row-major starting with the top row, one ray per pixel, matching
// the order in which imageio lays out pixels.
package camera

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/raytrace"
)

// DefaultFOV is the vertical field of view in degrees used when FOV is zero.
const DefaultFOV = 60.0

// ErrInvalidSize is returned for a non-positive image size or a field of view
// outside (0, 180) degrees.
var ErrInvalidSize = errors.New("camera: invalid size or field of view")

// Pinhole is a perspective camera with a vertical field of view.
type Pinhole struct {
	Width  int
	Height int

	// FOV is the vertical field of view in degrees. Zero means DefaultFOV.
	FOV float64
}

// Validate reports an unusable camera.
func (c Pinhole) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidSize
	}
	if fov := c.fov(); fov <= 0 || fov >= 180 || math.IsNaN(fov) {
		return ErrInvalidSize
	}
	return nil
}

func (c Pinhole) fov() float64 {
	if c.FOV == 0 {
		return DefaultFOV
	}
	return c.FOV
}

// focal returns the image-plane distance in pixels.
func (c Pinhole) focal() float64 {
	half := mgl64.DegToRad(c.fov()) / 2
	return (float64(c.Height) / 2) / math.Tan(half)
}

// Ray returns the primary ray through pixel (col, row), row 0 being the top.
// The direction is not normalized.
func (c Pinhole) Ray(col, row int) raytrace.Ray {
	x := float64(col) - float64(c.Width)/2
	y := float64(c.Height-row) - float64(c.Height)/2
	return raytrace.NewRay(mgl64.Vec3{}, mgl64.Vec3{x, y, -c.focal()})
}

// Rays returns Width*Height primary rays in row-major order.
func (c Pinhole) Rays() ([]raytrace.Ray, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	f := c.focal()
	rays := make([]raytrace.Ray, 0, c.Width*c.Height)
	for row := range c.Height {
		y := float64(c.Height-row) - float64(c.Height)/2
		for col := range c.Width {
			x := float64(col) - float64(c.Width)/2
			rays = append(rays, raytrace.NewRay(mgl64.Vec3{}, mgl64.Vec3{x, y, -f}))
		}
	}
	return rays, nil
}

// Center returns the index of the pixel whose ray points straight down -Z.
func (c Pinhole) Center() int {
	return (c.Height/2)*c.Width + c.Width/2
}
