package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/raytrace"
)

// ErrSizeMismatch is returned when the color count does not match the
// requested image size.
var ErrSizeMismatch = errors.New("imageio: color count does not match image size")

// ToRGBA converts row-major colors into an opaque width x height image.
func ToRGBA(colors []raytrace.Color, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(colors) != width*height {
		return nil, fmt.Errorf("%w: %d colors for %dx%d", ErrSizeMismatch, len(colors), width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, c := range colors {
		img.SetRGBA(i%width, i/width, Quantize(c))
	}
	return img, nil
}

// Quantize clamps each channel to [0, 1] and scales it to 0..255,
// truncating toward zero.
func Quantize(c raytrace.Color) color.RGBA {
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v * 255)
}
