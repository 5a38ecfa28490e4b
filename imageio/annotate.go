package imageio

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionPadding = 4

// Annotate returns a copy of img with text drawn on a dark strip along the
// bottom edge.
func Annotate(img image.Image, text string) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	if text == "" {
		return dst
	}

	face := basicfont.Face7x13
	metrics := face.Metrics()
	height := metrics.Height.Ceil() + 2*captionPadding
	strip := image.Rect(b.Min.X, max(b.Max.Y-height, b.Min.Y), b.Max.X, b.Max.Y)
	draw.Draw(dst, strip, image.NewUniform(color.RGBA{A: 0xc0}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(b.Min.X + captionPadding),
			Y: fixed.I(b.Max.Y-captionPadding) - metrics.Descent,
		},
	}
	d.DrawString(text)
	return dst
}
