package imageio

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down so neither side exceeds maxSide, keeping the
// aspect ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxSide uint) image.Image {
	b := img.Bounds()
	if maxSide == 0 || (uint(b.Dx()) <= maxSide && uint(b.Dy()) <= maxSide) {
		return img
	}
	return resize.Thumbnail(maxSide, maxSide, img, resize.Bilinear)
}
