// Package imageio turns traced colors into images and writes them out.
//
// Colors are clamped to [0, 1] and quantized to 8 bits per channel by
// ToRGBA. Encode writes PNG, plain-text PPM (P3), BMP or TIFF; Thumbnail
// downsizes with bilinear filtering and Annotate draws a one-line caption.
package imageio
