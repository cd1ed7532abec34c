package imageio

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Thumbnail scales img down to width pixels, keeping its aspect ratio.
// Images already narrower than width, or a width <= 0, are returned unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || b.Dx() <= width {
		return img
	}

	height := int(math.Round(float64(width) * float64(b.Dy()) / float64(b.Dx())))
	if height < 1 {
		height = 1
	}
	rect := image.Rect(0, 0, width, height)

	var dst draw.Image
	switch img.(type) {
	case *image.Gray:
		dst = image.NewGray(rect)
	case *image.Gray16:
		dst = image.NewGray16(rect)
	default:
		dst = image.NewRGBA(rect)
	}

	draw.CatmullRom.Scale(dst, rect, img, b, draw.Src, nil)
	return dst
}
