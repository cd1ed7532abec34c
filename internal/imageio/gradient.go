package imageio

import (
	"image"
	"math"

	"image-analyser/internal/models"
)

const (
	gradientSource = "circular-gradient"
	stripedSource  = "striped-gradient"
)

// StripePeriod is the width in pixels of one dark/bright stripe cycle in
// StripedGradient.
const StripePeriod = 16

// CircularGradient renders a grayscale disc that is white at the centre and
// falls off linearly to black at the nearest edge. It stands in for the
// primary input until the user loads a file.
func CircularGradient(width, height int) *models.ImageBuffer {
	return models.NewImageBuffer(renderGray(width, height, func(x, y int, disc float64) float64 {
		return disc
	}), gradientSource)
}

// StripedGradient is CircularGradient modulated by vertical cosine stripes of
// StripePeriod pixels. It never exceeds CircularGradient at the same pixel,
// so it serves as the default second input: the patterned frame for HiLo,
// the dark frame for SLAM and the denominator for Divide.
func StripedGradient(width, height int) *models.ImageBuffer {
	return models.NewImageBuffer(renderGray(width, height, func(x, y int, disc float64) float64 {
		stripe := 0.5 + 0.5*math.Cos(2*math.Pi*float64(x)/StripePeriod)
		return disc * stripe
	}), stripedSource)
}

// renderGray evaluates shade for every pixel. disc is the circular falloff
// in [0, 1] and shade must return a value in the same range.
func renderGray(width, height int, shade func(x, y int, disc float64) float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))

	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	radius := math.Max(math.Min(cx, cy), 1)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			disc := math.Max(0, 1-math.Hypot(float64(x)-cx, float64(y)-cy)/radius)
			img.Pix[y*img.Stride+x] = uint8(math.Round(255 * shade(x, y, disc)))
		}
	}
	return img
}
