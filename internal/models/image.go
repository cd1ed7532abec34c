package models

import (
	"fmt"
	"image"
	"image/color"
	"sync/atomic"
)

var nextBufferID uint64

// ImageBuffer is an immutable 2-D pixel buffer. Transforms never modify a
// buffer in place; each one returns a new ImageBuffer.
type ImageBuffer struct {
	ID              string
	Image           image.Image
	BitsPerSample   int
	SamplesPerPixel int
	Source          string
}

// NewImageBuffer wraps img and derives sample depth and channel count from its
// colour model.
func NewImageBuffer(img image.Image, source string) *ImageBuffer {
	bits, samples := describeColorModel(img.ColorModel())
	return &ImageBuffer{
		ID:              fmt.Sprintf("buf-%d", atomic.AddUint64(&nextBufferID, 1)),
		Image:           img,
		BitsPerSample:   bits,
		SamplesPerPixel: samples,
		Source:          source,
	}
}

func (b *ImageBuffer) Bounds() image.Rectangle { return b.Image.Bounds() }
func (b *ImageBuffer) Width() int              { return b.Image.Bounds().Dx() }
func (b *ImageBuffer) Height() int             { return b.Image.Bounds().Dy() }

// SameShape reports whether o has the same dimensions as b.
func (b *ImageBuffer) SameShape(o *ImageBuffer) bool {
	return o != nil && b.Width() == o.Width() && b.Height() == o.Height()
}

func (b *ImageBuffer) String() string {
	return fmt.Sprintf("%s(%dx%d, %d-bit x%d)", b.ID, b.Width(), b.Height(), b.BitsPerSample, b.SamplesPerPixel)
}

func describeColorModel(m color.Model) (bits, samples int) {
	switch m {
	case color.GrayModel:
		return 8, 1
	case color.Gray16Model:
		return 16, 1
	case color.RGBA64Model, color.NRGBA64Model:
		return 16, 4
	case color.YCbCrModel:
		return 8, 3
	default:
		return 8, 4
	}
}
