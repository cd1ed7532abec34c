package conversion

import (
	"fmt"
	"image"

	"image-analyser/internal/models"
	"image-analyser/internal/opencv/safe"

	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// BufferToMat copies buf into a new Mat. Grayscale buffers become single
// channel 8-bit Mats; every other colour model becomes 8-bit BGR.
// The caller owns the returned Mat.
func BufferToMat(buf *models.ImageBuffer) (gocv.Mat, error) {
	if buf == nil || buf.Image == nil {
		return gocv.NewMat(), fmt.Errorf("input buffer is nil")
	}
	if err := safe.ValidateDimensions(buf.Width(), buf.Height(), "buffer_to_mat"); err != nil {
		return gocv.NewMat(), err
	}

	switch img := buf.Image.(type) {
	case *image.Gray:
		return gocv.ImageGrayToMatGray(img)
	case *image.Gray16:
		return gocv.ImageGrayToMatGray(toGray8(img))
	default:
		mat, err := gocv.ImageToMatRGB(img)
		if err != nil {
			return mat, fmt.Errorf("image to Mat conversion failed: %w", err)
		}
		return mat, nil
	}
}

// MatToBuffer copies m into a new ImageBuffer, rescaling non 8-bit Mats
// to the 0..255 range first.
func MatToBuffer(m gocv.Mat, source string) (*models.ImageBuffer, error) {
	if m.Empty() {
		return nil, fmt.Errorf("Mat is empty for conversion to buffer")
	}

	src := m
	if !is8Bit(m.Type()) {
		scaled := gocv.NewMat()
		defer scaled.Close()
		converted := gocv.NewMat()
		defer converted.Close()
		gocv.Normalize(m, &scaled, 0, 255, gocv.NormMinMax)
		scaled.ConvertTo(&converted, gocv.MatTypeCV8U)
		src = converted
	}

	img, err := src.ToImage()
	if err != nil {
		return nil, fmt.Errorf("Mat to image conversion failed: %w", err)
	}

	return models.NewImageBuffer(img, source), nil
}

func is8Bit(t gocv.MatType) bool {
	switch t {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return true
	}
	return false
}

func toGray8(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
