package transform

import (
	"image"
	"image/color"
	"testing"

	"image-analyser/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayBuffer(w, h int, fn func(x, y int) uint8) *models.ImageBuffer {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fn(x, y)})
		}
	}
	return models.NewImageBuffer(img, "test")
}

func constant(w, h int, v uint8) *models.ImageBuffer {
	return grayBuffer(w, h, func(int, int) uint8 { return v })
}

func rgbBuffer(w, h int, c color.RGBA) *models.ImageBuffer {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return models.NewImageBuffer(img, "test")
}

func grayPix(t *testing.T, buf *models.ImageBuffer) []uint8 {
	t.Helper()
	gray, ok := buf.Image.(*image.Gray)
	require.True(t, ok, "expected *image.Gray, got %T", buf.Image)
	return gray.Pix
}

func allEqual(t *testing.T, pix []uint8, want uint8) {
	t.Helper()
	for i, v := range pix {
		if !assert.Equal(t, want, v, "pixel %d", i) {
			return
		}
	}
}

func TestGrayscale(t *testing.T) {
	lib := NewLibrary(nil)
	red := rgbBuffer(4, 4, color.RGBA{R: 255, A: 255})

	t.Run("luminance", func(t *testing.T) {
		out, err := lib.Grayscale(red, models.ChannelRGB)
		require.NoError(t, err)
		assert.Equal(t, 1, out.SamplesPerPixel)
		assert.InDelta(t, 76, float64(grayPix(t, out)[0]), 1)
	})

	t.Run("single channel", func(t *testing.T) {
		out, err := lib.Grayscale(red, models.ChannelRed)
		require.NoError(t, err)
		allEqual(t, grayPix(t, out), 255)

		out, err = lib.Grayscale(red, models.ChannelBlue)
		require.NoError(t, err)
		allEqual(t, grayPix(t, out), 0)
	})

	t.Run("gray input passes through", func(t *testing.T) {
		out, err := lib.Grayscale(constant(3, 3, 90), models.ChannelGreen)
		require.NoError(t, err)
		allEqual(t, grayPix(t, out), 90)
	})

	t.Run("unknown mode", func(t *testing.T) {
		out, err := lib.Grayscale(red, models.ChannelMode(42))
		assert.Nil(t, out)
		assert.ErrorContains(t, err, "unsupported channel mode")

		_, err = lib.Grayscale(constant(3, 3, 90), models.ChannelMode(42))
		assert.Error(t, err)
	})
}

func TestDivide(t *testing.T) {
	lib := NewLibrary(nil)

	t.Run("rescales quotient", func(t *testing.T) {
		num := grayBuffer(8, 1, func(x, _ int) uint8 { return uint8(10 + x*10) })
		out, err := lib.Divide(num, constant(8, 1, 50))
		require.NoError(t, err)

		pix := grayPix(t, out)
		assert.Equal(t, uint8(0), pix[0])
		assert.Equal(t, uint8(255), pix[7])
		for i := 1; i < len(pix); i++ {
			assert.GreaterOrEqual(t, pix[i], pix[i-1])
		}
	})

	t.Run("zero denominator stays finite", func(t *testing.T) {
		num := grayBuffer(4, 1, func(x, _ int) uint8 { return uint8(x * 50) })
		_, err := lib.Divide(num, constant(4, 1, 0))
		assert.NoError(t, err)
	})

	t.Run("size mismatch", func(t *testing.T) {
		_, err := lib.Divide(constant(8, 8, 100), constant(4, 4, 50))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size mismatch")
	})

	t.Run("mixed channels", func(t *testing.T) {
		num := rgbBuffer(4, 4, color.RGBA{R: 100, G: 100, B: 100, A: 255})
		out, err := lib.Divide(num, constant(4, 4, 50))
		require.NoError(t, err)
		assert.Equal(t, 1, out.SamplesPerPixel)
	})
}

func TestLinearAdjustments(t *testing.T) {
	lib := NewLibrary(nil)
	src := constant(4, 4, 100)

	out, err := lib.AdjustBrightness(src, []float64{0.2})
	require.NoError(t, err)
	allEqual(t, grayPix(t, out), 151)

	out, err = lib.Scale(src, []float64{2, 2, 2})
	require.NoError(t, err)
	allEqual(t, grayPix(t, out), 200)

	out, err = lib.Scale(src, []float64{3})
	require.NoError(t, err)
	allEqual(t, grayPix(t, out), 255)

	out, err = lib.AdjustContrast(src, []float64{2, 2, 2})
	require.NoError(t, err)
	allEqual(t, grayPix(t, out), 72)

	out, err = lib.AdjustContrast(src, []float64{1, 1, 1})
	require.NoError(t, err)
	allEqual(t, grayPix(t, out), 100)
}

func TestLinearAdjustmentsPerChannel(t *testing.T) {
	lib := NewLibrary(nil)
	src := rgbBuffer(2, 2, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	// Factors follow OpenCV plane order: blue, green, red.
	out, err := lib.Scale(src, []float64{0.5, 1, 2})
	require.NoError(t, err)

	r, g, b, _ := out.Image.At(0, 0).RGBA()
	assert.Equal(t, uint32(200), r>>8)
	assert.Equal(t, uint32(100), g>>8)
	assert.Equal(t, uint32(50), b>>8)
}

func TestLinearAdjustmentsNeedFactors(t *testing.T) {
	_, err := NewLibrary(nil).Scale(constant(2, 2, 10), nil)
	assert.Error(t, err)
}

func TestEqualizeHistogram(t *testing.T) {
	lib := NewLibrary(nil)

	src := grayBuffer(4, 4, func(x, _ int) uint8 {
		if x < 2 {
			return 50
		}
		return 60
	})
	out, err := lib.EqualizeHistogram(src)
	require.NoError(t, err)

	pix := grayPix(t, out)
	assert.Equal(t, uint8(0), pix[0])
	assert.Equal(t, uint8(255), pix[3])

	colour, err := lib.EqualizeHistogram(rgbBuffer(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255}))
	require.NoError(t, err)
	assert.Equal(t, 4, colour.Width())
	assert.Equal(t, 4, colour.Height())
}

func TestSlamReconstruct(t *testing.T) {
	lib := NewLibrary(nil)
	params := models.DefaultStructuredIllumination()

	out, err := lib.SlamReconstruct(constant(4, 4, 100), constant(4, 4, 30), params)
	require.NoError(t, err)
	allEqual(t, grayPix(t, out), 70)

	out, err = lib.SlamReconstruct(constant(4, 4, 30), constant(4, 4, 100), params)
	require.NoError(t, err)
	allEqual(t, grayPix(t, out), 0)

	_, err = lib.SlamReconstruct(constant(4, 4, 30), constant(2, 4, 100), params)
	assert.Error(t, err)
}

func TestHiLoReconstruct(t *testing.T) {
	lib := NewLibrary(nil)
	uniform := grayBuffer(32, 32, func(x, y int) uint8 { return uint8((x * y) % 256) })
	speckle := grayBuffer(32, 32, func(x, y int) uint8 {
		if (x/4+y/4)%2 == 0 {
			return 200
		}
		return 20
	})

	for _, correct := range []bool{false, true} {
		params := models.DefaultStructuredIllumination()
		params.DoShotNoiseCorrection = correct

		out, err := lib.HiLoReconstruct(uniform, speckle, params)
		require.NoError(t, err)
		assert.Equal(t, 32, out.Width())
		assert.Equal(t, 32, out.Height())
		assert.Equal(t, 8, out.BitsPerSample)
	}

	_, err := lib.HiLoReconstruct(uniform, constant(16, 16, 1), models.DefaultStructuredIllumination())
	assert.Error(t, err)
}

func TestSampleRow(t *testing.T) {
	lib := NewLibrary(nil)
	src := grayBuffer(3, 5, func(x, y int) uint8 { return uint8(y*10 + x) })

	cases := []struct {
		rel  float64
		want []float64
	}{
		{0, []float64{0, 1, 2}},
		{0.5, []float64{20, 21, 22}},
		{1, []float64{40, 41, 42}},
		{0.6, []float64{20, 21, 22}},
		{2, []float64{40, 41, 42}},
	}
	for _, tc := range cases {
		got, err := lib.SampleRow(src, tc.rel)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "rel=%v", tc.rel)
	}
}

func TestNilBuffer(t *testing.T) {
	_, err := NewLibrary(nil).Grayscale(nil, models.ChannelRGB)
	assert.Error(t, err)
}
