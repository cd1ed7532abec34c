package pipeline

import (
	"errors"
	"image"
	"image/color"
	"math"
	"sync"

	"image-analyser/internal/models"
)

type call struct {
	name    string
	inputs  []*models.ImageBuffer
	factors []float64
}

// recordingTransformer applies simple 8-bit gray arithmetic and records every
// call. failAt names a call that should fail instead.
type recordingTransformer struct {
	mu     sync.Mutex
	calls  []call
	failAt string
	block  chan struct{}
}

var errBoom = errors.New("boom")

func (f *recordingTransformer) record(name string, factors []float64, inputs ...*models.ImageBuffer) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, inputs: inputs, factors: factors})
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	if f.failAt == name {
		return errBoom
	}
	return nil
}

func (f *recordingTransformer) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.name
	}
	return out
}

func (f *recordingTransformer) Grayscale(src *models.ImageBuffer, mode models.ChannelMode) (*models.ImageBuffer, error) {
	if err := f.record("grayscale", nil, src); err != nil {
		return nil, err
	}
	return mapGray(src, func(v float64) float64 { return v }), nil
}

func (f *recordingTransformer) Divide(a, b *models.ImageBuffer) (*models.ImageBuffer, error) {
	if err := f.record("divide", nil, a, b); err != nil {
		return nil, err
	}
	return mapGray(a, func(v float64) float64 { return v / 2 }), nil
}

func (f *recordingTransformer) AdjustBrightness(src *models.ImageBuffer, offsets []float64) (*models.ImageBuffer, error) {
	if err := f.record("brightness", offsets, src); err != nil {
		return nil, err
	}
	return mapGray(src, func(v float64) float64 { return v + offsets[0]*255 }), nil
}

func (f *recordingTransformer) Scale(src *models.ImageBuffer, factors []float64) (*models.ImageBuffer, error) {
	if err := f.record("scale", factors, src); err != nil {
		return nil, err
	}
	return mapGray(src, func(v float64) float64 { return v * factors[0] }), nil
}

func (f *recordingTransformer) AdjustContrast(src *models.ImageBuffer, factors []float64) (*models.ImageBuffer, error) {
	if err := f.record("contrast", factors, src); err != nil {
		return nil, err
	}
	return mapGray(src, func(v float64) float64 { return (v-128)*factors[0] + 128 }), nil
}

func (f *recordingTransformer) EqualizeHistogram(src *models.ImageBuffer) (*models.ImageBuffer, error) {
	if err := f.record("equalize", nil, src); err != nil {
		return nil, err
	}
	return mapGray(src, func(v float64) float64 { return v }), nil
}

func (f *recordingTransformer) HiLoReconstruct(u, s *models.ImageBuffer, p models.StructuredIllumination) (*models.ImageBuffer, error) {
	if err := f.record("hilo", []float64{p.TargetThickness, p.Eta}, u, s); err != nil {
		return nil, err
	}
	return mapGray(u, func(v float64) float64 { return v }), nil
}

func (f *recordingTransformer) SlamReconstruct(b, d *models.ImageBuffer, p models.StructuredIllumination) (*models.ImageBuffer, error) {
	if err := f.record("slam", []float64{p.TargetThickness}, b, d); err != nil {
		return nil, err
	}
	return mapGray(b, func(v float64) float64 { return v }), nil
}

func constantBuffer(w, h int, value uint8) *models.ImageBuffer {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return models.NewImageBuffer(img, "test")
}

func mapGray(src *models.ImageBuffer, fn func(float64) float64) *models.ImageBuffer {
	b := src.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := fn(float64(color.GrayModel.Convert(src.Image.At(x, y)).(color.Gray).Y))
			out.SetGray(x, y, color.Gray{Y: uint8(math.Max(0, math.Min(255, math.Round(v))))})
		}
	}
	return models.NewImageBuffer(out, "fake")
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{})   {}
func (nopLogger) Info(string, string, map[string]interface{})    {}
func (nopLogger) Warning(string, string, map[string]interface{}) {}
func (nopLogger) Error(string, error, map[string]interface{})    {}

// errorLogger records the fields of every error-level entry.
type errorLogger struct {
	nopLogger
	mu     sync.Mutex
	errors []map[string]interface{}
}

func (l *errorLogger) Error(_ string, _ error, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fields)
}
