// Package profile samples horizontal line profiles from images and maps them
// into a shared plotting space for overlay display.
package profile

import (
	"math"

	"image-analyser/internal/models"
	"image-analyser/internal/pipeline"
)

// StageSampleRow is the TransformError stage for sampling failures.
const StageSampleRow = "sample_row"

// Sampler reads one row of sample magnitudes from a buffer. The row is the
// one nearest relativeHeight * (height - 1), with relativeHeight in [0, 1].
type Sampler interface {
	SampleRow(buf *models.ImageBuffer, relativeHeight float64) ([]float64, error)
}

// LineSample is one row of magnitudes, one per pixel column.
type LineSample []float64

// Extractor requests raw line samples from a Sampler.
type Extractor struct {
	sampler Sampler
}

func NewExtractor(sampler Sampler) *Extractor {
	return &Extractor{sampler: sampler}
}

// SampleProfiles samples every buffer at relativeHeight, which is clamped to
// [0, 1] first. Each sample keeps its buffer's native width.
func (e *Extractor) SampleProfiles(buffers []*models.ImageBuffer, relativeHeight float64) ([]LineSample, error) {
	h := ClampRelative(relativeHeight)

	samples := make([]LineSample, 0, len(buffers))
	for _, buf := range buffers {
		row, err := e.sampler.SampleRow(buf, h)
		if err != nil {
			return nil, &pipeline.TransformError{Stage: StageSampleRow, Cause: err}
		}
		samples = append(samples, LineSample(row))
	}

	return samples, nil
}

// ClampRelative pins a relative position into [0, 1].
func ClampRelative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
