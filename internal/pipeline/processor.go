package pipeline

import (
	"context"
	"fmt"
	"time"

	"image-analyser/internal/models"
)

// Stage names reported in TransformError and logs.
const (
	StageGrayscale    = "grayscale"
	StageDivide       = "divide"
	StageBrightness   = "brightness"
	StageScale        = "scale"
	StageContrast     = "contrast"
	StageEqualization = "histogram_equalization"
	StageHiLo         = "hilo"
	StageSlam         = "slam"
)

// The brightness control spans [-255, 255]; the library expects offsets in
// units of full scale.
const brightnessFullScale = 255.0

// Dispatcher maps a filter variant onto a sequence of Transformer calls.
type Dispatcher struct {
	transformer Transformer
	logger      Logger
}

func NewDispatcher(transformer Transformer, logger Logger) *Dispatcher {
	return &Dispatcher{transformer: transformer, logger: logger}
}

// Process validates the inputs against the variant's contract and runs its
// pipeline. sources[0] is the primary image and sources[1] the secondary one;
// a secondary image supplied to a single-input variant is ignored. On any
// failure no output is returned.
func (d *Dispatcher) Process(ctx context.Context, variant models.FilterVariant, sources []*models.ImageBuffer, params models.ParameterSnapshot) (*models.ImageBuffer, error) {
	primary, secondary, err := d.validate(variant, sources, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	d.logger.Debug("Dispatcher", "processing started", map[string]interface{}{
		"variant": variant.String(),
		"primary": primary.String(),
	})

	out, err := d.dispatch(ctx, variant, primary, secondary, params)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("Dispatcher", "processing completed", map[string]interface{}{
		"variant":     variant.String(),
		"output":      out.String(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return out, nil
}

func (d *Dispatcher) validate(variant models.FilterVariant, sources []*models.ImageBuffer, params models.ParameterSnapshot) (primary, secondary *models.ImageBuffer, err error) {
	if len(sources) > 0 {
		primary = sources[0]
	}
	if len(sources) > 1 {
		secondary = sources[1]
	}

	if primary == nil {
		return nil, nil, ErrMissingPrimaryInput
	}
	if variant.Arity() == 2 && secondary == nil {
		return nil, nil, ErrMissingSecondaryInput
	}

	want := variant.ParameterKind()
	if want != models.KindNone {
		got := models.KindNone
		if params != nil {
			got = params.Kind()
		}
		if got != want {
			return nil, nil, fmt.Errorf("%w: %s expects %s, got %s", ErrParameterKindMismatch, variant, want, got)
		}
		if !hasRecordType(want, params) {
			return nil, nil, fmt.Errorf("%w: %s expects a %s value, got %T", ErrParameterKindMismatch, variant, want, params)
		}
	}

	return primary, secondary, nil
}

// hasRecordType reports whether params holds the value record for kind.
// Pointers to records report the same Kind but are rejected.
func hasRecordType(kind models.ParameterKind, params models.ParameterSnapshot) bool {
	switch kind {
	case models.KindLinearAdjustment:
		_, ok := params.(models.LinearAdjustment)
		return ok
	case models.KindStructuredIllumination:
		_, ok := params.(models.StructuredIllumination)
		return ok
	default:
		return true
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, variant models.FilterVariant, primary, secondary *models.ImageBuffer, params models.ParameterSnapshot) (*models.ImageBuffer, error) {
	switch variant {
	case models.FilterNone:
		return primary, nil

	case models.FilterGrayscale:
		return d.stage(variant, StageGrayscale, func() (*models.ImageBuffer, error) {
			return d.transformer.Grayscale(primary, models.ChannelRGB)
		})

	case models.FilterDivide:
		return d.stage(variant, StageDivide, func() (*models.ImageBuffer, error) {
			return d.transformer.Divide(primary, secondary)
		})

	case models.FilterBrightnessContrastScale:
		return d.linearChain(ctx, primary, params.(models.LinearAdjustment))

	case models.FilterHistogramEqualization:
		return d.stage(variant, StageEqualization, func() (*models.ImageBuffer, error) {
			return d.transformer.EqualizeHistogram(primary)
		})

	case models.FilterHiLo:
		p := params.(models.StructuredIllumination)
		return d.stage(variant, StageHiLo, func() (*models.ImageBuffer, error) {
			return d.transformer.HiLoReconstruct(primary, secondary, p)
		})

	case models.FilterSlam:
		p := params.(models.StructuredIllumination)
		return d.stage(variant, StageSlam, func() (*models.ImageBuffer, error) {
			return d.transformer.SlamReconstruct(primary, secondary, p)
		})

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
}

// linearChain runs brightness, then scale, then contrast. The order is fixed:
// the contrast gain pivots around a reference that scaling has already moved.
func (d *Dispatcher) linearChain(ctx context.Context, src *models.ImageBuffer, p models.LinearAdjustment) (*models.ImageBuffer, error) {
	variant := models.FilterBrightnessContrastScale
	offset := p.Brightness / brightnessFullScale

	steps := []struct {
		name string
		run  func(*models.ImageBuffer) (*models.ImageBuffer, error)
	}{
		{StageBrightness, func(b *models.ImageBuffer) (*models.ImageBuffer, error) {
			return d.transformer.AdjustBrightness(b, []float64{offset})
		}},
		{StageScale, func(b *models.ImageBuffer) (*models.ImageBuffer, error) {
			return d.transformer.Scale(b, []float64{p.Scaling, p.Scaling, p.Scaling})
		}},
		{StageContrast, func(b *models.ImageBuffer) (*models.ImageBuffer, error) {
			return d.transformer.AdjustContrast(b, []float64{p.Contrast, p.Contrast, p.Contrast})
		}},
	}

	current := src
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := d.stage(variant, step.name, func() (*models.ImageBuffer, error) {
			return step.run(current)
		})
		if err != nil {
			return nil, err
		}
		current = next
	}

	return current, nil
}

func (d *Dispatcher) stage(variant models.FilterVariant, name string, call func() (*models.ImageBuffer, error)) (*models.ImageBuffer, error) {
	start := time.Now()
	out, err := call()
	if err == nil && out == nil {
		err = fmt.Errorf("library returned no image")
	}
	if err != nil {
		d.logger.Error("Dispatcher", err, map[string]interface{}{
			"variant": variant.String(),
			"stage":   name,
		})
		return nil, &TransformError{Variant: variant, Stage: name, Cause: err}
	}

	d.logger.Debug("Dispatcher", "stage completed", map[string]interface{}{
		"variant":     variant.String(),
		"stage":       name,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return out, nil
}
