package models

import (
	"fmt"
	"math"
	"strconv"
)

// ParameterKind tags the shape of a ParameterSnapshot.
type ParameterKind int

const (
	KindNone ParameterKind = iota
	KindLinearAdjustment
	KindStructuredIllumination
)

func (k ParameterKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLinearAdjustment:
		return "linear-adjustment"
	case KindStructuredIllumination:
		return "structured-illumination"
	default:
		return fmt.Sprintf("ParameterKind(%d)", int(k))
	}
}

// ParameterSnapshot is an immutable record of the controls a variant consumes.
// The set of implementations is closed to this package.
type ParameterSnapshot interface {
	Kind() ParameterKind
	snapshot()
}

// NoParameters is the snapshot for variants that take no controls.
type NoParameters struct{}

func (NoParameters) Kind() ParameterKind { return KindNone }
func (NoParameters) snapshot()           {}

// LinearAdjustment drives the brightness, scale and contrast chain.
type LinearAdjustment struct {
	Brightness float64
	Scaling    float64
	Contrast   float64
}

func (LinearAdjustment) Kind() ParameterKind { return KindLinearAdjustment }
func (LinearAdjustment) snapshot()           {}

// DefaultLinearAdjustment is the neutral setting: no offset, unit scale, unit contrast.
func DefaultLinearAdjustment() LinearAdjustment {
	return LinearAdjustment{Brightness: 0, Scaling: 1, Contrast: 1}
}

// StructuredIllumination holds the HiLo/SLAM reconstruction settings.
type StructuredIllumination struct {
	TargetThickness       float64
	WaveletGaussiansRatio float64
	Eta                   float64
	DoShotNoiseCorrection bool
	BandPassFilterVolume  float64
	CameraGain            float64
	ReadoutNoise          float64
}

func (StructuredIllumination) Kind() ParameterKind { return KindStructuredIllumination }
func (StructuredIllumination) snapshot()           {}

func DefaultStructuredIllumination() StructuredIllumination {
	return StructuredIllumination{
		TargetThickness:       1,
		WaveletGaussiansRatio: 1,
		Eta:                   1,
		DoShotNoiseCorrection: false,
		BandPassFilterVolume:  0.0001,
		CameraGain:            0.0001,
		ReadoutNoise:          0.0001,
	}
}

// ControlRange is the domain of a slider control.
type ControlRange struct {
	Min  float64
	Max  float64
	Step float64
	// Places is the number of decimals shown in the value label.
	Places int
}

// Clamp pins v into [Min, Max].
func (r ControlRange) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Snap rounds v to the displayed precision and clamps it.
func (r ControlRange) Snap(v float64) float64 {
	scale := math.Pow(10, float64(r.Places))
	return r.Clamp(math.Round(v*scale) / scale)
}

// Format renders v the way the value label next to the slider shows it.
func (r ControlRange) Format(v float64) string {
	return FormatControlValue(v, r.Places)
}

func FormatControlValue(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

var (
	BrightnessRange = ControlRange{Min: -255, Max: 255, Step: 1, Places: 2}
	ScalingRange    = ControlRange{Min: 0.1, Max: 10, Step: 0.1, Places: 2}
	ContrastRange   = ControlRange{Min: 0, Max: 2, Step: 0.01, Places: 2}

	// Thickness, wavelet ratio and eta share one domain.
	ReconstructionRange = ControlRange{Min: 0.01, Max: 20, Step: 0.05, Places: 2}
	// Band-pass volume, camera gain and readout noise share one domain.
	NoiseRange = ControlRange{Min: 0.0001, Max: 0.01, Step: 0.0001, Places: 4}
)

// ValidationError represents a rejected configuration or parameter value
type ValidationError struct {
	Parameter string
	Value     interface{}
	Message   string
}

func NewValidationError(parameter string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Parameter: parameter,
		Value:     value,
		Message:   message,
	}
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for parameter '%s' with value '%v': %s",
		ve.Parameter, ve.Value, ve.Message)
}
