package models

import (
	"fmt"
	"strings"
)

// FilterVariant identifies one of the fixed set of filters the pipeline can run.
type FilterVariant int

const (
	FilterNone FilterVariant = iota
	FilterGrayscale
	FilterDivide
	FilterHiLo
	FilterSlam
	FilterBrightnessContrastScale
	FilterHistogramEqualization
)

// AllFilterVariants lists the variants in menu order.
func AllFilterVariants() []FilterVariant {
	return []FilterVariant{
		FilterNone,
		FilterGrayscale,
		FilterDivide,
		FilterHiLo,
		FilterSlam,
		FilterBrightnessContrastScale,
		FilterHistogramEqualization,
	}
}

func (v FilterVariant) String() string {
	switch v {
	case FilterNone:
		return "None"
	case FilterGrayscale:
		return "Grayscale"
	case FilterDivide:
		return "Divide"
	case FilterHiLo:
		return "HiLo"
	case FilterSlam:
		return "Slam"
	case FilterBrightnessContrastScale:
		return "BrightnessContrastScale"
	case FilterHistogramEqualization:
		return "HistogramEqualization"
	default:
		return fmt.Sprintf("FilterVariant(%d)", int(v))
	}
}

// Arity is the number of source images the variant consumes.
func (v FilterVariant) Arity() int {
	switch v {
	case FilterDivide, FilterHiLo, FilterSlam:
		return 2
	default:
		return 1
	}
}

// ParameterKind is the snapshot shape the variant consumes.
func (v FilterVariant) ParameterKind() ParameterKind {
	switch v {
	case FilterHiLo, FilterSlam:
		return KindStructuredIllumination
	case FilterBrightnessContrastScale:
		return KindLinearAdjustment
	default:
		return KindNone
	}
}

// ParseFilterVariant accepts the String form, case-insensitively.
func ParseFilterVariant(name string) (FilterVariant, error) {
	for _, v := range AllFilterVariants() {
		if strings.EqualFold(v.String(), strings.TrimSpace(name)) {
			return v, nil
		}
	}
	return FilterNone, NewValidationError("filter", name, "unknown filter variant")
}

// ChannelMode selects which colour channels feed a grayscale conversion.
type ChannelMode int

const (
	ChannelRGB ChannelMode = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
)

func (m ChannelMode) String() string {
	switch m {
	case ChannelRGB:
		return "rgb"
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	default:
		return fmt.Sprintf("ChannelMode(%d)", int(m))
	}
}
