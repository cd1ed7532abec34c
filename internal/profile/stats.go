package profile

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one line sample.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize returns the zero Summary for an empty sample.
func Summarize(s LineSample) Summary {
	if len(s) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(s, nil)
	if len(s) == 1 {
		std = 0
	}
	return Summary{
		Count:  len(s),
		Min:    floats.Min(s),
		Max:    floats.Max(s),
		Mean:   mean,
		StdDev: std,
	}
}
