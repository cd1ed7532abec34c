package profile

import "gonum.org/v1/gonum/floats"

// Point is a plot coordinate inside the target bounds.
type Point struct {
	X, Y float64
}

// NormalizedSeries is one overlay-ready line with its palette channel.
type NormalizedSeries struct {
	Points  []Point
	Channel int
}

// Normalize maps series into [0, boundsWidth] x [0, boundsHeight].
//
// All series share one y scale, the largest magnitude among them, so overlays
// are comparable; an all-zero input uses a scale of 1 and plots flat at y=0.
// Each series gets its own x scale, its sample count, so every line spans the
// full width. Point i of a series of length n lands at x = i*boundsWidth/n.
func Normalize(series []LineSample, boundsWidth, boundsHeight float64) []NormalizedSeries {
	out := make([]NormalizedSeries, 0, len(series))

	yMax := sharedMax(series)
	if yMax == 0 {
		yMax = 1
	}

	for idx, s := range series {
		xMax := float64(len(s))
		points := make([]Point, len(s))
		for i, v := range s {
			points[i] = Point{
				X: float64(i) * boundsWidth / xMax,
				Y: v * boundsHeight / yMax,
			}
		}
		out = append(out, NormalizedSeries{Points: points, Channel: ChannelFor(idx)})
	}

	return out
}

func sharedMax(series []LineSample) float64 {
	var m float64
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		if v := floats.Max(s); v > m {
			m = v
		}
	}
	return m
}
