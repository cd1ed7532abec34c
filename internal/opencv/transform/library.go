package transform

import (
	"fmt"
	"image"
	"math"

	"image-analyser/internal/models"
	"image-analyser/internal/opencv/conversion"
	"image-analyser/internal/opencv/safe"
	"image-analyser/internal/pipeline"
	"image-analyser/internal/profile"

	"gocv.io/x/gocv"
)

const (
	// divideEpsilon keeps zero denominators finite before normalisation.
	divideEpsilon = 1e-3
	// slamDarkWeight is the fixed weight g in bright - g*dark.
	slamDarkWeight = 1.0
	fullScale      = 255.0
	contrastPivot  = 128.0
)

var (
	_ pipeline.Transformer = (*Library)(nil)
	_ profile.Sampler      = (*Library)(nil)
)

// Library implements the pixel transforms and row sampling on top of OpenCV.
// It holds no per-call state and is safe for concurrent use.
type Library struct {
	logger pipeline.Logger
}

func NewLibrary(logger pipeline.Logger) *Library {
	return &Library{logger: logger}
}

func (l *Library) Grayscale(src *models.ImageBuffer, mode models.ChannelMode) (*models.ImageBuffer, error) {
	s := safe.NewScope()
	defer s.Close()

	in, err := load(s, src, "grayscale")
	if err != nil {
		return nil, err
	}

	gray, err := toGray(s, *in, mode)
	if err != nil {
		return nil, err
	}

	return l.finish(*gray, "grayscale")
}

// Divide computes numerator / denominator per pixel and rescales the quotient
// to 0..255. Mixed channel counts are reduced to grayscale first.
func (l *Library) Divide(numerator, denominator *models.ImageBuffer) (*models.ImageBuffer, error) {
	s := safe.NewScope()
	defer s.Close()

	num, err := load(s, numerator, "divide")
	if err != nil {
		return nil, err
	}
	den, err := load(s, denominator, "divide")
	if err != nil {
		return nil, err
	}
	if err := safe.ValidateSameSize(*num, *den, "divide"); err != nil {
		return nil, err
	}

	if num.Channels() != den.Channels() {
		if num, err = toGray(s, *num, models.ChannelRGB); err != nil {
			return nil, err
		}
		if den, err = toGray(s, *den, models.ChannelRGB); err != nil {
			return nil, err
		}
	}

	numF := s.NewMat()
	denF := s.NewMat()
	num.ConvertToWithParams(numF, gocv.MatTypeCV32F, 1, 0)
	den.ConvertToWithParams(denF, gocv.MatTypeCV32F, 1, divideEpsilon)

	quotient := s.NewMat()
	gocv.Divide(*numF, *denF, quotient)

	return l.finish(*quotient, "divide")
}

func (l *Library) AdjustBrightness(src *models.ImageBuffer, offsets []float64) (*models.ImageBuffer, error) {
	return l.affine(src, "brightness", offsets, func(v float64) (float64, float64) {
		return 1, v * fullScale
	})
}

// Scale multiplies channel intensities; it does not resize the image.
func (l *Library) Scale(src *models.ImageBuffer, factors []float64) (*models.ImageBuffer, error) {
	return l.affine(src, "scale", factors, func(v float64) (float64, float64) {
		return v, 0
	})
}

// AdjustContrast stretches each channel about mid-grey.
func (l *Library) AdjustContrast(src *models.ImageBuffer, factors []float64) (*models.ImageBuffer, error) {
	return l.affine(src, "contrast", factors, func(v float64) (float64, float64) {
		return v, contrastPivot * (1 - v)
	})
}

// EqualizeHistogram equalises grayscale images directly and colour images on
// their luma plane.
func (l *Library) EqualizeHistogram(src *models.ImageBuffer) (*models.ImageBuffer, error) {
	s := safe.NewScope()
	defer s.Close()

	in, err := load(s, src, "histogram equalization")
	if err != nil {
		return nil, err
	}

	out := s.NewMat()
	if in.Channels() == 1 {
		gocv.EqualizeHist(*in, out)
		return l.finish(*out, "histogram_equalization")
	}

	bgr := in
	if in.Channels() == 4 {
		bgr = s.NewMat()
		gocv.CvtColor(*in, bgr, gocv.ColorBGRAToBGR)
	}

	ycc := s.NewMat()
	gocv.CvtColor(*bgr, ycc, gocv.ColorBGRToYCrCb)
	planes := s.TrackAll(gocv.Split(*ycc))

	luma := s.NewMat()
	gocv.EqualizeHist(planes[0], luma)

	merged := s.NewMat()
	gocv.Merge([]gocv.Mat{*luma, planes[1], planes[2]}, merged)
	gocv.CvtColor(*merged, out, gocv.ColorYCrCbToBGR)

	return l.finish(*out, "histogram_equalization")
}

// HiLoReconstruct combines the in-focus high frequencies of the uniform image
// with low frequencies weighted by the local speckle contrast.
func (l *Library) HiLoReconstruct(uniform, speckle *models.ImageBuffer, params models.StructuredIllumination) (*models.ImageBuffer, error) {
	s := safe.NewScope()
	defer s.Close()

	u, err := loadFloatGray(s, uniform, "hilo")
	if err != nil {
		return nil, err
	}
	sp, err := loadFloatGray(s, speckle, "hilo")
	if err != nil {
		return nil, err
	}
	if err := safe.ValidateSameSize(*u, *sp, "hilo"); err != nil {
		return nil, err
	}

	sigma := math.Max(params.TargetThickness, 0.01)
	bandSigma := sigma * math.Max(params.WaveletGaussiansRatio, 0.01)

	diff := s.NewMat()
	gocv.AbsDiff(*sp, *u, diff)

	// Band-pass the difference image and take its local magnitude.
	diffLow := blur(s, *diff, bandSigma)
	band := s.NewMat()
	gocv.AbsDiff(*diff, *diffLow, band)
	contrast := blur(s, *band, sigma)

	if params.DoShotNoiseCorrection {
		floor := l.noiseFloor(*u, params)
		contrast.SubtractFloat(float32(floor))
		clipped := s.NewMat()
		gocv.Threshold(*contrast, clipped, 0, 0, gocv.ThresholdToZero)
		contrast = clipped
	}

	weighted := s.NewMat()
	gocv.Multiply(*contrast, *u, weighted)
	lo := blur(s, *weighted, sigma)

	uLow := blur(s, *u, sigma)
	hi := s.NewMat()
	gocv.Subtract(*u, *uLow, hi)

	out := s.NewMat()
	gocv.AddWeighted(*hi, 1, *lo, params.Eta, 0, out)

	return l.finish(*out, "hilo")
}

// SlamReconstruct subtracts the dark image from the bright image, saturating
// at zero.
func (l *Library) SlamReconstruct(bright, dark *models.ImageBuffer, _ models.StructuredIllumination) (*models.ImageBuffer, error) {
	s := safe.NewScope()
	defer s.Close()

	b, err := load(s, bright, "slam")
	if err != nil {
		return nil, err
	}
	d, err := load(s, dark, "slam")
	if err != nil {
		return nil, err
	}
	if err := safe.ValidateSameSize(*b, *d, "slam"); err != nil {
		return nil, err
	}

	bg, err := toGray(s, *b, models.ChannelRGB)
	if err != nil {
		return nil, err
	}
	dg, err := toGray(s, *d, models.ChannelRGB)
	if err != nil {
		return nil, err
	}

	out := s.NewMat()
	gocv.AddWeighted(*bg, 1, *dg, -slamDarkWeight, 0, out)

	return l.finish(*out, "slam")
}

// SampleRow returns the luminance of the row nearest relativeHeight*(h-1),
// counted from the top.
func (l *Library) SampleRow(buf *models.ImageBuffer, relativeHeight float64) ([]float64, error) {
	s := safe.NewScope()
	defer s.Close()

	in, err := load(s, buf, "sample row")
	if err != nil {
		return nil, err
	}
	gray, err := toGray(s, *in, models.ChannelRGB)
	if err != nil {
		return nil, err
	}

	rel := math.Min(math.Max(relativeHeight, 0), 1)
	row := int(math.Round(rel * float64(gray.Rows()-1)))

	values := make([]float64, gray.Cols())
	for x := range values {
		values[x] = float64(gray.GetUCharAt(row, x))
	}

	return values, nil
}

type coefficients func(v float64) (alpha, beta float64)

// affine maps each colour channel through alpha*p + beta. Factor i applies to
// channel i; the last factor repeats for remaining channels. A fourth (alpha)
// channel passes through unchanged.
func (l *Library) affine(src *models.ImageBuffer, stage string, factors []float64, coeff coefficients) (*models.ImageBuffer, error) {
	if len(factors) == 0 {
		return nil, fmt.Errorf("no factors supplied for operation: %s", stage)
	}

	s := safe.NewScope()
	defer s.Close()

	in, err := load(s, src, stage)
	if err != nil {
		return nil, err
	}

	channels := s.TrackAll(gocv.Split(*in))
	out := make([]gocv.Mat, len(channels))
	for i := range channels {
		if i == 3 {
			out[i] = channels[i]
			continue
		}
		alpha, beta := coeff(factors[min(i, len(factors)-1)])
		dst := s.NewMat()
		channels[i].ConvertToWithParams(dst, gocv.MatTypeCV8U, float32(alpha), float32(beta))
		out[i] = *dst
	}

	merged := s.NewMat()
	gocv.Merge(out, merged)

	return l.finish(*merged, stage)
}

func (l *Library) noiseFloor(u gocv.Mat, params models.StructuredIllumination) float64 {
	mean := u.Mean().Val1
	variance := params.CameraGain*fullScale*mean + math.Pow(params.ReadoutNoise*fullScale, 2)
	floor := params.BandPassFilterVolume * math.Sqrt(math.Max(variance, 0))

	if l.logger != nil {
		l.logger.Debug("transform", "shot noise floor", map[string]interface{}{
			"mean":  mean,
			"floor": floor,
		})
	}
	return floor
}

// finish rescales floating point results to 8-bit and copies them out of
// OpenCV memory.
func (l *Library) finish(m gocv.Mat, source string) (*models.ImageBuffer, error) {
	if err := safe.ValidateMatForOperation(m, source); err != nil {
		return nil, err
	}
	return conversion.MatToBuffer(m, source)
}

func load(s *safe.Scope, buf *models.ImageBuffer, operation string) (*gocv.Mat, error) {
	m, err := conversion.BufferToMat(buf)
	mat := s.Track(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	if err := safe.ValidateMatForOperation(*mat, operation); err != nil {
		return nil, err
	}
	return mat, nil
}

func loadFloatGray(s *safe.Scope, buf *models.ImageBuffer, operation string) (*gocv.Mat, error) {
	in, err := load(s, buf, operation)
	if err != nil {
		return nil, err
	}
	gray, err := toGray(s, *in, models.ChannelRGB)
	if err != nil {
		return nil, err
	}
	f := s.NewMat()
	gray.ConvertTo(f, gocv.MatTypeCV32F)
	return f, nil
}

// toGray returns a single channel view of m. Single channel input is returned
// as is; colour input is either converted to luminance or split by channel.
func toGray(s *safe.Scope, m gocv.Mat, mode models.ChannelMode) (*gocv.Mat, error) {
	idx, err := planeIndex(mode)
	if err != nil {
		return nil, err
	}

	if m.Channels() == 1 {
		return &m, nil
	}

	if mode == models.ChannelRGB {
		dst := s.NewMat()
		code := gocv.ColorBGRToGray
		if m.Channels() == 4 {
			code = gocv.ColorBGRAToGray
		}
		gocv.CvtColor(m, dst, code)
		return dst, nil
	}

	if err := safe.ValidateChannel(idx, m.Channels(), "grayscale"); err != nil {
		return nil, err
	}

	planes := s.TrackAll(gocv.Split(m))
	return &planes[idx], nil
}

// planeIndex maps a single-channel mode onto its plane. OpenCV stores colour
// planes in BGR order. ChannelRGB has no plane and yields -1.
func planeIndex(mode models.ChannelMode) (int, error) {
	switch mode {
	case models.ChannelRGB:
		return -1, nil
	case models.ChannelBlue:
		return 0, nil
	case models.ChannelGreen:
		return 1, nil
	case models.ChannelRed:
		return 2, nil
	default:
		return 0, fmt.Errorf("unsupported channel mode %s", mode)
	}
}

func blur(s *safe.Scope, src gocv.Mat, sigma float64) *gocv.Mat {
	dst := s.NewMat()
	gocv.GaussianBlur(src, dst, image.Point{}, sigma, sigma, gocv.BorderReflect101)
	return dst
}
