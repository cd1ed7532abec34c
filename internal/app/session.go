package app

import (
	"time"

	"image-analyser/internal/logger"
	"image-analyser/internal/models"
	"image-analyser/internal/parameters"
	"image-analyser/internal/pipeline"
	"image-analyser/internal/profile"
)

// View is the presentation side of a Session. All calls arrive on the
// control thread.
type View interface {
	ShowInputs(primary, secondary *models.ImageBuffer, arity int)
	ShowOutput(output *models.ImageBuffer)
	ShowProfiles(series []profile.NormalizedSeries, stats []profile.Summary)
	ShowError(err error)
}

type SessionOptions struct {
	InitialFilter models.FilterVariant
	ShowProfile   bool
	Debounce      time.Duration
}

// Session joins control updates, pipeline runs and line profiles for one
// window. It is confined to the control thread and holds no locks; work
// that leaves that thread comes back through deliver.
type Session struct {
	logger    logger.Logger
	view      View
	runner    *pipeline.Runner
	extractor *profile.Extractor

	linear         *parameters.LinearControls
	illumination   *parameters.IlluminationControls
	linearDebounce *parameters.Debouncer[models.LinearAdjustment]
	illumDebounce  *parameters.Debouncer[models.StructuredIllumination]

	variant   models.FilterVariant
	primary   *models.ImageBuffer
	secondary *models.ImageBuffer
	output    *models.ImageBuffer

	cursor         float64
	boundsWidth    float64
	boundsHeight   float64
	profileEnabled bool
	closed         bool
}

func NewSession(dispatcher *pipeline.Dispatcher, sampler profile.Sampler, view View, log logger.Logger, deliver func(func()), opts SessionOptions) *Session {
	s := &Session{
		logger:         log,
		view:           view,
		extractor:      profile.NewExtractor(sampler),
		linear:         parameters.NewLinearControls(),
		illumination:   parameters.NewIlluminationControls(),
		variant:        opts.InitialFilter,
		profileEnabled: opts.ShowProfile,
	}
	s.runner = pipeline.NewRunner(dispatcher, log, deliver, s.applyResult)

	s.linearDebounce = parameters.NewDebouncer(opts.Debounce, deliver, func(models.LinearAdjustment) {
		s.reprocessFor(models.KindLinearAdjustment)
	})
	s.illumDebounce = parameters.NewDebouncer(opts.Debounce, deliver, func(models.StructuredIllumination) {
		s.reprocessFor(models.KindStructuredIllumination)
	})
	s.linear.Subscribe(s.linearDebounce.Push)
	s.illumination.Subscribe(s.illumDebounce.Push)

	return s
}

func (s *Session) Linear() *parameters.LinearControls             { return s.linear }
func (s *Session) Illumination() *parameters.IlluminationControls { return s.illumination }
func (s *Session) Variant() models.FilterVariant                  { return s.variant }
func (s *Session) Output() *models.ImageBuffer                    { return s.output }

// SelectVariant switches the active filter and reprocesses.
func (s *Session) SelectVariant(v models.FilterVariant) {
	if s.closed {
		return
	}
	s.variant = v
	s.logger.Debug("Session", "variant selected", map[string]interface{}{
		"variant": v.String(),
		"arity":   v.Arity(),
	})
	s.view.ShowInputs(s.primary, s.secondary, v.Arity())
	s.Reprocess()
}

func (s *Session) SetPrimaryInput(buf *models.ImageBuffer) {
	if s.closed {
		return
	}
	s.primary = buf
	s.view.ShowInputs(s.primary, s.secondary, s.variant.Arity())
	s.Reprocess()
}

// SetSecondaryInput replaces the second image. Single-input variants ignore
// it, so they are not rerun.
func (s *Session) SetSecondaryInput(buf *models.ImageBuffer) {
	if s.closed {
		return
	}
	s.secondary = buf
	s.view.ShowInputs(s.primary, s.secondary, s.variant.Arity())
	if s.variant.Arity() == 2 {
		s.Reprocess()
	}
}

// SetInputs replaces both images and reruns the current variant once.
func (s *Session) SetInputs(primary, secondary *models.ImageBuffer) {
	if s.closed {
		return
	}
	s.primary, s.secondary = primary, secondary
	s.view.ShowInputs(s.primary, s.secondary, s.variant.Arity())
	s.Reprocess()
}

// MoveCursor records the relative sampling height and refreshes profiles.
func (s *Session) MoveCursor(relativeHeight float64) {
	s.cursor = profile.ClampRelative(relativeHeight)
	s.refreshProfiles()
}

func (s *Session) SetProfileBounds(width, height float64) {
	s.boundsWidth, s.boundsHeight = width, height
	s.refreshProfiles()
}

func (s *Session) SetProfileEnabled(on bool) {
	if s.profileEnabled == on {
		return
	}
	s.profileEnabled = on
	if !on {
		s.view.ShowProfiles(nil, nil)
		return
	}
	s.refreshProfiles()
}

// Reprocess submits the current variant, inputs and parameters to the
// runner. Failures are reported through View.ShowError.
func (s *Session) Reprocess() {
	if s.closed {
		return
	}
	sources := []*models.ImageBuffer{s.primary, s.secondary}
	seq := s.runner.Submit(s.variant, sources, s.parameters())
	s.logger.Debug("Session", "run submitted", map[string]interface{}{
		"seq":     seq,
		"variant": s.variant.String(),
	})
}

// Close stops pending work. Results still in flight are dropped.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.linearDebounce.Stop()
	s.illumDebounce.Stop()
	s.runner.Close()
}

// Shutdown lets a Session be registered with the shutdown manager.
func (s *Session) Shutdown() {
	s.Close()
}

func (s *Session) reprocessFor(kind models.ParameterKind) {
	if s.variant.ParameterKind() == kind {
		s.Reprocess()
	}
}

func (s *Session) parameters() models.ParameterSnapshot {
	switch s.variant.ParameterKind() {
	case models.KindLinearAdjustment:
		return s.linear.Snapshot()
	case models.KindStructuredIllumination:
		return s.illumination.Snapshot()
	default:
		return models.NoParameters{}
	}
}

func (s *Session) applyResult(res pipeline.Result) {
	if s.closed {
		return
	}
	if res.Err != nil {
		s.logger.Error("Session", res.Err, map[string]interface{}{
			"seq":     res.Seq,
			"variant": res.Variant.String(),
		})
		s.view.ShowError(res.Err)
		return
	}

	s.output = res.Output
	s.view.ShowOutput(res.Output)
	s.refreshProfiles()
}

func (s *Session) refreshProfiles() {
	if !s.profileEnabled || s.boundsWidth <= 0 || s.boundsHeight <= 0 {
		return
	}

	var buffers []*models.ImageBuffer
	for _, b := range []*models.ImageBuffer{s.primary, s.output} {
		if b != nil {
			buffers = append(buffers, b)
		}
	}

	samples, err := s.extractor.SampleProfiles(buffers, s.cursor)
	if err != nil {
		s.logger.Error("Session", err, map[string]interface{}{"cursor": s.cursor})
		s.view.ShowError(err)
		return
	}

	stats := make([]profile.Summary, len(samples))
	for i, sample := range samples {
		stats[i] = profile.Summarize(sample)
	}
	s.view.ShowProfiles(profile.Normalize(samples, s.boundsWidth, s.boundsHeight), stats)
}
