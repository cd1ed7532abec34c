package components

import (
	"image-analyser/internal/models"
	"image-analyser/internal/parameters"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ParameterPanel holds the sliders for both parameter families and shows
// the one the selected filter consumes.
type ParameterPanel struct {
	container    *fyne.Container
	linearBox    *fyne.Container
	illumBox     *fyne.Container
	linear       *parameters.LinearControls
	illumination *parameters.IlluminationControls

	sliders   map[string]*widget.Slider
	shotNoise *widget.Check
}

func NewParameterPanel(linear *parameters.LinearControls, illumination *parameters.IlluminationControls) *ParameterPanel {
	pp := &ParameterPanel{
		linear:       linear,
		illumination: illumination,
		sliders:      make(map[string]*widget.Slider),
	}
	pp.setupLinear()
	pp.setupIllumination()

	pp.container = container.NewVBox(
		widget.NewLabel("Parameters"),
		pp.linearBox,
		pp.illumBox,
	)
	return pp
}

func (pp *ParameterPanel) GetContainer() *fyne.Container {
	return pp.container
}

func (pp *ParameterPanel) setupLinear() {
	p := pp.linear.Snapshot()
	pp.linearBox = container.NewVBox(
		pp.slider("Brightness", models.BrightnessRange, p.Brightness, pp.linear.SetBrightness),
		pp.slider("Scaling", models.ScalingRange, p.Scaling, pp.linear.SetScaling),
		pp.slider("Contrast", models.ContrastRange, p.Contrast, pp.linear.SetContrast),
		widget.NewButton("Reset", pp.resetLinear),
	)
}

func (pp *ParameterPanel) setupIllumination() {
	p := pp.illumination.Snapshot()
	pp.shotNoise = widget.NewCheck("Shot noise correction", func(on bool) {
		pp.illumination.SetShotNoiseCorrection(on)
	})
	pp.shotNoise.SetChecked(p.DoShotNoiseCorrection)

	pp.illumBox = container.NewVBox(
		pp.slider("Target thickness", models.ReconstructionRange, p.TargetThickness, pp.illumination.SetTargetThickness),
		pp.slider("Wavelet gaussians ratio", models.ReconstructionRange, p.WaveletGaussiansRatio, pp.illumination.SetWaveletGaussiansRatio),
		pp.slider("Eta", models.ReconstructionRange, p.Eta, pp.illumination.SetEta),
		pp.shotNoise,
		pp.slider("Band-pass filter volume", models.NoiseRange, p.BandPassFilterVolume, pp.illumination.SetBandPassFilterVolume),
		pp.slider("Camera gain", models.NoiseRange, p.CameraGain, pp.illumination.SetCameraGain),
		pp.slider("Readout noise", models.NoiseRange, p.ReadoutNoise, pp.illumination.SetReadoutNoise),
		widget.NewButton("Reset", pp.resetIllumination),
	)
}

func (pp *ParameterPanel) slider(name string, r models.ControlRange, initial float64, set func(float64) bool) fyne.CanvasObject {
	s := widget.NewSlider(r.Min, r.Max)
	s.Step = r.Step
	s.SetValue(initial)

	value := widget.NewLabel(r.Format(initial))
	s.OnChanged = func(v float64) {
		v = r.Snap(v)
		value.SetText(r.Format(v))
		set(v)
	}
	pp.sliders[name] = s

	return container.NewBorder(nil, nil, widget.NewLabel(name), value, s)
}

// ShowFor shows the controls of the given parameter kind and hides the rest.
func (pp *ParameterPanel) ShowFor(kind models.ParameterKind) {
	pp.linearBox.Hide()
	pp.illumBox.Hide()
	switch kind {
	case models.KindLinearAdjustment:
		pp.linearBox.Show()
	case models.KindStructuredIllumination:
		pp.illumBox.Show()
	}
}

// SliderValue returns the current position of the named slider.
func (pp *ParameterPanel) SliderValue(name string) (float64, bool) {
	s, ok := pp.sliders[name]
	if !ok {
		return 0, false
	}
	return s.Value, true
}

// SetSlider moves the named slider as if the user dragged it.
func (pp *ParameterPanel) SetSlider(name string, v float64) {
	if s, ok := pp.sliders[name]; ok {
		s.SetValue(v)
	}
}

func (pp *ParameterPanel) resetLinear() {
	pp.linear.Reset()
	p := pp.linear.Snapshot()
	pp.SetSlider("Brightness", p.Brightness)
	pp.SetSlider("Scaling", p.Scaling)
	pp.SetSlider("Contrast", p.Contrast)
}

func (pp *ParameterPanel) resetIllumination() {
	pp.illumination.Reset()
	p := pp.illumination.Snapshot()
	pp.SetSlider("Target thickness", p.TargetThickness)
	pp.SetSlider("Wavelet gaussians ratio", p.WaveletGaussiansRatio)
	pp.SetSlider("Eta", p.Eta)
	pp.shotNoise.SetChecked(p.DoShotNoiseCorrection)
	pp.SetSlider("Band-pass filter volume", p.BandPassFilterVolume)
	pp.SetSlider("Camera gain", p.CameraGain)
	pp.SetSlider("Readout noise", p.ReadoutNoise)
}
