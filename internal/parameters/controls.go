package parameters

import "image-analyser/internal/models"

// LinearControls exposes one entry point per brightness/scaling/contrast slider.
type LinearControls struct {
	*Aggregator[models.LinearAdjustment]
}

func NewLinearControls() *LinearControls {
	return &LinearControls{NewAggregator(models.DefaultLinearAdjustment())}
}

func (c *LinearControls) SetBrightness(v float64) bool {
	return c.Update(func(s *models.LinearAdjustment) { s.Brightness = v })
}

func (c *LinearControls) SetScaling(v float64) bool {
	return c.Update(func(s *models.LinearAdjustment) { s.Scaling = v })
}

func (c *LinearControls) SetContrast(v float64) bool {
	return c.Update(func(s *models.LinearAdjustment) { s.Contrast = v })
}

// IlluminationControls exposes one entry point per HiLo/SLAM control.
type IlluminationControls struct {
	*Aggregator[models.StructuredIllumination]
}

func NewIlluminationControls() *IlluminationControls {
	return &IlluminationControls{NewAggregator(models.DefaultStructuredIllumination())}
}

func (c *IlluminationControls) SetTargetThickness(v float64) bool {
	return c.Update(func(s *models.StructuredIllumination) { s.TargetThickness = v })
}

func (c *IlluminationControls) SetWaveletGaussiansRatio(v float64) bool {
	return c.Update(func(s *models.StructuredIllumination) { s.WaveletGaussiansRatio = v })
}

func (c *IlluminationControls) SetEta(v float64) bool {
	return c.Update(func(s *models.StructuredIllumination) { s.Eta = v })
}

func (c *IlluminationControls) SetShotNoiseCorrection(on bool) bool {
	return c.Update(func(s *models.StructuredIllumination) { s.DoShotNoiseCorrection = on })
}

func (c *IlluminationControls) SetBandPassFilterVolume(v float64) bool {
	return c.Update(func(s *models.StructuredIllumination) { s.BandPassFilterVolume = v })
}

func (c *IlluminationControls) SetCameraGain(v float64) bool {
	return c.Update(func(s *models.StructuredIllumination) { s.CameraGain = v })
}

func (c *IlluminationControls) SetReadoutNoise(v float64) bool {
	return c.Update(func(s *models.StructuredIllumination) { s.ReadoutNoise = v })
}
