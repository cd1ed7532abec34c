package pipeline

import "image-analyser/internal/models"

// Transformer is the pixel-transform library the dispatcher sequences. Every
// call returns a new buffer and leaves its inputs untouched.
type Transformer interface {
	Grayscale(src *models.ImageBuffer, mode models.ChannelMode) (*models.ImageBuffer, error)
	Divide(numerator, denominator *models.ImageBuffer) (*models.ImageBuffer, error)
	AdjustBrightness(src *models.ImageBuffer, offsets []float64) (*models.ImageBuffer, error)
	Scale(src *models.ImageBuffer, factors []float64) (*models.ImageBuffer, error)
	AdjustContrast(src *models.ImageBuffer, factors []float64) (*models.ImageBuffer, error)
	EqualizeHistogram(src *models.ImageBuffer) (*models.ImageBuffer, error)
	HiLoReconstruct(uniform, speckle *models.ImageBuffer, params models.StructuredIllumination) (*models.ImageBuffer, error)
	SlamReconstruct(bright, dark *models.ImageBuffer, params models.StructuredIllumination) (*models.ImageBuffer, error)
}

// Logger is the subset of logger.Logger the pipeline uses.
type Logger interface {
	Debug(component string, message string, fields map[string]interface{})
	Info(component string, message string, fields map[string]interface{})
	Warning(component string, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}
