package imageio

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"image-analyser/internal/models"

	_ "golang.org/x/image/tiff"
)

// Logger is the subset of logger.Logger the loader uses.
type Logger interface {
	Debug(component string, message string, fields map[string]interface{})
	Info(component string, message string, fields map[string]interface{})
}

// Loader decodes input images and bounds their width for interactive use.
type Loader struct {
	logger         Logger
	thumbnailWidth int
}

// NewLoader returns a Loader. A thumbnailWidth of zero keeps images at their
// native size.
func NewLoader(logger Logger, thumbnailWidth int) *Loader {
	return &Loader{logger: logger, thumbnailWidth: thumbnailWidth}
}

func (l *Loader) LoadFile(path string) (*models.ImageBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return l.Decode(bufio.NewReader(f), filepath.Base(path))
}

// Decode reads a PNG, JPEG or TIFF image from r. name is used for the
// buffer's source label and format detection only.
func (l *Loader) Decode(r io.Reader, name string) (*models.ImageBuffer, error) {
	img, decoded, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %q: %w", name, err)
	}

	format := determineFormat(filepath.Ext(name), decoded)
	native := img.Bounds()
	img = Thumbnail(img, l.thumbnailWidth)

	buf := models.NewImageBuffer(img, name)
	l.logger.Info("ImageLoader", "image loaded", map[string]interface{}{
		"name":          name,
		"format":        format,
		"native_width":  native.Dx(),
		"native_height": native.Dy(),
		"width":         buf.Width(),
		"height":        buf.Height(),
		"channels":      buf.SamplesPerPixel,
	})

	return buf, nil
}

func determineFormat(extension, decoded string) string {
	switch strings.ToLower(extension) {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	default:
		if decoded != "" {
			return decoded
		}
		return "unknown"
	}
}
