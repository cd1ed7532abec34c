package imageio

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"image-analyser/internal/models"

	"golang.org/x/image/tiff"
)

// FormatForExtension maps a file extension to an output format, defaulting
// to png.
func FormatForExtension(extension string) string {
	switch strings.ToLower(extension) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "png"
	}
}

// Encode writes buf to w in the named format (png, jpeg or tiff).
func (l *Loader) Encode(w io.Writer, buf *models.ImageBuffer, format string) error {
	if buf == nil || buf.Image == nil {
		return fmt.Errorf("no image data to save")
	}

	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(w, buf.Image, &jpeg.Options{Quality: 95})
	case "tiff":
		err = tiff.Encode(w, buf.Image, &tiff.Options{Compression: tiff.Deflate})
	case "png":
		err = png.Encode(w, buf.Image)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}

	l.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"format": format,
		"width":  buf.Width(),
		"height": buf.Height(),
	})
	return nil
}
