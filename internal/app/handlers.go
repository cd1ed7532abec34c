package app

import (
	"fmt"
	"io"

	"image-analyser/internal/gui"
	"image-analyser/internal/gui/components"
	"image-analyser/internal/imageio"
	"image-analyser/internal/logger"
	"image-analyser/internal/models"

	"fyne.io/fyne/v2"
)

// Handlers run the file dialogs. Decoding and encoding happen off the UI
// thread and report back through fyne.Do.
type Handlers struct {
	session    *Session
	guiManager *gui.Manager
	loader     *imageio.Loader
	logger     logger.Logger
}

func NewHandlers(session *Session, gm *gui.Manager, loader *imageio.Loader, log logger.Logger) *Handlers {
	return &Handlers{
		session:    session,
		guiManager: gm,
		loader:     loader,
		logger:     log,
	}
}

func (h *Handlers) HandleImageLoad(slot components.InputSlot) {
	h.guiManager.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.guiManager.ShowDialogError("File Load Error", err)
			return
		}
		if reader == nil {
			return
		}

		h.guiManager.UpdateStatus("Loading image...")

		go func() {
			buf, loadErr := h.LoadFrom(reader, reader.URI().Name())
			reader.Close()

			fyne.Do(func() {
				h.ApplyLoaded(slot, buf, loadErr)
			})
		}()
	})
}

// HandleDefaultInputs restores the synthetic input pair.
func (h *Handlers) HandleDefaultInputs() {
	h.guiManager.UpdateStatus("Default inputs")
	h.session.SetInputs(
		imageio.CircularGradient(GradientSize, GradientSize),
		imageio.StripedGradient(GradientSize, GradientSize),
	)
	h.logger.Info("Handlers", "default inputs restored", nil)
}

// LoadFrom decodes one input image.
func (h *Handlers) LoadFrom(r io.Reader, name string) (*models.ImageBuffer, error) {
	return h.loader.Decode(r, name)
}

// ApplyLoaded hands a decoded image to the session. It runs on the UI thread.
func (h *Handlers) ApplyLoaded(slot components.InputSlot, buf *models.ImageBuffer, err error) {
	if err != nil {
		h.guiManager.ShowDialogError("Image Load Error", err)
		h.guiManager.UpdateStatus("Ready")
		return
	}

	switch slot {
	case components.SecondarySlot:
		h.session.SetSecondaryInput(buf)
	default:
		h.session.SetPrimaryInput(buf)
	}
	h.guiManager.UpdateStatus(fmt.Sprintf("Loaded %s", buf.Source))
}

func (h *Handlers) HandleImageSave() {
	output := h.session.Output()
	if output == nil {
		h.guiManager.ShowDialogError("Save Error", fmt.Errorf("no processed image to save"))
		return
	}

	h.guiManager.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			h.guiManager.ShowDialogError("File Save Error", err)
			return
		}
		if writer == nil {
			return
		}

		h.guiManager.UpdateStatus("Saving image...")

		go func() {
			format := imageio.FormatForExtension(writer.URI().Extension())
			saveErr := h.loader.Encode(writer, output, format)
			if closeErr := writer.Close(); saveErr == nil {
				saveErr = closeErr
			}

			fyne.Do(func() {
				if saveErr != nil {
					h.guiManager.ShowDialogError("Image Save Error", saveErr)
					return
				}
				h.guiManager.UpdateStatus("Image saved successfully")
			})
		}()
	})
}
