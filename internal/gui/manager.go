package gui

import (
	"fmt"
	"image"

	"image-analyser/internal/gui/components"
	"image-analyser/internal/logger"
	"image-analyser/internal/models"
	"image-analyser/internal/parameters"
	"image-analyser/internal/profile"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// InputExtensions are the file types offered by the open dialog.
var InputExtensions = []string{".png", ".tif", ".tiff", ".jpg", ".jpeg"}

// Controller is what the widgets drive. app.Session implements it.
type Controller interface {
	SelectVariant(v models.FilterVariant)
	MoveCursor(relativeHeight float64)
	SetProfileBounds(width, height float64)
	SetProfileEnabled(on bool)
	Linear() *parameters.LinearControls
	Illumination() *parameters.IlluminationControls
}

// Manager owns the window content. Its Show* methods make it the view of a
// session and must be called on the UI thread.
type Manager struct {
	window     fyne.Window
	logger     logger.Logger
	initial    models.FilterVariant
	isShutdown bool

	imageDisplay   *components.ImageDisplay
	toolbar        *components.Toolbar
	statusBar      *components.StatusBar
	parameterPanel *components.ParameterPanel
	parameterSlot  *fyne.Container
	mainContainer  *fyne.Container
}

func NewManager(window fyne.Window, log logger.Logger, initial models.FilterVariant, showProfile bool) *Manager {
	m := &Manager{
		window:        window,
		logger:        log,
		initial:       initial,
		imageDisplay:  components.NewImageDisplay(),
		toolbar:       components.NewToolbar(initial, showProfile),
		statusBar:     components.NewStatusBar(),
		parameterSlot: container.NewVBox(),
	}

	m.mainContainer = container.NewBorder(
		m.toolbar.GetContainer(),
		m.statusBar.GetContainer(),
		nil,
		m.parameterSlot,
		m.imageDisplay.GetContainer(),
	)

	return m
}

// Bind connects the widgets to c. It must be called once before the window
// is shown.
func (m *Manager) Bind(c Controller) {
	m.parameterPanel = components.NewParameterPanel(c.Linear(), c.Illumination())
	m.parameterPanel.ShowFor(m.initial.ParameterKind())
	m.parameterSlot.Objects = []fyne.CanvasObject{m.parameterPanel.GetContainer()}
	m.parameterSlot.Refresh()

	m.toolbar.SetFilterChangeHandler(func(v models.FilterVariant) {
		m.logger.Debug("GUIManager", "filter change requested", map[string]interface{}{
			"filter": v.String(),
		})
		m.parameterPanel.ShowFor(v.ParameterKind())
		c.SelectVariant(v)
	})
	m.toolbar.SetProfileToggleHandler(c.SetProfileEnabled)

	m.imageDisplay.Output.OnCursor = c.MoveCursor
	m.imageDisplay.Output.OnResize = c.SetProfileBounds
}

func (m *Manager) SetImageLoadHandler(handler func(components.InputSlot)) {
	m.toolbar.SetImageLoadHandler(handler)
}

func (m *Manager) SetImageSaveHandler(handler func()) {
	m.toolbar.SetImageSaveHandler(handler)
}

func (m *Manager) SetDefaultInputsHandler(handler func()) {
	m.toolbar.SetDefaultInputsHandler(handler)
}

// SelectFilter drives the filter selector programmatically.
func (m *Manager) SelectFilter(v models.FilterVariant) {
	m.toolbar.SelectFilter(v)
	if m.parameterPanel != nil {
		m.parameterPanel.ShowFor(v.ParameterKind())
	}
}

func (m *Manager) GetMainContainer() *fyne.Container {
	return m.mainContainer
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) ImageDisplay() *components.ImageDisplay     { return m.imageDisplay }
func (m *Manager) ParameterPanel() *components.ParameterPanel { return m.parameterPanel }
func (m *Manager) StatusBar() *components.StatusBar           { return m.statusBar }

func (m *Manager) ShowInputs(primary, secondary *models.ImageBuffer, arity int) {
	m.imageDisplay.SetInputs(imageOf(primary), imageOf(secondary), arity == 2)
	m.toolbar.SetSecondaryEnabled(arity == 2)
}

func (m *Manager) ShowOutput(output *models.ImageBuffer) {
	m.imageDisplay.SetOutput(imageOf(output))
	if output != nil {
		m.statusBar.SetStatus(fmt.Sprintf("Output %dx%d", output.Width(), output.Height()))
	}
}

func (m *Manager) ShowProfiles(series []profile.NormalizedSeries, stats []profile.Summary) {
	m.imageDisplay.Output.SetSeries(series)
	m.statusBar.SetProfileStats(stats)
}

// ShowError reports a processing failure in the status bar. The previous
// output stays on screen.
func (m *Manager) ShowError(err error) {
	m.statusBar.SetStatus("Error: " + err.Error())
}

// ShowDialogError reports a failure that needs acknowledging, such as an
// unreadable file.
func (m *Manager) ShowDialogError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})
	dialog.ShowError(err, m.window)
}

func (m *Manager) UpdateStatus(status string) {
	m.statusBar.SetStatus(status)
}

func (m *Manager) ShowFileOpen(callback func(fyne.URIReadCloser, error)) {
	d := dialog.NewFileOpen(callback, m.window)
	d.SetFilter(storage.NewExtensionFileFilter(InputExtensions))
	d.Show()
}

func (m *Manager) ShowFileSave(callback func(fyne.URIWriteCloser, error)) {
	d := dialog.NewFileSave(callback, m.window)
	d.SetFileName("output.png")
	d.Show()
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}

func imageOf(buf *models.ImageBuffer) image.Image {
	if buf == nil {
		return nil
	}
	return buf.Image
}
