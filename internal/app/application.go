package app

import (
	"time"

	"image-analyser/internal/config"
	"image-analyser/internal/gui"
	"image-analyser/internal/imageio"
	"image-analyser/internal/logger"
	"image-analyser/internal/opencv/transform"
	"image-analyser/internal/pipeline"
	"image-analyser/internal/shutdown"

	"fyne.io/fyne/v2"
)

const (
	AppName      = "Image Analyser"
	AppID        = "com.imageanalyser.desktop"
	AppVersion   = "1.0.0"
	GradientSize = 256

	MinWindowWidth  = 1000
	MinWindowHeight = 640
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	logger     logger.Logger
	guiManager *gui.Manager
	session    *Session
	handlers   *Handlers
	shutdown   *shutdown.Manager
}

// NewApplication builds the window and wires the OpenCV backend, the session
// and the widgets together.
func NewApplication(fyneApp fyne.App, cfg config.Config, log logger.Logger) *Application {
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(MinWindowWidth, MinWindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	library := transform.NewLibrary(log)
	dispatcher := pipeline.NewDispatcher(library, log)

	guiManager := gui.NewManager(window, log, cfg.Filter(), cfg.ShowProfile)
	session := NewSession(dispatcher, library, guiManager, log, fyne.Do, SessionOptions{
		InitialFilter: cfg.Filter(),
		ShowProfile:   cfg.ShowProfile,
		Debounce:      time.Duration(cfg.DebounceMillis) * time.Millisecond,
	})
	guiManager.Bind(session)

	handlers := NewHandlers(session, guiManager, imageio.NewLoader(log, cfg.ThumbnailWidth), log)
	guiManager.SetImageLoadHandler(handlers.HandleImageLoad)
	guiManager.SetImageSaveHandler(handlers.HandleImageSave)
	guiManager.SetDefaultInputsHandler(handlers.HandleDefaultInputs)

	shutdownManager := shutdown.NewManager(log)
	shutdownManager.Register(guiManager)
	shutdownManager.Register(session)

	log.Info("Application", "initialization complete", map[string]interface{}{
		"version":         AppVersion,
		"filter":          cfg.InitialFilter,
		"debounce_ms":     cfg.DebounceMillis,
		"thumbnail_width": cfg.ThumbnailWidth,
	})

	return &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		guiManager: guiManager,
		session:    session,
		handlers:   handlers,
		shutdown:   shutdownManager,
	}
}

// Start shows the synthetic default inputs so every filter, including the
// two-input ones, has something to work on before a file is loaded.
func (a *Application) Start() {
	a.handlers.HandleDefaultInputs()
}

func (a *Application) Run() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.Start()
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()
}

// ListenForSignals shuts the application down on SIGINT or SIGTERM.
func (a *Application) ListenForSignals() {
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})
}

func (a *Application) Session() *Session        { return a.session }
func (a *Application) GUIManager() *gui.Manager { return a.guiManager }
func (a *Application) Window() fyne.Window      { return a.window }
func (a *Application) Shutdown()                { a.shutdown.Shutdown() }
