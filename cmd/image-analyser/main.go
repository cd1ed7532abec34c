package main

import (
	"log"
	"runtime"

	"image-analyser/internal/app"
	"image-analyser/internal/config"
	"image-analyser/internal/logger"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	appLogger := logger.NewConsoleLogger(cfg.Level())
	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":    app.AppVersion,
		"go_version": runtime.Version(),
		"num_cpu":    runtime.NumCPU(),
		"log_level":  cfg.Level().String(),
	})

	fyneapp.SetMetadata(fyne.AppMetadata{
		ID:      app.AppID,
		Name:    app.AppName,
		Version: app.AppVersion,
	})
	fyneApp := fyneapp.NewWithID(app.AppID)

	application := app.NewApplication(fyneApp, cfg, appLogger)
	application.ListenForSignals()
	application.Run()

	appLogger.Info("Application", "terminated", nil)
}
