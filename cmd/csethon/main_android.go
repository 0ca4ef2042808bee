//go:build android

package main

import (
	"go.uber.org/zap"

	"csethon/internal/app"
	"csethon/internal/config"
	"csethon/internal/content"
	"csethon/internal/mobile"
)

// Android has no command line; the app runs on defaults and the built-in
// content.
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Default()
	if err := cfg.ApplyEnv(); err != nil {
		logger.Warn("ignoring environment", zap.Error(err))
	}
	// The GLES context cannot compile the desktop intro shader.
	cfg.Intro.Shader = false
	mobile.Run(mobile.Options{
		Config: cfg,
		App:    app.Options{Content: content.Default(), Logger: logger},
		Logger: logger,
	})
}
