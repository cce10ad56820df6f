// Package app initializes and holds the long-lived services shared by all
// commands, acting as a small dependency injection container.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/linkforge/linkforge/internal/config"
	"github.com/linkforge/linkforge/internal/logging"
	"github.com/linkforge/linkforge/internal/metrics"
)

// App holds the shared services for the application. It is initialized once
// at startup and handed to commands through the cobra command context.
type App struct {
	logger *zap.Logger
	cfg    config.Config
}

// New loads configuration from cfgPath (empty means defaults plus
// environment) and builds the logger and metrics collectors.
func New(cfgPath string) (*App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	metrics.Init()

	logger.Debug("Application services initialized")
	return &App{logger: logger, cfg: cfg}, nil
}

// Logger returns the shared zap logger instance.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Config exposes the loaded configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Close flushes the logger buffer. Sync errors on stderr are expected on
// some platforms and intentionally ignored.
func (a *App) Close() {
	_ = a.logger.Sync()
}
