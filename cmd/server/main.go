// Package main implements the entry point for the staff API server,
// a CRUD service for managing employee records.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/phrazzld/staff-api/internal/config"
	"github.com/phrazzld/staff-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run loads configuration, wires the application together, and serves HTTP
// until shutdown. Everything the handlers depend on is constructed here and
// passed down explicitly; no package-level singletons.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return err
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.cleanup()

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
