// Package main implements the entry point for the task list API server,
// which serves the /api/tasks routes and the static client UI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, opens the task store and serves HTTP until the
// process receives SIGINT or SIGTERM.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"static_dir", cfg.Server.StaticDir,
		"backend", cfg.Database.Backend())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tasks, closeStore := openTaskStore(ctx, cfg, log)

	app, err := newApplication(cfg, log, tasks, closeStore)
	if err != nil {
		_ = closeStore(context.Background())
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
