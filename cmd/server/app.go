package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// application holds the process-scoped dependencies and releases them on
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   store.TaskStore
	taskService service.TaskService

	closeStore closeFunc
}

// newApplication wires the service on top of an already opened store.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	tasks store.TaskStore,
	closeStore closeFunc,
) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if closeStore == nil {
		closeStore = noopClose
	}

	taskService, err := service.NewTaskService(tasks, logger)
	if err != nil {
		return nil, err
	}

	return &application{
		config:      cfg,
		logger:      logger,
		taskStore:   tasks,
		taskService: taskService,
		closeStore:  closeStore,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup releases the store client.
func (app *application) cleanup(ctx context.Context) {
	if err := app.closeStore(ctx); err != nil {
		app.logger.Error("failed to close task store", "error", err)
		return
	}
	app.logger.Info("task store closed")
}
