package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/mongodb"
	"github.com/phrazzld/tasklist-api/internal/platform/postgres"
	"github.com/phrazzld/tasklist-api/internal/redact"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// closeFunc releases the store's client or pool at shutdown.
type closeFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// openTaskStore creates the long-lived store client for the configured
// backend. It never fails: when the client cannot be created the returned
// store reports every operation as unavailable, and when the store cannot be
// reached yet the real store is returned and the failure is only logged.
func openTaskStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.TaskStore, closeFunc) {
	var (
		tasks      store.TaskStore
		closeStore closeFunc
		err        error
	)

	switch backend := cfg.Database.Backend(); backend {
	case config.BackendMongo:
		tasks, closeStore, err = openMongoStore(ctx, cfg.Database, log)
	case config.BackendPostgres:
		tasks, closeStore, err = openPostgresStore(ctx, cfg.Database, log)
	default:
		err = fmt.Errorf("unsupported database backend %q", backend)
	}

	if err != nil {
		log.Error("task store could not be opened, serving in degraded mode",
			"error", redact.Error(err))
		return store.NewUnavailableTaskStore(err), noopClose
	}
	return tasks, closeStore
}

func openMongoStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (store.TaskStore, closeFunc, error) {
	client, err := mongodb.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := mongodb.Ping(ctx, client, cfg.ConnectTimeout); err != nil {
		log.Warn("document store unreachable at startup, continuing degraded",
			"backend", config.BackendMongo,
			"error", redact.Error(err))
	} else {
		log.Info("document store connection established", "backend", config.BackendMongo)
	}

	collection := client.Database(cfg.Name).Collection(cfg.Collection)
	return mongodb.NewMongoTaskStore(collection, log), client.Disconnect, nil
}

func openPostgresStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (store.TaskStore, closeFunc, error) {
	db, err := postgres.Open(cfg.URL)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func(context.Context) error { return db.Close() }

	tasks := postgres.NewPostgresTaskStore(db, log)

	if err := postgres.Ping(ctx, db, cfg.ConnectTimeout); err != nil {
		// The store creates its table on first use once the database is back.
		log.Warn("document store unreachable at startup, continuing degraded",
			"backend", config.BackendPostgres,
			"error", redact.Error(err))
	} else {
		log.Info("document store connection established", "backend", config.BackendPostgres)
		if err := tasks.EnsureSchema(ctx); err != nil {
			log.Error("failed to apply task table migrations", "error", redact.Error(err))
		}
	}

	return tasks, closeDB, nil
}
