package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// taskDoc is the JSONB document stored in tasks.doc.
type taskDoc struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

const taskColumns = `id, doc, created_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL JSONB document table as the storage backend.
//
// The tasks table is created on first use, so a store opened while the
// database was unreachable starts working once it comes back.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time

	migrate     func(ctx context.Context) error
	schemaMu    sync.Mutex
	schemaReady bool
}

// NewPostgresTaskStore creates a new PostgresTaskStore.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		now:    time.Now,
	}
	s.migrate = func(ctx context.Context) error {
		return Migrate(ctx, s.db, logger)
	}
	return s
}

// EnsureSchema applies pending migrations unless a previous call already
// succeeded. Failures are not remembered, so the next call tries again.
func (s *PostgresTaskStore) EnsureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()

	if s.schemaReady {
		return nil
	}

	if err := s.migrate(ctx); err != nil {
		if !store.IsUnavailableError(err) {
			err = fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
		return err
	}

	s.schemaReady = true
	s.logger.Info("task table schema is up to date")
	return nil
}

// prepare runs before every operation that touches the tasks table.
func (s *PostgresTaskStore) prepare(ctx context.Context, op string) error {
	if err := s.EnsureSchema(ctx); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("task table not ready",
			"operation", op,
			"error", err)
		return store.NewStoreError("task", op, "schema setup failed", err)
	}
	return nil
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// List returns every task, newest first.
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.prepare(ctx, "list"); err != nil {
		return nil, err
	}

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", "error", err)
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", "error", err)
			return nil, store.NewStoreError("task", "list", "scan failed", MapError(err))
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", "error", err)
		return nil, store.NewStoreError("task", "list", "iteration failed", MapError(err))
	}

	return tasks, nil
}

// Create inserts a new incomplete task stamped with the current time.
// The database assigns the id.
func (s *PostgresTaskStore) Create(ctx context.Context, text string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.prepare(ctx, "create"); err != nil {
		return nil, err
	}

	doc, err := json.Marshal(taskDoc{Text: text, Completed: false})
	if err != nil {
		return nil, store.NewStoreError("task", "create", "encode failed", err)
	}

	// TIMESTAMPTZ has microsecond precision.
	createdAt := s.now().UTC().Truncate(time.Microsecond)

	query := `INSERT INTO tasks (doc, created_at) VALUES ($1, $2) RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(ctx, query, string(doc), createdAt))
	if err != nil {
		log.Error("failed to insert task", "error", err)
		return nil, store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Debug("task created", "task_id", task.ID)
	return task, nil
}

// GetByID returns a single task.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if err := s.prepare(ctx, "get"); err != nil {
		return nil, err
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return s.queryOne(ctx, "get", id, query, uid)
}

// UpdateText replaces the text field of the task document.
func (s *PostgresTaskStore) UpdateText(ctx context.Context, id string, text string) (*domain.Task, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if err := s.prepare(ctx, "update_text"); err != nil {
		return nil, err
	}

	query := `
		UPDATE tasks
		SET doc = jsonb_set(doc, '{text}', to_jsonb($1::text))
		WHERE id = $2
		RETURNING ` + taskColumns
	return s.queryOne(ctx, "update_text", id, query, text, uid)
}

// Toggle flips the completed field of the task document in one statement.
func (s *PostgresTaskStore) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if err := s.prepare(ctx, "toggle"); err != nil {
		return nil, err
	}

	query := `
		UPDATE tasks
		SET doc = jsonb_set(doc, '{completed}', to_jsonb(NOT (doc->>'completed')::boolean))
		WHERE id = $1
		RETURNING ` + taskColumns
	return s.queryOne(ctx, "toggle", id, query, uid)
}

// Delete removes the task.
func (s *PostgresTaskStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	uid, err := parseID(id)
	if err != nil {
		return err
	}

	if err := s.prepare(ctx, "delete"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, uid)
	if err != nil {
		log.Error("failed to delete task", "task_id", id, "error", err)
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	return CheckRowsAffected(result)
}

// Ping checks connectivity to the database and that the tasks table exists.
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return store.NewStoreError("task", "ping", "ping failed", MapError(err))
	}
	return s.prepare(ctx, "ping")
}

func (s *PostgresTaskStore) queryOne(
	ctx context.Context,
	op, id, query string,
	args ...interface{},
) (*domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return task, nil
	}

	mapped := MapError(err)
	if store.IsNotFoundError(mapped) {
		return nil, store.ErrTaskNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("task operation failed",
		"operation", op,
		"task_id", id,
		"error", err)
	return nil, store.NewStoreError("task", op, "operation failed", mapped)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		id        uuid.UUID
		raw       []byte
		createdAt time.Time
	)
	if err := row.Scan(&id, &raw, &createdAt); err != nil {
		return nil, err
	}
	return decodeTask(id, raw, createdAt)
}

func decodeTask(id uuid.UUID, raw []byte, createdAt time.Time) (*domain.Task, error) {
	var doc taskDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode task document %s: %w", id, err)
	}

	return &domain.Task{
		ID:        id.String(),
		Text:      doc.Text,
		Completed: doc.Completed,
		CreatedAt: createdAt.UTC(),
	}, nil
}

// parseID converts id to a UUID. A string that is not a UUID cannot name a
// stored task, so it is reported as not found.
func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed id", store.ErrTaskNotFound)
	}
	return uid, nil
}
