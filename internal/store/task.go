package store

import (
	"context"

	"github.com/phrazzld/tasklist-api/internal/domain"
)

// TaskStore is the document store adapter for tasks. It is the only writer
// of task documents.
//
// Implementations apply creation defaults (Completed=false, CreatedAt=now)
// in Create and nowhere else. They do not validate text; callers pass text
// that has already been normalized.
type TaskStore interface {
	// List returns every task ordered by CreatedAt, newest first.
	// It returns an empty slice when there are no tasks.
	List(ctx context.Context) ([]*domain.Task, error)

	// Create persists a new task with the given text and returns it with its
	// store-assigned ID and CreatedAt.
	Create(ctx context.Context, text string) (*domain.Task, error)

	// GetByID returns the task with the given ID.
	// Returns ErrTaskNotFound if no such task exists.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// UpdateText replaces the task's text and returns the updated task.
	// Returns ErrTaskNotFound if no such task exists.
	UpdateText(ctx context.Context, id string, text string) (*domain.Task, error)

	// Toggle flips the task's Completed flag and returns the updated task.
	// Returns ErrTaskNotFound if no such task exists.
	Toggle(ctx context.Context, id string) (*domain.Task, error)

	// Delete removes the task permanently.
	// Returns ErrTaskNotFound if no such task exists.
	Delete(ctx context.Context, id string) error

	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}
