package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// TaskService provides the task list use cases. Every call goes to the store;
// no task state is kept between calls.
type TaskService interface {
	// ListTasks returns all tasks, newest first.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// CreateTask validates text and creates an incomplete task.
	CreateTask(ctx context.Context, text string) (*domain.Task, error)

	// GetTask returns the task with the given ID.
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// UpdateTaskText validates text and replaces the task's text,
	// leaving Completed and CreatedAt unchanged.
	UpdateTaskText(ctx context.Context, id string, text string) (*domain.Task, error)

	// ToggleTask flips the task's completion state.
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)

	// DeleteTask permanently removes the task.
	DeleteTask(ctx context.Context, id string) error
}

// Common sentinel errors for TaskService
var (
	// ErrTaskNotFound indicates that no live task has the requested ID.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "toggle_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Not-found errors collapse to ErrTaskNotFound and validation errors pass
// through unchanged so callers can match them directly.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}

	if errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService backed by tasks.
// It returns an error if the store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "task store cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
	}, nil
}

// ListTasks returns all tasks, newest first.
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// CreateTask validates text and creates an incomplete task.
func (s *taskServiceImpl) CreateTask(ctx context.Context, text string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized, err := domain.NormalizeTaskText(text)
	if err != nil {
		log.Debug("rejected task text", "error", err)
		return nil, err
	}

	task, err := s.tasks.Create(ctx, normalized)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", "task_id", task.ID)
	return task, nil
}

// GetTask returns a single task.
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := domain.ValidateTaskID(id); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// UpdateTaskText validates text before touching the store, so an invalid
// request never reaches it even when the ID does not exist.
func (s *taskServiceImpl) UpdateTaskText(ctx context.Context, id string, text string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateTaskID(id); err != nil {
		return nil, err
	}

	normalized, err := domain.NormalizeTaskText(text)
	if err != nil {
		log.Debug("rejected task text", "task_id", id, "error", err)
		return nil, err
	}

	task, err := s.tasks.UpdateText(ctx, id, normalized)
	if err != nil {
		return nil, NewTaskServiceError("update_task_text", "failed to update task", err)
	}

	log.Info("task text updated", "task_id", id)
	return task, nil
}

// ToggleTask flips the task's completion state in the store.
func (s *taskServiceImpl) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateTaskID(id); err != nil {
		return nil, err
	}

	task, err := s.tasks.Toggle(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("toggle_task", "failed to toggle task", err)
	}

	log.Info("task toggled", "task_id", id, "completed", task.Completed)
	return task, nil
}

// DeleteTask removes the task.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateTaskID(id); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", "task_id", id)
	return nil
}
