package mocks

import (
	"context"

	"github.com/phrazzld/tasklist-api/internal/domain"
)

// MockTaskService implements service.TaskService for testing.
// Methods whose function field is nil return zero values.
type MockTaskService struct {
	ListTasksFn      func(ctx context.Context) ([]*domain.Task, error)
	CreateTaskFn     func(ctx context.Context, text string) (*domain.Task, error)
	GetTaskFn        func(ctx context.Context, id string) (*domain.Task, error)
	UpdateTaskTextFn func(ctx context.Context, id string, text string) (*domain.Task, error)
	ToggleTaskFn     func(ctx context.Context, id string) (*domain.Task, error)
	DeleteTaskFn     func(ctx context.Context, id string) error
}

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []*domain.Task{}, nil
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(ctx context.Context, text string) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, text)
	}
	return nil, nil
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, nil
}

// UpdateTaskText implements service.TaskService
func (m *MockTaskService) UpdateTaskText(ctx context.Context, id string, text string) (*domain.Task, error) {
	if m.UpdateTaskTextFn != nil {
		return m.UpdateTaskTextFn(ctx, id, text)
	}
	return nil, nil
}

// ToggleTask implements service.TaskService
func (m *MockTaskService) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	if m.ToggleTaskFn != nil {
		return m.ToggleTaskFn(ctx, id)
	}
	return nil, nil
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, id string) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}
