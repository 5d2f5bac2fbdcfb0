package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	// Function fields for customizable behavior
	ListFn       func(ctx context.Context) ([]*domain.Task, error)
	CreateFn     func(ctx context.Context, text string) (*domain.Task, error)
	GetByIDFn    func(ctx context.Context, id string) (*domain.Task, error)
	UpdateTextFn func(ctx context.Context, id string, text string) (*domain.Task, error)
	ToggleFn     func(ctx context.Context, id string) (*domain.Task, error)
	DeleteFn     func(ctx context.Context, id string) error
	PingFn       func(ctx context.Context) error

	// Now supplies CreatedAt for the default Create. Defaults to a clock
	// that advances one second per call, so creation order is strict.
	Now func() time.Time

	mu     sync.Mutex
	tasks  map[string]*domain.Task
	nextID int
	clock  time.Time
}

// NewMockTaskStore creates a new mock store with an empty in-memory collection.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[string]*domain.Task),
		clock: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Len returns the number of tasks held by the default implementation.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, copyTask(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, text string) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, text)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	t := &domain.Task{
		ID:        fmt.Sprintf("task-%04d", m.nextID),
		Text:      text,
		Completed: false,
		CreatedAt: m.nowLocked(),
	}
	m.tasks[t.ID] = t
	return copyTask(t), nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return copyTask(t), nil
}

// UpdateText implements the TaskStore interface
func (m *MockTaskStore) UpdateText(ctx context.Context, id string, text string) (*domain.Task, error) {
	if m.UpdateTextFn != nil {
		return m.UpdateTextFn(ctx, id, text)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	t.Text = text
	return copyTask(t), nil
}

// Toggle implements the TaskStore interface
func (m *MockTaskStore) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	if m.ToggleFn != nil {
		return m.ToggleFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	t.Completed = !t.Completed
	return copyTask(t), nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Ping implements the TaskStore interface
func (m *MockTaskStore) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

func (m *MockTaskStore) nowLocked() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func copyTask(t *domain.Task) *domain.Task {
	c := *t
	return &c
}
