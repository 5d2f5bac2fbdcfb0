package store

import (
	"context"
	"fmt"

	"github.com/phrazzld/tasklist-api/internal/domain"
)

// UnavailableTaskStore stands in for a store whose client could not be
// created at startup. Every operation fails with ErrUnavailable wrapping the
// original cause, which keeps the process serving (and reporting 5xx)
// instead of exiting.
type UnavailableTaskStore struct {
	cause error
}

// NewUnavailableTaskStore returns a TaskStore that always fails with cause.
func NewUnavailableTaskStore(cause error) *UnavailableTaskStore {
	return &UnavailableTaskStore{cause: cause}
}

var _ TaskStore = (*UnavailableTaskStore)(nil)

func (s *UnavailableTaskStore) err(op string) error {
	return NewStoreError("task", op, "store not connected", fmt.Errorf("%w: %v", ErrUnavailable, s.cause))
}

// List implements TaskStore.
func (s *UnavailableTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return nil, s.err("list")
}

// Create implements TaskStore.
func (s *UnavailableTaskStore) Create(ctx context.Context, text string) (*domain.Task, error) {
	return nil, s.err("create")
}

// GetByID implements TaskStore.
func (s *UnavailableTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return nil, s.err("get")
}

// UpdateText implements TaskStore.
func (s *UnavailableTaskStore) UpdateText(ctx context.Context, id string, text string) (*domain.Task, error) {
	return nil, s.err("update_text")
}

// Toggle implements TaskStore.
func (s *UnavailableTaskStore) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	return nil, s.err("toggle")
}

// Delete implements TaskStore.
func (s *UnavailableTaskStore) Delete(ctx context.Context, id string) error {
	return s.err("delete")
}

// Ping implements TaskStore.
func (s *UnavailableTaskStore) Ping(ctx context.Context) error {
	return s.err("ping")
}
