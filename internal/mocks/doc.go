// Package mocks provides centralized mock implementations for testing.
//
// Each mock has a function field per interface method. When a field is nil
// the mock falls back to a default behavior; MockTaskStore's default is a
// working in-memory store, so tests can exercise full task lifecycles
// without a database.
//
//	tasks := mocks.NewMockTaskStore()
//	tasks.ToggleFn = func(ctx context.Context, id string) (*domain.Task, error) {
//	    return nil, store.ErrUnavailable
//	}
package mocks
