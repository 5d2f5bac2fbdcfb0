package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresTaskStore(t *testing.T) {
	s := NewPostgresTaskStore(&sql.DB{}, nil)
	assert.NotNil(t, s)
	assert.NotNil(t, s.logger)
	assert.NotNil(t, s.now)

	assert.Panics(t, func() { NewPostgresTaskStore(nil, nil) })
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	got, err := parseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	for _, bad := range []string{"", "42", "65f1c0ffee0000000000beef"} {
		_, err := parseID(bad)
		assert.ErrorIs(t, err, store.ErrTaskNotFound, "id %q", bad)
	}
}

func TestDecodeTask(t *testing.T) {
	id := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	created := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))

	task, err := decodeTask(id, []byte(`{"text":"buy milk","completed":true}`), created)
	require.NoError(t, err)
	assert.Equal(t, id.String(), task.ID)
	assert.Equal(t, "buy milk", task.Text)
	assert.True(t, task.Completed)
	assert.Equal(t, time.UTC, task.CreatedAt.Location())
	assert.True(t, created.Equal(task.CreatedAt))

	_, err = decodeTask(id, []byte(`not json`), created)
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_create_tasks.sql", entries[0].Name())
}

func TestEnsureSchema_RetriesUntilMigrationSucceeds(t *testing.T) {
	s := NewPostgresTaskStore(&sql.DB{}, nil)

	var calls int
	s.migrate = func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("dial tcp 127.0.0.1:5432: connection refused")
		}
		return nil
	}

	ctx := context.Background()

	err := s.EnsureSchema(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.False(t, s.schemaReady)

	require.NoError(t, s.EnsureSchema(ctx))
	assert.True(t, s.schemaReady)

	require.NoError(t, s.EnsureSchema(ctx))
	assert.Equal(t, 2, calls, "a successful migration is not repeated")
}

func TestOperationsFailUnavailableUntilSchemaReady(t *testing.T) {
	s := NewPostgresTaskStore(&sql.DB{}, nil)

	var calls int
	s.migrate = func(ctx context.Context) error {
		calls++
		return errors.New("connection refused")
	}

	ctx := context.Background()
	id := uuid.New().String()

	_, err := s.List(ctx)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = s.Create(ctx, "buy milk")
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = s.GetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = s.UpdateText(ctx, id, "buy oat milk")
	assert.ErrorIs(t, err, store.ErrUnavailable)
	_, err = s.Toggle(ctx, id)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.ErrorIs(t, s.Delete(ctx, id), store.ErrUnavailable)

	assert.Equal(t, 6, calls, "every operation retries the migration")
}
