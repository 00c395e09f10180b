package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "tracker.db")
	repo, err := NewSQLiteRepository(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func TestSQLiteRepository_MissingKey(t *testing.T) {
	repo, _ := newTestRepository(t)

	value, ok, err := repo.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestSQLiteRepository_PutOverwrites(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "k", []byte(`[1]`)))
	require.NoError(t, repo.Put(ctx, "k", []byte(`[1,2]`)))

	value, ok, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2]`, string(value))
}

func TestSQLiteRepository_SurvivesReopen(t *testing.T) {
	repo, path := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, "settings", []byte(`{"name":"User"}`)))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepository(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "settings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"User"}`, string(value))
}

func TestSQLiteRepository_WaitsForLock(t *testing.T) {
	repo, _ := newTestRepository(t)

	var timeout int64
	require.NoError(t, repo.db.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout))
	assert.Equal(t, BusyTimeout.Milliseconds(), timeout)
}
