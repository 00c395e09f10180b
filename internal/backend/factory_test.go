package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/config"
	"tracker/internal/core"
	"tracker/internal/store"
)

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{Backend: "sqlite", DBPath: "x.db"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, SQLiteDBPath: "x.db"}, cfg)

	_, err = FromAppConfig(&config.Config{Backend: "sheets"})
	assert.Error(t, err)

	_, err = FromAppConfig(nil)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: "postgres"}.Validate())
	assert.Equal(t, []string{"sqlite", "memory"}, GetBackendTypeStrings())
}

func TestCreateBackend_Memory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.SettingsKey+".json"), []byte(`{"name":"Asha","currency":"$"}`), 0600))

	result, err := NewFactory(nil).CreateBackend(ctx, Config{Type: MemoryBackend, DataDirectory: dir})
	require.NoError(t, err)
	defer result.Close()

	settings, err := store.OpenSettings(ctx, result.Backend)
	require.NoError(t, err)
	assert.Equal(t, "Asha", settings.Get().Name)
}

func TestCreateBackend_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tracker.db")
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: path})
	require.NoError(t, err)
	goals, err := store.OpenGoals(ctx, result.Backend)
	require.NoError(t, err)
	_, err = goals.Add(ctx, goalDraft())
	require.NoError(t, err)
	require.NoError(t, result.Close())

	reopened, err := factory.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: path})
	require.NoError(t, err)
	defer reopened.Close()
	goals, err = store.OpenGoals(ctx, reopened.Backend)
	require.NoError(t, err)
	assert.Len(t, goals.All(), 1)
}

func TestCreateBackend_Invalid(t *testing.T) {
	_, err := NewFactory(nil).CreateBackend(context.Background(), Config{Type: "sheets"})
	assert.Error(t, err)
}
func goalDraft() core.GoalDraft {
	return core.GoalDraft{Category: "food", Limit: core.Money{Cents: 200000}, Period: core.Weekly}
}
