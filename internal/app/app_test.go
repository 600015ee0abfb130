package app

import (
	"path/filepath"
	"testing"

	"github.com/dori/folio/internal/config"
	"github.com/dori/folio/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataDir:   dir,
		Theme:     "nord",
		StartView: "list",
		Store:     config.StoreConfig{Backend: backend},
		Seed:      config.SeedConfig{Enabled: true},
		Log:       config.LogConfig{Level: "info"},
	}
}

func TestNewSeedsStore(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			a, err := New(testConfig(t, backend))
			require.NoError(t, err)
			defer a.Close()

			projects, err := a.Router.Snapshot()
			require.NoError(t, err)
			assert.Len(t, projects, 5)
			assert.Equal(t, router.ViewList, a.Router.State().View)
		})
	}
}

func TestNewWithoutSeed(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.Seed.Enabled = false

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Close()

	projects, err := a.Store.List()
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestSingleInstance(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)

	first, err := New(cfg)
	require.NoError(t, err)

	_, err = New(cfg)
	assert.ErrorContains(t, err, "already running")

	require.NoError(t, first.Close())

	again, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestLockedOutInstanceOpensNoLog(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	first, err := New(cfg)
	require.NoError(t, err)
	defer first.Close()

	second := *cfg
	second.Log = config.LogConfig{
		Enabled: true,
		Level:   "debug",
		File:    filepath.Join(t.TempDir(), "logs", "second.log"),
	}
	_, err = New(&second)
	assert.ErrorContains(t, err, "already running")
	assert.NoFileExists(t, second.Log.File)
}
