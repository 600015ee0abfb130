package main

import (
	"bytes"
	"testing"

	"github.com/dori/folio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleStatsPrintsSeedFigures(t *testing.T) {
	t.Setenv("FOLIO_DATA_DIR", t.TempDir())

	var out bytes.Buffer
	require.NoError(t, handleStats(nil, &out))

	got := out.String()
	assert.Contains(t, got, "Total projects:  5")
	assert.Contains(t, got, "Completion rate: 20%")
	assert.Contains(t, got, "Recent activity:")
	assert.Contains(t, got, "Peer Review Portal")
}

func TestHandleStatsWithoutSeed(t *testing.T) {
	t.Setenv("FOLIO_DATA_DIR", t.TempDir())
	t.Setenv("FOLIO_SEED_ENABLED", "false")

	var out bytes.Buffer
	require.NoError(t, handleStats(nil, &out))
	assert.Contains(t, out.String(), "Completion rate: 0%")
	assert.NotContains(t, out.String(), "Recent activity:")
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	t.Setenv("FOLIO_DATA_DIR", t.TempDir())
	t.Setenv("FOLIO_THEME", "dracula")

	cfg, err := loadConfig("", "list", "gruvbox", "sqlite", true)
	require.NoError(t, err)
	assert.Equal(t, "list", cfg.StartView)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = loadConfig("", "kanban", "", "", false)
	assert.Error(t, err)
}
