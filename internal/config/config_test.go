package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOLIO_DATA_DIR", dir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, "dashboard", cfg.StartView)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.True(t, cfg.Seed.Enabled)
	assert.False(t, cfg.Log.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "folio.log"), cfg.Log.File)
	assert.Equal(t, filepath.Join(dir, "folio.lock"), cfg.LockPath())
	assert.False(t, cfg.Notify.Enabled)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := writeConfig(t, `
data_dir: /tmp/folio-test
theme: dracula
start_view: list
store:
  backend: sqlite
seed:
  enabled: false
log:
  enabled: true
  level: debug
`)
	t.Setenv("FOLIO_THEME", "gruvbox")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/folio-test", cfg.DataDir)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, "list", cfg.StartView)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.False(t, cfg.Seed.Enabled)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Theme:     "nord",
			StartView: "dashboard",
			Store:     StoreConfig{Backend: BackendMemory},
			Log:       LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"projects alias", func(c *Config) { c.StartView = "projects" }, false},
		{"bad backend", func(c *Config) { c.Store.Backend = "postgres" }, true},
		{"bad view", func(c *Config) { c.StartView = "form" }, true},
		{"bad theme", func(c *Config) { c.Theme = "solarized" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
