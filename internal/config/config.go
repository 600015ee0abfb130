// Package config loads folio's settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for folio.
// Environment variables always override YAML values.
type Config struct {
	// DataDir holds the log file and the instance lock. Defaults to
	// ~/.local/share/folio when empty.
	DataDir string `yaml:"data_dir" env:"FOLIO_DATA_DIR" env-default:""`

	// Theme is the initial colour theme (nord, dracula, gruvbox, catppuccin)
	Theme string `yaml:"theme" env:"FOLIO_THEME" env-default:"nord"`

	// StartView is the view shown at launch (dashboard or list)
	StartView string `yaml:"start_view" env:"FOLIO_START_VIEW" env-default:"dashboard"`

	Store  StoreConfig  `yaml:"store"`
	Seed   SeedConfig   `yaml:"seed"`
	Log    LogConfig    `yaml:"log"`
	Notify NotifyConfig `yaml:"notify"`
}

// StoreConfig selects where the session's projects live. Both backends
// are in memory.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"FOLIO_STORE_BACKEND" env-default:"memory"`
}

// SeedConfig controls the example projects loaded at start
type SeedConfig struct {
	// Enabled defaults to true in Load. An env-default would override an
	// explicit false from YAML.
	Enabled bool `yaml:"enabled" env:"FOLIO_SEED_ENABLED"`
	// File replaces the built-in examples when set
	File string `yaml:"file" env:"FOLIO_SEED_FILE" env-default:""`
}

// LogConfig controls the debug log. The terminal belongs to the UI, so
// logs only ever go to a file.
type LogConfig struct {
	Enabled bool   `yaml:"enabled" env:"FOLIO_LOG_ENABLED" env-default:"false"`
	Level   string `yaml:"level" env:"FOLIO_LOG_LEVEL" env-default:"info"`
	// File defaults to <data_dir>/folio.log
	File string `yaml:"file" env:"FOLIO_LOG_FILE" env-default:""`
}

// NotifyConfig controls desktop notifications
type NotifyConfig struct {
	Enabled bool `yaml:"enabled" env:"FOLIO_NOTIFY_ENABLED" env-default:"false"`
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".folio"
	}
	return filepath.Join(home, ".local", "share", "folio")
}

// Load reads configuration from path (if non-empty) with environment
// variable overrides, fills derived defaults and validates the result
func Load(path string) (*Config, error) {
	cfg := &Config{Seed: SeedConfig{Enabled: true}}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.DataDir, "folio.log")
	}
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q (want memory or sqlite)", c.Store.Backend)
	}

	switch c.StartView {
	case "dashboard", "list", "projects":
	default:
		return fmt.Errorf("unknown start view %q (want dashboard or list)", c.StartView)
	}

	switch c.Theme {
	case "nord", "dracula", "gruvbox", "catppuccin":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	return nil
}

// LockPath returns the path of the single-instance lock file
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "folio.lock")
}
