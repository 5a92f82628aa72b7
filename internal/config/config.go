package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/taskflow-app/taskflow/internal/storage"
)

// Config holds the runtime configuration, loaded from environment
// variables
type Config struct {
	// DataDir overrides the directory holding the database file.
	// Defaults to the platform data directory.
	DataDir string `env:"TASKFLOW_DATA_DIR"`

	// DebugLog is a file path for debug logging. Empty disables
	// logging entirely; the TUI owns the terminal.
	DebugLog string `env:"TASKFLOW_DEBUG_LOG"`
}

// Load parses the environment and resolves the database path
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DBPath returns the database file path for this configuration
func (c Config) DBPath() (string, error) {
	if c.DataDir != "" {
		return filepath.Join(c.DataDir, "taskflow.db"), nil
	}
	return storage.DefaultPath()
}
