package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TASKFLOW_DATA_DIR", "/tmp/taskflow-test")
	t.Setenv("TASKFLOW_DEBUG_LOG", "/tmp/taskflow.log")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/taskflow-test", cfg.DataDir)
	assert.Equal(t, "/tmp/taskflow.log", cfg.DebugLog)
}

func TestDBPathUsesDataDir(t *testing.T) {
	cfg := Config{DataDir: t.TempDir()}

	path, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.DataDir, "taskflow.db"), path)
}
