package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears keys for the test and restores them afterwards.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unset(t, "HTTP_PORT", "STORAGE", "CACHE_TTL", "REQUEST_REMINDER_AFTER", "LOG_LEVEL")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.HTTPPort)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.RequestReminderAfter)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfig_EnvFileAndOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_NAME=from_file\nCACHE_TTL=2m\nLOG_LEVEL=debug\n"), 0o600))
	unset(t, "CACHE_TTL", "LOG_LEVEL")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("DB_NAME", "from_env")

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "from_env", cfg.DBName)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Contains(t, cfg.DatabaseDSN(), "dbname=from_env")
	assert.Contains(t, cfg.ServerDSN(), "dbname=postgres")
}

func TestLoadConfig_RejectsUnknownStorage(t *testing.T) {
	t.Setenv("STORAGE", "dynamo")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
