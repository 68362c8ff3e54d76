package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "tasks_advanced.db", cfg.DatabasePath)
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Zero(t, cfg.ReportInterval)
	assert.Empty(t, cfg.TelegramToken)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_path: from-file.db\nhttp_addr: \":9000\"\nreport_interval_hours: 6\n"), 0o644))
	t.Setenv("DATABASE_PATH", "test_tasks.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test_tasks.db", cfg.DatabasePath)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 6*time.Hour, cfg.ReportInterval)
}

func TestLoad_TelegramRequiresChat(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")

	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), cfg.TelegramChatID)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParseInterval(t *testing.T) {
	assert.Equal(t, 5*time.Hour, parseInterval("5"))
	assert.Zero(t, parseInterval(""))
	assert.Zero(t, parseInterval("-1"))
	assert.Zero(t, parseInterval("abc"))
}
