package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
database:
  path: `+filepath.Join(t.TempDir(), "cache.db")+`
  backup:
    enabled: true
    interval_hours: 6
    retention_days: 7
workflow:
  base_url: http://n8n:5678/webhook
  timeout_seconds: 3
  reconcile_minutes: 2
reminders:
  enabled: true
  timezone: Asia/Manila
  weekday: 1
  hour: 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "http://n8n:5678/webhook", cfg.Workflow.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.WorkflowTimeout())
	assert.Equal(t, 2*time.Minute, cfg.ReconcileInterval())
	assert.Equal(t, 6*time.Hour, cfg.BackupInterval())
	assert.True(t, cfg.Reminders.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "database:\n  path: "+filepath.Join(dir, "cache.db")+"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:5678/webhook", cfg.Workflow.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.WorkflowTimeout())
	assert.Equal(t, 5*time.Minute, cfg.ReconcileInterval())
	assert.Equal(t, 24*time.Hour, cfg.BackupInterval())
	assert.False(t, cfg.Database.Backup.Enabled)
}

func TestLoad_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_N8N_URL", "http://example.test/webhook")
	path := writeConfig(t, `
database:
  path: `+filepath.Join(t.TempDir(), "cache.db")+`
workflow:
  base_url: "${TEST_N8N_URL}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/webhook", cfg.Workflow.BaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
