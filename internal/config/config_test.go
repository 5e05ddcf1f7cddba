package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	withWorkDir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 10.0, cfg.Server.RateLimitRPS, 0.0001)
	assert.Equal(t, 20, cfg.Server.RateLimitBurst)
	assert.Equal(t, int64(4<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 5, cfg.Batch.MaxConcurrentFiles)
	assert.Equal(t, []string{"name", "ssn", "email", "phone", "address", "date", "amount"}, cfg.Extract.DefaultFields)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
batch:
  max_concurrent_files: 2
extract:
  default_fields:
    - name
    - policy_number
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	withWorkDir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Batch.MaxConcurrentFiles)
	assert.Equal(t, []string{"name", "policy_number"}, cfg.Extract.DefaultFields)

	// Unset keys keep their defaults.
	assert.Equal(t, 20, cfg.Server.RateLimitBurst)
}

func TestLoad_EnvOverride(t *testing.T) {
	withWorkDir(t, t.TempDir())
	t.Setenv("INTAKE_SERVER_PORT", "7070")
	t.Setenv("INTAKE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "console"}))

	err := InitLogger(LogConfig{Level: "not-a-level"})
	require.Error(t, err)
}

func withWorkDir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
