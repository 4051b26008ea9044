package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/haven/internal/domain"
	"github.com/alexanderramin/haven/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()

	cfg, err := load(home, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 15000, cfg.API.TimeoutMs)
	assert.False(t, cfg.API.LogCalls)
	assert.Equal(t, filepath.Join(home, ".haven", "haven.db"), cfg.DBPath)
	assert.Len(t, cfg.Practices, 5)
	assert.Empty(t, cfg.File)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".haven"), 0700))
	path := writeConfig(t, filepath.Join(home, ".haven"), `
api:
  url: https://api.example.com
  timeout_ms: 3000
  log_calls: true
practices:
  - category: anxiety-management
    default_minutes: 5
    preset_minutes: [2, 5]
`)

	cfg, err := load(home, envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3000, cfg.API.TimeoutMs)
	assert.True(t, cfg.API.LogCalls)

	p, ok := timer.Lookup(cfg.Practices, domain.CategoryAnxiety)
	require.True(t, ok)
	assert.Equal(t, 5, p.DefaultMinutes)
	assert.Equal(t, []int{2, 5}, p.PresetMinutes)
	assert.Equal(t, "Anxiety Relief", p.Title, "unset fields keep the built-in value")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "api:\n  url: https://file.example.com\n")

	cfg, err := load(home, envFrom(map[string]string{
		"HAVEN_CONFIG":         path,
		"HAVEN_API_URL":        "https://env.example.com",
		"HAVEN_API_TIMEOUT_MS": "2500",
		"HAVEN_LOG_CALLS":      "true",
		"HAVEN_DB":             "/tmp/haven-test.db",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, 2500, cfg.API.TimeoutMs)
	assert.True(t, cfg.API.LogCalls)
	assert.Equal(t, "/tmp/haven-test.db", cfg.DBPath)
}

func TestLoad_IgnoresBadNumericEnv(t *testing.T) {
	cfg, err := load(t.TempDir(), envFrom(map[string]string{"HAVEN_API_TIMEOUT_MS": "soon"}))
	require.NoError(t, err)
	assert.Equal(t, 15000, cfg.API.TimeoutMs)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := load(t.TempDir(), envFrom(map[string]string{"HAVEN_CONFIG": "/nonexistent/haven.yaml"}))
	assert.Error(t, err)
}

func TestLoad_UnknownKeyFails(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "api:\n  base: https://typo.example.com\n")

	_, err := load(home, envFrom(map[string]string{"HAVEN_CONFIG": path}))
	assert.Error(t, err)
}

func TestLoad_InvalidPracticeFails(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "practices:\n  - category: meditation\n    preset_minutes: [0]\n")

	_, err := load(home, envFrom(map[string]string{"HAVEN_CONFIG": path}))
	assert.ErrorContains(t, err, "preset minutes must be positive")
}

func TestLoad_EmptyFileIsFine(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, home, "")

	cfg, err := load(home, envFrom(map[string]string{"HAVEN_CONFIG": path}))
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
}
