package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at a temp dir so no real
// config, .env or token leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout())
	assert.Equal(t, filepath.Join(home, ".sportex"), cfg.Token.Dir)
	assert.Equal(t, "token", cfg.Token.Key)
	assert.Empty(t, cfg.Token.Value)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SPORTEX_API_URL", "https://api.sportex.test")
	t.Setenv("SPORTEX_TOKEN", "env-token")
	t.Setenv("SPORTEX_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.sportex.test", cfg.API.URL)
	assert.Equal(t, "env-token", cfg.Token.Value)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_BackendURLAlias(t *testing.T) {
	isolate(t)
	t.Setenv("SPORTEX_BACKEND_URL", "http://backend:9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.API.URL)
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".sportex")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api:\n  url: http://from-file:8000\n  timeout: 5\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-file:8000", cfg.API.URL)
	assert.Equal(t, 5*time.Second, cfg.API.RequestTimeout())
}

func TestWebConfig_EventURL(t *testing.T) {
	w := WebConfig{URL: "https://sportex.app"}
	assert.Equal(t, "https://sportex.app/event/e1", w.EventURL("e1"))
}
