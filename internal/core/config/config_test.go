package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml", "/tmp/data")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  base_url: https://cmms.example.com
  token_env: CMMS_TOKEN
defaults:
  company_id: c1
  location_id: l1
tui:
  theme: gruvbox
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "https://cmms.example.com", cfg.API.BaseURL)
	assert.Equal(t, "c1", cfg.Defaults.CompanyID)
	assert.Equal(t, "l1", cfg.Defaults.LocationID)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout, "unset values keep defaults")
	assert.Equal(t, dir, cfg.DataDir)
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: \"\"\n"), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestAPIConfig_Token(t *testing.T) {
	t.Setenv("FOREMAN_TEST_TOKEN", "secret")

	assert.Equal(t, "secret", APIConfig{TokenEnv: "FOREMAN_TEST_TOKEN"}.Token())
	assert.Empty(t, APIConfig{}.Token())
}
