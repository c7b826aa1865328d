package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, 8088, cfg.Server.GetRESTPort())
	assert.Equal(t, "data", cfg.Storage.GetDataDir())
	assert.Equal(t, 30, cfg.Storage.GetAutosaveSeconds())
	assert.Equal(t, 50, cfg.Editor.GetHistoryDepth())

	w, h, l := cfg.Editor.GetDefaultDimensions()
	assert.Equal(t, 20, w)
	assert.Equal(t, 20, h)
	assert.Equal(t, 1, l)
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("EDITOR_REST_PORT", "9000")
	t.Setenv("EDITOR_DATA_DIR", "/tmp/editor-data")

	cfg := &Config{}
	assert.Equal(t, 9000, cfg.Server.GetRESTPort())
	assert.Equal(t, "/tmp/editor-data", cfg.Storage.GetDataDir())

	// Конфиг имеет приоритет над окружением
	cfg.Server.RESTPort = 9100
	cfg.Storage.DataDir = "custom"
	assert.Equal(t, 9100, cfg.Server.GetRESTPort())
	assert.Equal(t, "custom", cfg.Storage.GetDataDir())
}

func TestLoadYAMLFile(t *testing.T) {
	content := `
server:
  rest_port: 8500
storage:
  data_dir: /var/lib/editor
  autosave_seconds: 10
  compress_exports: true
editor:
  history_depth: 25
  default_width: 40
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8500, cfg.Server.GetRESTPort())
	assert.Equal(t, "/var/lib/editor", cfg.Storage.GetDataDir())
	assert.Equal(t, 10, cfg.Storage.GetAutosaveSeconds())
	assert.True(t, cfg.Storage.CompressExports)
	assert.Equal(t, 25, cfg.Editor.GetHistoryDepth())

	w, _, _ := cfg.Editor.GetDefaultDimensions()
	assert.Equal(t, 40, w)
}

func TestLoadWithoutPath(t *testing.T) {
	t.Setenv("EDITOR_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err, "Отсутствие конфига — не ошибка")
	assert.Nil(t, cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	assert.Error(t, err)
}
