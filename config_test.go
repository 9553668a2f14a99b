package crucible

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crucible.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "crucible", cfg.Metrics.Namespace)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "crucible", cfg.Tracing.TracerName)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: debug
  development: true
metrics:
  enabled: false
tracing:
  enabled: true
  tracer_name: myapp
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "myapp", cfg.Tracing.TracerName)
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
logging:
  level: warn
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "crucible", cfg.Metrics.Namespace)
}

func TestLoadConfig_ExpandsEnvironment(t *testing.T) {
	t.Setenv("CRUCIBLE_LOG_LEVEL", "error")
	path := writeConfigFile(t, `
logging:
  level: ${CRUCIBLE_LOG_LEVEL}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadConfig_UnknownField(t *testing.T) {
	path := writeConfigFile(t, `
loging:
  level: debug
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestNewFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics.Enabled = false

	c := NewFromConfig(cfg)
	require.NoError(t, RegisterValue(c, "name", "crucible"))
	assert.Equal(t, "crucible", Must[string](c, "name"))
}

func TestNewFromConfig_WithMetrics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "error"

	c := NewFromConfig(cfg)
	require.NoError(t, RegisterValue(c, "name", "crucible"))

	_, err := c.Resolve("name")
	require.NoError(t, err)
}
