package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
connector:
  vendor: mysql
  timezone: local
  quote_cache_size: 32
log:
  level: debug
  pretty: true
`

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgresql", cfg.Connector.Vendor)
	assert.Equal(t, TimezoneUTC, cfg.Connector.Timezone)
	assert.Equal(t, 256, cfg.Connector.QuoteCacheSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML([]byte(validYAML))
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Connector.Vendor)
	assert.Equal(t, TimezoneLocal, cfg.Connector.Timezone)
	assert.Equal(t, 32, cfg.Connector.QuoteCacheSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, "mysql", cfg.String("connector.vendor"))
}

func TestLoadDefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(validYAML), 0o600))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Connector.Vendor)
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("connector:\n  vendor: oracle\n"), 0o600))
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "oracle", cfg.Connector.Vendor)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "invalid", cfgErr.Category)
	assert.Equal(t, EnvConfigFile, cfgErr.Field)
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	t.Setenv("ARQ_CONNECTOR_VENDOR", "sqlite")
	t.Setenv("ARQ_CONNECTOR_QUOTE_CACHE_SIZE", "8")
	t.Setenv("ARQ_LOG_LEVEL", "warn")

	cfg, err := LoadYAML([]byte(validYAML))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Connector.Vendor)
	assert.Equal(t, 8, cfg.Connector.QuoteCacheSize)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestYAMLSyntaxError(t *testing.T) {
	_, err := LoadYAML([]byte("connector:\n\tvendor: mysql\n"))
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "syntax", cfgErr.Category)
	assert.Contains(t, err.Error(), "tabs are not allowed")
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		field   string
		message string
	}{
		{
			name:    "unsupported_vendor",
			yaml:    "connector:\n  vendor: mssql\n",
			field:   "connector.vendor",
			message: "must be one of: postgresql, mysql, sqlite, oracle",
		},
		{
			name:    "unsupported_timezone",
			yaml:    "connector:\n  timezone: mars\n",
			field:   "connector.timezone",
			message: "must be one of: utc, local",
		},
		{
			name:    "cache_too_small",
			yaml:    "connector:\n  quote_cache_size: 0\n",
			field:   "connector.quote_cache_size",
			message: "failed gte=1",
		},
		{
			name:    "bad_log_level",
			yaml:    "log:\n  level: loud\n",
			field:   "log.level",
			message: "unsupported value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML([]byte(tt.yaml))
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestConfigErrorFormatting(t *testing.T) {
	err := &ConfigError{
		Category: "invalid",
		Field:    "connector.vendor",
		Message:  "unsupported value",
		Action:   "must be one of: a, b",
		Details:  []string{"one", "two"},
	}
	assert.Equal(t, "config_invalid: connector.vendor unsupported value must be one of: a, b one; two", err.Error())
}

func TestStringWithoutKoanf(t *testing.T) {
	var cfg Config
	assert.Equal(t, "", cfg.String("connector.vendor"))
}
