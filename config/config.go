// Package config loads connector and logging settings from defaults, an
// optional YAML file and ARQ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of environment variables read by Load.
	EnvPrefix = "ARQ_"
	// EnvConfigFile names the environment variable holding an explicit YAML path.
	EnvConfigFile = EnvPrefix + "CONFIG_FILE"
	// DefaultConfigFile is read when present and EnvConfigFile is unset.
	DefaultConfigFile = "arq.yaml"

	TimezoneUTC   = "utc"
	TimezoneLocal = "local"

	defaultQuoteCacheSize = 256
)

// Config is the root configuration.
type Config struct {
	Connector ConnectorConfig `koanf:"connector"`
	Log       LogConfig       `koanf:"log"`

	k *koanf.Koanf
}

// ConnectorConfig selects the SQL dialect and literal formatting.
type ConnectorConfig struct {
	Vendor         string `koanf:"vendor" validate:"required,oneof=postgresql mysql sqlite oracle"`
	Timezone       string `koanf:"timezone" validate:"required,oneof=utc local"`
	QuoteCacheSize int    `koanf:"quote_cache_size" validate:"gte=1,lte=65536"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error fatal disabled"`
	Pretty bool   `koanf:"pretty"`
}

// Load loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. YAML configuration file (ARQ_CONFIG_FILE, or arq.yaml when present)
// 3. Default values (lowest priority)
func Load() (*Config, error) {
	path, explicit := os.LookupEnv(EnvConfigFile)
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := file.Provider(path).ReadBytes()
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return load(path, nil)
		}
		return nil, NewInvalidFieldError(EnvConfigFile, fmt.Sprintf("cannot read %s: %v", path, err), nil)
	}
	return load(path, data)
}

// LoadYAML loads configuration from an in-memory YAML document instead of a
// file. Defaults and environment variables apply as in Load.
func LoadYAML(data []byte) (*Config, error) {
	return load("<bytes>", data)
}

func load(source string, data []byte) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return nil, NewYAMLSyntaxError(source, err)
		}
	}

	if err := k.Load(envprovider.Provider(".", envprovider.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.k = k

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// transformEnvKey maps ARQ_CONNECTOR_QUOTE_CACHE_SIZE to connector.quote_cache_size.
// Only the first underscore separates the section from the key.
func transformEnvKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if key == "config_file" {
		return "", nil
	}
	return strings.Replace(key, "_", ".", 1), value
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"connector.vendor":           "postgresql",
		"connector.timezone":         TimezoneUTC,
		"connector.quote_cache_size": defaultQuoteCacheSize,

		"log.level":  "info",
		"log.pretty": false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

// String returns the raw value at a dotted key, including keys the typed
// structure does not model.
func (c *Config) String(key string) string {
	if c.k == nil {
		return ""
	}
	return c.k.String(key)
}
