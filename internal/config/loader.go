package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (QUARRY_*)
// 2. Config file (.quarry/config.yml or .quarry/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".quarry")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Enable environment variable overrides
	v.SetEnvPrefix("QUARRY")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., QUARRY_DATABASE_PATH)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("database.path")
	v.BindEnv("search.max_results")
	v.BindEnv("search.fuzziness")
	v.BindEnv("watcher.enabled")
	v.BindEnv("watcher.debounce_ms")

	setDefaults(v)

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values with viper.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("search.max_results", defaults.Search.MaxResults)
	v.SetDefault("search.fuzziness", defaults.Search.Fuzziness)
	v.SetDefault("watcher.enabled", defaults.Watcher.Enabled)
	v.SetDefault("watcher.debounce_ms", defaults.Watcher.DebounceMs)
}
