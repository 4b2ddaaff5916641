package config

// Config represents the complete quarry configuration.
// It can be loaded from .quarry/config.yml with environment variable overrides.
type Config struct {
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Watcher  WatcherConfig  `yaml:"watcher" mapstructure:"watcher"`
}

// DatabaseConfig locates the analyzed database exports.
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // directory holding the CSV tables and src.zip
}

// SearchConfig tunes the supplemental fuzzy symbol search.
type SearchConfig struct {
	MaxResults int `yaml:"max_results" mapstructure:"max_results"` // cap on returned matches
	Fuzziness  int `yaml:"fuzziness" mapstructure:"fuzziness"`     // edit distance for fuzzy matching (0-2)
}

// WatcherConfig controls reloading when table files change on disk.
type WatcherConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	DebounceMs int  `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "",
		},
		Search: SearchConfig{
			MaxResults: 15,
			Fuzziness:  1,
		},
		Watcher: WatcherConfig{
			Enabled:    true,
			DebounceMs: 500,
		},
	}
}
