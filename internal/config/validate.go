package config

import "fmt"

// Validate checks a configuration for values that would break lookups at
// runtime. The database path itself is checked lazily by the scanners so a
// missing directory surfaces as a typed access error, not here.
func Validate(cfg *Config) error {
	if cfg.Search.MaxResults <= 0 || cfg.Search.MaxResults > 100 {
		return fmt.Errorf("search.max_results must be between 1 and 100, got %d", cfg.Search.MaxResults)
	}
	if cfg.Search.Fuzziness < 0 || cfg.Search.Fuzziness > 2 {
		return fmt.Errorf("search.fuzziness must be between 0 and 2, got %d", cfg.Search.Fuzziness)
	}
	if cfg.Watcher.DebounceMs < 0 {
		return fmt.Errorf("watcher.debounce_ms must not be negative, got %d", cfg.Watcher.DebounceMs)
	}
	return nil
}
