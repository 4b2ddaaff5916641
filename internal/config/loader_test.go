package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, rootDir, content string) {
	t.Helper()
	dir := filepath.Join(rootDir, ".quarry")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o644))
}

func TestLoaderDefaults(t *testing.T) {
	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Database.Path)
	assert.Equal(t, 15, cfg.Search.MaxResults)
	assert.Equal(t, 1, cfg.Search.Fuzziness)
	assert.True(t, cfg.Watcher.Enabled)
	assert.Equal(t, 500, cfg.Watcher.DebounceMs)
}

func TestLoaderConfigFile(t *testing.T) {
	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, `database:
  path: /data/exports
search:
  max_results: 25
  fuzziness: 2
watcher:
  enabled: false
`)

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/exports", cfg.Database.Path)
	assert.Equal(t, 25, cfg.Search.MaxResults)
	assert.Equal(t, 2, cfg.Search.Fuzziness)
	assert.False(t, cfg.Watcher.Enabled)
	// Unset keys keep their defaults.
	assert.Equal(t, 500, cfg.Watcher.DebounceMs)
}

func TestLoaderEnvOverridesFile(t *testing.T) {
	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, `database:
  path: /data/exports
`)
	t.Setenv("QUARRY_DATABASE_PATH", "/env/exports")
	t.Setenv("QUARRY_SEARCH_MAX_RESULTS", "30")

	cfg, err := NewLoader(rootDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "/env/exports", cfg.Database.Path)
	assert.Equal(t, 30, cfg.Search.MaxResults)
}

func TestLoaderRejectsInvalidConfig(t *testing.T) {
	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, `search:
  max_results: 0
`)

	_, err := NewLoader(rootDir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_results")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults pass", func(t *testing.T) {
		assert.NoError(t, Validate(Default()))
	})

	t.Run("max_results bounds", func(t *testing.T) {
		cfg := Default()
		cfg.Search.MaxResults = 101
		assert.Error(t, Validate(cfg))
	})

	t.Run("fuzziness bounds", func(t *testing.T) {
		cfg := Default()
		cfg.Search.Fuzziness = 3
		assert.Error(t, Validate(cfg))
	})

	t.Run("negative debounce", func(t *testing.T) {
		cfg := Default()
		cfg.Watcher.DebounceMs = -1
		assert.Error(t, Validate(cfg))
	})
}
