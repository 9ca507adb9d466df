package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "processed_data/steel_plants_cleaned.csv", cfg.DataPath)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forgesight.yaml")
	yaml := `addr: ":9090"
data_path: /data/plants.csv
log_level: debug
cache:
  enabled: true
  addr: redis:6379
  ttl: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/data/plants.csv", cfg.DataPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.Addr)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FORGESIGHT_ADDR", ":7000")
	t.Setenv("FORGESIGHT_DATA", "/tmp/plants.csv")
	t.Setenv("FORGESIGHT_CACHE_ENABLED", "true")
	t.Setenv("FORGESIGHT_CACHE_TTL", "2m")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "/tmp/plants.csv", cfg.DataPath)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("addr: [\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("enabled cache needs positive ttl", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "forgesight.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cache:\n  enabled: true\n  ttl: 0s\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
