// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: route-optimizer
  environment: test
provider:
  base_url: https://osrm.example.com
  timeout: 1500
cache:
  backend: memory
  ttl: 10000
optimizer:
  batch_concurrency: 8
corridors:
  - name: Seattle - Portland
    from_lat: 47.6062
    from_lon: -122.3321
    to_lat: 45.5152
    to_lon: -122.6784
    shortest_km: 280
    eco_km: 302
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "route-optimizer", cfg.App.Name)
	assert.Equal(t, "https://osrm.example.com", cfg.Provider.BaseURL)
	assert.Equal(t, 1500, cfg.Provider.Timeout)
	assert.Equal(t, 10000, cfg.Cache.TTL)
	assert.Equal(t, 8, cfg.Optimizer.BatchConcurrency)

	require.Len(t, cfg.Corridors, 1)
	assert.Equal(t, "Seattle - Portland", cfg.Corridors[0].Name)
	assert.Equal(t, 280.0, cfg.Corridors[0].ShortestKm)
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: route-optimizer
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "osrm", cfg.Provider.Name)
	assert.Equal(t, "https://router.project-osrm.org", cfg.Provider.BaseURL)
	assert.Equal(t, "driving", cfg.Provider.Profile)
	assert.Equal(t, 3, cfg.Provider.MaxRetries)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 30000, cfg.Cache.TTL)
	assert.Equal(t, 4, cfg.Optimizer.BatchConcurrency)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_InvalidBackend(t *testing.T) {
	path := writeConfigFile(t, `
cache:
  backend: memcached
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.backend")
}

func TestLoadFromFile_RedisBackendNeedsAddress(t *testing.T) {
	path := writeConfigFile(t, `
cache:
  backend: redis
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.redis.address")
}

func TestLoadFromFile_CorridorValidation(t *testing.T) {
	path := writeConfigFile(t, `
corridors:
  - name: broken
    shortest_km: 0
`)

	_, err := LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "shortest_km")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, GetDuration(5000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
