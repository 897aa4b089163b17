package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://test.api.amadeus.com", cfg.Provider.BaseURL)
	assert.Empty(t, cfg.Provider.ClientID)
	assert.Equal(t, 50, cfg.Provider.SearchMax)
	assert.Equal(t, time.Duration(0), cfg.Provider.HTTPTimeout)
	assert.Equal(t, 10.0, cfg.Provider.RateLimitRPS)
	assert.Equal(t, 20, cfg.Provider.RateBurst)
	assert.Equal(t, StoreFile, cfg.Store.Kind)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "farewatch:", cfg.Redis.KeyPrefix)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.NeedsRedis())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("PROVIDER_HTTP_TIMEOUT", "15s")
	t.Setenv("PROVIDER_RATE_LIMIT_RPS", "2.5")
	t.Setenv("CREDENTIAL_STORE", "Redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "id", cfg.Provider.ClientID)
	assert.Equal(t, "secret", cfg.Provider.ClientSecret)
	assert.Equal(t, 15*time.Second, cfg.Provider.HTTPTimeout)
	assert.Equal(t, 2.5, cfg.Provider.RateLimitRPS)
	assert.Equal(t, StoreRedis, cfg.Store.Kind)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.NeedsRedis())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farewatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
provider:
  base_url: https://api.amadeus.com
  search_max: 10
credentials:
  store: memory
log:
  level: debug
  format: console
`), 0o600))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "https://api.amadeus.com", cfg.Provider.BaseURL)
	assert.Equal(t, 10, cfg.Provider.SearchMax)
	assert.Equal(t, StoreMemory, cfg.Store.Kind)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("CREDENTIAL_STORE", "vault")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown credential store "vault"`)
}
