// Package config loads settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dharmasatrya/farewatch/internal/credential"
)

const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	Port string

	Provider ProviderConfig
	Store    StoreConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
}

type ProviderConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	SearchMax    int
	HTTPTimeout  time.Duration
	RateLimitRPS float64
	RateBurst    int
}

type StoreConfig struct {
	Kind string
	File string
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// keys maps each setting to the environment variable that overrides it.
var keys = map[string]string{
	"server.port":               "PORT",
	"provider.base_url":         "PROVIDER_BASE_URL",
	"provider.client_id":        "AMADEUS_CLIENT_ID",
	"provider.client_secret":    "AMADEUS_CLIENT_SECRET",
	"provider.search_max":       "PROVIDER_SEARCH_MAX",
	"provider.http_timeout":     "PROVIDER_HTTP_TIMEOUT",
	"provider.rate_limit_rps":   "PROVIDER_RATE_LIMIT_RPS",
	"provider.rate_limit_burst": "PROVIDER_RATE_LIMIT_BURST",
	"credentials.store":         "CREDENTIAL_STORE",
	"credentials.file":          "CREDENTIAL_FILE",
	"redis.host":                "REDIS_HOST",
	"redis.port":                "REDIS_PORT",
	"redis.password":            "REDIS_PASSWORD",
	"redis.db":                  "REDIS_DB",
	"redis.key_prefix":          "REDIS_KEY_PREFIX",
	"cache.enabled":             "CACHE_ENABLED",
	"cache.ttl":                 "CACHE_TTL",
	"log.level":                 "LOG_LEVEL",
	"log.format":                "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("provider.base_url", "https://test.api.amadeus.com")
	v.SetDefault("provider.search_max", 50)
	v.SetDefault("provider.http_timeout", time.Duration(0))
	v.SetDefault("provider.rate_limit_rps", 10.0)
	v.SetDefault("provider.rate_limit_burst", 20)
	v.SetDefault("credentials.store", StoreFile)
	v.SetDefault("credentials.file", credential.DefaultPath())
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "farewatch:")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads path (if non-empty) and then the environment. Client credentials
// are not checked here; their absence surfaces on the first token exchange.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range keys {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config file '%s': %w", path, err)
			}
		}
	}

	cfg := Config{
		Port: v.GetString("server.port"),
		Provider: ProviderConfig{
			BaseURL:      v.GetString("provider.base_url"),
			ClientID:     v.GetString("provider.client_id"),
			ClientSecret: v.GetString("provider.client_secret"),
			SearchMax:    v.GetInt("provider.search_max"),
			HTTPTimeout:  v.GetDuration("provider.http_timeout"),
			RateLimitRPS: v.GetFloat64("provider.rate_limit_rps"),
			RateBurst:    v.GetInt("provider.rate_limit_burst"),
		},
		Store: StoreConfig{
			Kind: strings.ToLower(v.GetString("credentials.store")),
			File: v.GetString("credentials.file"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("redis.host"),
			Port:      v.GetString("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			TTL:     v.GetDuration("cache.ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	switch cfg.Store.Kind {
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown credential store %q", cfg.Store.Kind)
	}
	return cfg, nil
}

// NeedsRedis reports whether any component is configured to use Redis.
func (c Config) NeedsRedis() bool {
	return c.Store.Kind == StoreRedis || c.Cache.Enabled
}
