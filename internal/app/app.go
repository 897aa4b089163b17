// Package app wires configuration into a ready-to-use search facade.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dharmasatrya/farewatch/internal/auth"
	"github.com/dharmasatrya/farewatch/internal/cache"
	"github.com/dharmasatrya/farewatch/internal/config"
	"github.com/dharmasatrya/farewatch/internal/credential"
	"github.com/dharmasatrya/farewatch/internal/locations"
	"github.com/dharmasatrya/farewatch/internal/pricehistory"
	"github.com/dharmasatrya/farewatch/internal/providers"
	"github.com/dharmasatrya/farewatch/internal/ratelimit"
	"github.com/dharmasatrya/farewatch/internal/search"
)

type App struct {
	Facade *search.Facade
	Tokens *auth.Manager
	Store  credential.Store

	cache cache.Cache
	redis *redis.Client
}

// New builds every component described by cfg. Redis is dialed only when the
// credential store or the result cache needs it.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{}

	if cfg.NeedsRedis() {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			_ = a.redis.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr(), err)
		}
		logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	switch cfg.Store.Kind {
	case config.StoreRedis:
		a.Store = credential.NewRedisStore(a.redis, cfg.Redis.KeyPrefix)
	case config.StoreMemory:
		a.Store = credential.NewMemoryStore()
	default:
		a.Store = credential.NewFileStore(cfg.Store.File)
	}
	logger.Info("credential store selected", zap.String("kind", cfg.Store.Kind))

	limiter := ratelimit.NewEndpointLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.Provider.RateLimitRPS,
		BurstSize:         cfg.Provider.RateBurst,
	})
	// exchanges are rare; anything faster than this is a retry storm
	limiter.SetEndpointLimit(ratelimit.EndpointToken, 1, 3)
	httpClient := &http.Client{Timeout: cfg.Provider.HTTPTimeout}

	a.Tokens = auth.NewManager(auth.Config{
		BaseURL:      cfg.Provider.BaseURL,
		ClientID:     cfg.Provider.ClientID,
		ClientSecret: cfg.Provider.ClientSecret,
	}, a.Store,
		auth.WithHTTPClient(httpClient),
		auth.WithLimiter(limiter),
		auth.WithLogger(logger.Named("auth")))

	client := providers.NewClient(providers.ClientConfig{
		BaseURL:    cfg.Provider.BaseURL,
		HTTPClient: httpClient,
		Limiter:    limiter,
		Logger:     logger.Named("provider"),
	}, a.Tokens)

	if cfg.Cache.Enabled {
		a.cache = cache.NewRedisCache(a.redis, cfg.Redis.KeyPrefix, cfg.Cache.TTL)
		logger.Info("search cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
	} else {
		a.cache = cache.NewNoOpCache()
	}

	a.Facade = search.NewFacade(
		client,
		locations.NewResolver(client, logger.Named("locations")),
		pricehistory.NewSynthesizer(client, pricehistory.WithLogger(logger.Named("pricehistory"))),
		search.Config{
			MaxOffers: cfg.Provider.SearchMax,
			Cache:     a.cache,
			Logger:    logger.Named("search"),
		},
	)
	return a, nil
}

func (a *App) Close() error {
	var err error
	err = multierr.Append(err, a.cache.Close())
	if a.redis != nil {
		err = multierr.Append(err, a.redis.Close())
	}
	return err
}
