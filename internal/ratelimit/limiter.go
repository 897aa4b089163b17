// Package ratelimit throttles outbound calls to the flight-data provider,
// with one token bucket per provider endpoint.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

const (
	EndpointToken     = "token"
	EndpointOffers    = "offers"
	EndpointLocations = "locations"
)

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultConfig matches the provider's self-service test tier.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

type EndpointLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

func NewEndpointLimiter(cfg Config) *EndpointLimiter {
	return &EndpointLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: cfg,
	}
}

func (l *EndpointLimiter) limiter(endpoint string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[endpoint]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok = l.limiters[endpoint]; ok {
		return lim
	}

	limit := rate.Limit(l.defaults.RequestsPerSecond)
	if l.defaults.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	lim = rate.NewLimiter(limit, l.defaults.BurstSize)
	l.limiters[endpoint] = lim
	return lim
}

func (l *EndpointLimiter) SetEndpointLimit(endpoint string, rps float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[endpoint] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Wait blocks until a request to endpoint may proceed. A nil limiter never blocks.
func (l *EndpointLimiter) Wait(ctx context.Context, endpoint string) error {
	if l == nil {
		return nil
	}
	return l.limiter(endpoint).Wait(ctx)
}
