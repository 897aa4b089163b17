// Package cache keeps normalized search results for a short while so repeated
// identical searches within a session do not hit the provider again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/farewatch/internal/models"
)

type Cache interface {
	Get(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, bool)
	Set(ctx context.Context, q models.SearchQuery, offers []models.FlightOffer) error
	Close() error
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*NoOpCache)(nil)
)

type RedisCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, bool) {
	data, err := c.client.Get(ctx, c.key(q)).Bytes()
	if err != nil {
		return nil, false
	}

	var offers []models.FlightOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false
	}
	return offers, true
}

func (c *RedisCache) Set(ctx context.Context, q models.SearchQuery, offers []models.FlightOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(q), data, c.ttl).Err()
}

// Close is a no-op: the client is shared with other components and closed by
// its owner.
func (c *RedisCache) Close() error {
	return nil
}

func (c *RedisCache) key(q models.SearchQuery) string {
	keyData := struct {
		Origin        string
		Destination   string
		DepartureDate string
		ReturnDate    string
		Passengers    int
		TripType      models.TripType
	}{
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: q.DepartureDate,
		Passengers:    q.Passengers,
		TripType:      q.TripType,
	}
	if q.IsRoundTrip() {
		keyData.ReturnDate = *q.ReturnDate
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return c.prefix + "offers:" + hex.EncodeToString(hash[:])
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(context.Context, models.SearchQuery) ([]models.FlightOffer, bool) {
	return nil, false
}

func (c *NoOpCache) Set(context.Context, models.SearchQuery, []models.FlightOffer) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
