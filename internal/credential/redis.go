package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/farewatch/internal/models"
)

var _ Store = (*RedisStore)(nil)

const (
	tokenKey  = "token"
	expiryKey = "token_expiry"
)

// RedisStore shares one credential between every process pointed at the same
// Redis database.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *RedisStore) Load(ctx context.Context) (models.Credential, error) {
	vals, err := s.client.MGet(ctx, s.prefix+tokenKey, s.prefix+expiryKey).Result()
	if err != nil {
		return models.Credential{}, fmt.Errorf("reading credential from redis: %w", err)
	}

	token, _ := vals[0].(string)
	expiry, _ := vals[1].(string)
	if token == "" || expiry == "" {
		return models.Credential{}, ErrNotFound
	}

	expiresAt, err := time.Parse(time.RFC3339Nano, expiry)
	if err != nil {
		return models.Credential{}, fmt.Errorf("parsing token_expiry: %w", err)
	}
	return models.Credential{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *RedisStore) Save(ctx context.Context, cred models.Credential) error {
	ttl := cred.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("refusing to persist an expired credential")
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.prefix+tokenKey, cred.Token, ttl)
		pipe.Set(ctx, s.prefix+expiryKey, cred.ExpiresAt.UTC().Format(time.RFC3339Nano), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing credential to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Evict(ctx context.Context) error {
	if err := s.client.Del(ctx, s.prefix+tokenKey, s.prefix+expiryKey).Err(); err != nil {
		return fmt.Errorf("evicting credential from redis: %w", err)
	}
	return nil
}
