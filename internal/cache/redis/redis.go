package redis

import (
	"context"
	"errors"
	redispkg "github.com/go-redis/redis/v8"
	cachepkg "github.com/naieum/omni/internal/cache"
	"time"
)

// Redis is a structured-data cache tier shared between proxy replicas.
// Expiry is delegated to Redis' own per-key TTL.
type Redis struct {
	client *redispkg.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(config *Config) *Redis {
	return &Redis{
		client: redispkg.NewClient(&redispkg.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		}),
	}
}

func (redis *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	valueBytes, err := redis.client.Get(ctx, key).Bytes()
	if err != nil {
		// Convert the error for consumer's convenience
		if errors.Is(err, redispkg.Nil) {
			return nil, cachepkg.ErrNotFound
		}

		return nil, err
	}

	return valueBytes, nil
}

func (redis *Redis) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return redis.client.Set(ctx, key, value, ttl).Err()
}
