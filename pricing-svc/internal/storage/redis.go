package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"overcooked-ordering/pricing-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const catalogKey = "pricing:catalog:snapshot"

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) GetCatalog(ctx context.Context) (*domain.Catalog, error) {
	raw, err := c.Client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		// A snapshot written by an older build is treated as a miss.
		c.Client.Del(ctx, catalogKey)
		return nil, nil
	}
	return &catalog, nil
}

func (c *RedisCache) SetCatalog(ctx context.Context, catalog *domain.Catalog) error {
	payload, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, catalogKey, payload, c.TTL).Err()
}

func (c *RedisCache) InvalidateCatalog(ctx context.Context) error {
	return c.Client.Del(ctx, catalogKey).Err()
}
