package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/vyrlabs/vyr/internal/vyr"
)

const baselineKeyPrefix = "vyr:baseline:user:"

type RedisBaselineCache struct {
	client *redis.Client
}

var _ BaselineCache = (*RedisBaselineCache)(nil)

func NewRedisBaselineCache(client *redis.Client) *RedisBaselineCache {
	return &RedisBaselineCache{client: client}
}

func (c *RedisBaselineCache) Get(ctx context.Context, userID string) (vyr.BaselineValues, error) {
	data, err := c.client.Get(ctx, baselineKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var baselines vyr.BaselineValues
	if err := go_json.Unmarshal(data, &baselines); err != nil {
		return nil, fmt.Errorf("unmarshaling cached baselines: %w", err)
	}
	return baselines, nil
}

func (c *RedisBaselineCache) Set(ctx context.Context, userID string, baselines vyr.BaselineValues, ttl time.Duration) error {
	data, err := go_json.Marshal(baselines)
	if err != nil {
		return fmt.Errorf("marshaling baselines: %w", err)
	}
	return c.client.Set(ctx, baselineKeyPrefix+userID, data, ttl).Err()
}

func (c *RedisBaselineCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, baselineKeyPrefix+userID).Err()
}
