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

const snapshotKeyPrefix = "vyr:snapshot:"

type RedisSnapshotCache struct {
	client *redis.Client
}

var _ SnapshotCache = (*RedisSnapshotCache)(nil)

func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client}
}

func snapshotKey(userID, day string) string {
	return snapshotKeyPrefix + userID + ":" + day
}

func (c *RedisSnapshotCache) Get(ctx context.Context, userID, day string) (*vyr.State, error) {
	data, err := c.client.Get(ctx, snapshotKey(userID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var state vyr.State
	if err := go_json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshaling cached state: %w", err)
	}
	return &state, nil
}

func (c *RedisSnapshotCache) Set(ctx context.Context, userID, day string, state vyr.State, ttl time.Duration) error {
	data, err := go_json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	return c.client.Set(ctx, snapshotKey(userID, day), data, ttl).Err()
}

func (c *RedisSnapshotCache) Invalidate(ctx context.Context, userID, day string) error {
	return c.client.Del(ctx, snapshotKey(userID, day)).Err()
}
