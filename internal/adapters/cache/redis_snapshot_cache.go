package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "stock:snapshot"

// Redis-backed cache for fleet-wide stock snapshots. The snapshot is stored
// as a single JSON document under a TTL so report polling hits Redis instead
// of walking every warehouse ledger.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

// Fetch the cached snapshot; ok=false on a miss or an expired key.
func (c *RedisSnapshotCache) Get(ctx context.Context) (map[string]int, bool, error) {
	raw, err := c.client.Get(ctx, snapshotKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("snapshot cache get: %w", err)
	}

	totals := map[string]int{}
	if err := json.Unmarshal([]byte(raw), &totals); err != nil {
		return nil, false, fmt.Errorf("snapshot cache get: parse cached json: %w", err)
	}
	return totals, true, nil
}

// Store the snapshot until the TTL elapses.
func (c *RedisSnapshotCache) Put(ctx context.Context, totals map[string]int) error {
	raw, err := json.Marshal(totals)
	if err != nil {
		return fmt.Errorf("snapshot cache put: marshal: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("snapshot cache put: %w", err)
	}
	return nil
}
