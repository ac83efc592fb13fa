package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskhub/records-api/internal/api/metrics"
)

const defaultTTL = 5 * time.Minute

// RecordCache is a read-through JSON cache for single-record lookups.
// Key format: records:<resource>:<id>
type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecordCache creates a RecordCache wrapping the given Redis client.
// ttl <= 0 falls back to the default of five minutes.
func NewRecordCache(client *redis.Client, ttl time.Duration) *RecordCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RecordCache{client: client, ttl: ttl}
}

// Get decodes the cached record into dst. A miss is (false, nil).
func (c *RecordCache) Get(ctx context.Context, resource, id string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(resource, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheTotal.WithLabelValues("miss").Inc()
			return false, nil
		}
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	metrics.CacheTotal.WithLabelValues("hit").Inc()
	return true, nil
}

func (c *RecordCache) Set(ctx context.Context, resource, id string, rec any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(resource, id), raw, c.ttl).Err()
}

func (c *RecordCache) Invalidate(ctx context.Context, resource, id string) error {
	return c.client.Del(ctx, c.key(resource, id)).Err()
}

func (c *RecordCache) key(resource, id string) string {
	return fmt.Sprintf("records:%s:%s", resource, id)
}
