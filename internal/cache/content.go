package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portfolio:"

// ContentCache keeps JSON snapshots of public listings. Every resource has a
// generation counter that is part of each key; Invalidate bumps it, so entries
// written under an older generation are never read again and age out by TTL.
type ContentCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewContentCache(client redis.UniversalClient, ttl time.Duration) *ContentCache {
	return &ContentCache{client: client, ttl: ttl}
}

func Key(resource string, generation int64, variant string) string {
	return keyPrefix + resource + ":g" + strconv.FormatInt(generation, 10) + ":" + variant
}

func generationKey(resource string) string {
	return keyPrefix + resource + ":gen"
}

// Generation returns the current generation of resource; 0 before the first
// invalidation.
func (c *ContentCache) Generation(ctx context.Context, resource string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(resource)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// Get decodes the cached value into dest. A miss returns false with no error.
func (c *ContentCache) Get(ctx context.Context, resource string, generation int64, variant string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, Key(resource, generation, variant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

func (c *ContentCache) Set(ctx context.Context, resource string, generation int64, variant string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, Key(resource, generation, variant), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *ContentCache) Invalidate(ctx context.Context, resource string) error {
	if err := c.client.Incr(ctx, generationKey(resource)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
