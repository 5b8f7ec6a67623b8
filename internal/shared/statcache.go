package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const statsVersionKey = "stats:version"

// StatsCache is a versioned Redis cache for the aggregate stats endpoints.
// Mutating operations bump the version instead of enumerating keys; stale
// entries expire with their TTL. A nil cache (or nil client) degrades to
// calling the loader directly.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewStatsCache instantiates the cache helper.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, statsVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, statsVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Bump invalidates every cached stats payload.
func (c *StatsCache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, statsVersionKey).Err()
}

// FetchJSON loads a cached value or populates it using the loader. Concurrent
// misses for the same key share one loader call.
func (c *StatsCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("stats cache: loader required")
	}
	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return recode(value, dest)
	}

	ver, err := c.version(ctx)
	if err != nil {
		return err
	}
	versioned := fmt.Sprintf("stats:%s:%d", key, ver)

	raw, err := c.client.Get(ctx, versioned).Bytes()
	if err == nil {
		return json.Unmarshal(raw, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}

	value, err, _ := c.group.Do(versioned, func() (any, error) {
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(loaded)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, versioned, encoded, c.ttl).Err(); err != nil {
			return nil, err
		}
		return loaded, nil
	})
	if err != nil {
		return err
	}
	return recode(value, dest)
}

func recode(value, dest any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, dest)
}
