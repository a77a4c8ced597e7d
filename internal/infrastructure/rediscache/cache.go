// Package rediscache stores aggregated results in Redis so replicas share them.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"CommodityNews/internal/cache"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/ports"
)

const (
	entryNamespace = "entry:"
	statsKey       = "stats"
	scanBatch      = 200
)

// Cache implements ports.ResultCache on Redis. Expiry is delegated to Redis
// key TTLs; counters live in a shared hash.
type Cache struct {
	client *redis.Client
	prefix string
}

var _ ports.ResultCache = (*Cache)(nil)

// New wraps an existing client. Keys are namespaced by prefix.
func New(client *redis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

// Connect parses a redis:// URL, falling back to a bare host:port address.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *Cache) entryKey(key string) string {
	return c.prefix + entryNamespace + key
}

func (c *Cache) statsKey() string {
	return c.prefix + statsKey
}

func (c *Cache) Get(ctx context.Context, key string) (domain.AggregatedResult, bool, error) {
	var out domain.AggregatedResult

	raw, err := c.client.Get(ctx, c.entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.client.HIncrBy(ctx, c.statsKey(), "misses", 1)
		return out, false, nil
	}
	if err != nil {
		return out, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		c.client.Del(ctx, c.entryKey(key))
		c.client.HIncrBy(ctx, c.statsKey(), "misses", 1)
		return domain.AggregatedResult{}, false, fmt.Errorf("decode cached %s: %w", key, err)
	}

	c.client.HIncrBy(ctx, c.statsKey(), "hits", 1)
	return out, true, nil
}

// Set overwrites key. A non-positive ttl removes any stored value instead,
// since such an entry would already be expired.
func (c *Cache) Set(ctx context.Context, key string, value domain.AggregatedResult, ttl time.Duration) error {
	pipe := c.client.TxPipeline()
	if ttl <= 0 {
		pipe.Del(ctx, c.entryKey(key))
	} else {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		pipe.Set(ctx, c.entryKey(key), raw, ttl)
	}
	pipe.HIncrBy(ctx, c.statsKey(), "sets", 1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Del(ctx, c.entryKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis del %s: %w", key, err)
	}
	return n > 0, nil
}

// Clear removes every entry under the prefix and resets the counters.
func (c *Cache) Clear(ctx context.Context) error {
	keys, err := c.entryKeys(ctx)
	if err != nil {
		return err
	}
	keys = append(keys, c.statsKey())
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis clear: %w", err)
	}
	return nil
}

func (c *Cache) Stats(ctx context.Context) (domain.CacheStats, error) {
	fields, err := c.client.HGetAll(ctx, c.statsKey()).Result()
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("redis stats: %w", err)
	}
	keys, err := c.entryKeys(ctx)
	if err != nil {
		return domain.CacheStats{}, err
	}

	hits := parseCount(fields["hits"])
	misses := parseCount(fields["misses"])
	return domain.CacheStats{
		Hits:      hits,
		Misses:    misses,
		Sets:      parseCount(fields["sets"]),
		HitRate:   cache.HitRate(hits, misses),
		CacheSize: len(keys),
	}, nil
}

// CleanupExpired is a no-op: Redis evicts expired keys itself.
func (c *Cache) CleanupExpired(context.Context) (int, error) {
	return 0, nil
}

// entryKeys lists entry keys once each; SCAN may return a key more than once.
func (c *Cache) entryKeys(ctx context.Context) ([]string, error) {
	var (
		batches [][]string
		cursor  uint64
	)
	for {
		batch, next, err := c.client.Scan(ctx, cursor, c.prefix+entryNamespace+"*", scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		batches = append(batches, batch)
		if next == 0 {
			return dedupeKeys(batches...), nil
		}
		cursor = next
	}
}

// dedupeKeys flattens scan batches keeping the first occurrence of each key.
func dedupeKeys(batches ...[]string) []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, batch := range batches {
		for _, k := range batch {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

func parseCount(v string) int64 {
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}
