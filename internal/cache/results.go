package cache

import (
	"context"
	"time"

	"CommodityNews/internal/domain"
	"CommodityNews/internal/ports"
)

// Results adapts a Store of aggregated results to ports.ResultCache.
type Results struct {
	store *Store[domain.AggregatedResult]
}

var _ ports.ResultCache = (*Results)(nil)

// NewResults builds an in-memory result cache.
func NewResults(defaultTTL time.Duration, now func() time.Time) *Results {
	return &Results{store: New[domain.AggregatedResult](defaultTTL, now)}
}

func (r *Results) Get(_ context.Context, key string) (domain.AggregatedResult, bool, error) {
	v, ok := r.store.Get(key)
	return v, ok, nil
}

func (r *Results) Set(_ context.Context, key string, value domain.AggregatedResult, ttl time.Duration) error {
	r.store.SetWithTTL(key, value, ttl)
	return nil
}

func (r *Results) Delete(_ context.Context, key string) (bool, error) {
	return r.store.Delete(key), nil
}

func (r *Results) Clear(context.Context) error {
	r.store.Clear()
	return nil
}

func (r *Results) Stats(context.Context) (domain.CacheStats, error) {
	return r.store.Stats(), nil
}

func (r *Results) CleanupExpired(context.Context) (int, error) {
	return r.store.CleanupExpired(), nil
}
