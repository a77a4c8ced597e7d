package usecase

import (
	"context"
	"log/slog"
	"time"

	"CommodityNews/internal/ports"
)

// CacheJanitor wires a ticking driver to periodic eviction of expired cache entries.
type CacheJanitor struct {
	driver ports.Scheduler
	cache  ports.ResultCache
	logger *slog.Logger
}

// NewCacheJanitor returns a helper to start/stop recurring cleanup.
func NewCacheJanitor(driver ports.Scheduler, cache ports.ResultCache, logger *slog.Logger) *CacheJanitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheJanitor{driver: driver, cache: cache, logger: logger}
}

// Start registers the cleanup job with the provided scheduler.
func (j *CacheJanitor) Start(ctx context.Context) error {
	if j.driver == nil || j.cache == nil {
		return nil
	}
	return j.driver.Start(ctx, func(trigger time.Time) {
		j.Sweep(ctx, trigger)
	})
}

// Sweep evicts expired entries once.
func (j *CacheJanitor) Sweep(ctx context.Context, trigger time.Time) int {
	removed, err := j.cache.CleanupExpired(ctx)
	if err != nil {
		j.logger.Warn("cache cleanup failed", "error", err)
		return 0
	}
	j.logger.Debug("cache cleanup", "removed", removed, "at", trigger)
	return removed
}

// Stop gracefully tears down the underlying scheduler.
func (j *CacheJanitor) Stop(ctx context.Context) error {
	if j.driver == nil {
		return nil
	}
	return j.driver.Stop(ctx)
}
