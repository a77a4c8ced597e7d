// Package cache provides the in-process TTL cache used for aggregated results.
package cache

import (
	"math"
	"sync"
	"time"

	"CommodityNews/internal/domain"
)

// DefaultTTL is applied by Set when no explicit TTL is given.
const DefaultTTL = time.Hour

type entry[V any] struct {
	value     V
	createdAt time.Time
	expiresAt time.Time
}

// Store is a mutex-guarded map with per-entry expiry and hit/miss/set counters.
// Expired entries are evicted lazily by Get or in bulk by CleanupExpired.
type Store[V any] struct {
	mu         sync.Mutex
	items      map[string]entry[V]
	defaultTTL time.Duration
	now        func() time.Time

	hits   int64
	misses int64
	sets   int64
}

// New builds a store. A nil clock means time.Now.
func New[V any](defaultTTL time.Duration, now func() time.Time) *Store[V] {
	if now == nil {
		now = time.Now
	}
	return &Store[V]{
		items:      map[string]entry[V]{},
		defaultTTL: defaultTTL,
		now:        now,
	}
}

// Get returns the live value for key. An expired entry is removed and counts as a miss.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.items[key]
	if !ok {
		s.misses++
		return zero, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.items, key)
		s.misses++
		return zero, false
	}
	s.hits++
	return e.value, true
}

// Set stores value with the default TTL.
func (s *Store[V]) Set(key string, value V) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

// SetWithTTL overwrites key and restarts its expiry from now.
// A zero or negative ttl stores an entry that is already expired.
func (s *Store[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if ttl < 0 {
		ttl = 0
	}
	s.items[key] = entry[V]{value: value, createdAt: now, expiresAt: now.Add(ttl)}
	s.sets++
}

// Delete removes key and reports whether it was present.
func (s *Store[V]) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	return true
}

// Clear drops every entry and resets the counters.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = map[string]entry[V]{}
	s.hits, s.misses, s.sets = 0, 0, 0
}

// CleanupExpired evicts every expired entry and returns how many were removed.
func (s *Store[V]) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.items {
		if !now.Before(e.expiresAt) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}

// Stats returns a snapshot of the counters.
func (s *Store[V]) Stats() domain.CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.CacheStats{
		Hits:      s.hits,
		Misses:    s.misses,
		Sets:      s.sets,
		HitRate:   HitRate(s.hits, s.misses),
		CacheSize: len(s.items),
	}
}

// HitRate is hits/(hits+misses) as a percentage rounded to two decimals.
func HitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	rate := float64(hits) / float64(total) * 100
	return math.Round(rate*100) / 100
}
