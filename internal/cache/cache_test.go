package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"CommodityNews/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestZeroTTLExpiresImmediately(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	s := New[string](time.Minute, clock.Now)

	s.SetWithTTL("k", "v", 0)
	if _, ok := s.Get("k"); ok {
		t.Fatal("zero ttl entry must be absent")
	}
	s.SetWithTTL("n", "v", -time.Second)
	if _, ok := s.Get("n"); ok {
		t.Fatal("negative ttl entry must be absent")
	}

	stats := s.Stats()
	if stats.Misses != 2 || stats.Sets != 2 || stats.CacheSize != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestHitWithinWindowAndMissAfterExpiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	s := New[string](time.Minute, clock.Now)

	s.SetWithTTL("k", "v", 60*time.Second)
	s.Set("other", "x")

	clock.Advance(59 * time.Second)
	v, ok := s.Get("k")
	if !ok || v != "v" {
		t.Fatalf("expected hit, got %q %v", v, ok)
	}
	if got := s.Stats().Hits; got != 1 {
		t.Fatalf("expected 1 hit, got %d", got)
	}

	clock.Advance(time.Second)
	before := s.Stats()
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected miss after expiry")
	}
	after := s.Stats()
	if after.Misses != before.Misses+1 {
		t.Fatalf("expected misses to grow by one: %d -> %d", before.Misses, after.Misses)
	}
	if after.CacheSize != before.CacheSize-1 {
		t.Fatalf("expected lazy eviction: size %d -> %d", before.CacheSize, after.CacheSize)
	}
}

func TestSetOverwritesAndRestartsExpiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	s := New[int](10*time.Second, clock.Now)

	s.Set("k", 1)
	clock.Advance(8 * time.Second)
	s.Set("k", 2)
	clock.Advance(8 * time.Second)

	v, ok := s.Get("k")
	if !ok || v != 2 {
		t.Fatalf("expected refreshed value 2, got %d %v", v, ok)
	}
	if got := s.Stats().Sets; got != 2 {
		t.Fatalf("every set must count, got %d", got)
	}
}

func TestDeleteClearAndCleanup(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	s := New[int](time.Minute, clock.Now)

	s.SetWithTTL("short", 1, time.Second)
	s.SetWithTTL("long", 2, time.Hour)
	s.Set("gone", 3)

	if !s.Delete("gone") {
		t.Fatal("expected delete to report presence")
	}
	if s.Delete("gone") {
		t.Fatal("second delete must report absence")
	}

	clock.Advance(2 * time.Second)
	if removed := s.CleanupExpired(); removed != 1 {
		t.Fatalf("expected 1 expired entry, got %d", removed)
	}
	if _, ok := s.Get("long"); !ok {
		t.Fatal("live entry must survive cleanup")
	}

	s.Clear()
	stats := s.Stats()
	if stats != (domain.CacheStats{}) {
		t.Fatalf("clear must reset everything, got %+v", stats)
	}
}

func TestHitRate(t *testing.T) {
	t.Parallel()

	if HitRate(0, 0) != 0 {
		t.Fatal("no requests means zero hit rate")
	}
	if got := HitRate(1, 2); got != 33.33 {
		t.Fatalf("expected 33.33, got %v", got)
	}
	if got := HitRate(3, 1); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
}

func TestConcurrentAccessKeepsCountersConsistent(t *testing.T) {
	t.Parallel()

	s := New[int](time.Minute, nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Set("k", i)
			s.Get("k")
			s.Get("absent")
		}(i)
	}
	wg.Wait()

	stats := s.Stats()
	if stats.Sets != 50 || stats.Hits != 50 || stats.Misses != 50 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
}

func TestResultsAdapter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewResults(time.Minute, nil)
	want := domain.AggregatedResult{Status: "success", Data: []domain.Article{{Headline: "h"}}}

	if err := r.Set(ctx, "k", want, time.Minute); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	got, ok, err := r.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Data[0].Headline != "h" {
		t.Fatalf("unexpected value: %+v", got)
	}
}
