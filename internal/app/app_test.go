package app

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"CommodityNews/internal/config"
	"CommodityNews/internal/infrastructure/rediscache"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildRegistryKeepsConfiguredOrder(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Sources: config.SourcesConfig{
		Enabled: []string{"zee_business", "nope", "finnhub", "google_search"},
	}}
	registry := buildRegistry(cfg, discardLogger())

	want := []string{"zee_business", "finnhub", "google_search"}
	if got := registry.Names(); !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNewFailsWithoutSources(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Cache: config.CacheConfig{Backend: config.CacheBackendMemory}}
	if _, err := New(context.Background(), cfg, discardLogger()); err == nil {
		t.Fatal("expected error for empty source list")
	}
}

func TestNewRejectsUnknownCacheBackend(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Cache:   config.CacheConfig{Backend: "memcached"},
		Sources: config.SourcesConfig{Enabled: []string{"baidu_news"}},
	}
	if _, err := New(context.Background(), cfg, discardLogger()); err == nil {
		t.Fatal("expected error for unknown cache backend")
	}
}

func TestBuildCacheRedis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	a := &Application{
		cfg: config.Config{Cache: config.CacheConfig{
			Backend:   config.CacheBackendRedis,
			RedisURL:  "redis://" + mr.Addr(),
			KeyPrefix: "test:",
		}},
		logger: discardLogger(),
	}
	t.Cleanup(a.close)

	c, err := a.buildCache(context.Background())
	if err != nil {
		t.Fatalf("build cache: %v", err)
	}
	if _, ok := c.(*rediscache.Cache); !ok {
		t.Fatalf("expected redis cache, got %T", c)
	}
	if len(a.closers) != 1 {
		t.Fatalf("redis client must be registered for close, got %d closers", len(a.closers))
	}
}

func TestNewMemoryDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Server:  config.ServerConfig{Addr: "127.0.0.1:0"},
		Cache:   config.CacheConfig{Backend: config.CacheBackendMemory},
		Sources: config.SourcesConfig{Enabled: []string{"perplexity", "agro_portals"}},
	}
	a, err := New(context.Background(), cfg, discardLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.server.Handler == nil || a.janitor == nil {
		t.Fatal("server and janitor must be wired")
	}
}
