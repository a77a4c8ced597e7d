package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(requestTimeoutEnv, "")
	t.Setenv(enabledSourcesEnv, "")

	cfg := Load()
	if cfg.Cache.Backend != CacheBackendMemory || cfg.Cache.TTL != time.Hour {
		t.Fatalf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if len(cfg.Sources.Enabled) != 5 || cfg.Sources.Enabled[0] != "google_search" {
		t.Fatalf("unexpected enabled sources: %v", cfg.Sources.Enabled)
	}
	if cfg.Sources.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Sources.RequestTimeout)
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
server:
  addr: ":9090"
cache:
  ttl: 90s
sources:
  enabled: [zee_business, agro_portals]
perplexity:
  model: sonar-pro
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(requestTimeoutEnv, "12")
	t.Setenv(corsOriginsEnv, "http://a.example, http://b.example")
	t.Setenv(perplexityAPIKeyEnv, "pplx-key")
	t.Setenv(enabledSourcesEnv, "")

	cfg := Load()
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Fatalf("unexpected ttl: %s", cfg.Cache.TTL)
	}
	if cfg.Cache.CleanupInterval != time.Minute {
		t.Fatalf("defaults must survive merge, got %s", cfg.Cache.CleanupInterval)
	}
	if !slices.Equal(cfg.Sources.Enabled, []string{"zee_business", "agro_portals"}) {
		t.Fatalf("unexpected sources: %v", cfg.Sources.Enabled)
	}
	if cfg.Sources.RequestTimeout != 12*time.Second {
		t.Fatalf("unexpected timeout: %s", cfg.Sources.RequestTimeout)
	}
	if !slices.Equal(cfg.Server.CORSOrigins, []string{"http://a.example", "http://b.example"}) {
		t.Fatalf("unexpected origins: %v", cfg.Server.CORSOrigins)
	}
	if cfg.Perplexity.Model != "sonar-pro" || cfg.Perplexity.APIKey != "pplx-key" {
		t.Fatalf("unexpected perplexity config: %+v", cfg.Perplexity)
	}
}

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	cases := map[string]time.Duration{"15s": 15 * time.Second, "2": 2 * time.Second, "1m": time.Minute}
	for in, want := range cases {
		got, ok := parseTimeout(in)
		if !ok || got != want {
			t.Fatalf("parseTimeout(%q) = %s, %v", in, got, ok)
		}
	}
	if _, ok := parseTimeout("soon"); ok {
		t.Fatal("expected invalid timeout")
	}
}
