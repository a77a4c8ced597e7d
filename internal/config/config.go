package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "COMMODITY_NEWS_CONFIG"
	googleAPIKeyEnv     = "GOOGLE_CUSTOM_SEARCH_API_KEY"
	googleEngineIDEnv   = "GOOGLE_CUSTOM_SEARCH_ENGINE_ID"
	perplexityAPIKeyEnv = "PERPLEXITY_API_KEY"
	finnhubAPIKeyEnv    = "FINNHUB_API_KEY"
	databaseDSNEnv      = "DATABASE_DSN"
	redisURLEnv         = "REDIS_URL"
	cacheBackendEnv     = "CACHE_BACKEND"
	httpAddrEnv         = "HTTP_ADDR"
	logLevelEnv         = "LOG_LEVEL"
	requestTimeoutEnv   = "REQUEST_TIMEOUT"
	corsOriginsEnv      = "CORS_ORIGINS"
	enabledSourcesEnv   = "ENABLED_SOURCES"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Cache       CacheConfig       `yaml:"cache"`
	Sources     SourcesConfig     `yaml:"sources"`
	Google      GoogleConfig      `yaml:"google"`
	Perplexity  PerplexityConfig  `yaml:"perplexity"`
	Baidu       BaiduConfig       `yaml:"baidu"`
	ZeeBusiness ZeeBusinessConfig `yaml:"zeeBusiness"`
	AgroPortals AgroPortalsConfig `yaml:"agroPortals"`
	Finnhub     FinnhubConfig     `yaml:"finnhub"`
	Database    DatabaseConfig    `yaml:"database"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"corsOrigins"`
}

// LoggingConfig selects slog level and handler format (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// CacheConfig defines the result cache backend and lifetimes.
type CacheConfig struct {
	Backend         string        `yaml:"backend"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanupInterval"`
	RedisURL        string        `yaml:"redisUrl"`
	KeyPrefix       string        `yaml:"keyPrefix"`
}

// SourcesConfig lists enabled adapters in fan-out order.
type SourcesConfig struct {
	Enabled        []string      `yaml:"enabled"`
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// GoogleConfig holds Custom Search credentials.
type GoogleConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	EngineID string `yaml:"engineId"`
}

// PerplexityConfig defines how to contact the Perplexity chat API.
type PerplexityConfig struct {
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`
}

// BaiduConfig toggles live scraping of Baidu news search.
type BaiduConfig struct {
	Scrape    bool   `yaml:"scrape"`
	SearchURL string `yaml:"searchUrl"`
}

// ZeeBusinessConfig lists the RSS feeds to read.
type ZeeBusinessConfig struct {
	Feeds []string `yaml:"feeds"`
}

// AgroPortalsConfig lists portal RSS feeds and HTML listing pages.
type AgroPortalsConfig struct {
	Feeds []string `yaml:"feeds"`
	Pages []string `yaml:"pages"`
}

// FinnhubConfig holds market news credentials.
type FinnhubConfig struct {
	APIKey   string `yaml:"apiKey"`
	Category string `yaml:"category"`
}

// DatabaseConfig describes the optional Postgres archive. Empty DSN disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(googleAPIKeyEnv); v != "" {
		c.Google.APIKey = v
	}
	if v := os.Getenv(googleEngineIDEnv); v != "" {
		c.Google.EngineID = v
	}
	if v := os.Getenv(perplexityAPIKeyEnv); v != "" {
		c.Perplexity.APIKey = v
	}
	if v := os.Getenv(finnhubAPIKeyEnv); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(redisURLEnv); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv(cacheBackendEnv); v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(requestTimeoutEnv); v != "" {
		if d, ok := parseTimeout(v); ok {
			c.Sources.RequestTimeout = d
		} else {
			log.Printf("config: invalid %s=%q, keeping %s", requestTimeoutEnv, v, c.Sources.RequestTimeout)
		}
	}
	if v := os.Getenv(corsOriginsEnv); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv(enabledSourcesEnv); v != "" {
		c.Sources.Enabled = splitList(v)
	}
}

// parseTimeout accepts a Go duration ("15s") or a bare number of seconds.
func parseTimeout(v string) (time.Duration, bool) {
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d, true
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second, true
	}
	return 0, false
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if len(override.Server.CORSOrigins) > 0 {
		base.Server.CORSOrigins = override.Server.CORSOrigins
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Cache.Backend != "" {
		base.Cache.Backend = override.Cache.Backend
	}
	if override.Cache.TTL > 0 {
		base.Cache.TTL = override.Cache.TTL
	}
	if override.Cache.CleanupInterval > 0 {
		base.Cache.CleanupInterval = override.Cache.CleanupInterval
	}
	if override.Cache.RedisURL != "" {
		base.Cache.RedisURL = override.Cache.RedisURL
	}
	if override.Cache.KeyPrefix != "" {
		base.Cache.KeyPrefix = override.Cache.KeyPrefix
	}

	if len(override.Sources.Enabled) > 0 {
		base.Sources.Enabled = override.Sources.Enabled
	}
	if override.Sources.RequestTimeout > 0 {
		base.Sources.RequestTimeout = override.Sources.RequestTimeout
	}

	if override.Google.Endpoint != "" {
		base.Google.Endpoint = override.Google.Endpoint
	}
	if override.Google.APIKey != "" {
		base.Google.APIKey = override.Google.APIKey
	}
	if override.Google.EngineID != "" {
		base.Google.EngineID = override.Google.EngineID
	}

	if override.Perplexity.BaseURL != "" {
		base.Perplexity.BaseURL = override.Perplexity.BaseURL
	}
	if override.Perplexity.Model != "" {
		base.Perplexity.Model = override.Perplexity.Model
	}
	if override.Perplexity.APIKey != "" {
		base.Perplexity.APIKey = override.Perplexity.APIKey
	}

	if override.Baidu.Scrape {
		base.Baidu.Scrape = true
	}
	if override.Baidu.SearchURL != "" {
		base.Baidu.SearchURL = override.Baidu.SearchURL
	}

	if len(override.ZeeBusiness.Feeds) > 0 {
		base.ZeeBusiness.Feeds = override.ZeeBusiness.Feeds
	}

	if len(override.AgroPortals.Feeds) > 0 {
		base.AgroPortals.Feeds = override.AgroPortals.Feeds
	}
	if len(override.AgroPortals.Pages) > 0 {
		base.AgroPortals.Pages = override.AgroPortals.Pages
	}

	if override.Finnhub.APIKey != "" {
		base.Finnhub.APIKey = override.Finnhub.APIKey
	}
	if override.Finnhub.Category != "" {
		base.Finnhub.Category = override.Finnhub.Category
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8000", CORSOrigins: []string{"*"}},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Cache: CacheConfig{
			Backend:         CacheBackendMemory,
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
			KeyPrefix:       "commoditynews:",
		},
		Sources: SourcesConfig{
			Enabled:        []string{"google_search", "perplexity", "baidu_news", "zee_business", "agro_portals"},
			RequestTimeout: 30 * time.Second,
		},
		Google: GoogleConfig{Endpoint: "https://www.googleapis.com/customsearch/v1"},
		Perplexity: PerplexityConfig{
			BaseURL: "https://api.perplexity.ai/",
			Model:   "sonar",
		},
		Baidu: BaiduConfig{SearchURL: "https://www.baidu.com/s"},
		ZeeBusiness: ZeeBusinessConfig{Feeds: []string{
			"https://www.zeebiz.com/commodities/rss",
			"https://www.zeebiz.com/markets/rss",
		}},
		Finnhub: FinnhubConfig{Category: "general"},
	}
}
