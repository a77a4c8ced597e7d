package domain

import "time"

// Category is the heuristic topic assigned to an article.
type Category string

const (
	CategoryOverview     Category = "overview"
	CategoryTrade        Category = "trade"
	CategoryPrice        Category = "price"
	CategorySupplyDemand Category = "supply_demand"
	CategoryClimate      Category = "climate"
	CategoryGeopolitics  Category = "geopolitics"
)

// Article is the canonical normalized news record shared by every source.
type Article struct {
	Headline      string    `json:"headline"`
	Source        string    `json:"source"`
	Category      Category  `json:"category"`
	Tickers       []string  `json:"tickers"`
	Country       string    `json:"country,omitempty"`
	State         string    `json:"state,omitempty"`
	CommodityTags []string  `json:"commodity_tags"`
	Timestamp     time.Time `json:"timestamp"`
	URL           string    `json:"url,omitempty"`
	Summary       string    `json:"summary,omitempty"`
}

// AggregationOutcome is the merged result of one fan-out over all sources.
// SuccessfulSources and FailedSources partition the configured source set.
type AggregationOutcome struct {
	Articles          []Article
	SuccessfulSources []string
	FailedSources     []string
}

// ResultMetadata describes how an AggregatedResult was produced.
type ResultMetadata struct {
	TotalResults  int       `json:"total_results"`
	SourcesUsed   []string  `json:"sources_used"`
	FailedSources []string  `json:"failed_sources"`
	Timestamp     time.Time `json:"timestamp"`
}

// AggregatedResult is the envelope returned to callers and stored in the cache.
type AggregatedResult struct {
	Status   string         `json:"status"`
	Data     []Article      `json:"data"`
	Metadata ResultMetadata `json:"metadata"`
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Sets      int64   `json:"sets"`
	HitRate   float64 `json:"hit_rate"`
	CacheSize int     `json:"cache_size"`
}

// SourceInfo describes a registered source for catalogue listings.
type SourceInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}
