package ports

import (
	"context"
	"time"

	"CommodityNews/internal/domain"
)

// ResultCache stores aggregated results keyed by request shape.
type ResultCache interface {
	Get(ctx context.Context, key string) (domain.AggregatedResult, bool, error)
	Set(ctx context.Context, key string, value domain.AggregatedResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (domain.CacheStats, error)
	CleanupExpired(ctx context.Context) (int, error)
}

// ArchiveFilter narrows archived article listings.
type ArchiveFilter struct {
	Country   string
	Commodity string
	Category  domain.Category
	Limit     int
}

// ArticleArchive persists aggregated articles for history queries.
type ArticleArchive interface {
	SaveArticles(ctx context.Context, articles []domain.Article) error
	ListArticles(ctx context.Context, filter ArchiveFilter) ([]domain.Article, error)
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
