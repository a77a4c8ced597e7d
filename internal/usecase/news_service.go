package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"CommodityNews/internal/classify"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/normalize"
	"CommodityNews/internal/ports"
)

// StatusSuccess is the envelope status of every successful result.
const StatusSuccess = "success"

// ErrArchiveDisabled is returned by History when no archive is configured.
var ErrArchiveDisabled = errors.New("article archive is not configured")

// ProductRequest asks for news about one commodity.
type ProductRequest struct {
	Product  string
	Category domain.Category
	Country  string
	State    string
	Limit    int
	Refresh  bool
}

// NewsRequest asks for general news across every source.
type NewsRequest struct {
	Query       string
	Country     string
	State       string
	Commodity   string
	Ticker      string
	Limit       int
	Deduplicate bool
	Refresh     bool
}

// SourceRequest asks a single source for news.
type SourceRequest struct {
	Query     string
	Country   string
	Commodity string
	Category  domain.Category
	Limit     int
}

// NewsServiceDeps wires the collaborators of NewsService.
type NewsServiceDeps struct {
	Aggregator *Aggregator
	Cache      ports.ResultCache
	Archive    ports.ArticleArchive
	TTL        time.Duration
	Logger     *slog.Logger
	Now        func() time.Time
}

// NewsService decides between cached and fresh results and shapes the envelope.
type NewsService struct {
	aggregator *Aggregator
	cache      ports.ResultCache
	archive    ports.ArticleArchive
	ttl        time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewNewsService constructs the query service.
func NewNewsService(deps NewsServiceDeps) *NewsService {
	s := &NewsService{
		aggregator: deps.Aggregator,
		cache:      deps.Cache,
		archive:    deps.Archive,
		ttl:        deps.TTL,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ProductNews returns commodity news, served from cache unless Refresh is set.
func (s *NewsService) ProductNews(ctx context.Context, req ProductRequest) (domain.AggregatedResult, error) {
	key := ProductCacheKey(req)
	if !req.Refresh {
		if cached, ok := s.lookup(ctx, key); ok {
			return cached, nil
		}
	}

	fetchLimit := req.Limit
	if req.Category != "" && req.Category != domain.CategoryOverview {
		fetchLimit = req.Limit * 2
	}

	outcome := s.aggregator.FetchFromAll(ctx, FetchRequest{
		Query:     req.Product,
		Country:   req.Country,
		Commodity: req.Product,
		Category:  req.Category,
		Limit:     fetchLimit,
	})

	articles := FilterArticles(outcome.Articles, Filter{
		Country:  req.Country,
		State:    req.State,
		Ticker:   strings.ToUpper(strings.TrimSpace(req.Product)),
		Category: req.Category,
	})
	articles = truncate(normalize.Deduplicate(articles), req.Limit)

	result := s.envelope(articles, outcome.SuccessfulSources, outcome.FailedSources)
	s.store(ctx, key, result)
	s.archiveArticles(ctx, articles)
	return result, nil
}

// News returns general news across every source. Limit applies per source, so
// the merged result may hold up to Limit articles from each of them.
func (s *NewsService) News(ctx context.Context, req NewsRequest) (domain.AggregatedResult, error) {
	key := NewsCacheKey(req)
	if !req.Refresh {
		if cached, ok := s.lookup(ctx, key); ok {
			return cached, nil
		}
	}

	outcome := s.aggregator.FetchFromAll(ctx, FetchRequest{
		Query:     req.Query,
		Country:   req.Country,
		Commodity: req.Commodity,
		Limit:     req.Limit,
	})

	articles := FilterArticles(outcome.Articles, Filter{
		Country: req.Country,
		State:   req.State,
		Ticker:  req.Ticker,
	})
	if req.Deduplicate {
		articles = normalize.Deduplicate(articles)
	}

	result := s.envelope(articles, outcome.SuccessfulSources, outcome.FailedSources)
	s.store(ctx, key, result)
	s.archiveArticles(ctx, articles)
	return result, nil
}

// SourceNews queries one source directly, bypassing the cache.
func (s *NewsService) SourceNews(ctx context.Context, name string, req SourceRequest) (domain.AggregatedResult, error) {
	articles, err := s.aggregator.FetchFromSource(ctx, name, FetchRequest{
		Query:     req.Query,
		Country:   req.Country,
		Commodity: req.Commodity,
		Category:  req.Category,
		Limit:     req.Limit,
	})
	if err != nil {
		return domain.AggregatedResult{}, err
	}

	articles = truncate(articles, req.Limit)
	if len(articles) == 0 {
		return s.envelope([]domain.Article{}, []string{}, []string{name}), nil
	}
	return s.envelope(articles, []string{name}, []string{}), nil
}

// Sources describes every registered source.
func (s *NewsService) Sources() []domain.SourceInfo {
	adapters := s.aggregator.Sources()
	out := make([]domain.SourceInfo, 0, len(adapters))
	for _, a := range adapters {
		out = append(out, domain.SourceInfo{
			Name:        a.Name(),
			Description: a.Description(),
			Categories:  a.Topics(),
		})
	}
	return out
}

// Categories lists the category catalogue.
func (s *NewsService) Categories() []classify.Descriptor {
	return classify.Descriptors()
}

// CacheStats reports the result cache counters.
func (s *NewsService) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	stats, err := s.cache.Stats(ctx)
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return stats, nil
}

// History lists archived articles.
func (s *NewsService) History(ctx context.Context, filter ports.ArchiveFilter) ([]domain.Article, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	articles, err := s.archive.ListArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	return articles, nil
}

func (s *NewsService) lookup(ctx context.Context, key string) (domain.AggregatedResult, bool) {
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
		return domain.AggregatedResult{}, false
	}
	if ok {
		s.logger.Debug("cache hit", "key", key)
	}
	return cached, ok
}

func (s *NewsService) store(ctx context.Context, key string, result domain.AggregatedResult) {
	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (s *NewsService) archiveArticles(ctx context.Context, articles []domain.Article) {
	if s.archive == nil || len(articles) == 0 {
		return
	}
	if err := s.archive.SaveArticles(ctx, articles); err != nil {
		s.logger.Error("archive articles", "error", err)
	}
}

func (s *NewsService) envelope(articles []domain.Article, used, failed []string) domain.AggregatedResult {
	return domain.AggregatedResult{
		Status: StatusSuccess,
		Data:   articles,
		Metadata: domain.ResultMetadata{
			TotalResults:  len(articles),
			SourcesUsed:   used,
			FailedSources: failed,
			Timestamp:     s.now().UTC(),
		},
	}
}

// ProductCacheKey identifies a product request. The limit is not part of the key.
func ProductCacheKey(req ProductRequest) string {
	category := req.Category
	if category == "" {
		category = domain.CategoryOverview
	}
	return strings.Join([]string{
		"product",
		keyPart(req.Product),
		string(category),
		keyPart(req.Country),
		keyPart(req.State),
	}, "_")
}

// NewsCacheKey identifies a general news request by every dimension.
func NewsCacheKey(req NewsRequest) string {
	return strings.Join([]string{
		"news",
		keyPart(req.Query),
		keyPart(req.Country),
		keyPart(req.State),
		keyPart(req.Commodity),
		keyPart(req.Ticker),
		strconv.Itoa(req.Limit),
		strconv.FormatBool(req.Deduplicate),
	}, "_")
}

func keyPart(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "all"
	}
	return v
}

func truncate(articles []domain.Article, limit int) []domain.Article {
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}
