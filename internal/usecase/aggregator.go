package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"CommodityNews/internal/classify"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/source"
)

// ErrUnknownSource is returned when a caller names a source that is not configured.
var ErrUnknownSource = errors.New("unknown source")

// FetchRequest holds the arguments of a fan-out.
type FetchRequest struct {
	Query     string
	Country   string
	Commodity string
	Category  domain.Category
	Limit     int
}

// Aggregator fans a request out to every registered adapter and merges the results.
type Aggregator struct {
	registry *source.Registry
	timeout  time.Duration
	logger   *slog.Logger
}

// NewAggregator builds an aggregator. timeout bounds every adapter call; zero disables it.
func NewAggregator(registry *source.Registry, timeout time.Duration, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{registry: registry, timeout: timeout, logger: logger}
}

// Sources returns the registered adapters in registry order.
func (a *Aggregator) Sources() []source.Adapter {
	return a.registry.Adapters()
}

type sourceResult struct {
	name     string
	articles []domain.Article
	err      error
}

// FetchFromAll invokes every adapter concurrently and waits for all of them.
// Adapters that fail or return nothing are reported as failed; the merged list
// is ordered newest first with ties kept in adapter order.
func (a *Aggregator) FetchFromAll(ctx context.Context, req FetchRequest) domain.AggregationOutcome {
	q := buildQuery(req)
	adapters := a.registry.Adapters()
	results := make([]sourceResult, len(adapters))

	var wg sync.WaitGroup
	for i, adapter := range adapters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			articles, err := a.invoke(ctx, adapter, q)
			results[i] = sourceResult{name: adapter.Name(), articles: articles, err: err}
		}()
	}
	wg.Wait()

	outcome := domain.AggregationOutcome{
		Articles:          []domain.Article{},
		SuccessfulSources: []string{},
		FailedSources:     []string{},
	}
	for _, res := range results {
		switch {
		case res.err != nil:
			a.logger.Error("source failed", "source", res.name, "error", res.err)
			outcome.FailedSources = append(outcome.FailedSources, res.name)
		case len(res.articles) == 0:
			// Empty output without an error is still reported as failed.
			a.logger.Warn("source returned no articles", "source", res.name)
			outcome.FailedSources = append(outcome.FailedSources, res.name)
		default:
			outcome.SuccessfulSources = append(outcome.SuccessfulSources, res.name)
			outcome.Articles = append(outcome.Articles, res.articles...)
		}
	}

	SortNewestFirst(outcome.Articles)
	a.logger.Debug("fan-out complete",
		"articles", len(outcome.Articles),
		"successful", len(outcome.SuccessfulSources),
		"failed", len(outcome.FailedSources),
	)
	return outcome
}

// FetchFromSource invokes a single adapter. Unknown names yield ErrUnknownSource.
func (a *Aggregator) FetchFromSource(ctx context.Context, name string, req FetchRequest) ([]domain.Article, error) {
	adapter, err := a.registry.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}

	articles, err := a.invoke(ctx, adapter, buildQuery(req))
	if err != nil {
		a.logger.Error("source failed", "source", name, "error", err)
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return articles, nil
}

// invoke runs one adapter detached from caller cancellation and bounded by the
// per-source timeout. Panics are converted to errors.
func (a *Aggregator) invoke(ctx context.Context, adapter source.Adapter, q source.Query) ([]domain.Article, error) {
	callCtx := context.WithoutCancel(ctx)
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, a.timeout)
		defer cancel()
	}

	type reply struct {
		articles []domain.Article
		err      error
	}
	done := make(chan reply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- reply{err: fmt.Errorf("adapter panic: %v", r)}
			}
		}()
		articles, err := adapter.Fetch(callCtx, q)
		done <- reply{articles: articles, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		if q.Limit > 0 && len(r.articles) > q.Limit {
			r.articles = r.articles[:q.Limit]
		}
		return r.articles, nil
	case <-callCtx.Done():
		return nil, fmt.Errorf("source %s: %w", adapter.Name(), callCtx.Err())
	}
}

// SortNewestFirst orders articles by timestamp descending, keeping ties stable.
func SortNewestFirst(articles []domain.Article) {
	slices.SortStableFunc(articles, func(x, y domain.Article) int {
		return y.Timestamp.Compare(x.Timestamp)
	})
}

func buildQuery(req FetchRequest) source.Query {
	return source.Query{
		Text:      ExpandQuery(req.Query, req.Category),
		Country:   req.Country,
		Commodity: req.Commodity,
		Limit:     req.Limit,
	}
}

// ExpandQuery appends the category keyword expansion to a non-empty query.
func ExpandQuery(query string, category domain.Category) string {
	query = strings.TrimSpace(query)
	if query == "" || category == "" || category == domain.CategoryOverview {
		return query
	}
	expansion := classify.Expansion(category)
	if expansion == "" {
		return query
	}
	return query + " " + expansion
}
