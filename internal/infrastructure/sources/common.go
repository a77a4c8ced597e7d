// Package sources holds the upstream news adapters registered with the aggregator.
package sources

import (
	"log/slog"
	"time"

	"CommodityNews/internal/domain"
	"CommodityNews/internal/normalize"
	"CommodityNews/internal/source"
)

// Registered source names.
const (
	NameGoogleSearch = "google_search"
	NamePerplexity   = "perplexity"
	NameBaiduNews    = "baidu_news"
	NameZeeBusiness  = "zee_business"
	NameAgroPortals  = "agro_portals"
	NameFinnhub      = "finnhub"
)

const userAgent = "CommodityNews/1.0"

// seed is a representative record served when an upstream is unavailable.
type seed struct {
	headline string
	summary  string
	url      string
	country  string
	tickers  []string
	tags     []string
}

// fromSeeds builds fallback articles stamped with now. The request country
// overrides the seed country.
func fromSeeds(name string, seeds []seed, q source.Query, now time.Time) []domain.Article {
	raws := make([]normalize.Raw, 0, len(seeds))
	for _, s := range seeds {
		country := q.Country
		if country == "" {
			country = s.country
		}
		raws = append(raws, normalize.Raw{
			Headline:      s.headline,
			Summary:       s.summary,
			URL:           s.url,
			Source:        name,
			Country:       country,
			Tickers:       s.tickers,
			CommodityTags: s.tags,
			Timestamp:     now,
		})
	}
	return collect(raws, q.Limit, nil)
}

// collect normalizes raws, drops invalid records and duplicate headlines, and
// truncates to limit. A non-positive limit keeps everything.
func collect(raws []normalize.Raw, limit int, logger *slog.Logger) []domain.Article {
	articles := make([]domain.Article, 0, len(raws))
	seen := map[string]struct{}{}
	for _, raw := range raws {
		article, err := normalize.Build(raw)
		if err != nil {
			if logger != nil {
				logger.Debug("skip record", "source", raw.Source, "error", err)
			}
			continue
		}
		key := normalize.HeadlineKey(article.Headline)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		articles = append(articles, article)
		if limit > 0 && len(articles) >= limit {
			break
		}
	}
	return articles
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func clockOrNow(now func() time.Time) func() time.Time {
	if now == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return now
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
