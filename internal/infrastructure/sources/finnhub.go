package sources

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"CommodityNews/internal/config"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/normalize"
	"CommodityNews/internal/source"
)

// Finnhub reads Finnhub market news and keeps the commodity-related stories.
type Finnhub struct {
	client   *finnhub.DefaultApiService
	category string
	apiKey   string
	logger   *slog.Logger
	now      func() time.Time
}

var _ source.Adapter = (*Finnhub)(nil)

// NewFinnhub builds the adapter around the generated API client.
func NewFinnhub(cfg config.FinnhubConfig, logger *slog.Logger, now func() time.Time) *Finnhub {
	fcfg := finnhub.NewConfiguration()
	fcfg.AddDefaultHeader("X-Finnhub-Token", cfg.APIKey)
	return &Finnhub{
		client:   finnhub.NewAPIClient(fcfg).DefaultApi,
		category: orDefault(cfg.Category, "general"),
		apiKey:   cfg.APIKey,
		logger:   loggerOrDefault(logger),
		now:      clockOrNow(now),
	}
}

func (f *Finnhub) Name() string { return NameFinnhub }

func (f *Finnhub) Topics() []string {
	return []string{"markets", "energy", "metals"}
}

func (f *Finnhub) Description() string {
	return "Finnhub market news filtered to commodity stories"
}

func (f *Finnhub) Fetch(ctx context.Context, q source.Query) ([]domain.Article, error) {
	if f.apiKey == "" {
		f.logger.Warn("finnhub api key not configured, using fallback data")
		return fromSeeds(f.Name(), finnhubSeeds, q, f.now()), nil
	}

	news, _, err := f.client.MarketNews(ctx).Category(f.category).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub market news: %w", err)
	}

	return collect(commodityNews(news, q, f.Name(), f.now()), q.Limit, f.logger), nil
}

// commodityNews converts market news and keeps items that mention a commodity,
// or the requested commodity when one is given.
func commodityNews(news []finnhub.MarketNews, q source.Query, name string, fetchedAt time.Time) []normalize.Raw {
	term := strings.ToLower(strings.TrimSpace(q.Commodity))

	raws := make([]normalize.Raw, 0, len(news))
	for _, item := range news {
		raw := normalize.Raw{Source: name, Country: q.Country, Timestamp: fetchedAt}
		if item.Headline != nil {
			raw.Headline = *item.Headline
		}
		if item.Summary != nil {
			raw.Summary = *item.Summary
		}
		if item.Url != nil {
			raw.URL = *item.Url
		}
		if item.Datetime != nil && *item.Datetime > 0 {
			raw.Timestamp = time.Unix(*item.Datetime, 0).UTC()
		}

		text := raw.Headline + " " + raw.Summary
		if term != "" {
			if !strings.Contains(strings.ToLower(text), term) {
				continue
			}
		} else if len(normalize.ExtractTickers(text)) == 0 && len(normalize.ExtractCommodityTags(text)) == 0 {
			continue
		}
		raws = append(raws, raw)
	}
	return raws
}
