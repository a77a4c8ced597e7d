package sources

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"CommodityNews/internal/config"
	"CommodityNews/internal/normalize"
	"CommodityNews/internal/source"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCollectDropsInvalidAndDuplicates(t *testing.T) {
	t.Parallel()

	raws := []normalize.Raw{
		{Headline: "Corn output rises", Source: "x"},
		{Headline: "  ", Source: "x"},
		{Headline: "corn OUTPUT rises", Source: "x"},
		{Headline: "Cotton prices fall", Source: "x"},
		{Headline: "Gold rallies", Source: "x"},
	}
	got := collect(raws, 2, discard())
	if len(got) != 2 || got[0].Headline != "Corn output rises" || got[1].Headline != "Cotton prices fall" {
		t.Fatalf("unexpected articles: %+v", got)
	}
}

func TestEveryFallbackSetIsValid(t *testing.T) {
	t.Parallel()

	sets := map[string][]seed{
		NameGoogleSearch: googleSeeds,
		NamePerplexity:   perplexitySeeds,
		NameBaiduNews:    baiduSeeds,
		NameZeeBusiness:  zeeBusinessSeeds,
		NameAgroPortals:  agroPortalSeeds,
		NameFinnhub:      finnhubSeeds,
	}
	for name, seeds := range sets {
		articles := fromSeeds(name, seeds, source.Query{}, fixedNow)
		if len(articles) != len(seeds) {
			t.Fatalf("%s: expected %d articles, got %d", name, len(seeds), len(articles))
		}
		for _, a := range articles {
			if a.Source != name || a.Country == "" || a.Category == "" {
				t.Fatalf("%s: incomplete fallback article %+v", name, a)
			}
		}
	}
}

func TestAdaptersWithoutUpstreamServeFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		adapter source.Adapter
		want    int
	}{
		{NewPerplexity(config.PerplexityConfig{}, nil, discard(), fixedClock), 3},
		{NewBaiduNews(config.BaiduConfig{}, nil, discard(), fixedClock), 4},
		{NewAgroPortals(config.AgroPortalsConfig{}, nil, 0, discard(), fixedClock), 6},
		{NewFinnhub(config.FinnhubConfig{}, discard(), fixedClock), 2},
	}
	for _, tc := range cases {
		articles, err := tc.adapter.Fetch(context.Background(), source.Query{Limit: 10})
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", tc.adapter.Name(), err)
		}
		if len(articles) != tc.want {
			t.Fatalf("%s: expected %d fallback articles, got %d", tc.adapter.Name(), tc.want, len(articles))
		}
	}
}
