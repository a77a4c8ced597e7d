package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CommodityNews/internal/config"
	"CommodityNews/internal/source"
)

const commodityRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
  <title>Commodities</title>
  <item>
    <title>Gold hits record on festive buying</title>
    <link>https://feeds.example/gold</link>
    <description><![CDATA[<p>Gold <b>prices</b> climbed.</p>]]></description>
    <pubDate>Mon, 03 Jun 2024 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Cotton sowing lags as monsoon stalls</title>
    <link>https://feeds.example/cotton</link>
    <description>Cotton acreage is behind last year.</description>
  </item>
</channel></rss>`

const portalPage = `<html><body>
<article><h2><a href="/news/wheat-yields">Wheat yields beat estimates</a></h2><p>Strong wheat harvest in Kansas.</p></article>
<article><h3>Dairy herd numbers steady</h3><p>Milk output unchanged.</p></article>
<article><h2><a href="/news/soy">Soybean crush margins widen</a></h2></article>
</body></html>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rss", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(commodityRSS))
	})
	mux.HandleFunc("/portal", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(portalPage))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return httptest.NewServer(mux)
}

func TestZeeBusinessReadsFeeds(t *testing.T) {
	t.Parallel()

	srv := feedServer(t)
	defer srv.Close()

	z := NewZeeBusiness(config.ZeeBusinessConfig{Feeds: []string{srv.URL + "/broken", srv.URL + "/rss"}}, srv.Client(), discard(), fixedClock)
	articles, err := z.Fetch(context.Background(), source.Query{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	gold := articles[0]
	if gold.Summary != "Gold prices climbed." {
		t.Fatalf("html must be stripped from summary: %q", gold.Summary)
	}
	if !gold.Timestamp.Equal(time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected published time: %s", gold.Timestamp)
	}
	if gold.Country != "India" {
		t.Fatalf("expected default country India, got %q", gold.Country)
	}
	if !articles[1].Timestamp.Equal(fixedNow) {
		t.Fatalf("missing pubDate must default to fetch time, got %s", articles[1].Timestamp)
	}
}

func TestZeeBusinessFallsBackWhenFeedsFail(t *testing.T) {
	t.Parallel()

	srv := feedServer(t)
	defer srv.Close()

	z := NewZeeBusiness(config.ZeeBusinessConfig{Feeds: []string{srv.URL + "/broken"}}, srv.Client(), discard(), fixedClock)
	articles, err := z.Fetch(context.Background(), source.Query{Country: "UAE", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(articles) != 4 || articles[0].Country != "UAE" {
		t.Fatalf("expected fallback records for UAE, got %+v", articles)
	}
}

func TestAgroPortalsCombinesFeedsAndPages(t *testing.T) {
	t.Parallel()

	srv := feedServer(t)
	defer srv.Close()

	a := NewAgroPortals(config.AgroPortalsConfig{
		Feeds: []string{srv.URL + "/rss"},
		Pages: []string{srv.URL + "/portal"},
	}, srv.Client(), time.Second, discard(), fixedClock)

	articles, err := a.Fetch(context.Background(), source.Query{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(articles) != 5 {
		t.Fatalf("expected 5 articles, got %d: %+v", len(articles), articles)
	}

	var wheat *struct{ url, summary string }
	for _, art := range articles {
		if art.Headline == "Wheat yields beat estimates" {
			wheat = &struct{ url, summary string }{art.URL, art.Summary}
		}
	}
	if wheat == nil {
		t.Fatal("portal teaser was not extracted")
	}
	if wheat.url != srv.URL+"/news/wheat-yields" || wheat.summary != "Strong wheat harvest in Kansas." {
		t.Fatalf("unexpected teaser: %+v", *wheat)
	}
}

func TestAgroPortalsFiltersByCommodity(t *testing.T) {
	t.Parallel()

	srv := feedServer(t)
	defer srv.Close()

	a := NewAgroPortals(config.AgroPortalsConfig{Pages: []string{srv.URL + "/portal"}}, srv.Client(), time.Second, discard(), fixedClock)
	articles, err := a.Fetch(context.Background(), source.Query{Commodity: "Dairy", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(articles) != 1 || articles[0].Headline != "Dairy herd numbers steady" {
		t.Fatalf("unexpected articles: %+v", articles)
	}
}
