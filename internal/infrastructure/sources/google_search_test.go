package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"CommodityNews/internal/config"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/source"
)

var fixedNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestGoogleSearchFallbackWithoutCredentials(t *testing.T) {
	t.Parallel()

	g := NewGoogleSearch(config.GoogleConfig{}, nil, discard(), fixedClock)
	articles, err := g.Fetch(context.Background(), source.Query{Country: "Kenya", Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 fallback articles, got %d", len(articles))
	}
	for _, a := range articles {
		if a.Source != NameGoogleSearch || a.Country != "Kenya" || !a.Timestamp.Equal(fixedNow) {
			t.Fatalf("unexpected fallback article: %+v", a)
		}
	}
	if articles[0].Category != domain.CategoryPrice && articles[0].Category != domain.CategoryTrade &&
		articles[0].Category != domain.CategoryGeopolitics {
		t.Fatalf("fallback records must be classified, got %s", articles[0].Category)
	}
}

func TestGoogleSearchQueriesEachKeyword(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		terms []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "k" || q.Get("cx") != "cx" || q.Get("num") != "1" {
			http.Error(w, "bad params", http.StatusBadRequest)
			return
		}
		mu.Lock()
		terms = append(terms, q.Get("q"))
		mu.Unlock()

		kw := strings.Fields(q.Get("q"))[0]
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]string{
				{"title": "Wheat " + kw + " update", "snippet": "Wheat export outlook", "link": "https://news.example/" + kw},
				{"title": "Wheat wheat update", "snippet": "duplicate", "link": "https://news.example/dup"},
			},
		})
	}))
	defer srv.Close()

	g := NewGoogleSearch(config.GoogleConfig{Endpoint: srv.URL, APIKey: "k", EngineID: "cx"}, srv.Client(), discard(), fixedClock)
	articles, err := g.Fetch(context.Background(), source.Query{Commodity: "wheat", Country: "India", Limit: 4})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := []string{"wheat India", "price India", "export India", "shortage India"}
	if !slices.Equal(terms, want) {
		t.Fatalf("unexpected search terms: %v", terms)
	}
	if len(articles) != 4 {
		t.Fatalf("expected 4 articles, got %d", len(articles))
	}
	if articles[0].Headline != "Wheat wheat update" || !slices.Equal(articles[0].Tickers, []string{"WHEAT"}) {
		t.Fatalf("unexpected first article: %+v", articles[0])
	}
	if articles[0].Country != "India" {
		t.Fatalf("country must be carried, got %q", articles[0].Country)
	}
}

func TestGoogleSearchReportsUpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGoogleSearch(config.GoogleConfig{Endpoint: srv.URL, APIKey: "k", EngineID: "cx"}, srv.Client(), discard(), fixedClock)
	if _, err := g.Fetch(context.Background(), source.Query{Limit: 4}); err == nil {
		t.Fatal("expected error when every request fails")
	}
}

func TestSearchKeywords(t *testing.T) {
	t.Parallel()

	if got := searchKeywords(source.Query{}); !slices.Equal(got, []string{"commodity", "trading", "price", "export"}) {
		t.Fatalf("unexpected default keywords: %v", got)
	}
	if got := searchKeywords(source.Query{Text: "rice"}); got[0] != "rice" || len(got) != 4 {
		t.Fatalf("unexpected query keywords: %v", got)
	}
}
