package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"CommodityNews/internal/domain"
	"CommodityNews/internal/ports"
)

func TestBuildUpsertSkipsDuplicateHeadlines(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	query, args, err := buildUpsert([]domain.Article{
		{Headline: "Rice exports rise", Source: "a", Category: domain.CategoryTrade, Timestamp: ts},
		{Headline: " rice EXPORTS rise", Source: "b", Category: domain.CategoryTrade, Timestamp: ts},
		{Headline: "Gold steadies", Source: "c", Category: domain.CategoryPrice, Tickers: []string{"GOLD"}, Timestamp: ts},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO commodity_articles (headline_key,headline,source,category,tickers,country,state,commodity_tags,url,summary,published_at) VALUES ($1,") {
		t.Fatalf("unexpected insert: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (headline_key) DO UPDATE") {
		t.Fatalf("missing upsert clause: %s", query)
	}
	if len(args) != 22 {
		t.Fatalf("expected two rows of 11 args, got %d", len(args))
	}
	if args[0] != "rice exports rise" || args[11] != "gold steadies" {
		t.Fatalf("unexpected keys: %v %v", args[0], args[11])
	}
	if tickers, ok := args[4].(pq.StringArray); !ok || tickers == nil {
		t.Fatalf("nil tickers must be stored as empty array, got %#v", args[4])
	}
}

func TestBuildList(t *testing.T) {
	t.Parallel()

	query, args, err := buildList(ports.ArchiveFilter{Country: "India", Commodity: "grain", Category: domain.CategoryClimate, Limit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := "SELECT headline, source, category, tickers, country, state, commodity_tags, url, summary, published_at " +
		"FROM commodity_articles WHERE country ILIKE $1 " +
		"AND EXISTS (SELECT 1 FROM unnest(commodity_tags) AS tag WHERE tag ILIKE $2) " +
		"AND category = $3 ORDER BY published_at DESC LIMIT 5"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if len(args) != 3 || args[0] != "%India%" || args[1] != "%grain%" || args[2] != "climate" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildListDefaults(t *testing.T) {
	t.Parallel()

	query, args, err := buildList(ports.ArchiveFilter{Category: domain.CategoryOverview})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if strings.Contains(query, "WHERE") || !strings.HasSuffix(query, "LIMIT 50") || len(args) != 0 {
		t.Fatalf("unexpected default query: %s %v", query, args)
	}
}

func TestNilDatabaseIsNoop(t *testing.T) {
	t.Parallel()

	archive := NewPostgresArchive(nil)
	if err := archive.SaveArticles(context.Background(), []domain.Article{{Headline: "x"}}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	articles, err := archive.ListArticles(context.Background(), ports.ArchiveFilter{})
	if err != nil || len(articles) != 0 {
		t.Fatalf("unexpected result: %v %v", articles, err)
	}
}
