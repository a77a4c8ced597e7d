// Package normalize turns adapter payloads into canonical articles.
package normalize

import (
	"errors"
	"strings"
	"time"

	"CommodityNews/internal/classify"
	"CommodityNews/internal/domain"
)

// ErrEmptyHeadline rejects records that cannot be identified.
var ErrEmptyHeadline = errors.New("article headline is empty")

// Raw carries the fields an adapter managed to extract from its upstream.
type Raw struct {
	Headline      string
	Summary       string
	URL           string
	Source        string
	Country       string
	State         string
	Category      domain.Category
	Tickers       []string
	CommodityTags []string
	Timestamp     time.Time
}

type keywordTicker struct {
	keyword string
	ticker  string
}

var tickerTable = []keywordTicker{
	{"wheat", "WHEAT"},
	{"corn", "CORN"},
	{"rice", "RICE"},
	{"soybean", "SOYBEAN"},
	{"cotton", "COTTON"},
	{"gold", "GOLD"},
	{"silver", "SILVER"},
	{"crude", "CRUDE"},
	{"oil", "CRUDE"},
	{"natural gas", "NATGAS"},
	{"copper", "COPPER"},
}

type tagKeywords struct {
	tag      string
	keywords []string
}

var tagTable = []tagKeywords{
	{"agriculture", []string{"agriculture", "farming", "crop", "harvest"}},
	{"grains", []string{"wheat", "corn", "rice", "grain"}},
	{"energy", []string{"oil", "gas", "crude", "energy", "petroleum"}},
	{"metals", []string{"gold", "silver", "copper", "metal"}},
	{"weather", []string{"weather", "climate", "temperature", "rainfall", "drought"}},
	{"livestock", []string{"cattle", "livestock", "beef", "pork"}},
	{"dairy", []string{"milk", "dairy", "cheese"}},
}

// ToArticle validates raw fields and applies defaults: ingestion time for a
// missing timestamp, OVERVIEW for a missing category, empty sets for tickers and tags.
func ToArticle(raw Raw) (domain.Article, error) {
	headline := collapseSpaces(raw.Headline)
	if headline == "" {
		return domain.Article{}, ErrEmptyHeadline
	}

	ts := raw.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	category := raw.Category
	if category == "" {
		category = domain.CategoryOverview
	}

	return domain.Article{
		Headline:      headline,
		Source:        strings.TrimSpace(raw.Source),
		Category:      category,
		Tickers:       normalizeTickers(raw.Tickers),
		Country:       strings.TrimSpace(raw.Country),
		State:         strings.TrimSpace(raw.State),
		CommodityTags: uniqueNonEmpty(raw.CommodityTags),
		Timestamp:     ts,
		URL:           strings.TrimSpace(raw.URL),
		Summary:       strings.TrimSpace(raw.Summary),
	}, nil
}

// Enrich derives tickers, commodity tags and category from the headline and
// summary when the adapter did not supply them.
func Enrich(raw Raw) Raw {
	text := raw.Headline + " " + raw.Summary
	if len(raw.Tickers) == 0 {
		raw.Tickers = ExtractTickers(text)
	}
	if len(raw.CommodityTags) == 0 {
		raw.CommodityTags = ExtractCommodityTags(text)
	}
	if raw.Category == "" {
		raw.Category = classify.ClassifyArticle(raw.Headline, raw.Summary)
	}
	return raw
}

// Build enriches raw and converts it in one step.
func Build(raw Raw) (domain.Article, error) {
	return ToArticle(Enrich(raw))
}

// ExtractTickers maps commodity keywords found in text to ticker symbols.
func ExtractTickers(text string) []string {
	lower := strings.ToLower(text)
	tickers := []string{}
	for _, kt := range tickerTable {
		if strings.Contains(lower, kt.keyword) && !contains(tickers, kt.ticker) {
			tickers = append(tickers, kt.ticker)
		}
	}
	return tickers
}

// ExtractCommodityTags maps keywords found in text to coarse commodity groups.
func ExtractCommodityTags(text string) []string {
	lower := strings.ToLower(text)
	tags := []string{}
	for _, tk := range tagTable {
		for _, kw := range tk.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, tk.tag)
				break
			}
		}
	}
	return tags
}

// HeadlineKey is the deduplication identity of an article.
func HeadlineKey(headline string) string {
	return strings.ToLower(strings.TrimSpace(headline))
}

// Deduplicate keeps the first article for every headline key, preserving order.
func Deduplicate(articles []domain.Article) []domain.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		key := HeadlineKey(a.Headline)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}

func normalizeTickers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func uniqueNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
