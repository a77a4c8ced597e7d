package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"CommodityNews/internal/config"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/normalize"
	"CommodityNews/internal/source"
)

// searchModifiers are appended to the primary keyword to widen coverage.
var searchModifiers = []string{"price", "export", "shortage"}

const maxSearchKeywords = 4

// GoogleSearch queries the Custom Search JSON API once per keyword.
type GoogleSearch struct {
	cfg    config.GoogleConfig
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

var _ source.Adapter = (*GoogleSearch)(nil)

// NewGoogleSearch wires an HTTP client; a nil client gets a 20s timeout.
func NewGoogleSearch(cfg config.GoogleConfig, client *http.Client, logger *slog.Logger, now func() time.Time) *GoogleSearch {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	cfg.Endpoint = orDefault(cfg.Endpoint, "https://www.googleapis.com/customsearch/v1")
	return &GoogleSearch{cfg: cfg, client: client, logger: loggerOrDefault(logger), now: clockOrNow(now)}
}

func (g *GoogleSearch) Name() string { return NameGoogleSearch }

func (g *GoogleSearch) Topics() []string {
	return []string{"general", "commodities", "weather"}
}

func (g *GoogleSearch) Description() string {
	return "Google Custom Search results for commodity keywords"
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"items"`
}

// Fetch searches the primary keyword plus modifiers. Without credentials it
// serves representative records.
func (g *GoogleSearch) Fetch(ctx context.Context, q source.Query) ([]domain.Article, error) {
	if g.cfg.APIKey == "" || g.cfg.EngineID == "" {
		g.logger.Warn("google api key not configured, using fallback data")
		return fromSeeds(g.Name(), googleSeeds, q, g.now()), nil
	}

	keywords := searchKeywords(q)
	perKeyword := 1
	if q.Limit > 0 {
		perKeyword = max(1, q.Limit/len(keywords))
	}
	perKeyword = min(perKeyword, 10)

	var (
		raws    []normalize.Raw
		lastErr error
	)
	for _, kw := range keywords {
		term := kw
		if q.Country != "" {
			term += " " + q.Country
		}

		resp, err := g.search(ctx, term, perKeyword)
		if err != nil {
			g.logger.Error("google search request failed", "keyword", kw, "error", err)
			lastErr = err
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				break
			}
			continue
		}
		ts := g.now()
		for _, item := range resp.Items {
			raws = append(raws, normalize.Raw{
				Headline:  item.Title,
				Summary:   item.Snippet,
				URL:       item.Link,
				Source:    g.Name(),
				Country:   q.Country,
				Timestamp: ts,
			})
		}
	}

	articles := collect(raws, q.Limit, g.logger)
	if len(articles) == 0 && lastErr != nil {
		return nil, fmt.Errorf("google search: %w", lastErr)
	}
	return articles, nil
}

func searchKeywords(q source.Query) []string {
	var keywords []string
	switch {
	case q.Commodity != "":
		keywords = append(keywords, q.Commodity)
	case q.Text != "":
		keywords = append(keywords, q.Text)
	default:
		keywords = append(keywords, "commodity", "trading")
	}
	keywords = append(keywords, searchModifiers...)
	if len(keywords) > maxSearchKeywords {
		keywords = keywords[:maxSearchKeywords]
	}
	return keywords
}

func (g *GoogleSearch) search(ctx context.Context, term string, num int) (searchResponse, error) {
	var out searchResponse

	params := url.Values{}
	params.Set("key", g.cfg.APIKey)
	params.Set("cx", g.cfg.EngineID)
	params.Set("q", term)
	params.Set("num", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return out, fmt.Errorf("request search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("google returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}
