package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"CommodityNews/internal/config"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/normalize"
	"CommodityNews/internal/source"
)

// BaiduNews scrapes the Baidu news search result page when scraping is enabled
// and serves representative Chinese market records otherwise.
type BaiduNews struct {
	cfg    config.BaiduConfig
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

var _ source.Adapter = (*BaiduNews)(nil)

// NewBaiduNews wires an HTTP client; a nil client gets a 20s timeout.
func NewBaiduNews(cfg config.BaiduConfig, client *http.Client, logger *slog.Logger, now func() time.Time) *BaiduNews {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	cfg.SearchURL = orDefault(cfg.SearchURL, "https://www.baidu.com/s")
	return &BaiduNews{cfg: cfg, client: client, logger: loggerOrDefault(logger), now: clockOrNow(now)}
}

func (b *BaiduNews) Name() string { return NameBaiduNews }

func (b *BaiduNews) Topics() []string {
	return []string{"general", "commodities", "asia"}
}

func (b *BaiduNews) Description() string {
	return "Baidu News coverage of Chinese and Asian commodity markets"
}

// Fetch scrapes search results. An empty result page falls back to
// representative records; transport failures are returned.
func (b *BaiduNews) Fetch(ctx context.Context, q source.Query) ([]domain.Article, error) {
	if !b.cfg.Scrape {
		b.logger.Info("baidu scraping disabled, using fallback data")
		return fromSeeds(b.Name(), baiduSeeds, q, b.now()), nil
	}

	term := orDefault(q.Commodity, q.Text)
	term = orDefault(term, "commodity")

	doc, err := b.fetchDocument(ctx, term, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("baidu news: %w", err)
	}

	articles := collect(b.extractResults(doc, q), q.Limit, b.logger)
	if len(articles) == 0 {
		b.logger.Warn("no results parsed from baidu, using fallback data", "term", term)
		return fromSeeds(b.Name(), baiduSeeds, q, b.now()), nil
	}
	return articles, nil
}

func (b *BaiduNews) fetchDocument(ctx context.Context, term string, limit int) (*goquery.Document, error) {
	params := url.Values{}
	params.Set("tn", "news")
	params.Set("word", term)
	if limit > 0 {
		params.Set("rn", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.cfg.SearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("baidu returned %s", resp.Status)
	}

	// Baidu has served GBK pages; decode to UTF-8 from the declared charset.
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func (b *BaiduNews) extractResults(doc *goquery.Document, q source.Query) []normalize.Raw {
	country := orDefault(q.Country, "China")
	ts := b.now()

	var raws []normalize.Raw
	doc.Find("div.result, div.result-op").Each(func(_ int, s *goquery.Selection) {
		link := s.Find("h3 a").First()
		headline := strings.TrimSpace(link.Text())
		if headline == "" {
			return
		}
		href, _ := link.Attr("href")
		summary := strings.TrimSpace(s.Find(".c-summary, .c-font-normal, .c-span-last").First().Text())

		raws = append(raws, normalize.Raw{
			Headline:  headline,
			Summary:   summary,
			URL:       strings.TrimSpace(href),
			Source:    b.Name(),
			Country:   country,
			Timestamp: ts,
		})
	})
	return raws
}
