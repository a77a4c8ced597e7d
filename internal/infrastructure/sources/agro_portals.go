package sources

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/mmcdole/gofeed"

	"CommodityNews/internal/config"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/normalize"
	"CommodityNews/internal/source"
)

const portalItemSelector = "article"

// AgroPortals gathers agricultural portal news from RSS feeds and HTML listing
// pages. With nothing configured or nothing readable it serves representative records.
type AgroPortals struct {
	cfg     config.AgroPortalsConfig
	parser  *gofeed.Parser
	timeout time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

var _ source.Adapter = (*AgroPortals)(nil)

// NewAgroPortals builds the adapter. timeout bounds each page visit.
func NewAgroPortals(cfg config.AgroPortalsConfig, client *http.Client, timeout time.Duration, logger *slog.Logger, now func() time.Time) *AgroPortals {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &AgroPortals{
		cfg:     cfg,
		parser:  newFeedParser(client),
		timeout: timeout,
		logger:  loggerOrDefault(logger),
		now:     clockOrNow(now),
	}
}

func (a *AgroPortals) Name() string { return NameAgroPortals }

func (a *AgroPortals) Topics() []string {
	return []string{"agriculture", "farming", "livestock"}
}

func (a *AgroPortals) Description() string {
	return "Agricultural news portals such as AgriNews, FarmProgress, CropLife and AgFunder"
}

func (a *AgroPortals) Fetch(ctx context.Context, q source.Query) ([]domain.Article, error) {
	if len(a.cfg.Feeds) == 0 && len(a.cfg.Pages) == 0 {
		a.logger.Info("no agro portals configured, using fallback data")
		return fromSeeds(a.Name(), agroPortalSeeds, q, a.now()), nil
	}

	var raws []normalize.Raw
	for _, feedURL := range a.cfg.Feeds {
		items, err := readFeed(ctx, a.parser, feedURL)
		if err != nil {
			a.logger.Warn("agro portal feed failed", "feed", feedURL, "error", err)
			continue
		}
		raws = append(raws, feedItemsToRaws(items, a.Name(), q.Country, a.now())...)
	}
	for _, pageURL := range a.cfg.Pages {
		if ctx.Err() != nil {
			break
		}
		pageRaws, err := a.crawlPage(ctx, pageURL, q.Country)
		if err != nil {
			a.logger.Warn("agro portal page failed", "page", pageURL, "error", err)
			continue
		}
		raws = append(raws, pageRaws...)
	}

	if term := strings.ToLower(q.Commodity); term != "" {
		raws = mentioning(raws, term)
	}

	articles := collect(raws, q.Limit, a.logger)
	if len(articles) == 0 {
		a.logger.Warn("no articles fetched from agro portals, using fallback data")
		return fromSeeds(a.Name(), agroPortalSeeds, q, a.now()), nil
	}
	return articles, nil
}

// crawlPage visits one listing page and extracts every <article> teaser.
func (a *AgroPortals) crawlPage(ctx context.Context, pageURL, country string) ([]normalize.Raw, error) {
	timeout := a.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}

	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.Context = ctx
	c.SetRequestTimeout(timeout)

	ts := a.now()
	var (
		raws     []normalize.Raw
		visitErr error
	)
	c.OnHTML(portalItemSelector, func(e *colly.HTMLElement) {
		link := e.DOM.Find("h1 a, h2 a, h3 a").First()
		headline := strings.TrimSpace(link.Text())
		if headline == "" {
			headline = strings.TrimSpace(e.ChildText("h1, h2, h3"))
		}
		var articleURL string
		if href, ok := link.Attr("href"); ok && href != "" {
			articleURL = e.Request.AbsoluteURL(href)
		}
		raws = append(raws, normalize.Raw{
			Headline:  headline,
			Summary:   strings.TrimSpace(e.DOM.Find("p").First().Text()),
			URL:       articleURL,
			Source:    a.Name(),
			Country:   country,
			Timestamp: ts,
		})
	})
	c.OnError(func(_ *colly.Response, err error) {
		visitErr = err
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, err
	}
	c.Wait()
	if visitErr != nil {
		return nil, visitErr
	}
	return raws, nil
}

func mentioning(raws []normalize.Raw, term string) []normalize.Raw {
	out := raws[:0:0]
	for _, r := range raws {
		text := strings.ToLower(r.Headline + " " + r.Summary)
		if strings.Contains(text, term) {
			out = append(out, r)
		}
	}
	return out
}
