package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"CommodityNews/internal/config"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/normalize"
	"CommodityNews/internal/source"
)

const (
	perplexitySystemPrompt = "You are a news aggregator. Provide factual, recent news headlines."
	perplexityMaxLines     = 10
	perplexityMinLine      = 20
)

// Perplexity asks an online answer model for recent headlines through its
// OpenAI-compatible chat completions API.
type Perplexity struct {
	client     *openai.Client
	model      openai.ChatModel
	configured bool
	logger     *slog.Logger
	now        func() time.Time
}

var _ source.Adapter = (*Perplexity)(nil)

// NewPerplexity builds the adapter. httpClient may be nil.
func NewPerplexity(cfg config.PerplexityConfig, httpClient *http.Client, logger *slog.Logger, now func() time.Time) *Perplexity {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(orDefault(cfg.BaseURL, "https://api.perplexity.ai/")),
		option.WithMaxRetries(1),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	client := openai.NewClient(opts...)
	return &Perplexity{
		client:     &client,
		model:      openai.ChatModel(orDefault(cfg.Model, "sonar")),
		configured: cfg.APIKey != "",
		logger:     loggerOrDefault(logger),
		now:        clockOrNow(now),
	}
}

func (p *Perplexity) Name() string { return NamePerplexity }

func (p *Perplexity) Topics() []string {
	return []string{"general", "commodities", "agriculture"}
}

func (p *Perplexity) Description() string {
	return "Perplexity online answers summarising current commodity news"
}

// Fetch prompts the model and turns each substantial answer line into an
// article. Missing credentials or a failed call yield representative records.
func (p *Perplexity) Fetch(ctx context.Context, q source.Query) ([]domain.Article, error) {
	if !p.configured {
		p.logger.Warn("perplexity api key not configured, using fallback data")
		return fromSeeds(p.Name(), perplexitySeeds, q, p.now()), nil
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(perplexitySystemPrompt),
			openai.UserMessage(perplexityPrompt(q)),
		},
	})
	if err != nil {
		p.logger.Warn("perplexity request failed, using fallback data", "error", err)
		return fromSeeds(p.Name(), perplexitySeeds, q, p.now()), nil
	}
	if len(resp.Choices) == 0 {
		p.logger.Warn("perplexity returned no choices, using fallback data")
		return fromSeeds(p.Name(), perplexitySeeds, q, p.now()), nil
	}

	return collect(p.parseAnswer(resp.Choices[0].Message.Content, q), q.Limit, p.logger), nil
}

func perplexityPrompt(q source.Query) string {
	var terms []string
	if q.Commodity != "" {
		terms = append(terms, q.Commodity+" commodity")
	}
	if q.Country != "" {
		terms = append(terms, "in "+q.Country)
	}
	if q.Text != "" {
		terms = append(terms, q.Text)
	}
	if len(terms) == 0 {
		terms = []string{"latest commodity and agriculture news"}
	}
	return fmt.Sprintf("Find the latest news about %s. Provide headlines and brief summaries.", strings.Join(terms, " "))
}

func (p *Perplexity) parseAnswer(content string, q source.Query) []normalize.Raw {
	ts := p.now()
	var raws []normalize.Raw
	for _, line := range strings.Split(content, "\n") {
		line = cleanAnswerLine(line)
		if len(line) <= perplexityMinLine {
			continue
		}
		raws = append(raws, normalize.Raw{
			Headline:  line,
			Summary:   line,
			Source:    p.Name(),
			Country:   q.Country,
			Timestamp: ts,
		})
		if len(raws) == perplexityMaxLines {
			break
		}
	}
	return raws
}

// cleanAnswerLine strips list markers and emphasis from a markdown answer line.
func cleanAnswerLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•# ")
	if i := strings.IndexAny(line, ".)"); i > 0 && i <= 3 && isDigits(line[:i]) {
		line = strings.TrimSpace(line[i+1:])
	}
	return strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
