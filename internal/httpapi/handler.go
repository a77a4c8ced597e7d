// Package httpapi exposes the news service over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"CommodityNews/internal/classify"
	"CommodityNews/internal/domain"
	"CommodityNews/internal/ports"
	"CommodityNews/internal/usecase"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

const (
	defaultLimit        = 10
	maxLimit            = 100
	maxProductLimit     = 50
	defaultHistoryLimit = 50
)

// NewsQuerier is the application surface the handlers depend on.
type NewsQuerier interface {
	ProductNews(ctx context.Context, req usecase.ProductRequest) (domain.AggregatedResult, error)
	News(ctx context.Context, req usecase.NewsRequest) (domain.AggregatedResult, error)
	SourceNews(ctx context.Context, name string, req usecase.SourceRequest) (domain.AggregatedResult, error)
	Sources() []domain.SourceInfo
	Categories() []classify.Descriptor
	CacheStats(ctx context.Context) (domain.CacheStats, error)
	History(ctx context.Context, filter ports.ArchiveFilter) ([]domain.Article, error)
}

// Handler maps HTTP requests onto NewsQuerier calls.
type Handler struct {
	news   NewsQuerier
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler builds the handler set.
func NewHandler(news NewsQuerier, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{news: news, logger: logger, now: time.Now}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

type historyResponse struct {
	Status string           `json:"status"`
	Data   []domain.Article `json:"data"`
	Total  int              `json:"total"`
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "healthy", Version: Version, Timestamp: h.now().UTC()})
}

func (h *Handler) GetNews(c *gin.Context) {
	limit, err := queryLimit(c, "limit", defaultLimit, maxLimit)
	if err != nil {
		badRequest(c, err)
		return
	}
	dedup, err := queryBool(c, "deduplicate", true)
	if err != nil {
		badRequest(c, err)
		return
	}
	refresh, err := queryBool(c, "refresh", false)
	if err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.news.News(c.Request.Context(), usecase.NewsRequest{
		Query:       c.Query("query"),
		Country:     c.Query("country"),
		State:       c.Query("state"),
		Commodity:   c.Query("commodity"),
		Ticker:      c.Query("ticker"),
		Limit:       limit,
		Deduplicate: dedup,
		Refresh:     refresh,
	})
	if err != nil {
		h.internalError(c, "fetch news", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetProductNews(c *gin.Context) {
	product := strings.TrimSpace(c.Param("product"))
	if product == "" {
		badRequest(c, errors.New("product is required"))
		return
	}
	category, err := classify.Parse(c.Query("category"))
	if err != nil {
		badRequest(c, err)
		return
	}
	limit, err := queryLimit(c, "limit", defaultLimit, maxProductLimit)
	if err != nil {
		badRequest(c, err)
		return
	}
	refresh, err := queryBool(c, "refresh", false)
	if err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.news.ProductNews(c.Request.Context(), usecase.ProductRequest{
		Product:  product,
		Category: category,
		Country:  c.Query("country"),
		State:    c.Query("state"),
		Limit:    limit,
		Refresh:  refresh,
	})
	if err != nil {
		h.internalError(c, "fetch product news", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetSourceNews(c *gin.Context) {
	name := c.Param("source")
	limit, err := queryLimit(c, "limit", defaultLimit, maxLimit)
	if err != nil {
		badRequest(c, err)
		return
	}
	category, err := classify.Parse(c.Query("category"))
	if err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.news.SourceNews(c.Request.Context(), name, usecase.SourceRequest{
		Query:     c.Query("query"),
		Country:   c.Query("country"),
		Commodity: c.Query("commodity"),
		Category:  category,
		Limit:     limit,
	})
	if errors.Is(err, usecase.ErrUnknownSource) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": fmt.Sprintf("unknown source %q", name)})
		return
	}
	if err != nil {
		h.internalError(c, "fetch source news", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetHistory(c *gin.Context) {
	category, err := classify.Parse(c.Query("category"))
	if err != nil {
		badRequest(c, err)
		return
	}
	limit, err := queryLimit(c, "limit", defaultHistoryLimit, maxLimit)
	if err != nil {
		badRequest(c, err)
		return
	}

	articles, err := h.news.History(c.Request.Context(), ports.ArchiveFilter{
		Country:   c.Query("country"),
		Commodity: c.Query("commodity"),
		Category:  category,
		Limit:     limit,
	})
	if errors.Is(err, usecase.ErrArchiveDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": err.Error()})
		return
	}
	if err != nil {
		h.internalError(c, "list history", err)
		return
	}
	c.JSON(http.StatusOK, historyResponse{Status: usecase.StatusSuccess, Data: articles, Total: len(articles)})
}

func (h *Handler) GetSources(c *gin.Context) {
	sources := h.news.Sources()
	c.JSON(http.StatusOK, gin.H{"status": usecase.StatusSuccess, "sources": sources, "total": len(sources)})
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories := h.news.Categories()
	c.JSON(http.StatusOK, gin.H{"status": usecase.StatusSuccess, "categories": categories, "total": len(categories)})
}

func (h *Handler) GetCacheStats(c *gin.Context) {
	stats, err := h.news.CacheStats(c.Request.Context())
	if err != nil {
		h.internalError(c, "cache stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": usecase.StatusSuccess, "cache_stats": stats})
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error(op, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": err.Error()})
}

// queryLimit reads an integer in [1, maxValue]; absence yields def.
func queryLimit(c *gin.Context, name string, def, maxValue int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if v < 1 || v > maxValue {
		return 0, fmt.Errorf("%s must be between 1 and %d", name, maxValue)
	}
	return v, nil
}

func queryBool(c *gin.Context, name string, def bool) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", name)
	}
	return v, nil
}
