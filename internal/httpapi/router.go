package httpapi

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter registers every route under /api/v1.
func NewRouter(h *Handler, origins []string, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), cors.New(corsConfig(origins)))

	v1 := r.Group("/api/v1")
	v1.GET("/health", h.GetHealth)
	v1.GET("/news", h.GetNews)
	v1.GET("/news/history", h.GetHistory)
	v1.GET("/news/product/:product", h.GetProductNews)
	v1.GET("/news/:source", h.GetSourceNews)
	v1.GET("/sources", h.GetSources)
	v1.GET("/categories", h.GetCategories)
	v1.GET("/cache/stats", h.GetCacheStats)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
