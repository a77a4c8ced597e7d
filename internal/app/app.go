package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"CommodityNews/internal/cache"
	"CommodityNews/internal/config"
	"CommodityNews/internal/httpapi"
	"CommodityNews/internal/infrastructure/rediscache"
	"CommodityNews/internal/infrastructure/scheduler"
	"CommodityNews/internal/infrastructure/sources"
	"CommodityNews/internal/infrastructure/storage"
	"CommodityNews/internal/logging"
	"CommodityNews/internal/ports"
	"CommodityNews/internal/source"
	"CommodityNews/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	server  *http.Server
	janitor *usecase.CacheJanitor
	closers []func() error
}

// New connects the configured backends and builds the HTTP server.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}
	a := &Application{cfg: cfg, logger: baseLogger}

	registry := buildRegistry(cfg, baseLogger)
	if registry.Len() == 0 {
		return nil, errors.New("no news sources enabled")
	}

	resultCache, err := a.buildCache(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	var archive ports.ArticleArchive
	if cfg.Database.DSN != "" {
		db, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("open archive: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		archive = storage.NewPostgresArchive(db)
	}

	aggregator := usecase.NewAggregator(registry, cfg.Sources.RequestTimeout, baseLogger.With("component", "aggregator"))
	news := usecase.NewNewsService(usecase.NewsServiceDeps{
		Aggregator: aggregator,
		Cache:      resultCache,
		Archive:    archive,
		TTL:        cfg.Cache.TTL,
		Logger:     baseLogger.With("component", "news"),
	})

	a.janitor = usecase.NewCacheJanitor(
		scheduler.NewTickerScheduler(cfg.Cache.CleanupInterval),
		resultCache,
		baseLogger.With("component", "janitor"),
	)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httpapi.NewHandler(news, baseLogger.With("component", "http"))
	a.server = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           httpapi.NewRouter(handler, cfg.Server.CORSOrigins, baseLogger.With("component", "http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	baseLogger.Info("application configured",
		"sources", registry.Names(),
		"cache", cfg.Cache.Backend,
		"archive", archive != nil,
	)
	return a, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	if err := a.janitor.Start(ctx); err != nil {
		return fmt.Errorf("start cache janitor: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("http shutdown", "error", err)
	}
	if err := a.janitor.Stop(shutdownCtx); err != nil {
		a.logger.Warn("janitor shutdown", "error", err)
	}
	a.logger.Info("application stopped")
	return serveErr
}

func (a *Application) buildCache(ctx context.Context) (ports.ResultCache, error) {
	switch a.cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client, err := rediscache.Connect(ctx, a.cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return rediscache.New(client, a.cfg.Cache.KeyPrefix), nil
	case config.CacheBackendMemory, "":
		return cache.NewResults(a.cfg.Cache.TTL, nil), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", a.cfg.Cache.Backend)
	}
}

func (a *Application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close resource", "error", err)
		}
	}
	a.closers = nil
}

// buildRegistry registers enabled adapters in configuration order.
func buildRegistry(cfg config.Config, logger *slog.Logger) *source.Registry {
	client := &http.Client{Timeout: cfg.Sources.RequestTimeout}
	registry := source.NewRegistry()
	for _, name := range cfg.Sources.Enabled {
		adapter := newAdapter(name, cfg, client, logger.With("component", "source."+name))
		if adapter == nil {
			logger.Warn("unknown source in configuration", "source", name)
			continue
		}
		registry.Register(adapter)
	}
	return registry
}

func newAdapter(name string, cfg config.Config, client *http.Client, logger *slog.Logger) source.Adapter {
	switch name {
	case sources.NameGoogleSearch:
		return sources.NewGoogleSearch(cfg.Google, client, logger, nil)
	case sources.NamePerplexity:
		return sources.NewPerplexity(cfg.Perplexity, client, logger, nil)
	case sources.NameBaiduNews:
		return sources.NewBaiduNews(cfg.Baidu, client, logger, nil)
	case sources.NameZeeBusiness:
		return sources.NewZeeBusiness(cfg.ZeeBusiness, client, logger, nil)
	case sources.NameAgroPortals:
		return sources.NewAgroPortals(cfg.AgroPortals, client, cfg.Sources.RequestTimeout, logger, nil)
	case sources.NameFinnhub:
		return sources.NewFinnhub(cfg.Finnhub, logger, nil)
	default:
		return nil
	}
}
