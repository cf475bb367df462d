package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stabletide/config"
	"github.com/guttosm/stabletide/internal/analysis"
	"github.com/guttosm/stabletide/internal/api"
	"github.com/guttosm/stabletide/internal/cache"
	"github.com/guttosm/stabletide/internal/logger"
	"github.com/guttosm/stabletide/internal/metrics"
	"github.com/guttosm/stabletide/internal/middleware"
	"github.com/guttosm/stabletide/internal/report"
	"github.com/guttosm/stabletide/internal/service"
)

const (
	startupTimeout = 10 * time.Second
	// requestSlack is added to the analysis timeout to get the HTTP request deadline.
	requestSlack = 5 * time.Second
)

// App is the dependency graph shared by every run mode.
type App struct {
	Config  config.Config
	Store   cache.Store
	Client  *analysis.Client
	Queries service.QueryService
	Reports *report.Loader
}

// Build connects the cache backend selected by cfg.Cache.Backend and wires the
// query service and report loader on top of it. The returned cleanup closes
// the backend.
func Build(cfg config.Config) (*App, func(), error) {
	metrics.Init()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	client := analysis.NewClient(cfg.Analysis.BaseURL, cfg.Analysis.Timeout)
	a := &App{
		Config:  cfg,
		Store:   store,
		Client:  client,
		Queries: service.NewQueryService(client, store, cfg.Cache.Key),
		Reports: report.NewLoader(store, cfg.Cache.Key),
	}

	log := logger.Component("app")
	log.Info().
		Str("cache_backend", cfg.Cache.Backend).
		Str("cache_key", cfg.Cache.Key).
		Str("analysis_url", cfg.Analysis.BaseURL).
		Dur("analysis_timeout", cfg.Analysis.Timeout).
		Msg("dependencies ready")

	cleanup := func() {
		_ = store.Close()
	}
	return a, cleanup, nil
}

// InitializeApp builds the dependencies from config.AppConfig and returns the
// HTTP router, a cleanup function for graceful shutdown and any error
// encountered during initialization.
//
// Responsibilities:
//   - Connects the cache backend (file, postgres or redis).
//   - Creates the query service and report loader.
//   - Configures the Gin router, rate limiter and request deadline.
//   - Registers health and readiness probes (readiness pings the cache and,
//     with ANALYSIS_READY_CHECK, the analysis service).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	a, cleanup, err := Build(cfg)
	if err != nil {
		return nil, nil, err
	}

	handler := api.NewHandler(a.Queries, a.Reports)

	opts := api.RouterOptions{
		Limiter: middleware.NewRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window),
	}
	if cfg.Analysis.Timeout > 0 {
		opts.RequestTimeout = cfg.Analysis.Timeout + requestSlack
	}
	router := api.NewRouter(handler, opts)

	health := api.NewHealthHandler(a.Store.Ping)
	if cfg.Analysis.ReadyCheck {
		health.WithCheck("analysis", a.Client.Ping)
	}
	health.Register(router)

	return router, cleanup, nil
}

func openStore(ctx context.Context, cfg config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendFile, "":
		s, err := cache.NewFileStore(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file cache: %w", err)
		}
		return s, nil

	case config.CacheBackendPostgres:
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		if err := migrator(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		return cache.NewPostgresStore(db), nil

	case config.CacheBackendRedis:
		s, err := cache.NewRedisStore(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
