package main

//
//  @title           stabletide API
//  @version         1.0
//  @description     Liquidity risk report service: submits queries to the analysis service, caches the latest result and serves chart-ready series.
//  @termsOfService  https://github.com/guttosm/stabletide
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stabletide
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        query
//  @tag.description Submit a liquidity query
//
//  @tag.name        report
//  @tag.description Chart-ready view of the latest result
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/stabletide/config"
	_ "github.com/guttosm/stabletide/docs" // swagger docs
	"github.com/guttosm/stabletide/internal/app"
	"github.com/guttosm/stabletide/internal/domain/models"
	"github.com/guttosm/stabletide/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//   - writeTimeout: must exceed the analysis timeout so POST /query can answer.
func startServer(router http.Handler, port string, writeTimeout time.Duration) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT or SIGTERM, drains the server for up to
// 10 seconds and then runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runFetch submits one query and stores the result, like POST /query.
// A summary of the stored document is written to w.
func runFetch(ctx context.Context, a *app.App, p models.QueryParams, w io.Writer) error {
	res, outcome, err := a.Queries.Submit(ctx, p)
	if err != nil {
		return err
	}
	summary := map[string]any{
		"cache_key":   outcome.Key,
		"stored":      outcome.OK(),
		"current_day": res.CurrentDay,
		"historical":  len(res.HistoricalData),
		"predictions": len(res.Predictions),
	}
	if !outcome.OK() {
		summary["cache_error"] = outcome.Err.Error()
	}
	return writeJSON(w, summary)
}

// runReport writes the view-model of the cached document to w.
func runReport(ctx context.Context, a *app.App, w io.Writer) error {
	return writeJSON(w, a.Reports.Load(ctx))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// main is the entry point of the stabletide service.
//
// Modes (selected via --mode flag):
//   - api:    Starts the HTTP server (default).
//   - fetch:  Runs one query (--start --end --asset --intervals --interval-length), caches it and exits.
//   - report: Prints the report view of the cached result and exits.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	mode := flag.String("mode", "api", "Mode: api, fetch or report")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	start := flag.String("start", "", "fetch: start date")
	end := flag.String("end", "", "fetch: end date")
	asset := flag.String("asset", "", "fetch: asset type")
	intervals := flag.String("intervals", "", "fetch: number of prediction intervals")
	intervalLength := flag.String("interval-length", "", "fetch: interval length")
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port, cfg.Analysis.Timeout+30*time.Second)
		gracefulShutdown(ctx, server, cleanup)

	case "fetch", "report":
		a, cleanup, err := app.Build(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		if *mode == "fetch" {
			err = runFetch(ctx, a, models.QueryParams{
				Start:              *start,
				End:                *end,
				Asset:              *asset,
				TimeIntervals:      *intervals,
				TimeIntervalLength: *intervalLength,
			}, os.Stdout)
		} else {
			err = runReport(ctx, a, os.Stdout)
		}
		cleanup()
		if err != nil {
			logger.L().Fatal().Err(err).Str("mode", *mode).Msg("command failed")
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
