package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/stabletide/config"
	"github.com/guttosm/stabletide/internal/domain/dto"
)

const analysisPayload = `{
  "analysis": "Liquidity is stable.",
  "report": {"asset_type": "crypto", "total_records": 2, "historical_records": 1, "prediction_records": 1},
  "historical_data": [{"timestamp": "2024-01-01T00:00:00Z", "bid_ask_spread": 1, "volume": 100, "bid_price": 50}],
  "predictions": [{"timestamp": "2024-01-02T00:00:00Z", "bid_ask_spread": 2, "volume": 200, "bid_price": 50}]
}`

func useConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	old := config.AppConfig
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = old })
}

func fileConfig(t *testing.T, analysisURL string) config.Config {
	return config.Config{
		Server:    config.ServerConfig{Port: "0"},
		Analysis:  config.AnalysisConfig{BaseURL: analysisURL, Timeout: 2 * time.Second},
		Cache:     config.CacheConfig{Backend: config.CacheBackendFile, Dir: t.TempDir(), Key: "recommendations"},
		RateLimit: config.RateLimitConfig{Limit: 100, Window: time.Minute},
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestInitializeApp_FileBackendEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommendations" || r.URL.Query().Get("asset") != "crypto" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(analysisPayload))
	}))
	defer upstream.Close()

	useConfig(t, fileConfig(t, upstream.URL))

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	for _, p := range []string{"/healthz", "/readyz"} {
		if w := get(t, router, p); w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", p, w.Code)
		}
	}

	// Nothing cached yet.
	var view dto.ReportView
	w := get(t, router, "/")
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil || !view.IsEmpty() {
		t.Fatalf("expected empty state, got %s (%v)", w.Body.String(), err)
	}

	form := url.Values{
		"start": {"2024-01-01"}, "end": {"2024-01-31"}, "asset": {"crypto"},
		"time_intervals": {"7"}, "time_interval_length": {"86400"},
	}
	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("submit status=%d location=%q body=%s", w.Code, w.Header().Get("Location"), w.Body.String())
	}

	w = get(t, router, "/api/v1/report")
	view = dto.ReportView{}
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid report json: %v", err)
	}
	if view.CurrentDay == nil || *view.CurrentDay != "2024-01-31" {
		t.Fatalf("currentDay=%v", view.CurrentDay)
	}
	if strings.Join(view.XAxis, ",") != "2024-01-01,2024-01-02" || len(view.PredictedSpreadData) != 2 {
		t.Fatalf("unexpected view: %s", w.Body.String())
	}
}

func TestInitializeApp_UpstreamFailureKeepsCache(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	useConfig(t, fileConfig(t, upstream.URL))
	router, cleanup, err := InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	q := "start=2024-01-01&end=2024-01-31&asset=crypto&time_intervals=7&time_interval_length=86400"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/query?"+q, nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d, want 502", w.Code)
	}

	var view dto.ReportView
	if err := json.Unmarshal(get(t, router, "/").Body.Bytes(), &view); err != nil || !view.IsEmpty() {
		t.Fatalf("cache must stay empty after upstream failure")
	}
}

func TestInitializeApp_AnalysisReadinessCheck(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	live := upstream.URL
	down := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	dead := down.URL
	down.Close()
	defer upstream.Close()

	cases := []struct {
		name    string
		url     string
		enabled bool
		want    int
	}{
		{name: "disabled ignores analysis", url: dead, want: http.StatusOK},
		{name: "enabled and reachable", url: live, enabled: true, want: http.StatusOK},
		{name: "enabled and unreachable", url: dead, enabled: true, want: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := fileConfig(t, tc.url)
			cfg.Analysis.ReadyCheck = tc.enabled
			useConfig(t, cfg)

			router, cleanup, err := InitializeApp()
			if err != nil {
				t.Fatalf("InitializeApp: %v", err)
			}
			defer cleanup()

			if w := get(t, router, "/readyz"); w.Code != tc.want {
				t.Fatalf("readyz status=%d, want %d body=%s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestInitializeApp_PostgresBackend(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectPing() // readyz
	mock.ExpectClose()

	var migrated bool
	oldOpen, oldMigrate := postgresOpener, migrator
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	migrator = func(context.Context, *sql.DB) error { migrated = true; return nil }
	t.Cleanup(func() { postgresOpener, migrator = oldOpen, oldMigrate })

	cfg := fileConfig(t, "http://127.0.0.1:1")
	cfg.Cache.Backend = config.CacheBackendPostgres
	useConfig(t, cfg)

	router, cleanup, err := InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	if !migrated {
		t.Fatalf("migrations not applied")
	}
	if w := get(t, router, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}
	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitializeApp_Failures(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "postgres unreachable",
			setup: func(t *testing.T, cfg *config.Config) {
				cfg.Cache.Backend = config.CacheBackendPostgres
				old := postgresOpener
				postgresOpener = func(config.Config) (*sql.DB, error) { return nil, errors.New("connection refused") }
				t.Cleanup(func() { postgresOpener = old })
			},
		},
		{
			name: "migration fails",
			setup: func(t *testing.T, cfg *config.Config) {
				cfg.Cache.Backend = config.CacheBackendPostgres
				db, mock, err := sqlmock.New()
				if err != nil {
					t.Fatalf("sqlmock new: %v", err)
				}
				mock.ExpectClose()
				oldOpen, oldMigrate := postgresOpener, migrator
				postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
				migrator = func(context.Context, *sql.DB) error { return errors.New("syntax error") }
				t.Cleanup(func() { postgresOpener, migrator = oldOpen, oldMigrate })
			},
		},
		{
			name: "redis unreachable",
			setup: func(t *testing.T, cfg *config.Config) {
				cfg.Cache.Backend = config.CacheBackendRedis
				cfg.Redis.URL = "redis://127.0.0.1:1/0"
			},
		},
		{
			name: "redis bad url",
			setup: func(t *testing.T, cfg *config.Config) {
				cfg.Cache.Backend = config.CacheBackendRedis
				cfg.Redis.URL = "http://nope"
			},
		},
		{
			name: "unknown backend",
			setup: func(t *testing.T, cfg *config.Config) {
				cfg.Cache.Backend = "memcached"
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := fileConfig(t, "http://127.0.0.1:1")
			tc.setup(t, &cfg)
			useConfig(t, cfg)

			r, cleanup, err := InitializeApp()
			if err == nil || r != nil || cleanup != nil {
				if cleanup != nil {
					cleanup()
				}
				t.Fatalf("expected error from InitializeApp")
			}
		})
	}
}
