// Package metrics registers the service's Prometheus collectors:
//
//	stabletide_upstream_requests_total{outcome}
//	stabletide_upstream_request_duration_seconds
//	stabletide_cache_operations_total{op,result}
//	stabletide_report_renders_total{state}
//	go_* and process_* system metrics
//
// They are exposed by the API router on /metrics.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once             sync.Once
	registry         *prometheus.Registry
	upstreamRequests *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
	cacheOps         *prometheus.CounterVec
	reportRenders    *prometheus.CounterVec
)

// Init creates and registers the collectors. Safe to call more than once.
func Init() {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		upstreamRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stabletide_upstream_requests_total",
				Help: "Calls to the analysis service by outcome",
			},
			[]string{"outcome"},
		)
		upstreamDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stabletide_upstream_request_duration_seconds",
			Help:    "Latency of calls to the analysis service",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		})
		cacheOps = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stabletide_cache_operations_total",
				Help: "Cache reads and writes by result",
			},
			[]string{"op", "result"},
		)
		reportRenders = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stabletide_report_renders_total",
				Help: "Report views served, by state (populated or empty)",
			},
			[]string{"state"},
		)

		registry.MustRegister(
			upstreamRequests,
			upstreamDuration,
			cacheOps,
			reportRenders,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	Init()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveUpstream records one analysis call.
func ObserveUpstream(outcome string, elapsed time.Duration) {
	if upstreamRequests == nil {
		return
	}
	upstreamRequests.WithLabelValues(outcome).Inc()
	upstreamDuration.Observe(elapsed.Seconds())
}

// CacheOp counts a cache read ("load") or write ("save").
func CacheOp(op, result string) {
	if cacheOps != nil {
		cacheOps.WithLabelValues(op, result).Inc()
	}
}

// ReportRender counts a served report view.
func ReportRender(state string) {
	if reportRenders != nil {
		reportRenders.WithLabelValues(state).Inc()
	}
}
