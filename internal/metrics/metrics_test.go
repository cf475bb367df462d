package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAndHandler(t *testing.T) {
	Init()
	Init() // idempotent

	before := testutil.ToFloat64(upstreamRequests.WithLabelValues("ok"))
	ObserveUpstream("ok", 20*time.Millisecond)
	if got := testutil.ToFloat64(upstreamRequests.WithLabelValues("ok")) - before; got != 1 {
		t.Fatalf("upstream ok delta=%v, want 1", got)
	}

	CacheOp("save", "error")
	ReportRender("empty")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`stabletide_upstream_requests_total{outcome="ok"}`,
		`stabletide_cache_operations_total{op="save",result="error"}`,
		`stabletide_report_renders_total{state="empty"}`,
		"stabletide_upstream_request_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
