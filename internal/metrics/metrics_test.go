package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordFetchSuccess("hatena")
	c.RecordFetchSuccess("hatena")
	c.RecordFetchFailure("5ch")
	c.RecordItemSkipped("podcast")
	c.RecordUpstreamStatus(503)

	if got := testutil.ToFloat64(c.fetchSuccess.WithLabelValues("hatena")); got != 2 {
		t.Errorf("fetch_success{hatena} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.fetchFail.WithLabelValues("5ch")); got != 1 {
		t.Errorf("fetch_fail{5ch} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.itemsSkipped.WithLabelValues("podcast")); got != 1 {
		t.Errorf("items_skipped{podcast} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.upstreamStatus.WithLabelValues("503")); got != 1 {
		t.Errorf("upstream_status{503} = %v, want 1", got)
	}
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordFetchSuccess("aozora")
	c.RecordFetchLatency("aozora", 150*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	Handler(reg).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, "esuna_fetch_success_total") {
		t.Error("レスポンスに esuna_fetch_success_total が含まれていない")
	}
	if !strings.Contains(body, "esuna_fetch_latency_seconds") {
		t.Error("レスポンスに esuna_fetch_latency_seconds が含まれていない")
	}
}
