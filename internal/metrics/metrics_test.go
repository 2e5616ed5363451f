package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ricirt/sample-health/internal/metrics"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveRequest("/health", "GET", 200, 3*time.Millisecond)
	m.ObserveRequest("/health", "GET", 200, 5*time.Millisecond)
	m.ObserveRequest("unmatched", "GET", 404, time.Millisecond)

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/health", "GET", "200")); got != 2 {
		t.Fatalf("expected 2 health requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("unmatched", "GET", "404")); got != 1 {
		t.Fatalf("expected 1 unmatched request, got %v", got)
	}
	if got := testutil.CollectAndCount(m.RequestDuration); got != 2 {
		t.Fatalf("expected 2 histogram series, got %d", got)
	}
}

func TestMetrics_NewRegistersEverything(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	// A second registration of the same names must collide.
	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	metrics.New(reg)
}
