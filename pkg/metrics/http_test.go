package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestObserveRequestRegistersSeries(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/menu", "200", 25*time.Millisecond)
	m.ObserveRequest("GET", "/api/menu", "200", 30*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) != 2 {
		t.Fatalf("expected duration and counter families, got %d", len(families))
	}
}

func TestNilReceiversAreSafe(t *testing.T) {
	t.Parallel()

	var h *HTTPMetrics
	h.ObserveRequest("GET", "/", "200", time.Millisecond)

	var b *BadgeMetrics
	b.IncReconcile("noop")

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "/", "200", time.Millisecond)
}

func TestBadgeMetricsOutcomes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	b := NewBadgeMetrics(reg)
	b.IncReconcile("updated")
	b.IncReconcile("noop")
	b.IncReconcile("noop")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected one family, got %d", len(families))
	}
	if got := len(families[0].GetMetric()); got != 2 {
		t.Fatalf("expected two outcome series, got %d", got)
	}
}
