package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLeadMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)

	m.ObserveSubmission("quote", "accepted")
	m.ObserveSubmission("quote", "accepted")
	m.ObserveSubmission("contact", "invalid")
	m.ObserveTriageAction("set_quote_status", "ok")
	m.ObserveStoreLatency("insert_quote", 0.012)

	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues("quote", "accepted")); got != 2 {
		t.Fatalf("expected 2 accepted quote submissions, got %v", got)
	}
	if got := testutil.ToFloat64(m.submissionsTotal.WithLabelValues("contact", "invalid")); got != 1 {
		t.Fatalf("expected 1 invalid contact submission, got %v", got)
	}
	if got := testutil.ToFloat64(m.triageTotal.WithLabelValues("set_quote_status", "ok")); got != 1 {
		t.Fatalf("expected 1 triage action, got %v", got)
	}
}

func TestLeadMetricsNilSafe(t *testing.T) {
	var m *LeadMetrics
	m.ObserveSubmission("quote", "accepted")
	m.ObserveTriageAction("get_quote", "ok")
	m.ObserveStoreLatency("list_quotes", 0.5)
}
