package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the intake and triage flows.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	triageTotal      *prometheus.CounterVec
	storeLatency     *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forwarding",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total lead form submissions",
		}, []string{"kind", "outcome"}),
		triageTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forwarding",
			Subsystem: "triage",
			Name:      "actions_total",
			Help:      "Total admin triage actions",
		}, []string{"action", "outcome"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "forwarding",
			Subsystem: "store",
			Name:      "operation_latency_seconds",
			Help:      "Latency of persistence gateway operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.triageTotal, m.storeLatency)
	return m
}

// ObserveSubmission counts one public form submission. kind is "quote" or
// "contact"; outcome is "accepted", "invalid", "forbidden" or "error".
func (m *LeadMetrics) ObserveSubmission(kind, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveTriageAction counts one admin triage action.
func (m *LeadMetrics) ObserveTriageAction(action, outcome string) {
	if m == nil {
		return
	}
	m.triageTotal.WithLabelValues(action, outcome).Inc()
}

// ObserveStoreLatency records the duration of one persistence operation.
func (m *LeadMetrics) ObserveStoreLatency(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.storeLatency.WithLabelValues(operation).Observe(seconds)
}
