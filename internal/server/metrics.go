package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/straja-ai/agegate/internal/analysis"
)

// Metrics holds the Prometheus collectors served on /metrics. Each server
// owns its registry so tests can build several servers.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	DegradedTotal    *prometheus.CounterVec
	RejectedTotal    *prometheus.CounterVec
	RequestsInFlight prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agegate_analyses_total",
			Help: "Completed analyses, by verdict.",
		},
		[]string{"verdict"},
	)
	m.AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agegate_analysis_duration_seconds",
			Help:    "Duration of a full analysis.",
			Buckets: prometheus.DefBuckets,
		},
	)
	m.DegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agegate_degraded_sections_total",
			Help: "Report sections that could not be produced, by reason.",
		},
		[]string{"reason"},
	)
	m.RejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agegate_rejected_requests_total",
			Help: "Requests rejected before analysis, by cause.",
		},
		[]string{"cause"},
	)
	m.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "agegate_requests_in_flight",
			Help: "Number of analysis requests currently being served.",
		},
	)

	m.registry.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.DegradedTotal,
		m.RejectedTotal,
		m.RequestsInFlight,
	)
	return m
}

// ObserveReport implements analysis.Recorder.
func (m *Metrics) ObserveReport(r *analysis.Report) {
	verdict := "allowed"
	if r.Verdict.Restricted {
		verdict = "restricted"
	}
	m.AnalysesTotal.WithLabelValues(verdict).Inc()
	m.AnalysisDuration.Observe(r.DurationMs / 1000)
	for _, reason := range r.Degraded() {
		m.DegradedTotal.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
