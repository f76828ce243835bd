package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// risk engine, the NLP scorer, and the storage layer.
type Metrics struct {
	RiskRequests  *prometheus.CounterVec // labels: outcome={ok,degraded}
	RiskLevels    *prometheus.CounterVec // labels: level={Low,Medium,High,Unknown}
	Predictions   *prometheus.CounterVec // labels: source={model,heuristic,disabled}
	StorageErrors *prometheus.CounterVec // labels: store={reports,weather}

	RiskDuration prometheus.Histogram

	// Report submission metrics.
	ReportsSubmitted prometheus.Counter
	ReportsPublished prometheus.Counter

	// NLP scorer metrics.
	NLPJobs       *prometheus.CounterVec // labels: result={scored,cached,timeout,rejected,degraded}
	NLPQueueDepth prometheus.Gauge
	NLPDuration   prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RiskRequests,
		m.RiskLevels,
		m.Predictions,
		m.StorageErrors,
		m.RiskDuration,
		m.ReportsSubmitted,
		m.ReportsPublished,
		m.NLPJobs,
		m.NLPQueueDepth,
		m.NLPDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RiskRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainsafe",
			Name:      "risk_requests_total",
			Help:      "Risk assessments served, by outcome (ok = full evidence, degraded = some source unavailable).",
		}, []string{"outcome"}),
		RiskLevels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainsafe",
			Name:      "risk_level_total",
			Help:      "Final risk levels returned to callers.",
		}, []string{"level"}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainsafe",
			Name:      "predictions_total",
			Help:      "Predictor invocations by evidence source.",
		}, []string{"source"}),
		StorageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainsafe",
			Name:      "storage_errors_total",
			Help:      "Store calls that failed and triggered degradation.",
		}, []string{"store"}),
		RiskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rainsafe",
			Name:      "risk_assessment_duration_seconds",
			Help:      "Duration of a complete hybrid risk assessment.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ReportsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainsafe",
			Name:      "reports_submitted_total",
			Help:      "Flood reports accepted and persisted.",
		}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rainsafe",
			Name:      "reports_published_total",
			Help:      "Flood reports published to the event topic.",
		}),
		NLPJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rainsafe",
			Name:      "nlp_jobs_total",
			Help:      "Description scoring jobs by result.",
		}, []string{"result"}),
		NLPQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rainsafe",
			Name:      "nlp_queue_depth",
			Help:      "Scoring jobs currently queued for the worker pool.",
		}),
		NLPDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rainsafe",
			Name:      "nlp_scoring_duration_seconds",
			Help:      "Duration of a single description scoring job.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
}
