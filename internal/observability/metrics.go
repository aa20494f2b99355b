package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for QueriesTotal.
const (
	OutcomeSuccess = "success"
	OutcomeWarning = "warning"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus collectors for explorer operations.
type Metrics struct {
	QueriesTotal  *prometheus.CounterVec   // labels: operation, outcome={success,warning,error}
	QueryDuration *prometheus.HistogramVec // labels: operation
	XMLDocuments  *prometheus.CounterVec   // labels: source={parse,cache}
}

// NewMetrics creates and registers all explorer metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "explorer",
			Name:      "queries_total",
			Help:      "Explorer operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "explorer",
			Name:      "query_duration_seconds",
			Help:      "Duration of an explorer operation including every store round trip.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),
		XMLDocuments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "explorer",
			Name:      "xml_documents_total",
			Help:      "Council tax documents served, by whether they were parsed or memoised.",
		}, []string{"source"}),
	}

	prometheus.MustRegister(m.QueriesTotal, m.QueryDuration, m.XMLDocuments)

	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		QueriesTotal:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "explorer", Name: "queries_total"}, []string{"operation", "outcome"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "explorer", Name: "query_duration_seconds"}, []string{"operation"}),
		XMLDocuments:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "explorer", Name: "xml_documents_total"}, []string{"source"}),
	}
}
