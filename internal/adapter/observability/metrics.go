package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider and operation",
		},
		[]string{"provider", "operation"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)

	ReportsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of interview reports assembled",
		},
	)
	ReportFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "report_failures_total",
			Help: "Total number of report generations aborted for lack of transcript",
		},
	)
	AnalysisFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_fallbacks_total",
			Help: "Total number of analyses that degraded to their deterministic fallback",
		},
		[]string{"component"},
	)

	// Report outcome distribution
	OverallScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_overall_score",
			Help:    "Distribution of report overall scores [0,100]",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
)

var registerOnce sync.Once

// InitMetrics registers all metrics once per process.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(AIRequestsTotal)
		prometheus.MustRegister(AIRequestDuration)
		prometheus.MustRegister(ReportsGeneratedTotal)
		prometheus.MustRegister(ReportFailuresTotal)
		prometheus.MustRegister(AnalysisFallbacksTotal)
		prometheus.MustRegister(OverallScoreHistogram)
	})
}
