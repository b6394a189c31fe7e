package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domek",
			Name:      "searches_total",
			Help:      "Total number of hybrid searches by winning strategy",
		},
		[]string{"strategy"},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "domek",
			Name:      "search_candidates",
			Help:      "Candidate set size after structured filtering",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	ExtractionFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "domek",
			Name:      "extraction_fallbacks_total",
			Help:      "Criteria extractions that degraded to the rules fallback",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search pipeline metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchCandidates)
	prometheus.MustRegister(ExtractionFallbacksTotal)
	searchMetricsRegistered = true
}
