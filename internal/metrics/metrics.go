package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counts completed analyses by resulting risk level.
var AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "scam_detector_analyses_total",
	Help: "Total number of analyses performed, labelled by risk level",
}, []string{"risk_level"})

// Measures end-to-end analysis duration, including the website probe.
var AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "scam_detector_analysis_duration_seconds",
	Help:    "Time taken to analyze one submission",
	Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // From 10ms to ~40s
})

// Website probe metrics
var (
	WebsiteChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scam_detector_website_checks_total",
		Help: "Total number of website reachability checks performed",
	})

	WebsiteCheckFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scam_detector_website_check_failures_total",
		Help: "Total number of website checks that found the host unreachable",
	})
)

// Narrative provider metrics
var (
	NarrativeRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scam_detector_narrative_requests_total",
		Help: "Total number of requests sent to the narrative provider",
	})

	NarrativeFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scam_detector_narrative_fallbacks_total",
		Help: "Total number of analyses that used the deterministic fallback narrative",
	})
)
