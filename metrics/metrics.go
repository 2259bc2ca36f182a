// Package metrics exposes Prometheus counters for the scoring pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	racesScored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gridcall",
		Name:      "races_scored_total",
		Help:      "Races whose results have been processed and scored.",
	})

	predictionsScored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gridcall",
		Name:      "predictions_scored_total",
		Help:      "Individual predictions scored across all races.",
	})

	pointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gridcall",
		Name:      "points_awarded_total",
		Help:      "Total points awarded across all scored predictions.",
	})

	scoringFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridcall",
		Name:      "scoring_failures_total",
		Help:      "Scoring attempts that did not complete, by reason.",
	}, []string{"reason"})
)

// RaceScored records one completed scoring run.
func RaceScored(predictions int, points float64) {
	racesScored.Inc()
	predictionsScored.Add(float64(predictions))
	pointsAwarded.Add(points)
}

// ScoringFailed records a failed or rejected scoring attempt.
func ScoringFailed(reason string) {
	scoringFailures.WithLabelValues(reason).Inc()
}

// Handler returns the HTTP handler serving the Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
