package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bootcli",
		Subsystem: "bootstrap",
		Name:      "runs_total",
		Help:      "Bootstrap runs by statistic, execution mode, and outcome.",
	}, []string{"statistic", "mode", "outcome"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "bootcli",
		Subsystem: "bootstrap",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of bootstrap runs.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"statistic", "mode"})

	replicatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bootcli",
		Subsystem: "bootstrap",
		Name:      "replicates_total",
		Help:      "Completed bootstrap replicates by execution mode.",
	}, []string{"mode"})
)

func observeRun(statistic, mode, outcome string, replicates int, duration time.Duration) {
	runsTotal.WithLabelValues(statistic, mode, outcome).Inc()
	runDuration.WithLabelValues(statistic, mode).Observe(duration.Seconds())
	if outcome == "success" {
		replicatesTotal.WithLabelValues(mode).Add(float64(replicates))
	}
}
