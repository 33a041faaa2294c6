package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	itemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textpost_batch_items_total",
			Help: "Total number of processed batch items",
		},
		[]string{"status"}, // status: success, failed
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textpost_batch_run_duration_seconds",
			Help:    "Batch run duration in seconds",
			Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 300, 900},
		},
	)

	activeRuns = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "textpost_batch_active_runs",
			Help: "Number of batch runs currently in flight",
		},
	)
)
