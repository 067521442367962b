package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Per-trial selection latency; observed after the trial timer stops.
	selectionTrialDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dietplanner_selection_trial_duration_seconds",
			Help:    "Wall-clock duration of a single greedy selection trial",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
		[]string{"variant"},
	)

	selectionItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dietplanner_selection_items",
			Help: "Number of items picked by the last benchmark run",
		},
		[]string{"variant"},
	)

	catalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dietplanner_catalog_cache_hits_total",
			Help: "Total number of catalog loads served from the cache",
		},
	)
	catalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dietplanner_catalog_cache_misses_total",
			Help: "Total number of catalog loads that parsed the source",
		},
	)

	catalogRowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dietplanner_catalog_rows_dropped_total",
			Help: "Total number of source rows dropped for uncoercible calorie values",
		},
	)
)
