// Package metrics exposes the console's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts EnsureProcessed calls served from the cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evalboard_cache_hits_total",
		Help: "Processed-artifact cache hits.",
	})

	// CacheMisses counts EnsureProcessed calls that had to parse raw files.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evalboard_cache_misses_total",
		Help: "Processed-artifact cache misses.",
	})

	// ParseFailures counts raw parses that ended in an error.
	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evalboard_parse_failures_total",
		Help: "Failed raw result parses.",
	})

	// ParseDuration observes wall time of productive raw parses.
	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "evalboard_parse_duration_seconds",
		Help:    "Duration of raw result parsing.",
		Buckets: prometheus.DefBuckets,
	})

	// LegacyFilesDeleted counts files removed by the legacy sweeper.
	LegacyFilesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evalboard_legacy_files_deleted_total",
		Help: "Legacy artifacts removed from the cache namespace.",
	})
)
