package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks page cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "truecoach_cache_hits_total",
			Help: "Total number of page cache hits",
		},
	)

	// CacheMisses tracks page cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "truecoach_cache_misses_total",
			Help: "Total number of page cache misses",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "truecoach_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
