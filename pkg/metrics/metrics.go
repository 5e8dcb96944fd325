// Package metrics provides the centralized Prometheus metrics reference
// for the TrueCoach exporter. Metrics are defined in their respective
// packages (client, cache, collector, export) to maintain modularity and
// avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the exporter.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - truecoach_requests_total{status} (Counter): API requests by HTTP status
//     (plus "cache_hit" and "network_error" pseudo-statuses)
//   - truecoach_request_duration_seconds (Histogram): API request duration
//   - truecoach_errors_total{status} (Counter): Non-2xx API responses by status
//
// Cache Metrics (pkg/cache):
//   - truecoach_cache_hits_total (Counter): Page cache hits
//   - truecoach_cache_misses_total (Counter): Page cache misses
//   - truecoach_cache_errors_total{operation} (Counter): Cache operation errors
//
// Collection Metrics (pkg/collector):
//   - truecoach_pages_fetched_total (Counter): Listing pages fetched
//   - truecoach_records_collected_total{kind} (Counter): Records collected
//     by kind (workout, workout_item)
//
// Export Metrics (pkg/export):
//   - truecoach_rows_joined_total (Counter): Items joined to their workout
//   - truecoach_orphan_items_total (Counter): Items dropped for lack of a parent
//
// Example Prometheus Queries:
//
//   # Orphan Rate
//   rate(truecoach_orphan_items_total[5m]) /
//   rate(truecoach_rows_joined_total[5m])
//
//   # Cache Hit Rate
//   rate(truecoach_cache_hits_total[5m]) /
//   (rate(truecoach_cache_hits_total[5m]) + rate(truecoach_cache_misses_total[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(truecoach_request_duration_seconds_bucket[5m]))
