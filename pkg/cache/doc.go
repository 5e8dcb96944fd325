// Package cache provides an optional Redis-backed cache for workout
// listing pages.
//
// An export run fetches every page of a client's workout history. When
// runs are repeated in short succession (forgot the filter, wrong page
// size, re-export after a partial failure) the cache avoids re-fetching
// pages that have not had time to change. The exporter is fully correct
// without it: the client only consults the cache when a Redis client is
// configured, and any cache failure degrades to a direct fetch.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{
//		AccountID: "184562",
//		States:    "completed",
//		PerPage:   50,
//		Page:      1,
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the API, then manager.Set(ctx, key, entry)
//	}
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - truecoach_cache_hits_total - Page cache hits
//   - truecoach_cache_misses_total - Page cache misses
//   - truecoach_cache_errors_total{operation} - Cache operation errors
package cache
