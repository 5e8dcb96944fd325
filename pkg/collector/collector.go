// Package collector drives the paginated read of a client's workout
// history until every page has been retrieved.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tomjn/truecoach-export/pkg/client"
	"github.com/tomjn/truecoach-export/pkg/pacing"
)

var (
	pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "truecoach_pages_fetched_total",
		Help: "Total listing pages fetched across all runs",
	})

	recordsCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "truecoach_records_collected_total",
		Help: "Total records collected by kind",
	}, []string{"kind"}) // "workout", "workout_item"
)

// PageFetcher is the interface the API client implements for single-page
// fetching.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (*client.Page, error)
}

// Result is the full accumulation of a collection run. Workouts and
// Items preserve arrival order: ascending page number, within-page order
// untouched.
type Result struct {
	Workouts   []client.Workout
	Items      []client.WorkoutItem
	TotalCount int
}

// Collector fetches all pages of the workouts listing sequentially.
type Collector struct {
	fetcher PageFetcher
	pacer   pacing.Pacer
	logger  zerolog.Logger
}

// New creates a collector. A nil pacer defaults to the fixed delay the
// TrueCoach web client uses between page requests.
func New(fetcher PageFetcher, pacer pacing.Pacer) *Collector {
	if pacer == nil {
		pacer = pacing.NewFixedDelay(pacing.DefaultDelay)
	}

	return &Collector{
		fetcher: fetcher,
		pacer:   pacer,
		logger:  log.With().Str("component", "collector").Logger(),
	}
}

// CollectAll fetches every page and returns the concatenated records.
//
// The total page count is read once, from page 1; later pages may report
// a different total but it is ignored. The first failed fetch aborts the
// run with no partial result. Pacing applies between fetches only, never
// before the first or after the last.
func (c *Collector) CollectAll(ctx context.Context) (*Result, error) {
	start := time.Now()

	first, err := c.fetcher.FetchPage(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch first page: %w", err)
	}
	pagesFetchedTotal.Inc()

	totalPages := first.Meta.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	c.logger.Info().
		Int("total_pages", totalPages).
		Int("total_count", first.Meta.TotalCount).
		Msg("Starting workout collection")

	result := &Result{
		Workouts:   append([]client.Workout(nil), first.Workouts...),
		Items:      append([]client.WorkoutItem(nil), first.WorkoutItems...),
		TotalCount: first.Meta.TotalCount,
	}

	for page := 2; page <= totalPages; page++ {
		if err := c.pacer.Pace(ctx); err != nil {
			return nil, fmt.Errorf("pacing before page %d: %w", page, err)
		}

		p, err := c.fetcher.FetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d of %d: %w", page, totalPages, err)
		}
		pagesFetchedTotal.Inc()

		result.Workouts = append(result.Workouts, p.Workouts...)
		result.Items = append(result.Items, p.WorkoutItems...)

		c.logger.Debug().
			Int("page", page).
			Int("total_pages", totalPages).
			Int("workouts", len(p.Workouts)).
			Int("items", len(p.WorkoutItems)).
			Msg("Collected page")
	}

	recordsCollected.WithLabelValues("workout").Add(float64(len(result.Workouts)))
	recordsCollected.WithLabelValues("workout_item").Add(float64(len(result.Items)))

	c.logger.Info().
		Int("pages", totalPages).
		Int("workouts", len(result.Workouts)).
		Int("items", len(result.Items)).
		Dur("duration", time.Since(start)).
		Msg("Collection complete")

	return result, nil
}
