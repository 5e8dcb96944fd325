package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tomjn/truecoach-export/pkg/collector"
)

// Exporter runs one full export pass: collect, join, serialize, deliver.
type Exporter struct {
	collector *collector.Collector
	sink      Sink
	logger    zerolog.Logger

	// now is swapped out in tests to pin the filename date.
	now func() time.Time
}

// Summary describes a completed run.
type Summary struct {
	Workouts int
	Items    int
	Rows     int
	Orphans  []Orphan
	Filename string
}

// NewExporter creates an exporter over a collector and a sink.
func NewExporter(c *collector.Collector, sink Sink) *Exporter {
	return &Exporter{
		collector: c,
		sink:      sink,
		logger:    log.With().Str("component", "exporter").Logger(),
		now:       time.Now,
	}
}

// SetClock overrides the time source used for the filename (for testing).
func (e *Exporter) SetClock(now func() time.Time) {
	e.now = now
}

// Run performs the export. Any failure before delivery aborts the run
// with no file produced; orphaned workout items are dropped from the
// output and reported in the summary instead of failing the run.
func (e *Exporter) Run(ctx context.Context) (*Summary, error) {
	result, err := e.collector.CollectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect workouts: %w", err)
	}

	rows, orphans := Join(result.Workouts, result.Items)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, fmt.Errorf("serialize export: %w", err)
	}

	filename := Filename(e.now())
	if err := e.sink.Deliver(ctx, filename, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("deliver export: %w", err)
	}

	e.logger.Info().
		Str("filename", filename).
		Int("workouts", len(result.Workouts)).
		Int("items", len(result.Items)).
		Int("rows", len(rows)).
		Int("orphans", len(orphans)).
		Msg("Export complete")

	return &Summary{
		Workouts: len(result.Workouts),
		Items:    len(result.Items),
		Rows:     len(rows),
		Orphans:  orphans,
		Filename: filename,
	}, nil
}
