// Package export turns collected workout records into a delivered CSV
// file: join, serialization, and the sink boundary.
package export

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/tomjn/truecoach-export/pkg/client"
)

var (
	orphanItemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "truecoach_orphan_items_total",
		Help: "Workout items dropped because their parent workout was missing",
	})

	rowsJoinedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "truecoach_rows_joined_total",
		Help: "Workout items successfully joined to their parent workout",
	})
)

// Row is one exported line: a workout item paired with its parent
// workout. Field order matches the CSV column order.
type Row struct {
	Date         string
	ExerciseName string
	Instructions string
	Result       string
	State        string
	WorkoutTitle string
}

// Orphan identifies a workout item whose parent workout was absent from
// the collected result set. Orphans are dropped from the output and
// reported as diagnostics; they never fail a run.
type Orphan struct {
	ItemID    int64
	WorkoutID int64
}

// Join pairs each workout item with its parent workout, preserving item
// order. Duplicate workout ids keep the last occurrence. Items without a
// parent are returned as orphans.
func Join(workouts []client.Workout, items []client.WorkoutItem) ([]Row, []Orphan) {
	logger := log.With().Str("component", "joiner").Logger()

	byID := make(map[int64]client.Workout, len(workouts))
	for _, w := range workouts {
		if _, dup := byID[w.ID]; dup {
			logger.Debug().Int64("workout_id", w.ID).Msg("Duplicate workout id, keeping last")
		}
		byID[w.ID] = w
	}

	rows := make([]Row, 0, len(items))
	var orphans []Orphan

	for _, item := range items {
		parent, ok := byID[item.WorkoutID]
		if !ok {
			orphans = append(orphans, Orphan{ItemID: item.ID, WorkoutID: item.WorkoutID})
			orphanItemsTotal.Inc()
			logger.Warn().
				Int64("item_id", item.ID).
				Int64("workout_id", item.WorkoutID).
				Msg("Workout item has no parent workout, dropping")
			continue
		}

		rows = append(rows, Row{
			Date:         parent.Due,
			ExerciseName: item.Name,
			Instructions: item.Info,
			Result:       item.Result,
			State:        item.State,
			WorkoutTitle: parent.Title,
		})
	}

	rowsJoinedTotal.Add(float64(len(rows)))
	return rows, orphans
}
