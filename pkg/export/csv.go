package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Header is the fixed CSV column schema, in output order.
var Header = []string{"date", "exercise_name", "instructions", "result", "state", "workout_title"}

// WriteCSV serializes the joined rows as RFC-4180 CSV: comma separated,
// LF line endings, cells containing a comma, quote, or line break quoted
// with embedded quotes doubled. The header is always the first record.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, row := range rows {
		record := []string{
			row.Date,
			row.ExerciseName,
			row.Instructions,
			row.Result,
			row.State,
			row.WorkoutTitle,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
