package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FilenamePrefix is the fixed prefix of every export file.
const FilenamePrefix = "truecoach-workouts-"

// Filename builds the export filename for the given day:
// truecoach-workouts-YYYY-MM-DD.csv
func Filename(t time.Time) string {
	return FilenamePrefix + t.Format("2006-01-02") + ".csv"
}

// Sink receives the finished export. It stands in for whatever host
// mechanism presents the file to the user and must deliver the content
// exactly once per run.
type Sink interface {
	Deliver(ctx context.Context, filename string, data []byte) error
}

// FileSink writes the export into a directory on the local filesystem.
type FileSink struct {
	// Dir is the target directory. Empty means the current directory.
	Dir string
}

// Deliver writes data to Dir/filename.
func (s FileSink) Deliver(_ context.Context, filename string, data []byte) error {
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
