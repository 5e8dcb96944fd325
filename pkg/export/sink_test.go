package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSink_Deliver(t *testing.T) {
	dir := t.TempDir()
	sink := FileSink{Dir: dir}

	data := []byte("date,exercise_name\n")
	if err := sink.Deliver(context.Background(), "truecoach-workouts-2024-03-09.csv", data); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "truecoach-workouts-2024-03-09.csv"))
	if err != nil {
		t.Fatalf("read delivered file: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("file content = %q, want %q", got, data)
	}
}

func TestFileSink_BadDirectory(t *testing.T) {
	sink := FileSink{Dir: filepath.Join(t.TempDir(), "does", "not", "exist")}

	err := sink.Deliver(context.Background(), "out.csv", []byte("x"))
	if err == nil {
		t.Fatal("Deliver() error = nil, want error for missing directory")
	}
}
