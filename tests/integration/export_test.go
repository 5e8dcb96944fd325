package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomjn/truecoach-export/internal/testutil"
	"github.com/tomjn/truecoach-export/pkg/client"
	"github.com/tomjn/truecoach-export/pkg/collector"
	"github.com/tomjn/truecoach-export/pkg/export"
	"github.com/tomjn/truecoach-export/pkg/pacing"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Docker not available for integration testing: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(context.Background())
	}

	return redisClient, cleanup
}

// seedTwoPages configures the mock with the standard two-page fixture.
func seedTwoPages(mock *testutil.MockTrueCoach) {
	mock.SetPageData(1, client.Page{
		Meta: client.Meta{TotalPages: 2, TotalCount: 2},
		Workouts: []client.Workout{
			{ID: 5, Due: "2024-01-01", Title: "Leg Day"},
		},
		WorkoutItems: []client.WorkoutItem{
			{ID: 9, WorkoutID: 5, Name: "Squat", Result: "5x5", State: "completed"},
		},
	})
	mock.SetPageData(2, client.Page{
		Meta: client.Meta{TotalPages: 2, TotalCount: 2},
		Workouts: []client.Workout{
			{ID: 6, Due: "2024-01-03", Title: "Push Day"},
		},
		WorkoutItems: []client.WorkoutItem{
			{ID: 10, WorkoutID: 6, Name: "Bench", Result: "3x8", State: "completed"},
			{ID: 11, WorkoutID: 404, Name: "Ghost"},
		},
	})
}

func newExporter(t *testing.T, mock *testutil.MockTrueCoach, rdb *redis.Client, sink export.Sink) *export.Exporter {
	t.Helper()

	cfg := client.DefaultConfig("tok-integration", "184562")
	cfg.BaseURL = mock.URL()
	cfg.Redis = rdb
	cfg.CacheTTL = time.Minute

	apiClient, err := client.New(cfg)
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}

	return export.NewExporter(collector.New(apiClient, pacing.Noop()), sink)
}

type captureSink struct {
	filename string
	data     []byte
}

func (s *captureSink) Deliver(_ context.Context, filename string, data []byte) error {
	s.filename = filename
	s.data = data
	return nil
}

func TestExport_EndToEnd(t *testing.T) {
	mock := testutil.NewMockTrueCoach()
	defer mock.Close()
	seedTwoPages(mock)

	sink := &captureSink{}
	exporter := newExporter(t, mock, nil, sink)

	summary, err := exporter.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := mock.GetPagesRequested(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("pages requested = %v, want [1 2]", got)
	}
	if mock.GetLastAuthHeader() != "Bearer tok-integration" {
		t.Errorf("auth header = %q, want bearer token", mock.GetLastAuthHeader())
	}

	if summary.Rows != 2 {
		t.Errorf("rows = %d, want 2", summary.Rows)
	}
	if len(summary.Orphans) != 1 || summary.Orphans[0].ItemID != 11 {
		t.Errorf("orphans = %+v, want the ghost item", summary.Orphans)
	}

	lines := strings.Split(strings.TrimRight(string(sink.data), "\n"), "\n")
	want := []string{
		"date,exercise_name,instructions,result,state,workout_title",
		"2024-01-01,Squat,,5x5,completed,Leg Day",
		"2024-01-03,Bench,,3x8,completed,Push Day",
	}
	if len(lines) != len(want) {
		t.Fatalf("output lines = %d, want %d:\n%s", len(lines), len(want), sink.data)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestExport_FailedPageAbortsWithoutFile(t *testing.T) {
	mock := testutil.NewMockTrueCoach()
	defer mock.Close()

	mock.SetPageData(1, client.Page{Meta: client.Meta{TotalPages: 3, TotalCount: 9}})
	mock.SetPage(2, testutil.NewServerErrorResponse())

	sink := &captureSink{}
	exporter := newExporter(t, mock, nil, sink)

	_, err := exporter.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want error")
	}
	if sink.data != nil {
		t.Errorf("sink received %d bytes, want no delivery on failure", len(sink.data))
	}
	// Page 3 must never be requested after page 2 fails.
	for _, page := range mock.GetPagesRequested() {
		if page == 3 {
			t.Error("page 3 was requested after page 2 failed")
		}
	}
}

func TestExport_SecondRunServedFromCache(t *testing.T) {
	rdb, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockTrueCoach()
	defer mock.Close()
	seedTwoPages(mock)

	sink := &captureSink{}
	exporter := newExporter(t, mock, rdb, sink)

	if _, err := exporter.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	firstData := append([]byte(nil), sink.data...)
	requestsAfterFirst := mock.GetRequestCount()

	if _, err := exporter.Run(context.Background()); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if mock.GetRequestCount() != requestsAfterFirst {
		t.Errorf("second run made %d extra requests, want 0 (cache)",
			mock.GetRequestCount()-requestsAfterFirst)
	}
	if string(sink.data) != string(firstData) {
		t.Error("cached run produced different output")
	}
}
