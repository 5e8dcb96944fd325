// Command truecoach-export downloads a TrueCoach client's workout history
// and writes it to a CSV file.
//
// The session cookie is read from the TRUECOACH_COOKIE environment
// variable, or from stdin when the variable is unset. Everything else has
// a sensible default.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomjn/truecoach-export/pkg/client"
	"github.com/tomjn/truecoach-export/pkg/collector"
	"github.com/tomjn/truecoach-export/pkg/export"
	"github.com/tomjn/truecoach-export/pkg/logging"
	"github.com/tomjn/truecoach-export/pkg/pacing"
	"github.com/tomjn/truecoach-export/pkg/session"
)

func main() {
	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: true,
		Output: os.Stderr,
	})

	rawCookie := os.Getenv("TRUECOACH_COOKIE")
	if rawCookie == "" {
		fmt.Fprintln(os.Stderr, "Paste the TrueCoach Cookie header value and press enter:")
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
		if scanner.Scan() {
			rawCookie = scanner.Text()
		}
	}

	creds, err := session.Extract(rawCookie)
	if err != nil {
		logger.Error().Err(err).Msg("Could not read session credentials")
		fmt.Fprintln(os.Stderr, "Could not read your TrueCoach session. Sign in to app.truecoach.co again and retry with a fresh cookie.")
		os.Exit(1)
	}

	cfg := client.DefaultConfig(creds.AccessToken, creds.AccountID)
	cfg.BaseURL = getEnv("TRUECOACH_BASE_URL", client.DefaultBaseURL)
	cfg.States = getEnv("TRUECOACH_STATES", "completed")
	cfg.PerPage = getIntEnv("TRUECOACH_PER_PAGE", 50)

	// Optional page cache; only wired up when a Redis address is given.
	if redisAddr := os.Getenv("REDIS_URL"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("addr", redisAddr).Msg("Redis unavailable, page cache disabled")
		} else {
			cfg.Redis = redisClient
			defer redisClient.Close()
		}
	}

	apiClient, err := client.New(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid client configuration")
		os.Exit(1)
	}

	delay := getDurationEnv("TRUECOACH_PAGE_DELAY", pacing.DefaultDelay)
	coll := collector.New(apiClient, pacing.NewFixedDelay(delay))
	sink := export.FileSink{Dir: getEnv("EXPORT_DIR", ".")}

	exporter := export.NewExporter(coll, sink)

	summary, err := exporter.Run(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Export failed, no file was written")
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.IsAuthFailure() {
			fmt.Fprintln(os.Stderr, "Your session has expired. Sign in to app.truecoach.co again and retry with a fresh cookie.")
		}
		os.Exit(1)
	}

	for _, orphan := range summary.Orphans {
		logger.Warn().
			Int64("item_id", orphan.ItemID).
			Int64("workout_id", orphan.WorkoutID).
			Msg("Skipped workout item without a parent workout")
	}

	fmt.Printf("Wrote %s (%d rows from %d workouts)\n",
		summary.Filename, summary.Rows, summary.Workouts)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
