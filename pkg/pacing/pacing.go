// Package pacing implements the inter-page delay applied between successive
// API fetches. The delay is a courtesy toward the remote service, not a
// correctness mechanism, so it is modelled as an injectable strategy that
// tests replace with a no-op.
package pacing

import (
	"context"
	"time"
)

// DefaultDelay matches the pause the TrueCoach web client takes between
// paginated requests.
const DefaultDelay = 500 * time.Millisecond

// Pacer is consulted between successive page fetches.
type Pacer interface {
	// Pace blocks for the strategy's delay. It returns early with the
	// context's error if the context is cancelled while waiting.
	Pace(ctx context.Context) error
}

// fixedDelay waits a constant duration on every call.
type fixedDelay struct {
	d time.Duration
}

// NewFixedDelay returns a Pacer that waits d between fetches.
// Non-positive durations behave like Noop.
func NewFixedDelay(d time.Duration) Pacer {
	return fixedDelay{d: d}
}

func (p fixedDelay) Pace(ctx context.Context) error {
	if p.d <= 0 {
		return nil
	}

	timer := time.NewTimer(p.d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// noop never waits.
type noop struct{}

func (noop) Pace(context.Context) error { return nil }

// Noop returns a Pacer that applies no delay. Intended for tests and for
// callers that rate limit elsewhere.
func Noop() Pacer {
	return noop{}
}
