package cache

import (
	"time"
)

// Entry is one cached page response body.
type Entry struct {
	// Body is the raw JSON response body of the page.
	Body []byte `json:"body"`

	// FetchedAt is when the page was retrieved from the API.
	FetchedAt time.Time `json:"fetched_at"`

	// Expires is when the entry becomes stale.
	Expires time.Time `json:"expires"`
}

// IsExpired returns true if the entry has passed its expiry time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration, or 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// NewEntry builds an entry for a freshly fetched page body with the
// given lifetime.
func NewEntry(body []byte, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Body:      body,
		FetchedAt: now,
		Expires:   now.Add(ttl),
	}
}
