package client

import (
	"fmt"
)

// APIError represents a non-success response from the TrueCoach API.
// Any non-2xx status aborts the whole export: the run never retries and
// never salvages partial pages.
type APIError struct {
	Page       int
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("truecoach API error on page %d (status %d): %s",
			e.Page, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("truecoach API error on page %d (status %d)",
		e.Page, e.StatusCode)
}

// IsAuthFailure reports whether the error looks like an expired or
// invalid session, in which case re-authenticating is the remedy.
func (e *APIError) IsAuthFailure() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
