package cache

import (
	"fmt"
	"strings"
)

// Key identifies one cached page of the workouts listing. All request
// parameters that influence the response body are part of the key.
type Key struct {
	// AccountID is the client whose workouts were requested.
	AccountID string

	// States is the workout state filter of the request.
	States string

	// PerPage is the page size of the request.
	PerPage int

	// Page is the page number of the request.
	Page int
}

// String generates a deterministic Redis key.
// Format: truecoach:workouts:<account>:<states>:<per_page>:<page>
//
// Example:
//
//	truecoach:workouts:184562:completed:50:3
func (k Key) String() string {
	states := k.States
	if states == "" {
		states = "all"
	}
	return strings.Join([]string{
		"truecoach",
		"workouts",
		k.AccountID,
		states,
		fmt.Sprintf("%d", k.PerPage),
		fmt.Sprintf("%d", k.Page),
	}, ":")
}
