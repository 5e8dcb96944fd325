// Package testutil provides testing utilities for the TrueCoach exporter.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/tomjn/truecoach-export/pkg/client"
)

// MockResponse defines the behavior of the mock server for one page.
type MockResponse struct {
	StatusCode int
	Body       string
}

// MockTrueCoach is a configurable mock of the TrueCoach proxy API for
// testing. It serves the workouts listing endpoint and records every
// request it sees.
type MockTrueCoach struct {
	server *httptest.Server
	mu     sync.RWMutex
	pages  map[int]MockResponse

	// Tracking
	RequestCount   int
	PagesRequested []int
	LastAuthHeader string
}

// NewMockTrueCoach creates a new mock TrueCoach server.
func NewMockTrueCoach() *MockTrueCoach {
	mock := &MockTrueCoach{
		pages: make(map[int]MockResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		mock.mu.Lock()
		mock.RequestCount++
		mock.PagesRequested = append(mock.PagesRequested, page)
		mock.LastAuthHeader = r.Header.Get("Authorization")
		resp, exists := mock.pages[page]
		mock.mu.Unlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if !exists {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"error": "page %d not configured"}`, page)
			return
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockTrueCoach) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockTrueCoach) Close() {
	m.server.Close()
}

// Reset clears all tracking counters and configured pages.
func (m *MockTrueCoach) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.PagesRequested = nil
	m.LastAuthHeader = ""
	m.pages = make(map[int]MockResponse)
}

// SetPage configures the response for one page number.
func (m *MockTrueCoach) SetPage(page int, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[page] = resp
}

// SetPageData marshals a listing page as the 200 response for a page number.
func (m *MockTrueCoach) SetPageData(page int, data client.Page) {
	body, err := json.Marshal(data)
	if err != nil {
		panic(fmt.Sprintf("marshal mock page: %v", err))
	}
	m.SetPage(page, MockResponse{StatusCode: http.StatusOK, Body: string(body)})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockTrueCoach) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetPagesRequested returns the page numbers requested, in order.
func (m *MockTrueCoach) GetPagesRequested() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.PagesRequested...)
}

// GetLastAuthHeader returns the Authorization header of the most recent request.
func (m *MockTrueCoach) GetLastAuthHeader() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastAuthHeader
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
	}
}

// NewUnauthorizedResponse creates a 401 Unauthorized response.
func NewUnauthorizedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusUnauthorized,
		Body:       `{"error": "Unauthorized"}`,
	}
}
