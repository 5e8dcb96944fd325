// Package client provides the authenticated TrueCoach API client used to
// read a client's paginated workout history.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tomjn/truecoach-export/pkg/cache"
)

// Prometheus metrics for TrueCoach API operations.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "truecoach_requests_total",
		Help: "Total TrueCoach API requests by status",
	}, []string{"status"})

	apiRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "truecoach_request_duration_seconds",
		Help:    "TrueCoach API request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "truecoach_errors_total",
		Help: "Total TrueCoach API errors by status",
	}, []string{"status"})
)

// DefaultBaseURL is the TrueCoach web app origin the proxy API lives under.
const DefaultBaseURL = "https://app.truecoach.co"

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API origin. Defaults to DefaultBaseURL.
	BaseURL string

	// AccessToken is the bearer token from the session cookie (REQUIRED).
	AccessToken string

	// AccountID is the client id whose workouts are listed (REQUIRED).
	AccountID string

	// States filters workouts by state, e.g. "completed" or "missed".
	// Empty means no filter.
	States string

	// PerPage is the page size requested from the API.
	PerPage int

	// HTTPClient is the transport used for requests. Defaults to a
	// client with a 30 second timeout.
	HTTPClient *http.Client

	// Redis enables the optional page cache when non-nil.
	Redis *redis.Client

	// CacheTTL is the lifetime of cached pages. Only meaningful when
	// Redis is set. Defaults to 5 minutes.
	CacheTTL time.Duration
}

// DefaultConfig returns a configuration with the values the TrueCoach web
// client itself uses for the workout listing.
func DefaultConfig(accessToken, accountID string) Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		AccessToken: accessToken,
		AccountID:   accountID,
		States:      "completed",
		PerPage:     50,
		CacheTTL:    5 * time.Minute,
	}
}

// Client reads pages of the TrueCoach workouts listing.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// New creates a new TrueCoach API client.
func New(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	if cfg.AccountID == "" {
		return nil, fmt.Errorf("account id is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.PerPage <= 0 {
		cfg.PerPage = 50
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	logger := log.With().Str("component", "truecoach-client").Logger()

	var cacheManager *cache.Manager
	if cfg.Redis != nil {
		cacheManager = cache.NewManager(cfg.Redis)
	}

	return &Client{
		httpClient: httpClient,
		cache:      cacheManager,
		config:     cfg,
		logger:     logger,
	}, nil
}

// FetchPage retrieves one page of the workouts listing. Any non-2xx
// response is returned as an *APIError; there is no retry.
func (c *Client) FetchPage(ctx context.Context, page int) (*Page, error) {
	startTime := time.Now()
	defer func() {
		apiRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	cacheKey := cache.Key{
		AccountID: c.config.AccountID,
		States:    c.config.States,
		PerPage:   c.config.PerPage,
		Page:      page,
	}

	if c.cache != nil {
		entry, err := c.cache.Get(ctx, cacheKey)
		if err == nil {
			c.logger.Debug().
				Int("page", page).
				Msg("Page served from cache")
			apiRequestsTotal.WithLabelValues("cache_hit").Inc()
			return decodePage(entry.Body)
		}
		if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Int("page", page).Msg("Cache get error")
		}
	}

	req, err := c.newPageRequest(ctx, page)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("page", page).
		Str("states", c.config.States).
		Msg("Fetching workouts page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiRequestsTotal.WithLabelValues("network_error").Inc()
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	status := fmt.Sprintf("%d", resp.StatusCode)
	apiRequestsTotal.WithLabelValues(status).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErrorsTotal.WithLabelValues(status).Inc()
		c.logger.Warn().
			Int("page", page).
			Int("status", resp.StatusCode).
			Msg("TrueCoach API request failed")
		return nil, &APIError{
			Page:       page,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page %d body: %w", page, err)
	}

	if c.cache != nil {
		entry := cache.NewEntry(body, c.config.CacheTTL)
		if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
			c.logger.Warn().Err(err).Int("page", page).Msg("Failed to cache page")
		}
	}

	return decodePage(body)
}

// newPageRequest builds the authenticated listing request for one page.
func (c *Client) newPageRequest(ctx context.Context, page int) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s/proxy/api/clients/%s/workouts",
		c.config.BaseURL, url.PathEscape(c.config.AccountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for page %d: %w", page, err)
	}

	q := req.URL.Query()
	q.Set("states", c.config.States)
	q.Set("per_page", fmt.Sprintf("%d", c.config.PerPage))
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("order", "desc")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// decodePage parses a listing response body.
func decodePage(body []byte) (*Page, error) {
	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &page, nil
}
