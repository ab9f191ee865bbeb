package rcsb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/connyyu/pdbstats/internal/config"
)

var (
	ErrRequestFailed  = errors.New("rcsb client: request failed")
	ErrUpstreamStatus = errors.New("rcsb client: unexpected upstream status")
)

const (
	defaultTimeout  = 30 * time.Second
	defaultAttempts = 3
	defaultDelay    = time.Second
)

// HTTPClient talks to the RCSB search endpoint over HTTP, retrying
// transient failures.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(cfg *config.RCSB) *HTTPClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout.Duration
	if timeout == 0 {
		timeout = defaultTimeout
	}

	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = defaultAttempts
	}

	delay := cfg.RetryDelay.Duration
	if delay == 0 {
		delay = defaultDelay
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		attempts:   attempts,
		delay:      delay,
	}
}

// CountsByYear fetches the per-year release counts for one experimental
// method. The query travels URL-encoded in the "json" query parameter, the
// format the upstream endpoint expects. 5xx responses and network errors
// are retried; 4xx responses are terminal.
func (c *HTTPClient) CountsByYear(ctx context.Context, method string) ([]YearCount, error) {
	encodedQuery, err := json.Marshal(releaseCountQuery(method))
	if err != nil {
		return nil, fmt.Errorf("marshal search query for %s: %w", method, err)
	}

	reqURL := c.baseURL + "?json=" + url.QueryEscape(string(encodedQuery))

	var payload searchResponse
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("new request: %w", err))
			}

			res, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrRequestFailed, err)
			}
			defer res.Body.Close()

			if res.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("%w: %d fetching counts for %s", ErrUpstreamStatus, res.StatusCode, method)
				if res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError {
					return retry.Unrecoverable(statusErr)
				}
				return statusErr
			}

			var decoded searchResponse
			if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
				return fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
			}

			payload = decoded
			return nil
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}

	return parseCounts(payload), nil
}

// parseCounts flattens the nested facet response into data points. A
// response without facets yields no counts, not an error.
func parseCounts(res searchResponse) []YearCount {
	if len(res.Facets) == 0 {
		return nil
	}

	var counts []YearCount
	for _, yearBucket := range res.Facets[0].Buckets {
		year, err := strconv.Atoi(yearBucket.Label)
		if err != nil {
			continue
		}

		if len(yearBucket.Facets) == 0 {
			continue
		}

		for _, methodBucket := range yearBucket.Facets[0].Buckets {
			counts = append(counts, YearCount{
				Year:   year,
				Method: methodBucket.Label,
				Count:  methodBucket.Population,
			})
		}
	}

	return counts
}
