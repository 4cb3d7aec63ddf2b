// Package crawler fetches pages from the price-comparison site and
// extracts the flat structures the pipeline consumes: card links and
// price-table rows.
package crawler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"facuatrack/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Scraper handles page fetching with config-driven retry logic.
type Scraper struct {
	client      *http.Client
	retryPolicy *config.RetryPolicy
}

// NewScraper creates a new scraper instance with default retry policy.
func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryPolicy: &config.RetryPolicy{
			MaxAttempts: 3,
			DelayMs:     5000,
			TimeoutSec:  30,
		},
	}
}

// NewScraperWithConfig creates a new scraper with a custom retry policy.
func NewScraperWithConfig(retryPolicy *config.RetryPolicy) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy: retryPolicy,
	}
}

// Fetch retrieves a URL with bounded retry and a fixed delay between
// attempts. On exhausted retries it returns an empty string with the
// last error; callers treat empty content as "skip this item".
func (s *Scraper) Fetch(url string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= s.retryPolicy.MaxAttempts; attempt++ {
		if delay := s.retryPolicy.GetRetryDelay(attempt); delay > 0 {
			time.Sleep(delay)
		}

		req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)

			continue
		}

		// Set user agent to avoid being blocked
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, s.retryPolicy.MaxAttempts, err)

			continue
		}

		body, err := io.ReadAll(resp.Body)
		closeErr := resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			continue
		}

		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)

			continue
		}

		if closeErr != nil {
			lastErr = fmt.Errorf("failed to close response body: %w", closeErr)

			continue
		}

		return string(body), nil
	}

	return "", lastErr
}
