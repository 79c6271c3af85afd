package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultHTTPTimeout bounds generic endpoint requests.
	DefaultHTTPTimeout = 10 * time.Second

	maxBodyBytes = 4 << 20
	userAgent    = "Mozilla/5.0 (compatible; vncard)"
)

// NewHTTPClient returns a client with the given timeout, or the default
// timeout when d is not positive.
func NewHTTPClient(d time.Duration) *http.Client {
	if d <= 0 {
		d = DefaultHTTPTimeout
	}
	return &http.Client{Timeout: d}
}

// fetchBody issues a GET and returns at most maxBodyBytes of a 2xx response.
func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, text/plain;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("failed to fetch (status %d)", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}
