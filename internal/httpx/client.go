// Package httpx provides the shared outbound HTTP client used by every
// network collaborator. All search, scrape, media, and publish calls go
// through one injected *Client so the retry policy lives in a single place.
package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"
)

// Client wraps http.Client with retry-on-transient-failure semantics.
// Retries apply to network errors, 429, and 5xx responses.
type Client struct {
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithMaxRetries sets the number of retry attempts after the initial try.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithBaseDelay sets the first backoff delay. Subsequent delays double.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.baseDelay = d }
}

// New creates a Client with sane defaults: 3 retries, 60s timeout.
func New(logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes the request, retrying transient failures with exponential
// backoff and jitter. The request body, if any, must be provided as bytes
// so it can be replayed across attempts.
func (c *Client) Do(ctx context.Context, method, url string, body []byte, header http.Header) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt)
			c.logger.Debug("Retrying request",
				"method", method,
				"url", url,
				"attempt", attempt,
				"delay", delay,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
		// Drain so the connection can be reused across attempts.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}

	return nil, fmt.Errorf("request %s %s failed after %d attempts: %w", method, url, c.maxRetries+1, lastErr)
}

// GetJSON issues a GET and returns the response body on a 2xx status.
func (c *Client) GetJSON(ctx context.Context, url string, header http.Header) ([]byte, error) {
	return c.roundTrip(ctx, http.MethodGet, url, nil, header)
}

// PostJSON issues a POST with a JSON body and returns the response body on
// a 2xx status.
func (c *Client) PostJSON(ctx context.Context, url string, body []byte, header http.Header) ([]byte, error) {
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}
	return c.roundTrip(ctx, http.MethodPost, url, body, header)
}

func (c *Client) roundTrip(ctx context.Context, method, url string, body []byte, header http.Header) ([]byte, error) {
	resp, err := c.Do(ctx, method, url, body, header)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: unexpected status %d: %s", method, url, resp.StatusCode, truncate(string(data), 200))
	}

	return data, nil
}

// backoff returns the delay before the given attempt: base * 2^(attempt-1)
// plus up to 25% jitter.
func (c *Client) backoff(attempt int) time.Duration {
	delay := c.baseDelay << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(delay)/4 + 1))
	return delay + jitter
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
