package oracles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Client is the shared HTTP plumbing for all oracles: a timeout-bounded
// http.Client, a per-oracle rate limiter and structured logging. Calls
// are single-shot; a failed call is reported to the caller as an error
// and never retried.
type Client struct {
	HTTPClient  *http.Client
	RateLimiter *rate.Limiter
	Logger      *zerolog.Logger
}

// CustomTransport sets the headers expected by the explorer and price
// services on every request.
type CustomTransport struct {
	Base http.RoundTripper
}

func (t *CustomTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	return t.Base.RoundTrip(req)
}

// NewClient creates an oracle client with the given timeout and rate limit
func NewClient(timeout time.Duration, rateLimit float64, logger *zerolog.Logger) *Client {
	return &Client{
		RateLimiter: rate.NewLimiter(rate.Limit(rateLimit), 1),
		Logger:      logger,
		HTTPClient: &http.Client{
			Timeout: timeout,
			Transport: &CustomTransport{
				Base: http.DefaultTransport,
			},
		},
	}
}

// GetJSON performs a GET request against the given URL and decodes the
// JSON response body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	c.Logger.Debug().
		Str("url", url).
		Msg("Making oracle call")

	// Wait for rate limit
	if err := c.RateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d - %s", resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Close closes the HTTP client connections
func (c *Client) Close() {
	if c.HTTPClient != nil {
		c.HTTPClient.CloseIdleConnections()
	}
}
