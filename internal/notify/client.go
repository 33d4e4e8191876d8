// Package notify has the satellite pass client.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
	"golang.org/x/time/rate"
)

// successMessage is the message field of a well-formed provider response.
const successMessage = "success"

// maxBodyBytes bounds how much of a provider response is read.
const maxBodyBytes = 1 << 20

// Client implements the PassProvider interface over HTTP.
// Requests are throttled so repeated lookups do not flood the provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ contract.PassProvider = &Client{} // Compile-time check

// NewClient creates a client for baseURL allowing one request per interval.
func NewClient(baseURL string, interval time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Passes implements the PassProvider interface.
func (c *Client) Passes(ctx context.Context, lat, lon float64, n int) (schema.TimeRange, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("pass lookup throttled: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid passes url %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("n", strconv.Itoa(n))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pass lookup failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pass lookup returned status %d", resp.StatusCode)
	}

	var body schema.PassResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode pass response: %w", err)
	}
	if body.Message != successMessage {
		return nil, fmt.Errorf("pass lookup returned message %q", body.Message)
	}
	return ToTimeRange(body.Response)
}

// ToTimeRange converts provider passes into a validated range.
func ToTimeRange(passes []schema.Pass) (schema.TimeRange, error) {
	tr := make(schema.TimeRange, 0, len(passes))
	for _, p := range passes {
		tr = append(tr, p.Interval())
	}
	if err := tr.Validate(); err != nil {
		return nil, fmt.Errorf("malformed pass data: %w", err)
	}
	return tr, nil
}
