// Package monday is a minimal client for the monday.com GraphQL API.
// It covers the one mutation and two read queries this service needs,
// with exponential backoff on rate-limited calls.
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rahulsaklanii-code/formula-status-trigger/internal/config"
	"github.com/rahulsaklanii-code/formula-status-trigger/internal/log"
)

const (
	// apiVersion pins the dated monday API version header.
	apiVersion = "2024-01"

	// maxErrorBodyBytes caps how much of an error response is kept.
	maxErrorBodyBytes = 4 * 1024
)

// Client talks to the monday GraphQL endpoint.
type Client struct {
	apiURL string
	token  string
	retry  config.RetryConfig
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client. The retry policy applies only to rate-limited
// (HTTP 429) responses.
func New(apiURL, token string, retry config.RetryConfig) *Client {
	return &Client{
		apiURL: apiURL,
		token:  token,
		retry:  retry,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: log.WithComponent("monday"),
	}
}

// graphqlRequest is the wire shape of an outbound call.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the wire shape of a response.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorDetail   `json:"errors,omitempty"`
}

// Execute sends a GraphQL query. Rate-limited responses are retried with
// exponential backoff up to the configured limit, then fail with
// ErrRateLimitExceeded. Any other failure, including error entries in
// the response body, fails immediately.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		data, retryAfter, err := c.doRequest(ctx, payload)
		if err != errRateLimited {
			return data, err
		}

		if attempt >= c.retry.MaxRetries {
			c.logger.Error("rate limit retries exhausted", "attempts", attempt+1)
			return nil, fmt.Errorf("%w after %d attempts", ErrRateLimitExceeded, attempt+1)
		}

		delay := c.backoffDelay(attempt)
		if retryAfter > delay {
			delay = retryAfter
			if delay > c.retry.MaxDelay {
				delay = c.retry.MaxDelay
			}
		}

		c.logger.Warn("rate limited, backing off",
			"attempt", attempt,
			"delay_ms", delay.Milliseconds(),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// errRateLimited is internal to the retry loop; callers only ever see
// ErrRateLimitExceeded.
var errRateLimited = fmt.Errorf("rate limited")

// doRequest performs one HTTP round trip. A 429 returns errRateLimited
// with any Retry-After hint; other failures are terminal.
func (c *Client) doRequest(ctx context.Context, payload []byte) (json.RawMessage, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)
	req.Header.Set("API-Version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("monday request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, parseRetryAfter(resp.Header.Get("Retry-After")), errRateLimited
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		return nil, 0, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed graphqlResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, 0, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, 0, &APIError{StatusCode: resp.StatusCode, Errors: parsed.Errors}
	}

	return parsed.Data, 0, nil
}

// backoffDelay computes min(initial * multiplier^attempt, max).
func (c *Client) backoffDelay(attempt int) time.Duration {
	d := time.Duration(float64(c.retry.InitialDelay) * math.Pow(c.retry.Multiplier, float64(attempt)))
	if d > c.retry.MaxDelay || d <= 0 {
		return c.retry.MaxDelay
	}
	return d
}

func parseRetryAfter(h string) time.Duration {
	if h == "" {
		return 0
	}
	secs, err := strconv.Atoi(h)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
