// internal/common/httpclient/client.go
package httpclient

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultBackoff is used by collaborator clients unless overridden.
var DefaultBackoff = BackoffConfig{
	MaxRetries:      2,
	InitialInterval: 200 * time.Millisecond,
	MaxInterval:     2 * time.Second,
}

var (
	ErrRateLimited = errors.New("rate limited")
	ErrServerError = errors.New("server error")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

// Client is a shared HTTP client with retries, exponential backoff, and a
// circuit breaker per collaborator.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	backoff    BackoffConfig
}

// New creates a Client for one collaborator, named for breaker metrics/logs.
func New(name string, timeout time.Duration, backoff BackoffConfig) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		breaker:    cb,
		backoff:    backoff,
	}
}

// Do executes the request built by buildRequest with resilience applied.
// buildRequest is called per attempt so request bodies can be re-created.
func (c *Client) Do(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)

		result, err := c.breaker.Execute(func() (interface{}, error) {
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				resp.Body.Close()
				return nil, ErrRateLimited
			case resp.StatusCode >= 500:
				resp.Body.Close()
				return nil, ErrServerError
			}
			return resp, nil
		})
		if err == nil {
			return result.(*http.Response), nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}

		lastErr = err
		attempt++
		if attempt > c.backoff.MaxRetries {
			return nil, lastErr
		}

		delay := backoffDelay(c.backoff, attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func backoffDelay(cfg BackoffConfig, attempt int) time.Duration {
	d := time.Duration(float64(cfg.InitialInterval) * math.Pow(2, float64(attempt-1)))
	if cfg.MaxInterval > 0 && d > cfg.MaxInterval {
		d = cfg.MaxInterval
	}
	return d
}
