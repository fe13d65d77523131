package transport

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Default retry policy for outbound provider calls.
const (
	DefaultMaxAttempts = 3
	DefaultInterval    = 200 * time.Millisecond
)

// linearBackOff waits interval × attempt number between retries.
type linearBackOff struct {
	interval time.Duration
	attempt  int64
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.interval
}

func (b *linearBackOff) Reset() { b.attempt = 0 }

// Retryer executes HTTP requests with a bounded retry policy. Transport
// errors, HTTP 429 and 5xx responses are retried up to MaxAttempts with a
// linearly growing backoff; every other response is returned to the caller
// on the first attempt. Requests must be retry-safe (no consumable body).
type Retryer struct {
	client      *http.Client
	maxAttempts int
	interval    time.Duration
}

// NewRetryer wraps the given client with the retry policy. Non-positive
// arguments fall back to the defaults.
func NewRetryer(client *http.Client, maxAttempts int, interval time.Duration) *Retryer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Retryer{
		client:      client,
		maxAttempts: maxAttempts,
		interval:    interval,
	}
}

// Do executes the request under the retry policy. The request's context
// bounds all attempts and the waits between them.
func (r *Retryer) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response

	operation := func() error {
		res, err := r.client.Do(req)
		if err != nil {
			return err
		}
		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
			// Drain so the connection can be reused across attempts.
			_, _ = io.Copy(io.Discard, res.Body)
			_ = res.Body.Close()
			return fmt.Errorf("upstream returned status %d", res.StatusCode)
		}
		resp = res
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{interval: r.interval}, uint64(r.maxAttempts-1)),
		req.Context(),
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}
