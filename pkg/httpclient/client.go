// Package httpclient provides the outbound HTTP transport for upstream
// calls: a pooled client with bounded retries, wrapped by a circuit
// breaker when the upstream is known to flap.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Config tunes the retrying client.
type Config struct {
	Timeout         time.Duration
	MaxRetries      int
	RetryWaitMin    time.Duration
	RetryWaitMax    time.Duration
	MaxConnsPerHost int
}

// DefaultConfig suits a slow upstream ERP: generous timeout, a few
// retries with short backoff.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryWaitMin:    time.Second,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 100,
	}
}

// Client retries transient failures with exponential backoff. It is safe
// for GET-style requests only; it never rewinds a request body.
type Client struct {
	inner *http.Client
	cfg   Config
}

// New creates a retrying client with its own pooled transport.
func New(cfg Config) *Client {
	return &Client{
		inner: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
				MaxConnsPerHost:       cfg.MaxConnsPerHost,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: time.Second,
			},
		},
		cfg: cfg,
	}
}

// Do executes the request, retrying network errors and 5xx responses up
// to MaxRetries times. The context cancels both the in-flight request and
// any backoff wait.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		resp, err := c.inner.Do(req)
		if err != nil {
			lastErr = err
			if attempt < c.cfg.MaxRetries && transient(err) {
				continue
			}
			return nil, fmt.Errorf("http request failed after %d attempts: %w", attempt+1, err)
		}

		// 501 means the upstream will never handle this verb; retrying
		// cannot help.
		if resp.StatusCode >= 500 && resp.StatusCode != http.StatusNotImplemented && attempt < c.cfg.MaxRetries {
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("upstream returned %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

func (c *Client) wait(ctx context.Context, attempt int) error {
	backoff := c.cfg.RetryWaitMin * time.Duration(1<<uint(attempt-1))
	if backoff > c.cfg.RetryWaitMax {
		backoff = c.cfg.RetryWaitMax
	}

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// transient reports whether the error is worth another attempt. Context
// cancellation is final; everything network-shaped is retried.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
