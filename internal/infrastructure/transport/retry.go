package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/DanielPopoola/beanstream-payments/internal/application"
	"github.com/DanielPopoola/beanstream-payments/internal/config"
)

// RetryTransport re-sends requests that came back with a 5xx or failed before
// the gateway could have seen them. A POST that failed after the connection
// was made (a timeout, a reset) is not re-sent, since the gateway may already
// have processed it. With MaxRetries of 1 it sends exactly once.
type RetryTransport struct {
	inner      application.Transport
	baseDelay  time.Duration
	maxRetries int
	logger     *slog.Logger
}

func NewRetryTransport(inner application.Transport, cfg config.RetryConfig, logger *slog.Logger) application.Transport {
	if logger == nil {
		logger = slog.Default()
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryTransport{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

func (r *RetryTransport) Send(ctx context.Context, method, url string, body []byte) (*application.RawResponse, error) {
	var lastErr error
	var lastResp *application.RawResponse

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := r.inner.Send(ctx, method, url, body)
		if err == nil && !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr, lastResp = err, resp

		if err != nil && !isRetryable(method, err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			r.logger.InfoContext(ctx, "retrying gateway request",
				"url", url,
				"attempt", attempt+1,
				"error", err,
			)
			if err := sleep(ctx, r.backoff(attempt)); err != nil {
				return nil, err
			}
		}
	}

	if lastErr == nil {
		// out of attempts on a 5xx: let the caller map the gateway's answer
		return lastResp, nil
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func isRetryableStatus(status int) bool {
	return status >= http.StatusInternalServerError
}

// Cancellation by the caller is final. Idempotent reads are always safe to
// repeat; anything else only when the connection was never established.
func isRetryable(method string, err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if method == http.MethodGet || method == http.MethodHead {
		return true
	}
	return isDialError(err)
}

func isDialError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

// Backoff calculation with exponential delay and jitter
func (r *RetryTransport) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if r.baseDelay <= 0 {
		return 0
	}

	jitter := time.Duration(rand.Int63n(int64(r.baseDelay)/2 + 1))

	return base + jitter
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
