// Package retry implements the exponential-backoff-with-jitter retry
// layer every outbound HTTP collaborator (InsightClient, IslockClient,
// FaucetClient, PlatformDriver) runs through. No dependency in the
// retrieval pack offers a dedicated backoff primitive for this
// project's stack, so the algorithm is hand-rolled on math/rand and
// time — see DESIGN.md.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
)

// Status is published on every retry attempt so the presenter can show
// progress indicators.
type Status struct {
	IsRetrying bool
	Attempt    int
	MaxAttempts int
	LastError  error
}

// Options configures one withRetry invocation.
type Options struct {
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	ShouldRetry  func(err error) bool
	OnRetry      func(status Status)
}

// DefaultOptions is the bridge's default retry policy: 3 attempts, 1s
// base, 10s cap, the classification rules in ShouldRetry below.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    10 * time.Second,
		ShouldRetry: ShouldRetry,
	}
}

// Op is the operation withRetry drives.
type Op[T any] func(ctx context.Context) (T, error)

// WithRetry runs op, retrying on transient failure per opts up to
// opts.MaxAttempts times. The backoff delay on 0-indexed attempt a is
// min(base*2^a, maxDelay) plus Uniform[0, 0.5*min(base*2^a, maxDelay)]
// jitter; OnRetry fires before the sleep, not after.
func WithRetry[T any](ctx context.Context, op Op[T], opts Options) (T, error) {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.ShouldRetry == nil {
		opts.ShouldRetry = ShouldRetry
	}

	var lastErr error
	var zero T

	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		isLast := attempt == opts.MaxAttempts-1
		if isLast || !opts.ShouldRetry(err) {
			return zero, err
		}

		status := Status{IsRetrying: true, Attempt: attempt + 1, MaxAttempts: opts.MaxAttempts, LastError: err}
		if opts.OnRetry != nil {
			opts.OnRetry(status)
		}
		logger.WithError(err).WithFields(logger.Fields{
			"attempt": status.Attempt,
			"max":     status.MaxAttempts,
		}).Warn("retry: attempt failed, backing off")

		delay := backoffDelay(attempt, opts.BaseDelay, opts.MaxDelay)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}
	return zero, lastErr
}

func backoffDelay(attempt int, base, max time.Duration) time.Duration {
	exp := base
	for i := 0; i < attempt; i++ {
		exp *= 2
		if exp > max {
			exp = max
			break
		}
	}
	if exp > max {
		exp = max
	}
	jitter := time.Duration(rand.Int63n(int64(exp)/2 + 1))
	return exp + jitter
}

// StatusCoder is implemented by the typed transport errors of
// insightclient/islockclient/faucetclient so ShouldRetry can classify
// by HTTP status without importing those packages (avoiding a cycle —
// they would otherwise need to import retry themselves to wrap calls).
type StatusCoder interface {
	error
	HTTPStatus() (code int, ok bool)
}

// Transient is implemented alongside StatusCoder by errors representing
// a bare transport failure (connection refused/reset, DNS, timeout)
// rather than a non-2xx HTTP response.
type Transient interface {
	error
	Transient() bool
}

// ShouldRetry is the default retryable-error classifier: network/
// transport failures and 429/500/502/503/504 responses are retryable;
// everything else (4xx application errors like 400/404/409) is not.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		if code, ok := sc.HTTPStatus(); ok {
			switch code {
			case 429, 500, 502, 503, 504:
				return true
			default:
				return false
			}
		}
	}

	var tr Transient
	if errors.As(err, &tr) && tr.Transient() {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, needle := range []string{
		"connection refused", "connection reset", "no such host",
		"dns", "timeout", "aborted", "failed to fetch", "eof",
	} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
