package insightclient

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/dashpay/asset-lock-bridge/retry"
	"github.com/dashpay/asset-lock-bridge/utxo"
)

// WaitResult is the outcome of WaitForUTXO: either a selected UTXO, or
// a timeout with the best total observed so far. A timeout is not an
// error — it lets the state machine branch into recheck rather than
// dying.
type WaitResult struct {
	UTXO        *utxo.UTXO
	TotalAmount int64
	TimedOut    bool
}

// ProgressFunc is called on every poll with the time remaining and the
// current total observed across the address's UTXOs.
type ProgressFunc func(remaining time.Duration, currentTotal int64)

const (
	DefaultWaitTimeout  = 120 * time.Second
	DefaultPollInterval = 3 * time.Second
)

// WaitForUTXO polls address's UTXO list until their sum reaches
// minValue or timeout elapses. On each poll that reaches minValue, it
// selects the largest single UTXO that alone satisfies minValue if one
// exists, else the largest UTXO overall, and returns immediately.
// Per-poll errors are logged and do not abort the wait — only
// transient network blips should not strand a deposit watch. On
// timeout, one final list attempt is made and its result (success or
// failure) does not change the outcome: a timed-out WaitResult is
// always returned, carrying the best total observed.
func (c *Client) WaitForUTXO(ctx context.Context, address string, minValue int64, timeout, pollInterval time.Duration, onProgress ProgressFunc) (*WaitResult, error) {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	deadline := time.Now().Add(timeout)
	var lastTotal int64
	retryOpts := retry.DefaultOptions()

	for {
		list, err := retry.WithRetry(ctx, func(ctx context.Context) ([]*utxo.UTXO, error) {
			return c.ListUTXO(ctx, address)
		}, retryOpts)
		if err != nil {
			logger.WithError(err).WithField("address", address).Warn("insightclient: poll for UTXO failed, continuing")
		} else {
			lastTotal = sumValues(list)
			if lastTotal >= minValue {
				selected := selectUTXO(list, minValue)
				return &WaitResult{UTXO: selected, TotalAmount: lastTotal, TimedOut: false}, nil
			}
		}

		remaining := time.Until(deadline)
		if onProgress != nil {
			onProgress(remaining, lastTotal)
		}
		if remaining <= 0 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(minDuration(remaining, pollInterval)):
		}
	}

	// One final attempt; its outcome does not change the timeout result.
	if list, err := c.ListUTXO(ctx, address); err == nil {
		lastTotal = sumValues(list)
	}

	return &WaitResult{UTXO: nil, TotalAmount: lastTotal, TimedOut: true}, nil
}

func sumValues(list []*utxo.UTXO) int64 {
	var sum int64
	for _, u := range list {
		sum += u.Value
	}
	return sum
}

// selectUTXO picks the largest single UTXO that alone satisfies
// minValue; if none does, it falls back to the overall largest.
func selectUTXO(list []*utxo.UTXO, minValue int64) *utxo.UTXO {
	var bestSufficient, bestOverall *utxo.UTXO
	for _, u := range list {
		if bestOverall == nil || u.Value > bestOverall.Value {
			bestOverall = u
		}
		if u.Value >= minValue && (bestSufficient == nil || u.Value > bestSufficient.Value) {
			bestSufficient = u
		}
	}
	if bestSufficient != nil {
		return bestSufficient
	}
	return bestOverall
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
