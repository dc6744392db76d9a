package islockclient

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/dashpay/asset-lock-bridge/retry"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultWaitTimeout  = 60 * time.Second
)

// WaitForInstantSendLock polls Get(txid) every pollInterval until a
// non-empty lock is returned or timeout elapses, in which case it
// returns a fatal TimeoutError — unlike UTXO detection, a missing
// islock cannot be recovered by recheck; the transaction must get one
// to be usable as proof material.
func (c *Client) WaitForInstantSendLock(ctx context.Context, txid string, timeout, pollInterval time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	start := time.Now()
	deadline := start.Add(timeout)

	retryOpts := retry.DefaultOptions()

	for {
		lockBytes, err := retry.WithRetry(ctx, func(ctx context.Context) ([]byte, error) {
			return c.Get(ctx, txid)
		}, retryOpts)
		if err != nil {
			logger.WithError(err).WithField("txid", txid).Warn("islockclient: poll failed, continuing")
		} else if len(lockBytes) > 0 {
			return lockBytes, nil
		}

		if time.Now().After(deadline) {
			return nil, NewTimeoutError(txid, time.Since(start))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
