// Package fetch adapts the external providers into per-kind record fetchers.
package fetch

import (
	"context"
	"time"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

// RetryPolicy is a fixed-delay retry schedule. Attempts counts the total
// number of tries, not the number of retries.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy matches the refresh pipeline defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: 5 * time.Second}
}

// WithRetry wraps a fetcher so each Fetch runs up to policy.Attempts times
// with a fixed pause between tries. When every attempt fails the returned
// error is a *models.FetchExhaustedError wrapping the last failure. A
// cancelled context stops the schedule early.
func WithRetry[T models.Record](inner interfaces.Fetcher[T], policy RetryPolicy, logger *common.Logger) interfaces.Fetcher[T] {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}

	return interfaces.FetcherFunc[T](func(ctx context.Context, symbol string) ([]T, error) {
		var lastErr error
		for attempt := 1; attempt <= policy.Attempts; attempt++ {
			records, err := inner.Fetch(ctx, symbol)
			if err == nil {
				return records, nil
			}
			lastErr = err

			logger.Warn().
				Str("symbol", symbol).
				Int("attempt", attempt).
				Int("max_attempts", policy.Attempts).
				Err(err).
				Msg("Fetch attempt failed")

			if attempt == policy.Attempts {
				break
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(policy.Delay):
			}
		}

		return nil, &models.FetchExhaustedError{
			Symbol:   symbol,
			Attempts: policy.Attempts,
			Err:      lastErr,
		}
	})
}
