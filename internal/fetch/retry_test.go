package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

func TestWithRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	inner := interfaces.FetcherFunc[*models.StockData](func(ctx context.Context, symbol string) ([]*models.StockData, error) {
		calls++
		return []*models.StockData{{Symbol: symbol}}, nil
	})

	fetcher := WithRetry(inner, RetryPolicy{Attempts: 3, Delay: time.Millisecond}, common.NewSilentLogger())

	records, err := fetcher.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RecoversAfterFailures(t *testing.T) {
	calls := 0
	inner := interfaces.FetcherFunc[*models.StockData](func(ctx context.Context, symbol string) ([]*models.StockData, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("transient")
		}
		return []*models.StockData{{Symbol: symbol}}, nil
	})

	fetcher := WithRetry(inner, RetryPolicy{Attempts: 3, Delay: time.Millisecond}, common.NewSilentLogger())

	records, err := fetcher.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	cause := errors.New("connection refused")
	inner := interfaces.FetcherFunc[*models.StockData](func(ctx context.Context, symbol string) ([]*models.StockData, error) {
		calls++
		return nil, cause
	})

	fetcher := WithRetry(inner, RetryPolicy{Attempts: 3, Delay: time.Millisecond}, common.NewSilentLogger())

	_, err := fetcher.Fetch(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var exhausted *models.FetchExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, "AAPL", exhausted.Symbol)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.ErrorIs(t, err, cause)
}

func TestWithRetry_ContextCancelStopsSchedule(t *testing.T) {
	calls := 0
	inner := interfaces.FetcherFunc[*models.StockData](func(ctx context.Context, symbol string) ([]*models.StockData, error) {
		calls++
		return nil, errors.New("transient")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := WithRetry(inner, RetryPolicy{Attempts: 3, Delay: time.Hour}, common.NewSilentLogger())

	_, err := fetcher.Fetch(ctx, "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
