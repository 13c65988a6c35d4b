package badgercache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/models"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New("", common.NewSilentLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	in := &models.StockData{
		Symbol:       "AAPL",
		CurrentPrice: decimal.RequireFromString("189.95"),
		LastUpdated:  time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC),
	}
	require.NoError(t, c.Set(ctx, "stock_data:AAPL", in, time.Minute))

	var out models.StockData
	found, err := c.Get(ctx, "stock_data:AAPL", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "AAPL", out.Symbol)
	assert.True(t, out.CurrentPrice.Equal(in.CurrentPrice))
}

func TestCacheMiss(t *testing.T) {
	c := newTestCache(t)

	var out models.StockData
	found, err := c.Get(context.Background(), "stock_data:MISSING", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheListValues(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	in := []*models.BalanceSheet{
		{Symbol: "MSFT", Date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
		{Symbol: "MSFT", Date: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, c.Set(ctx, "balance_sheet:MSFT", in, time.Minute))

	var out []*models.BalanceSheet
	found, err := c.Get(ctx, "balance_sheet:MSFT", &out)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].Date, out[0].Date)
}

func TestCacheTTLExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 50*time.Millisecond))

	var out string
	found, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)

	time.Sleep(100 * time.Millisecond)

	found, err = c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	var out string
	found, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	// deleting again is a no-op
	require.NoError(t, c.Delete(ctx, "k"))
}

func TestCacheDeletePrefix(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stock_data:AAPL", "a", time.Minute))
	require.NoError(t, c.Set(ctx, "stock_data:MSFT", "m", time.Minute))
	require.NoError(t, c.Set(ctx, "earnings:AAPL", "e", time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, "stock_data:"))

	var out string
	found, _ := c.Get(ctx, "stock_data:AAPL", &out)
	assert.False(t, found)
	found, _ = c.Get(ctx, "stock_data:MSFT", &out)
	assert.False(t, found)
	found, _ = c.Get(ctx, "earnings:AAPL", &out)
	assert.True(t, found)
}
