package fmp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabreed/stockline/internal/models"
)

const quotePayload = `[{
	"symbol": "AAPL",
	"name": "Apple Inc.",
	"exchange": "NASDAQ",
	"price": 189.95,
	"previousClose": 188.50,
	"open": 188.90,
	"dayHigh": 190.50,
	"dayLow": 188.10,
	"volume": 52000000,
	"marketCap": 2950000000000,
	"change": 1.45,
	"changesPercentage": 0.77,
	"priceAvg50": 185.20,
	"priceAvg200": 178.60,
	"yearHigh": 199.62,
	"yearLow": 164.08,
	"sharesOutstanding": 15500000000,
	"eps": 6.42,
	"pe": 29.59,
	"marketOpen": true
}]`

func TestQuote(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(quotePayload))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	sd, err := client.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "/quote/AAPL", gotPath)
	assert.Equal(t, "test-key", gotKey)

	assert.Equal(t, "AAPL", sd.Symbol)
	assert.Equal(t, "Apple Inc.", sd.CompanyName)
	assert.Equal(t, "NASDAQ", sd.Exchange)
	assert.True(t, sd.CurrentPrice.Equal(decimal.NewFromFloat(189.95)), "price: %s", sd.CurrentPrice)
	assert.Equal(t, int64(52000000), sd.Volume)
	assert.Equal(t, int64(15500000000), sd.SharesOutstanding)
	assert.False(t, sd.LastUpdated.IsZero())
}

func TestMarketQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(quotePayload))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	md, err := client.MarketQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", md.Symbol)
	assert.Equal(t, "REGULAR", md.MarketState)
	assert.True(t, md.IsTrading)
	assert.False(t, md.Timestamp.IsZero())
}

func TestQuote_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.Quote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestQuote_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"Error Message": "Invalid API KEY"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL))

	_, err := client.Quote(context.Background(), "AAPL")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestQuote_EmptySymbol(t *testing.T) {
	client := NewClient("test-key")
	_, err := client.Quote(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)
}
