package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabreed/stockline/internal/models"
)

const chartPayload = `{
	"chart": {
		"result": [{
			"meta": {
				"currency": "USD",
				"exchangeName": "NMS",
				"instrumentType": "EQUITY",
				"regularMarketPrice": 189.95
			},
			"timestamp": [1700000000, 1700086400, 1700172800],
			"indicators": {
				"quote": [{
					"close": [189.5, null, 190.2],
					"high": [190.0, null, 191.0],
					"low": [188.0, null, 189.0],
					"volume": [52000000, null, 48000000]
				}]
			}
		}],
		"error": null
	}
}`

func TestChart(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartPayload))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	result, err := client.Chart(context.Background(), "AAPL", "3mo", "5y")
	require.NoError(t, err)

	assert.Equal(t, "/AAPL", gotPath)
	assert.Equal(t, "interval=3mo&range=5y", gotQuery)
	assert.Equal(t, DefaultUserAgent, gotUA)

	assert.Equal(t, "AAPL", result.Symbol)
	assert.Equal(t, "USD", result.Meta.Currency)
	assert.InDelta(t, 189.95, result.Meta.RegularMarketPrice, 0.001)

	// null close entry is dropped
	require.Len(t, result.Bars, 2)
	assert.Equal(t, int64(1700000000), result.Bars[0].Timestamp)
	assert.InDelta(t, 189.5, result.Bars[0].Close, 0.001)
	assert.Equal(t, int64(52000000), result.Bars[0].Volume)
	assert.Equal(t, int64(1700172800), result.Bars[1].Timestamp)
}

func TestChart_UnknownSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Chart(context.Background(), "NOPE", "1d", "1d")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestChart_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Chart(context.Background(), "AAPL", "1d", "1d")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "AAPL", apiErr.Symbol)
}

func TestChart_EmptySymbol(t *testing.T) {
	client := NewClient()
	_, err := client.Chart(context.Background(), "", "1d", "1d")
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)
}
