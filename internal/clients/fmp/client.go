// Package fmp provides a client for the Financial Modeling Prep API
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

const (
	DefaultBaseURL   = "https://financialmodelingprep.com/api/v3"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the FMPClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new FMP client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("FMP API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// quoteResponse mirrors one element of the /quote response array.
type quoteResponse struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Exchange          string  `json:"exchange"`
	Price             float64 `json:"price"`
	PreviousClose     float64 `json:"previousClose"`
	Open              float64 `json:"open"`
	DayHigh           float64 `json:"dayHigh"`
	DayLow            float64 `json:"dayLow"`
	Volume            int64   `json:"volume"`
	MarketCap         float64 `json:"marketCap"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
	PriceAvg50        float64 `json:"priceAvg50"`
	PriceAvg200       float64 `json:"priceAvg200"`
	YearHigh          float64 `json:"yearHigh"`
	YearLow           float64 `json:"yearLow"`
	SharesOutstanding int64   `json:"sharesOutstanding"`
	EPS               float64 `json:"eps"`
	PE                float64 `json:"pe"`
	MarketOpen        bool    `json:"marketOpen"`
}

func (c *Client) getQuote(ctx context.Context, symbol string) (*quoteResponse, error) {
	if symbol == "" {
		return nil, models.ErrInvalidSymbol
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	path := fmt.Sprintf("/quote/%s", symbol)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("symbol", symbol).Msg("FMP quote request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	var quotes []quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, &models.ParseError{Provider: "fmp", Symbol: symbol, Err: err}
	}
	if len(quotes) == 0 {
		return nil, models.ErrNotFound
	}

	return &quotes[0], nil
}

// Quote fetches the current quote as a StockData snapshot.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.StockData, error) {
	q, err := c.getQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return &models.StockData{
		Symbol:               symbol,
		CompanyName:          q.Name,
		Exchange:             q.Exchange,
		CurrentPrice:         decimal.NewFromFloat(q.Price),
		PreviousClose:        decimal.NewFromFloat(q.PreviousClose),
		DayHigh:              decimal.NewFromFloat(q.DayHigh),
		DayLow:               decimal.NewFromFloat(q.DayLow),
		Volume:               q.Volume,
		MarketCap:            decimal.NewFromFloat(q.MarketCap),
		PriceChange:          decimal.NewFromFloat(q.Change),
		PriceChangePercent:   decimal.NewFromFloat(q.ChangesPercentage),
		FiftyDayAverage:      decimal.NewFromFloat(q.PriceAvg50),
		TwoHundredDayAverage: decimal.NewFromFloat(q.PriceAvg200),
		YearHigh:             decimal.NewFromFloat(q.YearHigh),
		YearLow:              decimal.NewFromFloat(q.YearLow),
		SharesOutstanding:    q.SharesOutstanding,
		EPS:                  decimal.NewFromFloat(q.EPS),
		PE:                   decimal.NewFromFloat(q.PE),
		LastUpdated:          time.Now().UTC(),
	}, nil
}

// MarketQuote fetches the current quote as a time-stamped MarketData sample.
func (c *Client) MarketQuote(ctx context.Context, symbol string) (*models.MarketData, error) {
	q, err := c.getQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	state := "CLOSED"
	if q.MarketOpen {
		state = "REGULAR"
	}

	return &models.MarketData{
		Symbol:            symbol,
		Timestamp:         now,
		CurrentPrice:      decimal.NewFromFloat(q.Price),
		PreviousClose:     decimal.NewFromFloat(q.PreviousClose),
		Open:              decimal.NewFromFloat(q.Open),
		DayHigh:           decimal.NewFromFloat(q.DayHigh),
		DayLow:            decimal.NewFromFloat(q.DayLow),
		Volume:            q.Volume,
		MarketCap:         decimal.NewFromFloat(q.MarketCap),
		SharesOutstanding: q.SharesOutstanding,
		DayChange:         decimal.NewFromFloat(q.Change),
		DayChangePercent:  decimal.NewFromFloat(q.ChangesPercentage),
		MarketState:       state,
		IsTrading:         q.MarketOpen,
		Exchange:          q.Exchange,
		LastUpdated:       now,
	}, nil
}

// Compile-time check
var _ interfaces.FMPClient = (*Client)(nil)
