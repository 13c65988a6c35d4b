// Package yahoo provides a client for the Yahoo Finance chart API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

const (
	DefaultBaseURL        = "https://query1.finance.yahoo.com/v8/finance/chart"
	DefaultSummaryBaseURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
	DefaultTimeout        = 30 * time.Second
	DefaultRateLimit      = 5 // requests per second

	// Yahoo rejects requests without a browser user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Client implements the YahooClient interface
type Client struct {
	baseURL        string
	summaryBaseURL string
	userAgent      string
	httpClient     *http.Client
	logger         *common.Logger
	limiter        *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithSummaryBaseURL sets the quoteSummary base URL
func WithSummaryBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.summaryBaseURL = baseURL
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
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

// NewClient creates a new Yahoo chart client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:        DefaultBaseURL,
		summaryBaseURL: DefaultSummaryBaseURL,
		userAgent:      DefaultUserAgent,
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
	Symbol     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Yahoo API error: %s (status: %d, symbol: %s)", e.Message, e.StatusCode, e.Symbol)
}

// chartResponse mirrors the subset of the chart payload we consume.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				ExchangeName       string  `json:"exchangeName"`
				InstrumentType     string  `json:"instrumentType"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Chart retrieves historical bars for a symbol. Entries with a null close
// are dropped.
func (c *Client) Chart(ctx context.Context, symbol, interval, dataRange string) (*interfaces.ChartResult, error) {
	if symbol == "" {
		return nil, models.ErrInvalidSymbol
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s?interval=%s&range=%s", c.baseURL, symbol, interval, dataRange)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().Str("symbol", symbol).Str("interval", interval).Str("range", dataRange).Msg("Yahoo chart request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Symbol:     symbol,
		}
	}

	var decoded chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &models.ParseError{Provider: "yahoo", Symbol: symbol, Err: err}
	}

	if decoded.Chart.Error != nil {
		if decoded.Chart.Error.Code == "Not Found" {
			return nil, models.ErrNotFound
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    decoded.Chart.Error.Description,
			Symbol:     symbol,
		}
	}
	if len(decoded.Chart.Result) == 0 {
		return nil, models.ErrNotFound
	}

	raw := decoded.Chart.Result[0]
	result := &interfaces.ChartResult{
		Symbol: symbol,
		Meta: interfaces.ChartMeta{
			Currency:           raw.Meta.Currency,
			ExchangeName:       raw.Meta.ExchangeName,
			InstrumentType:     raw.Meta.InstrumentType,
			RegularMarketPrice: raw.Meta.RegularMarketPrice,
		},
	}

	if len(raw.Indicators.Quote) == 0 {
		return result, nil
	}
	quote := raw.Indicators.Quote[0]

	for i, ts := range raw.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := interfaces.ChartBar{
			Timestamp: ts,
			Close:     *quote.Close[i],
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		result.Bars = append(result.Bars, bar)
	}

	return result, nil
}

// rawValue is Yahoo's {raw, fmt} number wrapper.
type rawValue struct {
	Raw float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			InstitutionOwnership struct {
				Holders []struct {
					ReportDate   rawValue `json:"reportDate"`
					Organization string   `json:"organization"`
					Position     rawValue `json:"position"`
					Value        rawValue `json:"value"`
					PctHeld      rawValue `json:"pctHeld"`
				} `json:"holders"`
			} `json:"institutionOwnership"`
			MajorHoldersBreakdown struct {
				TotalInstitutionalHolding rawValue `json:"totalInstitutionalHolding"`
				InstitutionsCount         rawValue `json:"institutionsCount"`
				InstitutionalPercentHeld  rawValue `json:"institutionalPercentHeld"`
			} `json:"majorHoldersBreakdown"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Ownership retrieves the institutional ownership summary for a symbol from
// the quoteSummary endpoint.
func (c *Client) Ownership(ctx context.Context, symbol string) (*interfaces.OwnershipSummary, error) {
	if symbol == "" {
		return nil, models.ErrInvalidSymbol
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s?modules=institutionOwnership,majorHoldersBreakdown", c.summaryBaseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().Str("symbol", symbol).Msg("Yahoo ownership request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Symbol:     symbol,
		}
	}

	var decoded quoteSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &models.ParseError{Provider: "yahoo", Symbol: symbol, Err: err}
	}
	if len(decoded.QuoteSummary.Result) == 0 {
		return nil, models.ErrNotFound
	}

	raw := decoded.QuoteSummary.Result[0]
	summary := &interfaces.OwnershipSummary{
		Symbol:          symbol,
		TotalSharesHeld: int64(raw.MajorHoldersBreakdown.TotalInstitutionalHolding.Raw),
		PercentHeld:     raw.MajorHoldersBreakdown.InstitutionalPercentHeld.Raw,
	}

	if len(raw.InstitutionOwnership.Holders) > 0 {
		top := raw.InstitutionOwnership.Holders[0]
		summary.ReportDate = int64(top.ReportDate.Raw)
		summary.TotalValueHeld = top.Value.Raw
		summary.TopHolderName = top.Organization
		summary.TopHolderShares = int64(top.Position.Raw)
		summary.TopHolderPctHeld = top.PctHeld.Raw
	}

	return summary, nil
}

// Compile-time check
var _ interfaces.YahooClient = (*Client)(nil)
