package interfaces

import (
	"context"

	"github.com/tabreed/stockline/internal/models"
)

// ChartBar is one OHLCV sample from the Yahoo chart API with null closes
// already filtered out.
type ChartBar struct {
	Timestamp int64
	Close     float64
	High      float64
	Low       float64
	Volume    int64
}

// ChartMeta carries the chart response metadata used by profile and
// statistics derivations.
type ChartMeta struct {
	Currency           string
	ExchangeName       string
	InstrumentType     string
	RegularMarketPrice float64
}

// ChartResult is a decoded Yahoo chart response for one symbol.
type ChartResult struct {
	Symbol string
	Meta   ChartMeta
	Bars   []ChartBar
}

// OwnershipSummary is the decoded quoteSummary ownership payload.
type OwnershipSummary struct {
	Symbol           string
	ReportDate       int64 // unix seconds of the filing date, zero when absent
	TotalSharesHeld  int64
	TotalValueHeld   float64
	PercentHeld      float64 // fraction of outstanding shares, 0..1
	TopHolderName    string
	TopHolderShares  int64
	TopHolderPctHeld float64 // fraction, 0..1
}

// YahooClient fetches historical chart data and ownership summaries.
type YahooClient interface {
	Chart(ctx context.Context, symbol, interval, dataRange string) (*ChartResult, error)
	Ownership(ctx context.Context, symbol string) (*OwnershipSummary, error)
}

// FMPClient fetches real-time quote data.
type FMPClient interface {
	Quote(ctx context.Context, symbol string) (*models.StockData, error)
	MarketQuote(ctx context.Context, symbol string) (*models.MarketData, error)
}

// Fetcher adapts one external provider call into records of a single kind.
type Fetcher[T models.Record] interface {
	Fetch(ctx context.Context, symbol string) ([]T, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc[T models.Record] func(ctx context.Context, symbol string) ([]T, error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, symbol string) ([]T, error) {
	return f(ctx, symbol)
}
