package fetch

import (
	"context"

	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

// NewStockDataFetcher wraps the FMP quote call as a single-record fetcher.
func NewStockDataFetcher(client interfaces.FMPClient) interfaces.Fetcher[*models.StockData] {
	return interfaces.FetcherFunc[*models.StockData](func(ctx context.Context, symbol string) ([]*models.StockData, error) {
		quote, err := client.Quote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return []*models.StockData{quote}, nil
	})
}

// NewMarketDataFetcher wraps the FMP quote call as a market-data sampler.
func NewMarketDataFetcher(client interfaces.FMPClient) interfaces.Fetcher[*models.MarketData] {
	return interfaces.FetcherFunc[*models.MarketData](func(ctx context.Context, symbol string) ([]*models.MarketData, error) {
		sample, err := client.MarketQuote(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return []*models.MarketData{sample}, nil
	})
}
