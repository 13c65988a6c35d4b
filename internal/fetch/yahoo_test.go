package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabreed/stockline/internal/interfaces"
)

// stubYahoo returns canned chart and ownership payloads.
type stubYahoo struct {
	chart      *interfaces.ChartResult
	ownership  *interfaces.OwnershipSummary
	chartErr   error
	lastParams [2]string
}

func (s *stubYahoo) Chart(ctx context.Context, symbol, interval, dataRange string) (*interfaces.ChartResult, error) {
	s.lastParams = [2]string{interval, dataRange}
	if s.chartErr != nil {
		return nil, s.chartErr
	}
	return s.chart, nil
}

func (s *stubYahoo) Ownership(ctx context.Context, symbol string) (*interfaces.OwnershipSummary, error) {
	return s.ownership, nil
}

func quarterlyChart() *interfaces.ChartResult {
	return &interfaces.ChartResult{
		Symbol: "AAPL",
		Meta:   interfaces.ChartMeta{Currency: "USD", RegularMarketPrice: 100.0},
		Bars: []interfaces.ChartBar{
			{Timestamp: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC).Unix(), Close: 100, High: 105, Low: 95, Volume: 1000},
			{Timestamp: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC).Unix(), Close: 110, High: 112, Low: 104, Volume: 2000},
		},
	}
}

func TestBalanceSheetFetcher(t *testing.T) {
	stub := &stubYahoo{chart: quarterlyChart()}
	fetcher := NewBalanceSheetFetcher(stub)

	sheets, err := fetcher.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	assert.Equal(t, [2]string{"3mo", "5y"}, stub.lastParams)

	first := sheets[0]
	assert.Equal(t, "AAPL", first.Symbol)
	assert.Equal(t, "Q1", first.FiscalQuarter)
	assert.Equal(t, "2024", first.FiscalYear)
	assert.True(t, first.TotalAssets.Equal(decimal.NewFromInt(100_000)), "total assets: %s", first.TotalAssets)
	assert.True(t, first.CurrentAssets.Equal(decimal.NewFromInt(30)), "current assets: %s", first.CurrentAssets)
	// working capital = current assets - current liabilities
	assert.True(t, first.WorkingCapital.Equal(decimal.NewFromInt(10)), "working capital: %s", first.WorkingCapital)

	second := sheets[1]
	assert.Equal(t, "Q2", second.FiscalQuarter)
}

func TestCashFlowFetcher(t *testing.T) {
	stub := &stubYahoo{chart: quarterlyChart()}
	fetcher := NewCashFlowFetcher(stub)

	flows, err := fetcher.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, flows, 2)

	first := flows[0]
	turnover := decimal.NewFromInt(100_000)
	assert.True(t, first.OperatingCashFlow.Equal(turnover.Mul(decimal.NewFromFloat(0.15))))
	assert.True(t, first.CapitalExpenditures.Equal(turnover.Mul(decimal.NewFromFloat(-0.08))))
	assert.True(t, first.FreeCashFlow.Equal(first.OperatingCashFlow.Add(first.CapitalExpenditures)))
}

func TestIncomeStatementFetcher(t *testing.T) {
	stub := &stubYahoo{chart: quarterlyChart()}
	fetcher := NewIncomeStatementFetcher(stub)

	statements, err := fetcher.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, statements, 2)

	first := statements[0]
	revenue := decimal.NewFromInt(100_000)
	assert.Equal(t, "quarterly", first.Period)
	assert.True(t, first.TotalRevenue.Equal(revenue))
	assert.True(t, first.GrossProfit.Equal(revenue.Mul(decimal.NewFromFloat(0.3))))
	assert.True(t, first.DilutedEPS.Equal(first.BasicEPS.Mul(decimal.NewFromFloat(0.98))))
}

func TestKeyStatisticsFetcher(t *testing.T) {
	stub := &stubYahoo{chart: quarterlyChart()}
	fetcher := NewKeyStatisticsFetcher(stub)

	stats, err := fetcher.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, stats, 1)

	assert.Equal(t, [2]string{"1d", "1d"}, stub.lastParams)

	s := stats[0]
	assert.True(t, s.FiftyTwoWeekHigh.Equal(decimal.NewFromInt(110)), "52wk high: %s", s.FiftyTwoWeekHigh)
	assert.True(t, s.FiftyTwoWeekLow.Equal(decimal.NewFromInt(90)), "52wk low: %s", s.FiftyTwoWeekLow)
	assert.True(t, s.AverageVolume.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "USD", s.CurrencySymbol)
}

func TestEarningsFetcher(t *testing.T) {
	stub := &stubYahoo{chart: quarterlyChart()}
	fetcher := NewEarningsFetcher(stub)

	records, err := fetcher.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, records, 1)

	e := records[0]
	assert.Equal(t, 15, e.NumberOfAnalysts)
	require.Len(t, e.QuarterlyEarnings, 4)
	assert.True(t, e.QuarterlyEarnings[0].ReportedEPS.Equal(decimal.NewFromFloat(2.25)))
	assert.True(t, e.QuarterlyEarnings[3].ReportedEPS.Equal(decimal.NewFromInt(3)))
	assert.False(t, e.LastUpdated.IsZero())
}

func TestCalendarEventsFetcher(t *testing.T) {
	stub := &stubYahoo{chart: quarterlyChart()}
	fetcher := NewCalendarEventsFetcher(stub)

	records, err := fetcher.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, records, 1)

	c := records[0]
	assert.Equal(t, "Quarterly", c.DividendFrequency)
	assert.True(t, c.DividendAmount.Equal(decimal.NewFromFloat(0.88)))
	assert.True(t, c.ExDividendDate.Before(c.NextDividendDate))
}

func TestInstitutionOwnershipFetcher(t *testing.T) {
	report := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	stub := &stubYahoo{ownership: &interfaces.OwnershipSummary{
		Symbol:           "AAPL",
		ReportDate:       report.Unix(),
		TotalSharesHeld:  9_000_000_000,
		TotalValueHeld:   1.5e12,
		PercentHeld:      0.61,
		TopHolderName:    "Vanguard Group Inc",
		TopHolderShares:  1_300_000_000,
		TopHolderPctHeld: 0.085,
	}}
	fetcher := NewInstitutionOwnershipFetcher(stub)

	records, err := fetcher.Fetch(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, records, 1)

	o := records[0]
	assert.Equal(t, report, o.ReportDate)
	assert.Equal(t, int64(9_000_000_000), o.TotalSharesHeld)
	assert.True(t, o.PercentageOutstanding.Equal(decimal.NewFromInt(61)))
	assert.Equal(t, "Vanguard Group Inc", o.TopHolderName)
	assert.True(t, o.TopHolderPercentage.Equal(decimal.NewFromFloat(8.5)))
}
