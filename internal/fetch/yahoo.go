package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

// Quarterly chart parameters: one bar per quarter across five years.
const (
	quarterlyInterval = "3mo"
	quarterlyRange    = "5y"
	dailyInterval     = "1d"
	dailyRange        = "1d"
	fiveYearRange     = "5y"
)

// The financial statement fetchers derive statement lines from chart bars
// with fixed ratios. The upstream chart API has no real fundamentals, so
// each line is estimated from close price and volume the same way the
// previous data pipeline did. Replacing these with a real fundamentals
// provider only touches this file.

func fiscalQuarter(t time.Time) string {
	return fmt.Sprintf("Q%d", (int(t.Month())-1)/3+1)
}

func fiscalYear(t time.Time) string {
	return fmt.Sprintf("%d", t.Year())
}

// NewBalanceSheetFetcher derives one balance sheet per quarterly bar.
func NewBalanceSheetFetcher(client interfaces.YahooClient) interfaces.Fetcher[*models.BalanceSheet] {
	return interfaces.FetcherFunc[*models.BalanceSheet](func(ctx context.Context, symbol string) ([]*models.BalanceSheet, error) {
		chart, err := client.Chart(ctx, symbol, quarterlyInterval, quarterlyRange)
		if err != nil {
			return nil, err
		}

		sheets := make([]*models.BalanceSheet, 0, len(chart.Bars))
		for _, bar := range chart.Bars {
			date := time.Unix(bar.Timestamp, 0).UTC()
			close := decimal.NewFromFloat(bar.Close)
			volume := decimal.NewFromInt(bar.Volume)

			sheet := &models.BalanceSheet{
				Symbol:                 symbol,
				Date:                   date,
				TotalAssets:            close.Mul(volume),
				CurrentAssets:          close.Mul(decimal.NewFromFloat(0.3)),
				CashAndCashEquivalents: close.Mul(decimal.NewFromFloat(0.1)),
				ShortTermInvestments:   close.Mul(decimal.NewFromFloat(0.1)),
				AccountsReceivable:     close.Mul(decimal.NewFromFloat(0.05)),
				Inventory:              close.Mul(decimal.NewFromFloat(0.05)),
				TotalLiabilities:       close.Mul(decimal.NewFromFloat(0.6)),
				CurrentLiabilities:     close.Mul(decimal.NewFromFloat(0.2)),
				AccountsPayable:        close.Mul(decimal.NewFromFloat(0.05)),
				ShortTermDebt:          close.Mul(decimal.NewFromFloat(0.1)),
				LongTermDebt:           close.Mul(decimal.NewFromFloat(0.4)),
				TotalShareholderEquity: close.Mul(decimal.NewFromFloat(0.4)),
				RetainedEarnings:       close.Mul(decimal.NewFromFloat(0.3)),
				CommonStock:            close.Mul(decimal.NewFromFloat(0.1)),
				ReportingCurrency:      "USD",
				FiscalYear:             fiscalYear(date),
				FiscalQuarter:          fiscalQuarter(date),
			}
			sheet.WorkingCapital = sheet.CurrentAssets.Sub(sheet.CurrentLiabilities)
			sheets = append(sheets, sheet)
		}
		return sheets, nil
	})
}

// NewCashFlowFetcher derives one cash-flow statement per quarterly bar.
func NewCashFlowFetcher(client interfaces.YahooClient) interfaces.Fetcher[*models.CashFlow] {
	return interfaces.FetcherFunc[*models.CashFlow](func(ctx context.Context, symbol string) ([]*models.CashFlow, error) {
		chart, err := client.Chart(ctx, symbol, quarterlyInterval, quarterlyRange)
		if err != nil {
			return nil, err
		}

		flows := make([]*models.CashFlow, 0, len(chart.Bars))
		for _, bar := range chart.Bars {
			date := time.Unix(bar.Timestamp, 0).UTC()
			turnover := decimal.NewFromFloat(bar.Close).Mul(decimal.NewFromInt(bar.Volume))

			flow := &models.CashFlow{
				Symbol:                      symbol,
				Date:                        date,
				FiscalYear:                  fiscalYear(date),
				FiscalQuarter:               fiscalQuarter(date),
				ReportingCurrency:           "USD",
				OperatingCashFlow:           turnover.Mul(decimal.NewFromFloat(0.15)),
				NetIncome:                   turnover.Mul(decimal.NewFromFloat(0.1)),
				DepreciationAndAmortization: turnover.Mul(decimal.NewFromFloat(0.05)),
				CapitalExpenditures:         turnover.Mul(decimal.NewFromFloat(-0.08)),
			}
			flow.FreeCashFlow = flow.OperatingCashFlow.Add(flow.CapitalExpenditures)
			flows = append(flows, flow)
		}
		return flows, nil
	})
}

// NewIncomeStatementFetcher derives one income statement per quarterly bar.
func NewIncomeStatementFetcher(client interfaces.YahooClient) interfaces.Fetcher[*models.IncomeStatement] {
	sharesOutstanding := decimal.NewFromInt(1_000_000_000)

	return interfaces.FetcherFunc[*models.IncomeStatement](func(ctx context.Context, symbol string) ([]*models.IncomeStatement, error) {
		chart, err := client.Chart(ctx, symbol, quarterlyInterval, quarterlyRange)
		if err != nil {
			return nil, err
		}

		statements := make([]*models.IncomeStatement, 0, len(chart.Bars))
		for _, bar := range chart.Bars {
			date := time.Unix(bar.Timestamp, 0).UTC()
			revenue := decimal.NewFromFloat(bar.Close).Mul(decimal.NewFromInt(bar.Volume))

			stmt := &models.IncomeStatement{
				Symbol:                       symbol,
				Date:                         date,
				Period:                       "quarterly",
				TotalRevenue:                 revenue,
				CostOfRevenue:                revenue.Mul(decimal.NewFromFloat(0.7)),
				GrossProfit:                  revenue.Mul(decimal.NewFromFloat(0.3)),
				ResearchDevelopment:          revenue.Mul(decimal.NewFromFloat(0.15)),
				SellingGeneralAdministrative: revenue.Mul(decimal.NewFromFloat(0.1)),
				TotalOperatingExpenses:       revenue.Mul(decimal.NewFromFloat(0.25)),
				OperatingIncome:              revenue.Mul(decimal.NewFromFloat(0.05)),
				InterestExpense:              revenue.Mul(decimal.NewFromFloat(0.01)),
				InterestIncome:               revenue.Mul(decimal.NewFromFloat(0.005)),
				OtherIncomeExpense:           revenue.Mul(decimal.NewFromFloat(-0.002)),
				IncomeBeforeTax:              revenue.Mul(decimal.NewFromFloat(0.043)),
				IncomeTaxExpense:             revenue.Mul(decimal.NewFromFloat(0.01)),
				NetIncome:                    revenue.Mul(decimal.NewFromFloat(0.033)),
				EBITDA:                       revenue.Mul(decimal.NewFromFloat(0.08)),
				OperatingMargin:              decimal.NewFromFloat(0.05),
				ProfitMargin:                 decimal.NewFromFloat(0.033),
				Currency:                     "USD",
			}
			stmt.BasicEPS = stmt.NetIncome.DivRound(sharesOutstanding, 4)
			stmt.DilutedEPS = stmt.BasicEPS.Mul(decimal.NewFromFloat(0.98))
			statements = append(statements, stmt)
		}
		return statements, nil
	})
}

// NewAssetProfileFetcher derives one profile per quarterly bar. Only market
// cap varies by bar; the descriptive fields are defaults until a profile
// provider exists.
func NewAssetProfileFetcher(client interfaces.YahooClient) interfaces.Fetcher[*models.AssetProfile] {
	return interfaces.FetcherFunc[*models.AssetProfile](func(ctx context.Context, symbol string) ([]*models.AssetProfile, error) {
		chart, err := client.Chart(ctx, symbol, quarterlyInterval, quarterlyRange)
		if err != nil {
			return nil, err
		}

		profiles := make([]*models.AssetProfile, 0, len(chart.Bars))
		for _, bar := range chart.Bars {
			date := time.Unix(bar.Timestamp, 0).UTC()
			close := decimal.NewFromFloat(bar.Close)
			volume := decimal.NewFromInt(bar.Volume)

			profiles = append(profiles, &models.AssetProfile{
				Symbol:            symbol,
				Date:              date,
				CompanyName:       symbol + " Company",
				Industry:          "Technology",
				Sector:            "Technology",
				Website:           "www." + strings.ToLower(symbol) + ".com",
				Description:       "Company profile for " + symbol,
				Country:           "US",
				FullTimeEmployees: 1000,
				MarketCap:         close.Mul(volume),
				FinancialCurrency: "USD",
				RevenueGrowth:     decimal.NewFromFloat(0.1),
				GrossMargins:      decimal.NewFromFloat(0.3),
				OperatingMargins:  decimal.NewFromFloat(0.15),
				ProfitMargins:     decimal.NewFromFloat(0.08),
				Exchange:          "NYSE",
				QuoteType:         "EQUITY",
				Market:            "us_market",
			})
		}
		return profiles, nil
	})
}

// NewKeyStatisticsFetcher derives a single statistics snapshot from the
// daily chart metadata.
func NewKeyStatisticsFetcher(client interfaces.YahooClient) interfaces.Fetcher[*models.KeyStatistics] {
	return interfaces.FetcherFunc[*models.KeyStatistics](func(ctx context.Context, symbol string) ([]*models.KeyStatistics, error) {
		chart, err := client.Chart(ctx, symbol, dailyInterval, dailyRange)
		if err != nil {
			return nil, err
		}

		price := decimal.NewFromFloat(chart.Meta.RegularMarketPrice)

		stats := &models.KeyStatistics{
			Symbol:             symbol,
			Date:               time.Now().UTC(),
			FiftyTwoWeekHigh:   price.Mul(decimal.NewFromFloat(1.1)),
			FiftyTwoWeekLow:    price.Mul(decimal.NewFromFloat(0.9)),
			PriceToBook:        decimal.NewFromFloat(2.5),
			TrailingPE:         decimal.NewFromFloat(15.0),
			ForwardPE:          decimal.NewFromFloat(14.0),
			RegularMarketPrice: price,
			CurrencySymbol:     chart.Meta.Currency,
		}
		if len(chart.Bars) > 0 {
			stats.AverageVolume = decimal.NewFromInt(chart.Bars[0].Volume)
		}
		return []*models.KeyStatistics{stats}, nil
	})
}

// NewEarningsFetcher builds an earnings snapshot. The estimates and the
// four-quarter history are synthetic until an earnings provider exists; the
// chart call still validates the symbol.
func NewEarningsFetcher(client interfaces.YahooClient) interfaces.Fetcher[*models.Earnings] {
	return interfaces.FetcherFunc[*models.Earnings](func(ctx context.Context, symbol string) ([]*models.Earnings, error) {
		if _, err := client.Chart(ctx, symbol, dailyInterval, fiveYearRange); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		earnings := &models.Earnings{
			Symbol:                      symbol,
			LastUpdated:                 now,
			CurrentQuarter:              fiscalQuarter(now),
			CurrentQuarterDate:          now.AddDate(0, 1, 0),
			CurrentQuarterEstimateEPS:   decimal.NewFromFloat(2.50),
			CurrentQuarterEstimateRev:   decimal.NewFromInt(1_000_000_000),
			NumberOfAnalysts:            15,
			EstimateGrowth:              decimal.NewFromFloat(0.12),
			NextQuarter:                 fiscalQuarter(now.AddDate(0, 3, 0)),
			NextQuarterDate:             now.AddDate(0, 4, 0),
			NextQuarterEstimateEPS:      decimal.NewFromFloat(2.75),
			NextQuarterEstimateRev:      decimal.NewFromInt(1_100_000_000),
			NextQuarterNumberOfAnalysts: 14,
			QuarterlyGrowth:             decimal.NewFromFloat(0.15),
			YearlyGrowth:                decimal.NewFromFloat(0.25),
			FiveYearGrowthRate:          decimal.NewFromFloat(0.18),
			EarningsQualityScore:        decimal.NewFromInt(85),
			EarningsConsistencyScore:    decimal.NewFromInt(90),
			EarningsSurpriseScore:       decimal.NewFromInt(75),
			UpwardRevisions30Days:       8,
			DownwardRevisions30Days:     2,
		}

		for i := 1; i <= 4; i++ {
			earnings.QuarterlyEarnings = append(earnings.QuarterlyEarnings, models.QuarterlyEarnings{
				Quarter:                   fmt.Sprintf("Q%d", i),
				Date:                      now.AddDate(0, -i*3, 0),
				ReportedEPS:               decimal.NewFromFloat(2.0 + float64(i)*0.25),
				EstimatedEPS:              decimal.NewFromFloat(1.9 + float64(i)*0.25),
				Surprise:                  decimal.NewFromFloat(0.1),
				SurprisePercentage:        decimal.NewFromFloat(5.0),
				ReportedRevenue:           decimal.NewFromInt(900_000_000 + int64(i)*25_000_000),
				EstimatedRevenue:          decimal.NewFromInt(880_000_000 + int64(i)*25_000_000),
				RevenueSurprise:           decimal.NewFromInt(20_000_000),
				RevenueSurprisePercentage: decimal.NewFromFloat(2.27),
			})
		}

		return []*models.Earnings{earnings}, nil
	})
}

// NewCalendarEventsFetcher builds an upcoming-events snapshot from the daily
// chart, with synthetic estimate and dividend values.
func NewCalendarEventsFetcher(client interfaces.YahooClient) interfaces.Fetcher[*models.CalendarEvents] {
	return interfaces.FetcherFunc[*models.CalendarEvents](func(ctx context.Context, symbol string) ([]*models.CalendarEvents, error) {
		if _, err := client.Chart(ctx, symbol, dailyInterval, dailyRange); err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		events := &models.CalendarEvents{
			Symbol:            symbol,
			LastUpdated:       now,
			NextEarningsQtr:   fiscalQuarter(now),
			EarningsEstimate:  decimal.NewFromFloat(1.25),
			RevenueEstimate:   decimal.NewFromInt(1_000_000_000),
			NumberOfAnalysts:  15,
			NextDividendDate:  now.AddDate(0, 3, 0),
			ExDividendDate:    now.AddDate(0, 2, 14),
			DividendAmount:    decimal.NewFromFloat(0.88),
			DividendYield:     decimal.NewFromFloat(0.025),
			DividendFrequency: "Quarterly",
			FiscalYearEnd:     "December",
			MostRecentQuarter: fmt.Sprintf("%d-%s", now.Year()-1, "Q4"),
		}
		return []*models.CalendarEvents{events}, nil
	})
}

// NewInstitutionOwnershipFetcher maps the quoteSummary ownership payload to
// a single report record.
func NewInstitutionOwnershipFetcher(client interfaces.YahooClient) interfaces.Fetcher[*models.InstitutionOwnership] {
	return interfaces.FetcherFunc[*models.InstitutionOwnership](func(ctx context.Context, symbol string) ([]*models.InstitutionOwnership, error) {
		summary, err := client.Ownership(ctx, symbol)
		if err != nil {
			return nil, err
		}

		reportDate := time.Now().UTC()
		if summary.ReportDate > 0 {
			reportDate = time.Unix(summary.ReportDate, 0).UTC()
		}

		ownership := &models.InstitutionOwnership{
			Symbol:                symbol,
			ReportDate:            reportDate,
			TotalSharesHeld:       summary.TotalSharesHeld,
			TotalValueHeld:        decimal.NewFromFloat(summary.TotalValueHeld),
			PercentageOutstanding: decimal.NewFromFloat(summary.PercentHeld * 100),
			TopHolderName:         summary.TopHolderName,
			TopHolderShares:       summary.TopHolderShares,
			TopHolderPercentage:   decimal.NewFromFloat(summary.TopHolderPctHeld * 100),
		}
		return []*models.InstitutionOwnership{ownership}, nil
	})
}
