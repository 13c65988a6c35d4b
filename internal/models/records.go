// Package models defines the domain records served by stockline.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is the contract every stored data kind satisfies. The store layer
// owns the document id; the symbol and temporal field drive lookups and
// ordering ("latest" is always the maximum EffectiveAt within a symbol).
type Record interface {
	DocumentID() string
	SetDocumentID(id string)
	SymbolKey() string
	EffectiveAt() time.Time
}

// AssetProfile describes the company behind a symbol.
type AssetProfile struct {
	ID                string          `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol            string          `json:"symbol" msgpack:"symbol"`
	Date              time.Time       `json:"date" msgpack:"date"`
	CompanyName       string          `json:"company_name,omitempty" msgpack:"company_name"`
	Industry          string          `json:"industry,omitempty" msgpack:"industry"`
	Sector            string          `json:"sector,omitempty" msgpack:"sector"`
	Website           string          `json:"website,omitempty" msgpack:"website"`
	Description       string          `json:"description,omitempty" msgpack:"description"`
	Country           string          `json:"country,omitempty" msgpack:"country"`
	FullTimeEmployees int64           `json:"full_time_employees,omitempty" msgpack:"full_time_employees"`
	MarketCap         decimal.Decimal `json:"market_cap" msgpack:"market_cap"`
	FinancialCurrency string          `json:"financial_currency,omitempty" msgpack:"financial_currency"`
	RevenueGrowth     decimal.Decimal `json:"revenue_growth" msgpack:"revenue_growth"`
	GrossMargins      decimal.Decimal `json:"gross_margins" msgpack:"gross_margins"`
	OperatingMargins  decimal.Decimal `json:"operating_margins" msgpack:"operating_margins"`
	ProfitMargins     decimal.Decimal `json:"profit_margins" msgpack:"profit_margins"`
	Exchange          string          `json:"exchange,omitempty" msgpack:"exchange"`
	QuoteType         string          `json:"quote_type,omitempty" msgpack:"quote_type"`
	Market            string          `json:"market,omitempty" msgpack:"market"`
}

func (p *AssetProfile) DocumentID() string      { return p.ID }
func (p *AssetProfile) SetDocumentID(id string) { p.ID = id }
func (p *AssetProfile) SymbolKey() string       { return p.Symbol }
func (p *AssetProfile) EffectiveAt() time.Time  { return p.Date }

// BalanceSheet is a point-in-time statement of assets, liabilities and equity.
type BalanceSheet struct {
	ID                     string          `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol                 string          `json:"symbol" msgpack:"symbol"`
	Date                   time.Time       `json:"date" msgpack:"date"`
	TotalAssets            decimal.Decimal `json:"total_assets" msgpack:"total_assets"`
	CurrentAssets          decimal.Decimal `json:"current_assets" msgpack:"current_assets"`
	CashAndCashEquivalents decimal.Decimal `json:"cash_and_cash_equivalents" msgpack:"cash_and_cash_equivalents"`
	ShortTermInvestments   decimal.Decimal `json:"short_term_investments" msgpack:"short_term_investments"`
	AccountsReceivable     decimal.Decimal `json:"accounts_receivable" msgpack:"accounts_receivable"`
	Inventory              decimal.Decimal `json:"inventory" msgpack:"inventory"`
	TotalLiabilities       decimal.Decimal `json:"total_liabilities" msgpack:"total_liabilities"`
	CurrentLiabilities     decimal.Decimal `json:"current_liabilities" msgpack:"current_liabilities"`
	AccountsPayable        decimal.Decimal `json:"accounts_payable" msgpack:"accounts_payable"`
	ShortTermDebt          decimal.Decimal `json:"short_term_debt" msgpack:"short_term_debt"`
	LongTermDebt           decimal.Decimal `json:"long_term_debt" msgpack:"long_term_debt"`
	TotalShareholderEquity decimal.Decimal `json:"total_shareholder_equity" msgpack:"total_shareholder_equity"`
	RetainedEarnings       decimal.Decimal `json:"retained_earnings" msgpack:"retained_earnings"`
	CommonStock            decimal.Decimal `json:"common_stock" msgpack:"common_stock"`
	WorkingCapital         decimal.Decimal `json:"working_capital" msgpack:"working_capital"`
	ReportingCurrency      string          `json:"reporting_currency,omitempty" msgpack:"reporting_currency"`
	FiscalYear             string          `json:"fiscal_year,omitempty" msgpack:"fiscal_year"`
	FiscalQuarter          string          `json:"fiscal_quarter,omitempty" msgpack:"fiscal_quarter"`
}

func (b *BalanceSheet) DocumentID() string      { return b.ID }
func (b *BalanceSheet) SetDocumentID(id string) { b.ID = id }
func (b *BalanceSheet) SymbolKey() string       { return b.Symbol }
func (b *BalanceSheet) EffectiveAt() time.Time  { return b.Date }

// CashFlow is a quarterly cash-flow statement.
type CashFlow struct {
	ID                          string          `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol                      string          `json:"symbol" msgpack:"symbol"`
	Date                        time.Time       `json:"date" msgpack:"date"`
	FiscalYear                  string          `json:"fiscal_year,omitempty" msgpack:"fiscal_year"`
	FiscalQuarter               string          `json:"fiscal_quarter,omitempty" msgpack:"fiscal_quarter"`
	ReportingCurrency           string          `json:"reporting_currency,omitempty" msgpack:"reporting_currency"`
	NetIncome                   decimal.Decimal `json:"net_income" msgpack:"net_income"`
	OperatingCashFlow           decimal.Decimal `json:"operating_cash_flow" msgpack:"operating_cash_flow"`
	DepreciationAndAmortization decimal.Decimal `json:"depreciation_and_amortization" msgpack:"depreciation_and_amortization"`
	CapitalExpenditures         decimal.Decimal `json:"capital_expenditures" msgpack:"capital_expenditures"`
	FreeCashFlow                decimal.Decimal `json:"free_cash_flow" msgpack:"free_cash_flow"`
}

func (c *CashFlow) DocumentID() string      { return c.ID }
func (c *CashFlow) SetDocumentID(id string) { c.ID = id }
func (c *CashFlow) SymbolKey() string       { return c.Symbol }
func (c *CashFlow) EffectiveAt() time.Time  { return c.Date }

// QuarterlyEarnings is one historical quarter inside an Earnings record.
type QuarterlyEarnings struct {
	Quarter                   string          `json:"quarter" msgpack:"quarter"`
	Date                      time.Time       `json:"date" msgpack:"date"`
	ReportedEPS               decimal.Decimal `json:"reported_eps" msgpack:"reported_eps"`
	EstimatedEPS              decimal.Decimal `json:"estimated_eps" msgpack:"estimated_eps"`
	Surprise                  decimal.Decimal `json:"surprise" msgpack:"surprise"`
	SurprisePercentage        decimal.Decimal `json:"surprise_percentage" msgpack:"surprise_percentage"`
	ReportedRevenue           decimal.Decimal `json:"reported_revenue" msgpack:"reported_revenue"`
	EstimatedRevenue          decimal.Decimal `json:"estimated_revenue" msgpack:"estimated_revenue"`
	RevenueSurprise           decimal.Decimal `json:"revenue_surprise" msgpack:"revenue_surprise"`
	RevenueSurprisePercentage decimal.Decimal `json:"revenue_surprise_percentage" msgpack:"revenue_surprise_percentage"`
}

// Earnings is a per-symbol snapshot of estimates, history and revision counts.
type Earnings struct {
	ID                          string              `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol                      string              `json:"symbol" msgpack:"symbol"`
	LastUpdated                 time.Time           `json:"last_updated" msgpack:"last_updated"`
	CurrentQuarter              string              `json:"current_quarter,omitempty" msgpack:"current_quarter"`
	CurrentQuarterDate          time.Time           `json:"current_quarter_date" msgpack:"current_quarter_date"`
	CurrentQuarterEstimateEPS   decimal.Decimal     `json:"current_quarter_estimate_eps" msgpack:"current_quarter_estimate_eps"`
	CurrentQuarterEstimateRev   decimal.Decimal     `json:"current_quarter_estimate_revenue" msgpack:"current_quarter_estimate_revenue"`
	NumberOfAnalysts            int                 `json:"number_of_analysts,omitempty" msgpack:"number_of_analysts"`
	EstimateGrowth              decimal.Decimal     `json:"estimate_growth" msgpack:"estimate_growth"`
	NextQuarter                 string              `json:"next_quarter,omitempty" msgpack:"next_quarter"`
	NextQuarterDate             time.Time           `json:"next_quarter_date" msgpack:"next_quarter_date"`
	NextQuarterEstimateEPS      decimal.Decimal     `json:"next_quarter_estimate_eps" msgpack:"next_quarter_estimate_eps"`
	NextQuarterEstimateRev      decimal.Decimal     `json:"next_quarter_estimate_revenue" msgpack:"next_quarter_estimate_revenue"`
	NextQuarterNumberOfAnalysts int                 `json:"next_quarter_number_of_analysts,omitempty" msgpack:"next_quarter_number_of_analysts"`
	QuarterlyEarnings           []QuarterlyEarnings `json:"quarterly_earnings,omitempty" msgpack:"quarterly_earnings"`
	QuarterlyGrowth             decimal.Decimal     `json:"quarterly_growth" msgpack:"quarterly_growth"`
	YearlyGrowth                decimal.Decimal     `json:"yearly_growth" msgpack:"yearly_growth"`
	FiveYearGrowthRate          decimal.Decimal     `json:"five_year_growth_rate" msgpack:"five_year_growth_rate"`
	EarningsQualityScore        decimal.Decimal     `json:"earnings_quality_score" msgpack:"earnings_quality_score"`
	EarningsConsistencyScore    decimal.Decimal     `json:"earnings_consistency_score" msgpack:"earnings_consistency_score"`
	EarningsSurpriseScore       decimal.Decimal     `json:"earnings_surprise_score" msgpack:"earnings_surprise_score"`
	UpwardRevisions30Days       int                 `json:"upward_revisions_30_days,omitempty" msgpack:"upward_revisions_30_days"`
	DownwardRevisions30Days     int                 `json:"downward_revisions_30_days,omitempty" msgpack:"downward_revisions_30_days"`
}

func (e *Earnings) DocumentID() string      { return e.ID }
func (e *Earnings) SetDocumentID(id string) { e.ID = id }
func (e *Earnings) SymbolKey() string       { return e.Symbol }
func (e *Earnings) EffectiveAt() time.Time  { return e.LastUpdated }

// IncomeStatement is a quarterly income statement.
type IncomeStatement struct {
	ID                           string          `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol                       string          `json:"symbol" msgpack:"symbol"`
	Date                         time.Time       `json:"date" msgpack:"date"`
	Period                       string          `json:"period,omitempty" msgpack:"period"` // "annual" or "quarterly"
	TotalRevenue                 decimal.Decimal `json:"total_revenue" msgpack:"total_revenue"`
	CostOfRevenue                decimal.Decimal `json:"cost_of_revenue" msgpack:"cost_of_revenue"`
	GrossProfit                  decimal.Decimal `json:"gross_profit" msgpack:"gross_profit"`
	ResearchDevelopment          decimal.Decimal `json:"research_development" msgpack:"research_development"`
	SellingGeneralAdministrative decimal.Decimal `json:"selling_general_administrative" msgpack:"selling_general_administrative"`
	TotalOperatingExpenses       decimal.Decimal `json:"total_operating_expenses" msgpack:"total_operating_expenses"`
	OperatingIncome              decimal.Decimal `json:"operating_income" msgpack:"operating_income"`
	InterestExpense              decimal.Decimal `json:"interest_expense" msgpack:"interest_expense"`
	InterestIncome               decimal.Decimal `json:"interest_income" msgpack:"interest_income"`
	OtherIncomeExpense           decimal.Decimal `json:"other_income_expense" msgpack:"other_income_expense"`
	IncomeBeforeTax              decimal.Decimal `json:"income_before_tax" msgpack:"income_before_tax"`
	IncomeTaxExpense             decimal.Decimal `json:"income_tax_expense" msgpack:"income_tax_expense"`
	NetIncome                    decimal.Decimal `json:"net_income" msgpack:"net_income"`
	BasicEPS                     decimal.Decimal `json:"basic_eps" msgpack:"basic_eps"`
	DilutedEPS                   decimal.Decimal `json:"diluted_eps" msgpack:"diluted_eps"`
	EBITDA                       decimal.Decimal `json:"ebitda" msgpack:"ebitda"`
	OperatingMargin              decimal.Decimal `json:"operating_margin" msgpack:"operating_margin"`
	ProfitMargin                 decimal.Decimal `json:"profit_margin" msgpack:"profit_margin"`
	Currency                     string          `json:"currency,omitempty" msgpack:"currency"`
}

func (s *IncomeStatement) DocumentID() string      { return s.ID }
func (s *IncomeStatement) SetDocumentID(id string) { s.ID = id }
func (s *IncomeStatement) SymbolKey() string       { return s.Symbol }
func (s *IncomeStatement) EffectiveAt() time.Time  { return s.Date }

// KeyStatistics is a per-symbol snapshot of valuation and trading statistics.
type KeyStatistics struct {
	ID                 string          `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol             string          `json:"symbol" msgpack:"symbol"`
	Date               time.Time       `json:"date" msgpack:"date"`
	MarketCap          decimal.Decimal `json:"market_cap" msgpack:"market_cap"`
	EnterpriseValue    decimal.Decimal `json:"enterprise_value" msgpack:"enterprise_value"`
	TrailingPE         decimal.Decimal `json:"trailing_pe" msgpack:"trailing_pe"`
	ForwardPE          decimal.Decimal `json:"forward_pe" msgpack:"forward_pe"`
	PriceToBook        decimal.Decimal `json:"price_to_book" msgpack:"price_to_book"`
	SharesOutstanding  int64           `json:"shares_outstanding,omitempty" msgpack:"shares_outstanding"`
	Beta               decimal.Decimal `json:"beta" msgpack:"beta"`
	FiftyTwoWeekHigh   decimal.Decimal `json:"fifty_two_week_high" msgpack:"fifty_two_week_high"`
	FiftyTwoWeekLow    decimal.Decimal `json:"fifty_two_week_low" msgpack:"fifty_two_week_low"`
	FiftyDayAverage    decimal.Decimal `json:"fifty_day_moving_average" msgpack:"fifty_day_moving_average"`
	TwoHundredDayAvg   decimal.Decimal `json:"two_hundred_day_moving_average" msgpack:"two_hundred_day_moving_average"`
	AverageVolume      decimal.Decimal `json:"average_volume" msgpack:"average_volume"`
	DividendRate       decimal.Decimal `json:"dividend_rate" msgpack:"dividend_rate"`
	DividendYield      decimal.Decimal `json:"dividend_yield" msgpack:"dividend_yield"`
	ExDividendDate     time.Time       `json:"ex_dividend_date" msgpack:"ex_dividend_date"`
	CurrencySymbol     string          `json:"currency,omitempty" msgpack:"currency"`
	RegularMarketPrice decimal.Decimal `json:"regular_market_price" msgpack:"regular_market_price"`
}

func (k *KeyStatistics) DocumentID() string      { return k.ID }
func (k *KeyStatistics) SetDocumentID(id string) { k.ID = id }
func (k *KeyStatistics) SymbolKey() string       { return k.Symbol }
func (k *KeyStatistics) EffectiveAt() time.Time  { return k.Date }

// CalendarEvents tracks upcoming earnings, dividend and split dates per symbol.
type CalendarEvents struct {
	ID                 string          `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol             string          `json:"symbol" msgpack:"symbol"`
	LastUpdated        time.Time       `json:"last_updated" msgpack:"last_updated"`
	NextEarningsDate   time.Time       `json:"next_earnings_date" msgpack:"next_earnings_date"`
	NextEarningsQtr    string          `json:"next_earnings_quarter,omitempty" msgpack:"next_earnings_quarter"`
	EarningsEstimate   decimal.Decimal `json:"earnings_estimate" msgpack:"earnings_estimate"`
	RevenueEstimate    decimal.Decimal `json:"revenue_estimate" msgpack:"revenue_estimate"`
	NumberOfAnalysts   int             `json:"number_of_analysts,omitempty" msgpack:"number_of_analysts"`
	NextDividendDate   time.Time       `json:"next_dividend_date" msgpack:"next_dividend_date"`
	ExDividendDate     time.Time       `json:"ex_dividend_date" msgpack:"ex_dividend_date"`
	DividendAmount     decimal.Decimal `json:"dividend_amount" msgpack:"dividend_amount"`
	DividendYield      decimal.Decimal `json:"dividend_yield" msgpack:"dividend_yield"`
	DividendFrequency  string          `json:"dividend_frequency,omitempty" msgpack:"dividend_frequency"`
	FiscalYearEnd      string          `json:"fiscal_year_end,omitempty" msgpack:"fiscal_year_end"`
	MostRecentQuarter  string          `json:"most_recent_quarter,omitempty" msgpack:"most_recent_quarter"`
}

func (c *CalendarEvents) DocumentID() string      { return c.ID }
func (c *CalendarEvents) SetDocumentID(id string) { c.ID = id }
func (c *CalendarEvents) SymbolKey() string       { return c.Symbol }
func (c *CalendarEvents) EffectiveAt() time.Time  { return c.LastUpdated }

// StockData is the most recent quote snapshot for a symbol.
type StockData struct {
	ID                   string          `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol               string          `json:"symbol" msgpack:"symbol"`
	CompanyName          string          `json:"company_name,omitempty" msgpack:"company_name"`
	Exchange             string          `json:"exchange,omitempty" msgpack:"exchange"`
	CurrentPrice         decimal.Decimal `json:"current_price" msgpack:"current_price"`
	PreviousClose        decimal.Decimal `json:"previous_close" msgpack:"previous_close"`
	DayHigh              decimal.Decimal `json:"day_high" msgpack:"day_high"`
	DayLow               decimal.Decimal `json:"day_low" msgpack:"day_low"`
	Volume               int64           `json:"volume,omitempty" msgpack:"volume"`
	MarketCap            decimal.Decimal `json:"market_cap" msgpack:"market_cap"`
	PriceChange          decimal.Decimal `json:"price_change" msgpack:"price_change"`
	PriceChangePercent   decimal.Decimal `json:"price_change_percent" msgpack:"price_change_percent"`
	FiftyDayAverage      decimal.Decimal `json:"fifty_day_average" msgpack:"fifty_day_average"`
	TwoHundredDayAverage decimal.Decimal `json:"two_hundred_day_average" msgpack:"two_hundred_day_average"`
	YearHigh             decimal.Decimal `json:"year_high" msgpack:"year_high"`
	YearLow              decimal.Decimal `json:"year_low" msgpack:"year_low"`
	SharesOutstanding    int64           `json:"shares_outstanding,omitempty" msgpack:"shares_outstanding"`
	EPS                  decimal.Decimal `json:"eps" msgpack:"eps"`
	PE                   decimal.Decimal `json:"pe" msgpack:"pe"`
	LastUpdated          time.Time       `json:"last_updated" msgpack:"last_updated"`
}

func (s *StockData) DocumentID() string      { return s.ID }
func (s *StockData) SetDocumentID(id string) { s.ID = id }
func (s *StockData) SymbolKey() string       { return s.Symbol }
func (s *StockData) EffectiveAt() time.Time  { return s.LastUpdated }

// MarketData is a time-stamped quote sample (one symbol keeps many samples).
type MarketData struct {
	ID                string          `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol            string          `json:"symbol" msgpack:"symbol"`
	Timestamp         time.Time       `json:"timestamp" msgpack:"timestamp"`
	CurrentPrice      decimal.Decimal `json:"current_price" msgpack:"current_price"`
	PreviousClose     decimal.Decimal `json:"previous_close" msgpack:"previous_close"`
	Open              decimal.Decimal `json:"open" msgpack:"open"`
	DayHigh           decimal.Decimal `json:"day_high" msgpack:"day_high"`
	DayLow            decimal.Decimal `json:"day_low" msgpack:"day_low"`
	Volume            int64           `json:"volume,omitempty" msgpack:"volume"`
	MarketCap         decimal.Decimal `json:"market_cap" msgpack:"market_cap"`
	SharesOutstanding int64           `json:"shares_outstanding,omitempty" msgpack:"shares_outstanding"`
	DayChange         decimal.Decimal `json:"day_change" msgpack:"day_change"`
	DayChangePercent  decimal.Decimal `json:"day_change_percent" msgpack:"day_change_percent"`
	MarketState       string          `json:"market_state,omitempty" msgpack:"market_state"` // PRE, REGULAR, POST, CLOSED
	IsTrading         bool            `json:"is_trading" msgpack:"is_trading"`
	Exchange          string          `json:"exchange,omitempty" msgpack:"exchange"`
	Currency          string          `json:"currency,omitempty" msgpack:"currency"`
	LastUpdated       time.Time       `json:"last_updated" msgpack:"last_updated"`
}

func (m *MarketData) DocumentID() string      { return m.ID }
func (m *MarketData) SetDocumentID(id string) { m.ID = id }
func (m *MarketData) SymbolKey() string       { return m.Symbol }
func (m *MarketData) EffectiveAt() time.Time  { return m.Timestamp }

// InstitutionOwnership summarizes 13F institutional holdings for a symbol.
type InstitutionOwnership struct {
	ID                    string          `json:"document_id,omitempty" msgpack:"document_id"`
	Symbol                string          `json:"symbol" msgpack:"symbol"`
	ReportDate            time.Time       `json:"report_date" msgpack:"report_date"`
	TotalSharesHeld       int64           `json:"total_shares_held,omitempty" msgpack:"total_shares_held"`
	TotalValueHeld        decimal.Decimal `json:"total_value_held" msgpack:"total_value_held"`
	PercentageOutstanding decimal.Decimal `json:"percentage_of_outstanding_shares" msgpack:"percentage_of_outstanding_shares"`
	TopHolderName         string          `json:"top_holder_name,omitempty" msgpack:"top_holder_name"`
	TopHolderShares       int64           `json:"top_holder_shares,omitempty" msgpack:"top_holder_shares"`
	TopHolderPercentage   decimal.Decimal `json:"top_holder_percentage" msgpack:"top_holder_percentage"`
}

func (o *InstitutionOwnership) DocumentID() string      { return o.ID }
func (o *InstitutionOwnership) SetDocumentID(id string) { o.ID = id }
func (o *InstitutionOwnership) SymbolKey() string       { return o.Symbol }
func (o *InstitutionOwnership) EffectiveAt() time.Time  { return o.ReportDate }

// Compile-time checks
var (
	_ Record = (*AssetProfile)(nil)
	_ Record = (*BalanceSheet)(nil)
	_ Record = (*CashFlow)(nil)
	_ Record = (*Earnings)(nil)
	_ Record = (*IncomeStatement)(nil)
	_ Record = (*KeyStatistics)(nil)
	_ Record = (*CalendarEvents)(nil)
	_ Record = (*StockData)(nil)
	_ Record = (*MarketData)(nil)
	_ Record = (*InstitutionOwnership)(nil)
)
