// Package records implements the tiered lookup pipeline shared by every
// data kind: cache first, then the document store, then the external
// provider with persistence on the way back.
package records

import "time"

// CacheMode selects what the symbol's primary cache key holds.
type CacheMode int

const (
	// ModeList caches the symbol's full record list, with the most recent
	// record under a separate ":latest" key.
	ModeList CacheMode = iota
	// ModeLatest caches only the most recent record under the primary key.
	ModeLatest
)

// KindPolicy fixes the cache and freshness behavior of one record kind.
type KindPolicy struct {
	// Name is the kind identifier used in logs, schedules and status
	// reports. It matches the storage table name.
	Name string
	// CachePrefix is prepended to the symbol to build cache keys.
	CachePrefix string
	// TTL bounds how long cached entries live.
	TTL time.Duration
	// Mode selects list or latest-only caching.
	Mode CacheMode
	// StaleAfter, when positive, also ages out store records: a stored
	// record older than this is refetched even though it exists.
	StaleAfter time.Duration
}

// Key returns the symbol's primary cache key.
func (p KindPolicy) Key(symbol string) string {
	return p.CachePrefix + symbol
}

// LatestKey returns the key holding the symbol's most recent record. For
// latest-mode kinds this is the primary key itself.
func (p KindPolicy) LatestKey(symbol string) string {
	if p.Mode == ModeLatest {
		return p.Key(symbol)
	}
	return p.Key(symbol) + ":latest"
}

// RangeKey returns the cache key for a date-window query. Bounds are keyed
// at day precision, matching the request parameters.
func (p KindPolicy) RangeKey(symbol string, start, end time.Time) string {
	const day = "2006-01-02"
	return p.Key(symbol) + ":range:" + start.Format(day) + ":" + end.Format(day)
}

// Fundamental data stays good for a day; quote data goes stale in minutes.
const (
	FundamentalTTL = 24 * time.Hour
	QuoteTTL       = 15 * time.Minute
)

// Per-kind policies.
var (
	AssetProfilePolicy = KindPolicy{
		Name:        "asset_profile",
		CachePrefix: "asset_profile:",
		TTL:         FundamentalTTL,
		Mode:        ModeLatest,
	}
	BalanceSheetPolicy = KindPolicy{
		Name:        "balance_sheet",
		CachePrefix: "balance_sheet:",
		TTL:         FundamentalTTL,
		Mode:        ModeList,
	}
	CashFlowPolicy = KindPolicy{
		Name:        "cash_flow",
		CachePrefix: "cash_flow:",
		TTL:         FundamentalTTL,
		Mode:        ModeList,
	}
	IncomeStatementPolicy = KindPolicy{
		Name:        "income_statement",
		CachePrefix: "income_statement:",
		TTL:         FundamentalTTL,
		Mode:        ModeLatest,
	}
	EarningsPolicy = KindPolicy{
		Name:        "earnings",
		CachePrefix: "earnings:",
		TTL:         FundamentalTTL,
		Mode:        ModeLatest,
	}
	KeyStatisticsPolicy = KindPolicy{
		Name:        "key_statistics",
		CachePrefix: "key_statistics:",
		TTL:         FundamentalTTL,
		Mode:        ModeLatest,
	}
	CalendarEventsPolicy = KindPolicy{
		Name:        "calendar_events",
		CachePrefix: "calendar_events:",
		TTL:         FundamentalTTL,
		Mode:        ModeLatest,
	}
	StockDataPolicy = KindPolicy{
		Name:        "stock_data",
		CachePrefix: "stock_data:",
		TTL:         QuoteTTL,
		Mode:        ModeLatest,
		StaleAfter:  QuoteTTL,
	}
	MarketDataPolicy = KindPolicy{
		Name:        "market_data",
		CachePrefix: "market_data:",
		TTL:         QuoteTTL,
		Mode:        ModeLatest,
	}
	InstitutionOwnershipPolicy = KindPolicy{
		Name:        "institution_ownership",
		CachePrefix: "institutional_ownership:",
		TTL:         FundamentalTTL,
		Mode:        ModeLatest,
	}
)
