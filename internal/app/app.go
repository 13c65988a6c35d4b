// Package app wires configuration, storage, clients, services and the
// refresh scheduler into one shared core used by cmd/stockline-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tabreed/stockline/internal/clients/fmp"
	"github.com/tabreed/stockline/internal/clients/yahoo"
	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/fetch"
	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
	"github.com/tabreed/stockline/internal/records"
	"github.com/tabreed/stockline/internal/refresh"
	"github.com/tabreed/stockline/internal/storage/badgercache"
	"github.com/tabreed/stockline/internal/storage/surrealdb"
)

// Refresh schedules per kind. Six-field cron expressions, seconds first.
// Institution ownership has no schedule; it refreshes on demand only.
const (
	dailyProfileSchedule  = "0 0 1 * * *"
	incomeSchedule        = "0 0 2 * * *"
	earningsSchedule      = "0 0 */6 * * *"
	keyStatisticsSchedule = "0 0 */4 * * *"
	calendarSchedule      = "0 0 */12 * * *"
	quoteSchedule         = "@every 5m"
)

// App holds every initialized component. It is built once at startup and
// shared by the HTTP server and the scheduler.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage *surrealdb.Manager
	Cache   interfaces.CacheStore
	Yahoo   interfaces.YahooClient
	FMP     interfaces.FMPClient

	AssetProfiles        *records.Service[*models.AssetProfile]
	BalanceSheets        *records.Service[*models.BalanceSheet]
	CashFlows            *records.Service[*models.CashFlow]
	IncomeStatements     *records.Service[*models.IncomeStatement]
	Earnings             *records.Service[*models.Earnings]
	KeyStatistics        *records.Service[*models.KeyStatistics]
	CalendarEvents       *records.Service[*models.CalendarEvents]
	StockData            *records.Service[*models.StockData]
	MarketData           *records.Service[*models.MarketData]
	InstitutionOwnership *records.Service[*models.InstitutionOwnership]

	Runners   []ScheduledRunner
	Scheduler *Scheduler

	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, cache, clients and every record service.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("STOCKLINE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "stockline.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/stockline.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Cache.Path != "" && !filepath.IsAbs(config.Cache.Path) {
		config.Cache.Path = filepath.Join(binDir, config.Cache.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cache, err := badgercache.New(config.Cache.Path, logger)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	yahooClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithSummaryBaseURL(config.Clients.Yahoo.SummaryBaseURL),
		yahoo.WithUserAgent(config.Clients.Yahoo.UserAgent),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	if config.Clients.FMP.APIKey == "" {
		logger.Warn().Msg("FMP API key not configured - quote refresh will fail until set")
	}
	fmpClient := fmp.NewClient(config.Clients.FMP.APIKey,
		fmp.WithBaseURL(config.Clients.FMP.BaseURL),
		fmp.WithRateLimit(config.Clients.FMP.RateLimit),
		fmp.WithTimeout(config.Clients.FMP.GetTimeout()),
		fmp.WithLogger(logger),
	)

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		Cache:       cache,
		Yahoo:       yahooClient,
		FMP:         fmpClient,
		StartupTime: time.Now(),
	}

	retry := fetch.RetryPolicy{
		Attempts: config.Refresh.RetryAttempts,
		Delay:    config.Refresh.GetRetryDelay(),
	}
	a.buildServices(retry)
	a.buildRunners()

	a.Scheduler = NewScheduler(logger)
	if config.Refresh.Enabled {
		if err := a.Scheduler.Register(a.Runners); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to register refresh schedules: %w", err)
		}
	} else {
		logger.Info().Msg("Scheduled refresh disabled by configuration")
	}

	return a, nil
}

// newService wires one kind end to end: store, shared cache, retry-wrapped
// fetcher.
func newService[T models.Record](
	a *App,
	policy records.KindPolicy,
	timeField string,
	fetcher interfaces.Fetcher[T],
	retry fetch.RetryPolicy,
) *records.Service[T] {
	store := surrealdb.NewRecordStore[T](a.Storage, policy.Name, timeField)
	wrapped := fetch.WithRetry(fetcher, retry, a.Logger)
	return records.NewService(policy, store, a.Cache, wrapped, a.Logger)
}

func (a *App) buildServices(retry fetch.RetryPolicy) {
	a.AssetProfiles = newService(a, records.AssetProfilePolicy, "date", fetch.NewAssetProfileFetcher(a.Yahoo), retry)
	a.BalanceSheets = newService(a, records.BalanceSheetPolicy, "date", fetch.NewBalanceSheetFetcher(a.Yahoo), retry)
	a.CashFlows = newService(a, records.CashFlowPolicy, "date", fetch.NewCashFlowFetcher(a.Yahoo), retry)
	a.IncomeStatements = newService(a, records.IncomeStatementPolicy, "date", fetch.NewIncomeStatementFetcher(a.Yahoo), retry)
	a.Earnings = newService(a, records.EarningsPolicy, "last_updated", fetch.NewEarningsFetcher(a.Yahoo), retry)
	a.KeyStatistics = newService(a, records.KeyStatisticsPolicy, "date", fetch.NewKeyStatisticsFetcher(a.Yahoo), retry)
	a.CalendarEvents = newService(a, records.CalendarEventsPolicy, "last_updated", fetch.NewCalendarEventsFetcher(a.Yahoo), retry)
	a.StockData = newService(a, records.StockDataPolicy, "last_updated", fetch.NewStockDataFetcher(a.FMP), retry)
	a.MarketData = newService(a, records.MarketDataPolicy, "timestamp", fetch.NewMarketDataFetcher(a.FMP), retry)
	a.InstitutionOwnership = newService(a, records.InstitutionOwnershipPolicy, "report_date", fetch.NewInstitutionOwnershipFetcher(a.Yahoo), retry)
}

func (a *App) buildRunners() {
	delay := a.Config.Refresh.GetSymbolDelay()
	logger := a.Logger

	a.Runners = []ScheduledRunner{
		refresh.NewRunner[*models.AssetProfile](a.AssetProfiles, dailyProfileSchedule, delay, logger),
		refresh.NewRunner[*models.BalanceSheet](a.BalanceSheets, dailyProfileSchedule, delay, logger),
		refresh.NewRunner[*models.CashFlow](a.CashFlows, dailyProfileSchedule, delay, logger),
		refresh.NewRunner[*models.IncomeStatement](a.IncomeStatements, incomeSchedule, delay, logger),
		refresh.NewRunner[*models.Earnings](a.Earnings, earningsSchedule, delay, logger),
		refresh.NewRunner[*models.KeyStatistics](a.KeyStatistics, keyStatisticsSchedule, delay, logger),
		refresh.NewRunner[*models.CalendarEvents](a.CalendarEvents, calendarSchedule, delay, logger),
		refresh.NewRunner[*models.StockData](a.StockData, quoteSchedule, delay, logger),
		refresh.NewRunner[*models.MarketData](a.MarketData, quoteSchedule, delay, logger),
		refresh.NewRunner[*models.InstitutionOwnership](a.InstitutionOwnership, "", delay, logger),
	}
}

// RunnerFor returns the runner for a kind, nil when unknown.
func (a *App) RunnerFor(kind string) ScheduledRunner {
	for _, r := range a.Runners {
		if r.Kind() == kind {
			return r
		}
	}
	return nil
}

// Close stops the scheduler and releases storage and cache.
func (a *App) Close() {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Cache close failed")
		}
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
	}
}
