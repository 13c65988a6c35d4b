package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/models"
	tcommon "github.com/tabreed/stockline/tests/common"
)

// testManager connects to the shared SurrealDB container using a unique
// database per test for isolation.
func testManager(t *testing.T) *Manager {
	t.Helper()

	sc := tcommon.StartSurrealDB(t)

	// Subtests produce names like "Test/subtest" and SurrealDB rejects
	// "/" in database names.
	sanitized := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dbName := fmt.Sprintf("t_%s_%d", sanitized, time.Now().UnixNano()%100000)

	config := common.NewDefaultConfig()
	config.Storage.Address = sc.Address()
	config.Storage.Namespace = "stockline_test"
	config.Storage.Database = dbName
	config.Storage.Username = "root"
	config.Storage.Password = "root"

	m, err := NewManager(common.NewSilentLogger(), config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	return m
}

func sheet(symbol string, date time.Time, totalAssets int64) *models.BalanceSheet {
	return &models.BalanceSheet{
		Symbol:            symbol,
		Date:              date,
		TotalAssets:       decimal.NewFromInt(totalAssets),
		ReportingCurrency: "USD",
	}
}

func TestRecordStoreSaveAndLookup(t *testing.T) {
	m := testManager(t)
	store := NewRecordStore[*models.BalanceSheet](m, "balance_sheet", "date")
	ctx := context.Background()

	saved, err := store.Save(ctx, sheet("AAPL", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 1000))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := store.ByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.True(t, got.TotalAssets.Equal(decimal.NewFromInt(1000)))

	_, err = store.ByID(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRecordStoreSaveIsUpsert(t *testing.T) {
	m := testManager(t)
	store := NewRecordStore[*models.BalanceSheet](m, "balance_sheet", "date")
	ctx := context.Background()

	first, err := store.Save(ctx, sheet("AAPL", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 1000))
	require.NoError(t, err)

	update := sheet("AAPL", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 2000)
	update.SetDocumentID(first.ID)
	_, err = store.Save(ctx, update)
	require.NoError(t, err)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].TotalAssets.Equal(decimal.NewFromInt(2000)))
}

func TestRecordStoreSaveRejectsEmptySymbol(t *testing.T) {
	m := testManager(t)
	store := NewRecordStore[*models.BalanceSheet](m, "balance_sheet", "date")

	_, err := store.Save(context.Background(), &models.BalanceSheet{})
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)
}

func TestRecordStoreBySymbolOrdering(t *testing.T) {
	m := testManager(t)
	store := NewRecordStore[*models.BalanceSheet](m, "balance_sheet", "date")
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		_, err := store.Save(ctx, sheet("MSFT", d, int64(100*(i+1))))
		require.NoError(t, err)
	}
	_, err := store.Save(ctx, sheet("AAPL", dates[0], 500))
	require.NoError(t, err)

	records, err := store.BySymbol(ctx, "MSFT")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 2024, records[0].Date.Year())
	assert.Equal(t, time.June, records[0].Date.Month())
	assert.True(t, records[0].Date.After(records[1].Date))
	assert.True(t, records[1].Date.After(records[2].Date))

	latest, err := store.Latest(ctx, "MSFT")
	require.NoError(t, err)
	assert.Equal(t, time.June, latest.Date.Month())

	_, err = store.Latest(ctx, "NVDA")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRecordStoreRange(t *testing.T) {
	m := testManager(t)
	store := NewRecordStore[*models.BalanceSheet](m, "balance_sheet", "date")
	ctx := context.Background()

	for _, d := range []time.Time{
		time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
	} {
		_, err := store.Save(ctx, sheet("MSFT", d, 100))
		require.NoError(t, err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	records, err := store.Range(ctx, "MSFT", start, end)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, time.March, records[0].Date.Month())
}

func TestRecordStoreDelete(t *testing.T) {
	m := testManager(t)
	store := NewRecordStore[*models.BalanceSheet](m, "balance_sheet", "date")
	ctx := context.Background()

	saved, err := store.Save(ctx, sheet("AAPL", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 1000))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, saved.ID))
	assert.ErrorIs(t, store.Delete(ctx, saved.ID), models.ErrNotFound)

	_, err = store.ByID(ctx, saved.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRecordStoreSymbols(t *testing.T) {
	m := testManager(t)
	store := NewRecordStore[*models.BalanceSheet](m, "balance_sheet", "date")
	ctx := context.Background()

	for _, sym := range []string{"AAPL", "MSFT", "AAPL"} {
		_, err := store.Save(ctx, sheet(sym, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), 100))
		require.NoError(t, err)
	}

	symbols, err := store.Symbols(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, symbols)
}
