package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

// RecordStore is the generic document store for one record kind. Each kind
// lives in its own table; timeField names the column that orders records
// within a symbol (date, timestamp or last_updated depending on the kind).
type RecordStore[T models.Record] struct {
	db        *surrealdb.DB
	logger    *common.Logger
	table     string
	timeField string
}

// NewRecordStore builds a store bound to one table.
func NewRecordStore[T models.Record](m *Manager, table, timeField string) *RecordStore[T] {
	return &RecordStore[T]{
		db:        m.db,
		logger:    m.logger,
		table:     table,
		timeField: timeField,
	}
}

func (s *RecordStore[T]) query(ctx context.Context, sql string, vars map[string]any) ([]T, error) {
	results, err := surrealdb.Query[[]T](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("query on %s failed: %w", s.table, err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

// All returns every record in the table, newest first.
func (s *RecordStore[T]) All(ctx context.Context) ([]T, error) {
	sql := fmt.Sprintf("SELECT * OMIT id FROM %s ORDER BY %s DESC", s.table, s.timeField)
	return s.query(ctx, sql, nil)
}

// ByID returns the record with the given document id, or models.ErrNotFound.
func (s *RecordStore[T]) ByID(ctx context.Context, id string) (T, error) {
	var zero T
	sql := fmt.Sprintf("SELECT * OMIT id FROM %s WHERE document_id = $id LIMIT 1", s.table)
	records, err := s.query(ctx, sql, map[string]any{"id": id})
	if err != nil {
		return zero, err
	}
	if len(records) == 0 {
		return zero, models.ErrNotFound
	}
	return records[0], nil
}

// BySymbol returns the symbol's records, newest first.
func (s *RecordStore[T]) BySymbol(ctx context.Context, symbol string) ([]T, error) {
	sql := fmt.Sprintf("SELECT * OMIT id FROM %s WHERE symbol = $symbol ORDER BY %s DESC", s.table, s.timeField)
	return s.query(ctx, sql, map[string]any{"symbol": symbol})
}

// Latest returns the symbol's most recent record, or models.ErrNotFound.
func (s *RecordStore[T]) Latest(ctx context.Context, symbol string) (T, error) {
	var zero T
	sql := fmt.Sprintf("SELECT * OMIT id FROM %s WHERE symbol = $symbol ORDER BY %s DESC LIMIT 1", s.table, s.timeField)
	records, err := s.query(ctx, sql, map[string]any{"symbol": symbol})
	if err != nil {
		return zero, err
	}
	if len(records) == 0 {
		return zero, models.ErrNotFound
	}
	return records[0], nil
}

// Range returns the symbol's records inside [start, end], newest first.
func (s *RecordStore[T]) Range(ctx context.Context, symbol string, start, end time.Time) ([]T, error) {
	sql := fmt.Sprintf(
		"SELECT * OMIT id FROM %s WHERE symbol = $symbol AND %s >= $start AND %s <= $end ORDER BY %s DESC",
		s.table, s.timeField, s.timeField, s.timeField,
	)
	vars := map[string]any{"symbol": symbol, "start": start, "end": end}
	return s.query(ctx, sql, vars)
}

// Save upserts one record, assigning a document id when the record has none.
func (s *RecordStore[T]) Save(ctx context.Context, record T) (T, error) {
	var zero T
	if record.SymbolKey() == "" {
		return zero, models.ErrInvalidSymbol
	}
	if record.DocumentID() == "" {
		record.SetDocumentID(uuid.NewString())
	}

	sql := "UPSERT $rid CONTENT $data RETURN NONE"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID(s.table, record.DocumentID()),
		"data": record,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[any](ctx, s.db, sql, vars)
		if err == nil {
			return record, nil
		}
		lastErr = err
	}
	return zero, fmt.Errorf("failed to save %s record after retries: %w", s.table, lastErr)
}

// SaveAll upserts a batch, stopping at the first failure.
func (s *RecordStore[T]) SaveAll(ctx context.Context, records []T) ([]T, error) {
	saved := make([]T, 0, len(records))
	for _, record := range records {
		r, err := s.Save(ctx, record)
		if err != nil {
			return saved, err
		}
		saved = append(saved, r)
	}
	return saved, nil
}

// Delete removes the record with the given document id. Deleting a missing
// id returns models.ErrNotFound.
func (s *RecordStore[T]) Delete(ctx context.Context, id string) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE document_id = $id RETURN BEFORE", s.table)
	records, err := s.query(ctx, sql, map[string]any{"id": id})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Symbols returns the distinct symbols present in the table.
func (s *RecordStore[T]) Symbols(ctx context.Context) ([]string, error) {
	type symbolRow struct {
		Symbol string `json:"symbol"`
	}

	sql := fmt.Sprintf("SELECT symbol FROM %s GROUP BY symbol", s.table)
	results, err := surrealdb.Query[[]symbolRow](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("symbol listing on %s failed: %w", s.table, err)
	}

	var symbols []string
	if results != nil && len(*results) > 0 {
		for _, row := range (*results)[0].Result {
			symbols = append(symbols, row.Symbol)
		}
	}
	return symbols, nil
}

// Compile-time check
var _ interfaces.RecordStore[*models.BalanceSheet] = (*RecordStore[*models.BalanceSheet])(nil)
