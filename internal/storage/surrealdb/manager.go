// Package surrealdb implements the document-store tier on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"

	"github.com/tabreed/stockline/internal/common"
)

// Tables holds every record table the service defines at startup.
// SurrealDB v3 errors on querying tables that were never defined.
var Tables = []string{
	"asset_profile",
	"balance_sheet",
	"cash_flow",
	"income_statement",
	"earnings",
	"key_statistics",
	"calendar_events",
	"stock_data",
	"market_data",
	"institution_ownership",
}

// Manager owns the SurrealDB connection shared by every record store.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewManager connects, signs in, selects the namespace/database and defines
// the record tables.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	for _, table := range Tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return &Manager{db: db, logger: logger}, nil
}

// DB exposes the shared connection for record stores.
func (m *Manager) DB() *surrealdb.DB {
	return m.db
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}
