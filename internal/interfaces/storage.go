// Package interfaces defines the contracts between stockline layers.
package interfaces

import (
	"context"
	"time"

	"github.com/tabreed/stockline/internal/models"
)

// RecordStore is the document-store contract for one record kind.
// BySymbol and Range return records newest first; Latest returns
// models.ErrNotFound when the symbol has no records.
type RecordStore[T models.Record] interface {
	All(ctx context.Context) ([]T, error)
	ByID(ctx context.Context, id string) (T, error)
	BySymbol(ctx context.Context, symbol string) ([]T, error)
	Latest(ctx context.Context, symbol string) (T, error)
	Range(ctx context.Context, symbol string, start, end time.Time) ([]T, error)
	Save(ctx context.Context, record T) (T, error)
	SaveAll(ctx context.Context, records []T) ([]T, error)
	Delete(ctx context.Context, id string) error
	Symbols(ctx context.Context) ([]string, error)
}

// CacheStore is the TTL cache contract. Get reports whether the key was
// present; a missing key is not an error.
type CacheStore interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
