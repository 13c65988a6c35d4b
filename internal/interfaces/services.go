package interfaces

import (
	"context"
	"time"

	"github.com/tabreed/stockline/internal/models"
)

// RecordService is the read-through service contract for one record kind.
// Lookups consult the cache, then the store, then the external provider;
// Refresh bypasses both local tiers and always hits the provider.
type RecordService[T models.Record] interface {
	Kind() string
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	GetBySymbol(ctx context.Context, symbol string) ([]T, error)
	GetLatest(ctx context.Context, symbol string) (T, error)
	GetRange(ctx context.Context, symbol string, start, end time.Time) ([]T, error)
	Save(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id string) error
	Refresh(ctx context.Context, symbol string) ([]T, error)
	Symbols(ctx context.Context) ([]string, error)
}

// RefreshRunner drives batch refreshes for one kind and reports status.
type RefreshRunner interface {
	Kind() string
	Run(ctx context.Context, trigger string) (*models.RefreshRun, error)
	Status() *models.RefreshStatus
}
