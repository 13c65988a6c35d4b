package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

// Service runs the tiered lookup for one record kind. The fetcher is
// expected to carry its own retry schedule; the service treats a fetch
// error as final.
type Service[T models.Record] struct {
	policy  KindPolicy
	store   interfaces.RecordStore[T]
	cache   interfaces.CacheStore
	fetcher interfaces.Fetcher[T]
	logger  *common.Logger
	now     func() time.Time
}

// NewService builds a service bound to one kind policy.
func NewService[T models.Record](
	policy KindPolicy,
	store interfaces.RecordStore[T],
	cache interfaces.CacheStore,
	fetcher interfaces.Fetcher[T],
	logger *common.Logger,
) *Service[T] {
	return &Service[T]{
		policy:  policy,
		store:   store,
		cache:   cache,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Kind returns the kind identifier.
func (s *Service[T]) Kind() string {
	return s.policy.Name
}

func normalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", models.ErrInvalidSymbol
	}
	return symbol, nil
}

// latestOf returns the record with the maximum temporal field.
func latestOf[T models.Record](records []T) (T, bool) {
	var latest T
	if len(records) == 0 {
		return latest, false
	}
	latest = records[0]
	for _, r := range records[1:] {
		if r.EffectiveAt().After(latest.EffectiveAt()) {
			latest = r
		}
	}
	return latest, true
}

// cacheRecords writes the symbol's records into the cache according to the
// kind's mode. Cache failures are logged, never surfaced: the store already
// holds the data.
func (s *Service[T]) cacheRecords(ctx context.Context, symbol string, records []T) {
	latest, ok := latestOf(records)
	if !ok {
		return
	}

	if s.policy.Mode == ModeList {
		if err := s.cache.Set(ctx, s.policy.Key(symbol), records, s.policy.TTL); err != nil {
			s.logger.Warn().Str("kind", s.policy.Name).Str("symbol", symbol).Err(err).Msg("Failed to cache record list")
		}
	}
	if err := s.cache.Set(ctx, s.policy.LatestKey(symbol), latest, s.policy.TTL); err != nil {
		s.logger.Warn().Str("kind", s.policy.Name).Str("symbol", symbol).Err(err).Msg("Failed to cache latest record")
	}
}

// cacheRange stores one window's result. Range entries are not evicted on
// writes; they age out on the kind's TTL.
func (s *Service[T]) cacheRange(ctx context.Context, key, symbol string, records []T) {
	if err := s.cache.Set(ctx, key, records, s.policy.TTL); err != nil {
		s.logger.Warn().Str("kind", s.policy.Name).Str("symbol", symbol).Err(err).Msg("Failed to cache range result")
	}
}

// evict drops the symbol's cache entries.
func (s *Service[T]) evict(ctx context.Context, symbol string) {
	for _, key := range []string{s.policy.Key(symbol), s.policy.LatestKey(symbol)} {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn().Str("kind", s.policy.Name).Str("key", key).Err(err).Msg("Failed to evict cache entry")
		}
	}
}

// fetchAndPersist pulls fresh records from the provider, saves them and
// repopulates the cache.
func (s *Service[T]) fetchAndPersist(ctx context.Context, symbol string) ([]T, error) {
	s.logger.Info().Str("kind", s.policy.Name).Str("symbol", symbol).Msg("Fetching records from provider")

	records, err := s.fetcher.Fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	saved, err := s.store.SaveAll(ctx, records)
	if err != nil {
		return nil, err
	}

	s.cacheRecords(ctx, symbol, saved)

	s.logger.Info().Str("kind", s.policy.Name).Str("symbol", symbol).Int("count", len(saved)).Msg("Records fetched and persisted")
	return saved, nil
}

// List returns every stored record of the kind.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	return s.store.All(ctx)
}

// GetByID returns one record by document id.
func (s *Service[T]) GetByID(ctx context.Context, id string) (T, error) {
	return s.store.ByID(ctx, id)
}

// GetBySymbol returns the symbol's records, running the full lookup chain.
func (s *Service[T]) GetBySymbol(ctx context.Context, symbol string) ([]T, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	if s.policy.Mode == ModeList {
		var cached []T
		if found, err := s.cache.Get(ctx, s.policy.Key(symbol), &cached); err == nil && found {
			return cached, nil
		}
	} else {
		var cached T
		if found, err := s.cache.Get(ctx, s.policy.Key(symbol), &cached); err == nil && found {
			return []T{cached}, nil
		}
	}

	stored, err := s.store.BySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(stored) > 0 && !s.stale(stored) {
		s.cacheRecords(ctx, symbol, stored)
		return stored, nil
	}

	return s.fetchAndPersist(ctx, symbol)
}

// GetLatest returns the symbol's most recent record.
func (s *Service[T]) GetLatest(ctx context.Context, symbol string) (T, error) {
	var zero T
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return zero, err
	}

	var cached T
	if found, err := s.cache.Get(ctx, s.policy.LatestKey(symbol), &cached); err == nil && found {
		return cached, nil
	}

	latest, err := s.store.Latest(ctx, symbol)
	if err == nil && !s.stale([]T{latest}) {
		s.cacheRecords(ctx, symbol, []T{latest})
		return latest, nil
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return zero, err
	}

	fetched, err := s.fetchAndPersist(ctx, symbol)
	if err != nil {
		return zero, err
	}
	result, ok := latestOf(fetched)
	if !ok {
		return zero, models.ErrNotFound
	}
	return result, nil
}

// GetRange returns the symbol's records inside [start, end]. Windows are
// cached under a range-suffixed key; a symbol with no stored history is
// fetched first so the range reflects the provider.
func (s *Service[T]) GetRange(ctx context.Context, symbol string, start, end time.Time) ([]T, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	key := s.policy.RangeKey(symbol, start, end)
	var cached []T
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	inRange, err := s.store.Range(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if len(inRange) > 0 {
		s.cacheRange(ctx, key, symbol, inRange)
		return inRange, nil
	}

	stored, err := s.store.BySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(stored) > 0 {
		// History exists, the range is simply empty.
		return nil, nil
	}

	fetched, err := s.fetchAndPersist(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var result []T
	for _, r := range fetched {
		at := r.EffectiveAt()
		if !at.Before(start) && !at.After(end) {
			result = append(result, r)
		}
	}
	if len(result) > 0 {
		s.cacheRange(ctx, key, symbol, result)
	}
	return result, nil
}

// Save stores a record and evicts the symbol's cache entries so the next
// read observes the write.
func (s *Service[T]) Save(ctx context.Context, record T) (T, error) {
	var zero T
	symbol, err := normalizeSymbol(record.SymbolKey())
	if err != nil {
		return zero, err
	}

	saved, err := s.store.Save(ctx, record)
	if err != nil {
		return zero, err
	}
	s.evict(ctx, symbol)
	return saved, nil
}

// Delete removes a record by document id and evicts its symbol's cache.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	record, err := s.store.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, record.SymbolKey())
	return nil
}

// Refresh bypasses both local tiers and pulls fresh records.
func (s *Service[T]) Refresh(ctx context.Context, symbol string) ([]T, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	return s.fetchAndPersist(ctx, symbol)
}

// Symbols lists the distinct symbols with stored records.
func (s *Service[T]) Symbols(ctx context.Context) ([]string, error) {
	return s.store.Symbols(ctx)
}

// stale reports whether stored records have aged past the kind's store
// freshness bound. Kinds without one never go stale.
func (s *Service[T]) stale(records []T) bool {
	if s.policy.StaleAfter <= 0 {
		return false
	}
	latest, ok := latestOf(records)
	if !ok {
		return true
	}
	return s.now().Sub(latest.EffectiveAt()) > s.policy.StaleAfter
}

// Compile-time check
var _ interfaces.RecordService[*models.BalanceSheet] = (*Service[*models.BalanceSheet])(nil)
