// Package refresh drives batch record updates across all stored symbols.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/interfaces"
	"github.com/tabreed/stockline/internal/models"
)

// Runner refreshes every stored symbol of one kind. A failing symbol is
// recorded and the batch moves on; only an empty symbol list or a listing
// failure aborts the run.
type Runner[T models.Record] struct {
	service     interfaces.RecordService[T]
	schedule    string
	symbolDelay time.Duration
	logger      *common.Logger

	mu      sync.Mutex
	running bool
	lastRun *models.RefreshRun
	nextRun *time.Time
}

// NewRunner builds a runner for one kind. schedule is the cron expression
// shown in status output, empty for manual-only kinds.
func NewRunner[T models.Record](service interfaces.RecordService[T], schedule string, symbolDelay time.Duration, logger *common.Logger) *Runner[T] {
	return &Runner[T]{
		service:     service,
		schedule:    schedule,
		symbolDelay: symbolDelay,
		logger:      logger,
	}
}

// Kind returns the kind this runner refreshes.
func (r *Runner[T]) Kind() string {
	return r.service.Kind()
}

// Schedule returns the cron expression, empty for manual-only kinds.
func (r *Runner[T]) Schedule() string {
	return r.schedule
}

// SetNextRun records the scheduler's next fire time for status reporting.
func (r *Runner[T]) SetNextRun(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextRun = &t
}

// Run refreshes every stored symbol sequentially with a pause between
// symbols. Concurrent runs of the same kind are rejected.
func (r *Runner[T]) Run(ctx context.Context, trigger string) (*models.RefreshRun, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, fmt.Errorf("%s refresh already running", r.Kind())
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	run := &models.RefreshRun{
		Kind:      r.Kind(),
		Trigger:   trigger,
		StartedAt: time.Now().UTC(),
	}

	symbols, err := r.service.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s symbols: %w", r.Kind(), err)
	}
	run.Symbols = len(symbols)

	r.logger.Info().Str("kind", r.Kind()).Str("trigger", trigger).Int("symbols", len(symbols)).Msg("Refresh run started")

	for i, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			run.Errors = append(run.Errors, fmt.Sprintf("aborted: %v", err))
			break
		}

		if _, err := r.service.Refresh(ctx, symbol); err != nil {
			run.Failed++
			run.Errors = append(run.Errors, fmt.Sprintf("%s: %v", symbol, err))
			r.logger.Error().Str("kind", r.Kind()).Str("symbol", symbol).Err(err).Msg("Symbol refresh failed")
		} else {
			run.Succeeded++
		}

		if i < len(symbols)-1 && r.symbolDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(r.symbolDelay):
			}
		}
	}

	run.CompletedAt = time.Now().UTC()

	r.mu.Lock()
	r.lastRun = run
	r.mu.Unlock()

	r.logger.Info().
		Str("kind", r.Kind()).
		Int("succeeded", run.Succeeded).
		Int("failed", run.Failed).
		Dur("duration", run.Duration()).
		Msg("Refresh run completed")

	return run, nil
}

// Status reports the runner's schedule, last run and next fire time.
func (r *Runner[T]) Status() *models.RefreshStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &models.RefreshStatus{
		Kind:     r.Kind(),
		Schedule: r.schedule,
		Running:  r.running,
		LastRun:  r.lastRun,
		NextRun:  r.nextRun,
	}
}

// Compile-time check
var _ interfaces.RefreshRunner = (*Runner[*models.BalanceSheet])(nil)
