package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tabreed/stockline/internal/common"
	"github.com/tabreed/stockline/internal/interfaces"
)

// ScheduledRunner is what the scheduler needs from a refresh runner.
type ScheduledRunner interface {
	interfaces.RefreshRunner
	Schedule() string
	SetNextRun(time.Time)
}

// Scheduler drives the per-kind refresh runners on their cron expressions.
// Expressions use six fields with seconds first, plus @every descriptors.
type Scheduler struct {
	cron   *cron.Cron
	logger *common.Logger
	jobs   map[cron.EntryID]ScheduledRunner
}

// NewScheduler builds an idle scheduler. Register then Start.
func NewScheduler(logger *common.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
		jobs:   map[cron.EntryID]ScheduledRunner{},
	}
}

// Register adds every runner that carries a schedule. Runners with an empty
// schedule stay manual-only.
func (s *Scheduler) Register(runners []ScheduledRunner) error {
	for _, runner := range runners {
		if runner.Schedule() == "" {
			s.logger.Debug().Str("kind", runner.Kind()).Msg("No refresh schedule, manual trigger only")
			continue
		}

		runner := runner
		id, err := s.cron.AddFunc(runner.Schedule(), func() {
			if _, err := runner.Run(context.Background(), "cron"); err != nil {
				s.logger.Error().Str("kind", runner.Kind()).Err(err).Msg("Scheduled refresh failed")
			}
			s.updateNextRuns()
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q for %s: %w", runner.Schedule(), runner.Kind(), err)
		}

		s.jobs[id] = runner
		s.logger.Info().Str("kind", runner.Kind()).Str("schedule", runner.Schedule()).Msg("Refresh schedule registered")
	}
	return nil
}

// Start begins firing schedules and publishes each runner's next fire time.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.updateNextRuns()
}

// Stop halts the scheduler and waits for in-flight jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) updateNextRuns() {
	for id, runner := range s.jobs {
		entry := s.cron.Entry(id)
		if !entry.Next.IsZero() {
			runner.SetNextRun(entry.Next)
		}
	}
}
