// Package scheduler drives the periodic escalation sweep.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepFunc runs one escalation sweep pass.
type SweepFunc func(ctx context.Context) error

// Scheduler fires the sweep on a cron schedule. A tick is skipped when
// the previous sweep is still running, so at most one sweep is in
// flight at any time.
type Scheduler struct {
	cron    *cron.Cron
	sweep   SweepFunc
	logger  *zap.Logger
	running atomic.Bool
}

// New creates a scheduler around the given sweep function.
func New(sweep SweepFunc, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		sweep:  sweep,
		logger: logger,
	}
}

// Register adds the sweep under a cron expression (5 fields or a
// predefined schedule like @every 1h).
func (s *Scheduler) Register(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.fire)
	if err != nil {
		return fmt.Errorf("scheduler: invalid schedule %q: %w", schedule, err)
	}
	s.logger.Info("sweep scheduled", zap.String("schedule", schedule))
	return nil
}

// Start begins the cron loop and blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info("scheduler started")

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) fire() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("sweep still running; skipping tick")
		return
	}
	defer s.running.Store(false)

	if err := s.sweep(context.Background()); err != nil {
		s.logger.Error("sweep run failed", zap.Error(err))
	}
}
