// Package sched runs collection cycles on a cron schedule.
package sched

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/fennecworks/dealscope/pkg/errors"
	"github.com/fennecworks/dealscope/pkg/logging"
)

// RunFunc is one full collection cycle: collect, clean, persist.
type RunFunc func(ctx context.Context) error

// Scheduler triggers a RunFunc on a cron schedule. Overlapping runs are
// skipped rather than queued; a cycle that outlives its interval should
// not stack.
type Scheduler struct {
	cron *cron.Cron
	run  RunFunc
	spec string

	mu      sync.Mutex
	running bool
}

// New creates a Scheduler for a standard 5-field cron spec.
func New(spec string, run RunFunc) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		run:  run,
		spec: spec,
	}
}

// Start validates the spec, registers the job, and starts the cron loop.
// The context is passed through to every triggered run.
func (s *Scheduler) Start(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	_, err := s.cron.AddFunc(s.spec, func() {
		if !s.tryAcquire() {
			logger.Warn().Str("schedule", s.spec).Msg("Previous run still active, skipping")
			return
		}
		defer s.release()

		if err := s.run(ctx); err != nil {
			logger.Error().Err(err).Msg("Scheduled run failed")
		}
	})
	if err != nil {
		return &errors.ConfigError{Component: "scheduler", Message: "invalid schedule " + s.spec, Err: err}
	}

	s.cron.Start()
	logger.Info().Str("schedule", s.spec).Msg("Scheduler started")
	return nil
}

// Stop halts the cron loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunNow executes one cycle immediately, outside the schedule. It reports
// errors.ErrCanceled if a scheduled run is already in flight.
func (s *Scheduler) RunNow(ctx context.Context) error {
	if !s.tryAcquire() {
		return errors.Wrap(errors.ErrCanceled, "run already in flight")
	}
	defer s.release()
	return s.run(ctx)
}

func (s *Scheduler) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}
