package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CycleFunc is invoked once per trading-day bucket.
type CycleFunc func(ctx context.Context, day time.Time) error

// Options tune scheduler behaviour.
type Options struct {
	Interval     time.Duration
	AlignToStart bool
	StartupDelay time.Duration
}

// Scheduler drives aligned execution of learning cycles.
type Scheduler struct {
	opts   Options
	logger zerolog.Logger
}

// New constructs a Scheduler instance.
func New(opts Options, logger zerolog.Logger) *Scheduler {
	if opts.Interval <= 0 {
		panic("scheduler interval must be positive")
	}
	return &Scheduler{opts: opts, logger: logger.With().Str("component", "scheduler").Logger()}
}

// Run blocks, invoking the cycle function once per interval until ctx is
// cancelled. A cycle error is logged, never fatal; the next interval still
// fires.
func (s *Scheduler) Run(ctx context.Context, cycle CycleFunc) error {
	if err := s.wait(ctx, s.opts.StartupDelay); err != nil {
		return err
	}

	next := s.nextRun(time.Now().UTC())
	for {
		delay := time.Until(next)
		if delay < 0 {
			// Missed the slot (e.g. a long cycle); realign instead of
			// firing a burst of catch-up runs.
			next = s.nextRun(time.Now().UTC())
			continue
		}

		s.logger.Debug().Time("next_run", next).Msg("waiting for next cycle")
		if err := s.wait(ctx, delay); err != nil {
			return err
		}

		day := s.bucketStart(next)
		s.logger.Info().Time("day", day).Msg("executing learning cycle")
		if err := cycle(ctx, day); err != nil {
			s.logger.Error().Err(err).Time("day", day).Msg("cycle execution failed")
		}

		next = next.Add(s.opts.Interval)
	}
}

func (s *Scheduler) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Scheduler) nextRun(now time.Time) time.Time {
	if !s.opts.AlignToStart {
		return now.Add(s.opts.Interval)
	}
	bucket := now.Truncate(s.opts.Interval)
	if !bucket.After(now) {
		bucket = bucket.Add(s.opts.Interval)
	}
	return bucket
}

func (s *Scheduler) bucketStart(t time.Time) time.Time {
	if !s.opts.AlignToStart {
		return t
	}
	return t.Truncate(s.opts.Interval)
}
