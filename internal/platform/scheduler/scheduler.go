// Package scheduler runs the service's periodic housekeeping: closing idle
// todo views and purging expired in-memory sessions.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Job is a task run every Interval. Runs never overlap.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	cron   gocron.Scheduler
	logger *slog.Logger
}

// New creates a Scheduler with jobs registered but not started.
func New(logger *slog.Logger, jobs ...Job) (*Scheduler, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}

	s := &Scheduler{cron: cron, logger: logger}
	for _, j := range jobs {
		if j.Interval <= 0 {
			_ = cron.Shutdown()
			return nil, fmt.Errorf("job %s: interval must be positive", j.Name)
		}
		if _, err := cron.NewJob(
			gocron.DurationJob(j.Interval),
			gocron.NewTask(s.wrap(j)),
			gocron.WithName(j.Name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		); err != nil {
			_ = cron.Shutdown()
			return nil, fmt.Errorf("scheduling %s: %w", j.Name, err)
		}
	}
	return s, nil
}

// Start begins running jobs. It does not block.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.cron.Jobs())))
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	if err := s.cron.Shutdown(); err != nil {
		return fmt.Errorf("stopping scheduler: %w", err)
	}
	return nil
}

func (s *Scheduler) wrap(j Job) func(context.Context) {
	return func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("scheduled job panicked",
					slog.String("job", j.Name),
					slog.Any("panic", r),
				)
			}
		}()
		j.Run(ctx)
	}
}

// IdleSweeper closes views unused for longer than idle.
type IdleSweeper interface {
	SweepIdle(now time.Time, idle time.Duration) int
}

// Purger drops expired entries.
type Purger interface {
	Purge(now time.Time) int
}

// SweepIdleViews returns a job closing views idle for longer than idle.
func SweepIdleViews(views IdleSweeper, idle, every time.Duration, logger *slog.Logger) Job {
	return Job{
		Name:     "sweep-idle-views",
		Interval: every,
		Run: func(ctx context.Context) {
			if n := views.SweepIdle(time.Now(), idle); n > 0 {
				logger.InfoContext(ctx, "closed idle views", slog.Int("count", n))
			}
		},
	}
}

// PurgeSessions returns a job dropping expired sessions from p.
func PurgeSessions(p Purger, every time.Duration, logger *slog.Logger) Job {
	return Job{
		Name:     "purge-sessions",
		Interval: every,
		Run: func(ctx context.Context) {
			if n := p.Purge(time.Now()); n > 0 {
				logger.DebugContext(ctx, "purged expired sessions", slog.Int("count", n))
			}
		},
	}
}
