// Package scheduler fires registered jobs once per day at fixed wall-clock
// times. A trigger that passes while the process is down is skipped; there is
// no catch-up.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Job is a scheduled unit of work.
type Job func(ctx context.Context)

// Scheduler runs daily jobs at configured HH:MM times in local time.
type Scheduler struct {
	c   *cron.Cron
	log *slog.Logger
	ctx context.Context
}

// New creates an empty Scheduler.
func New(log *slog.Logger) *Scheduler {
	return &Scheduler{
		c:   cron.New(),
		log: log,
		ctx: context.Background(),
	}
}

// AddDaily registers job to run every day at the given "HH:MM" time.
func (s *Scheduler) AddDaily(name, at string, job Job) error {
	spec, err := parseDaily(at)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}

	_, err = s.c.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("job panicked", "job", name, "panic", r)
			}
		}()
		s.log.Info("job triggered", "job", name, "at", at)
		job(s.ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

// Run starts the scheduler, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.ctx = ctx
	s.c.Start()
	<-ctx.Done()
	stopCtx := s.c.Stop()
	<-stopCtx.Done()
}

// parseDaily converts "HH:MM" into a cron spec firing once per day.
func parseDaily(at string) (string, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(at, "%d:%d", &hour, &minute); err != nil {
		return "", fmt.Errorf("invalid time %q, want HH:MM", at)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid time %q, want HH:MM", at)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
