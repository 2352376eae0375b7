package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/camuig/ticker-digest/internal/digest"
	"github.com/camuig/ticker-digest/internal/logger"
)

// Job is one digest run.
type Job interface {
	Run(ctx context.Context) (*digest.Result, error)
}

// Notifier is told about runs that crashed.
type Notifier interface {
	NotifyError(context string, err error)
}

// Scheduler repeats the digest on a cron spec. A run still in progress
// causes the next tick to be skipped.
type Scheduler struct {
	cron     *cron.Cron
	job      Job
	notifier Notifier
	logger   *logger.Logger

	// set by Run before the first tick
	ctx context.Context
}

func New(spec string, job Job, log *logger.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLogger(log.Cron()), cron.WithChain(cron.SkipIfStillRunning(log.Cron())))

	s := &Scheduler{cron: c, job: job, logger: log, ctx: context.Background()}
	if _, err := c.AddFunc(spec, func() { s.runCycle(s.ctx) }); err != nil {
		return nil, fmt.Errorf("add cron job %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) WithNotifier(n Notifier) *Scheduler {
	s.notifier = n
	return s
}

// Run blocks until ctx is cancelled, then waits for an in-flight run.
// Runs receive ctx, so cancelling it also aborts their feed and webhook calls.
func (s *Scheduler) Run(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.logger.Info("scheduler started", "entries", len(s.cron.Entries()))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in digest run", "panic", fmt.Sprint(r))
			if s.notifier != nil {
				s.notifier.NotifyError("scheduled digest panicked", fmt.Errorf("%v", r))
			}
		}
	}()

	res, err := s.job.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled digest failed", "error", err)
		return
	}
	s.logger.Info("scheduled digest posted", "run_id", res.RunID, "articles", res.Articles)
}
