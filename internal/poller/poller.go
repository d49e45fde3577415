// Package poller refreshes feeds on a cron schedule. A job still running
// when its next tick fires is skipped, so one feed never has two polls in
// flight.
package poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

const DefaultSchedule = "@every 5s"

type Job interface {
	Name() string
	Poll(ctx context.Context) error
}

type Poller struct {
	cron *cron.Cron
	log  *slog.Logger
	ctx  context.Context
}

func New(schedule string, log *slog.Logger, jobs ...Job) (*Poller, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	cl := cronLogger{log: log}
	p := &Poller{
		cron: cron.New(cron.WithLogger(cl), cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		log: log,
		ctx: context.Background(),
	}
	for _, job := range jobs {
		if _, err := p.cron.AddJob(schedule, p.wrap(job)); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", job.Name(), err)
		}
	}
	return p, nil
}

func (p *Poller) wrap(job Job) cron.Job {
	return cron.FuncJob(func() {
		ctx := logger.ToContext(p.ctx, p.log.With("job", job.Name()))
		if err := job.Poll(ctx); err != nil {
			p.log.Warn("poll failed", "job", job.Name(), "error", err)
		}
	})
}

// Run starts the schedule and blocks until ctx is cancelled, then waits
// for running jobs to finish.
func (p *Poller) Run(ctx context.Context) {
	p.ctx = ctx
	p.cron.Start()
	p.log.Info("poller started", "jobs", len(p.cron.Entries()))
	<-ctx.Done()
	<-p.cron.Stop().Done()
	p.log.Info("poller stopped")
}

// cronLogger adapts slog to cron's logger. Cron's info lines are noisy and
// go to debug.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
