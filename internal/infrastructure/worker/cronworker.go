package worker

import (
	"context"
	"fmt"
	"time"

	"cryptocompare-client/internal/application"
	"cryptocompare-client/internal/domain"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var _ application.Worker = (*CronWorker)(nil)

// Poller is the unit of work run on every tick.
type Poller interface {
	Poll(ctx context.Context) (domain.Candle, error)
}

// CronWorker runs a Poller on a cron schedule ("@every 15s", "*/5 * * * *").
// A failed poll is logged and the schedule continues.
type CronWorker struct {
	Poller   Poller
	Schedule cron.Schedule
	Timeout  time.Duration // per poll; 0 means no extra deadline
	Log      *zap.Logger

	spec string
}

func NewCronWorker(p Poller, spec string, timeout time.Duration, log *zap.Logger) (*CronWorker, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("cron worker: parse schedule %q: %w", spec, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CronWorker{Poller: p, Schedule: sched, Timeout: timeout, Log: log, spec: spec}, nil
}

// Start polls once immediately, then on every scheduled tick until ctx is done.
// Overlapping ticks are skipped while a poll is still running. Start returns
// only after the in-flight poll, if any, has finished.
func (w *CronWorker) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}

	// The first run shares the skip lock with scheduled ticks.
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		w.tick(ctx, log)
	}))

	c := cron.New()
	c.Schedule(w.Schedule, job)

	log.Info("cron_worker_started", zap.String("schedule", w.spec))
	first := make(chan struct{})
	go func() {
		defer close(first)
		job.Run()
	}()
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	<-first
	log.Info("cron_worker_stopped")
}

func (w *CronWorker) tick(ctx context.Context, log *zap.Logger) {
	if ctx.Err() != nil {
		return
	}
	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	start := time.Now()
	c, err := w.Poller.Poll(ctx)
	if err != nil {
		log.Warn("poll_failed", zap.Error(err), zap.Duration("took", time.Since(start)))
		return
	}
	log.Debug("poll_done",
		zap.String("pair", c.FromSymbol+"/"+c.ToSymbol),
		zap.Int64("bucket", c.Record.Time),
		zap.Duration("took", time.Since(start)),
	)
}
