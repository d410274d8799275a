package reaper

import (
	"context"
	"mentorin-service/internal/app/config"
	"mentorin-service/internal/app/contracts"
	"mentorin-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Worker drives the expiry sweep on a cron cadence. A redis leader lock keeps
// the sweep single-instance when several replicas run.
type Worker struct {
	log     *zap.Logger
	cfg     *config.InternalConfig
	locker  contracts.LockerService
	usecase contracts.ExpiryReaperUsecase
	cron    *cron.Cron
	runCtx  context.Context
	cancel  context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, usecase contracts.ExpiryReaperUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, usecase: usecase}
}

// Start schedules the sweep. An invalid cron spec falls back to @hourly.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Reaper.CronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reaper.worker: failed to schedule with provided cron spec; falling back to @hourly", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@hourly", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight sweeps and waits for running jobs to finish.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	ttl := time.Duration(w.cfg.Reaper.LeaderLockTTLInSeconds) * time.Second
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReaperLeaderLock, ttl)
	if err != nil {
		w.log.Warn("reaper.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("reaper.worker: leader lock not acquired; another instance is sweeping")
		return
	}
	defer w.locker.Unlock(ctx, constvars.RedisKeyReaperLeaderLock, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(ctx, constvars.RedisKeyReaperLeaderLock, token, ttl); err != nil {
					w.log.Warn("reaper.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	deleted, err := w.usecase.SweepExpired(ctx, time.Now())
	if err != nil {
		w.log.Warn("reaper.worker: sweep failed", zap.Error(err))
		return
	}
	w.log.Info("reaper.worker: sweep finished", zap.Int(constvars.LoggingDeletedCountKey, deleted))
}
