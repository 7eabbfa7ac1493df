package cron

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/config"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/service/sweep"
)

// SweepJobs wires the reconciliation sweeps into the scheduler. The
// first absence pass after process start uses the wide catch-up
// lookback so downtime is covered; every later pass uses the narrow
// one.
type SweepJobs struct {
	sweepService *sweep.SweepService
	cfg          config.SweepConfig

	catchupDone atomic.Bool
}

func NewSweepJobs(sweepService *sweep.SweepService, cfg config.SweepConfig) *SweepJobs {
	return &SweepJobs{
		sweepService: sweepService,
		cfg:          cfg,
	}
}

func (j *SweepJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("absence_backfill", j.cfg.AbsenceInterval, j.SweepAbsences)
	scheduler.AddJob("auto_checkout", j.cfg.AutoCheckoutInterval, j.SweepAutoCheckouts)
}

func (j *SweepJobs) SweepAbsences(ctx context.Context) error {
	lookback := j.cfg.AbsenceLookback
	if j.catchupDone.CompareAndSwap(false, true) {
		lookback = j.cfg.AbsenceCatchupLookback
		slog.Info("Cron: absence catch-up pass", "lookback", lookback)
	}

	created, err := j.sweepService.SweepAbsences(ctx, lookback, nil)
	if err != nil {
		return err
	}
	slog.Debug("Cron: absence backfill pass finished", "created", created)
	return nil
}

func (j *SweepJobs) SweepAutoCheckouts(ctx context.Context) error {
	closed, err := j.sweepService.SweepAutoCheckouts(ctx, j.cfg.AutoCheckoutLookback, nil)
	if err != nil {
		return err
	}
	slog.Debug("Cron: auto-checkout pass finished", "closed", closed)
	return nil
}
