package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	loyaltydomain "github.com/loyaltyhq/loyalty/internal/loyalty/domain"
	"github.com/loyaltyhq/loyalty/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const jobRecalculateTiers = "recalculate_tiers"

type Params struct {
	fx.In

	Log     *zap.Logger
	Loyalty loyaltydomain.Service
	Holder  *ConfigHolder
	Metrics *metrics.JobMetrics
}

// Scheduler periodically resynchronizes every customer's stored tier with
// the order ledger. Tier boundaries move at the calendar year rollover, so
// this loop is what demotes customers whose qualifying window has shifted.
type Scheduler struct {
	log     *zap.Logger
	loyalty loyaltydomain.Service
	holder  *ConfigHolder
	metrics *metrics.JobMetrics
}

func New(p Params) *Scheduler {
	return &Scheduler{
		log:     p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		loyalty: p.Loyalty,
		holder:  p.Holder,
		metrics: p.Metrics,
	}
}

func (s *Scheduler) RunOnce(ctx context.Context) error {
	runID := uuid.NewString()
	log := s.log.With(
		zap.String("job", jobRecalculateTiers),
		zap.String("run_id", runID),
	)

	start := time.Now()
	s.metrics.IncJobRun(jobRecalculateTiers)
	log.Info("job started")

	report, err := s.loyalty.RecalculateAllTiers(ctx)
	s.metrics.ObserveJobDuration(jobRecalculateTiers, time.Since(start))
	if err != nil {
		s.metrics.IncJobError(jobRecalculateTiers)
		log.Error("job failed", zap.Error(err))
		return fmt.Errorf("%s: %w", jobRecalculateTiers, err)
	}

	if len(report.Failed) > 0 {
		s.metrics.AddCustomerFailures(len(report.Failed))
		for _, failure := range report.Failed {
			log.Warn("customer recalculation failed",
				zap.String("customer_id", failure.CustomerID),
				zap.String("error", failure.Error),
			)
		}
	}

	log.Info("job finished",
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", len(report.Failed)),
	)
	return nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	for {
		cfg := s.holder.Get()
		if cfg.Enabled {
			if err := s.RunOnce(ctx); err != nil {
				s.log.Warn("scheduler run failed", zap.Error(err))
			}
		}

		// The interval is re-read every cycle so config reloads take
		// effect without a restart.
		timer := time.NewTimer(cfg.RunInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
