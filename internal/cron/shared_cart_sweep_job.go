package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/whatscart/whatscart-backend/pkg/logger"
	"github.com/whatscart/whatscart-backend/pkg/metrics"
)

const sharedCartSweepJobName = "shared-cart-sweep"

type sharedCartSweeper interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// SharedCartSweepJobParams configure the expired-snapshot sweep.
type SharedCartSweepJobParams struct {
	Logger     *logger.Logger
	Repository sharedCartSweeper
	Metrics    *metrics.CronJobMetrics
}

// NewSharedCartSweepJob removes shared-cart snapshots whose TTL has passed.
// Expired snapshots already 404 at the API; the sweep only reclaims storage.
func NewSharedCartSweepJob(params SharedCartSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("shared cart repository required")
	}
	return &sharedCartSweepJob{
		logg:    params.Logger,
		repo:    params.Repository,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

type sharedCartSweepJob struct {
	logg    *logger.Logger
	repo    sharedCartSweeper
	metrics *metrics.CronJobMetrics
	now     func() time.Time
}

func (j *sharedCartSweepJob) Name() string { return sharedCartSweepJobName }

func (j *sharedCartSweepJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC()
	deleted, err := j.repo.DeleteExpired(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("shared cart sweep: %w", err)
	}
	if j.metrics != nil {
		j.metrics.AddProcessed(j.Name(), deleted)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "shared cart sweep complete")
	return nil
}
