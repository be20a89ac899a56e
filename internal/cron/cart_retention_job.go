package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/whatscart/whatscart-backend/pkg/logger"
	"github.com/whatscart/whatscart-backend/pkg/metrics"
)

const (
	cartRetentionJobName = "cart-retention"
	cartRetentionDays    = 90
)

type staleCartSweeper interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// CartRetentionJobParams configure the abandoned-cart cleanup.
type CartRetentionJobParams struct {
	Logger        *logger.Logger
	Repository    staleCartSweeper
	Metrics       *metrics.CronJobMetrics
	RetentionDays int
}

// NewCartRetentionJob drops carts untouched for the retention window. Buyers
// who return later simply start a fresh cart under the same token.
func NewCartRetentionJob(params CartRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = cartRetentionDays
	}
	return &cartRetentionJob{
		logg:      params.Logger,
		repo:      params.Repository,
		metrics:   params.Metrics,
		retention: retention,
		now:       time.Now,
	}, nil
}

type cartRetentionJob struct {
	logg      *logger.Logger
	repo      staleCartSweeper
	metrics   *metrics.CronJobMetrics
	retention int
	now       func() time.Time
}

func (j *cartRetentionJob) Name() string { return cartRetentionJobName }

func (j *cartRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	deleted, err := j.repo.DeleteStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cart retention: %w", err)
	}
	if j.metrics != nil {
		j.metrics.AddProcessed(j.Name(), deleted)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "cart retention cleanup complete")
	return nil
}
