package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rkotecha/tilebill-backend/internal/bills"
	"github.com/rkotecha/tilebill-backend/pkg/logger"
	"github.com/rkotecha/tilebill-backend/pkg/metrics"
)

const billRetentionDays = 30

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// BillRetentionJobParams configure the bill retention sweep.
type BillRetentionJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository bills.BillRepository
	Retention  int
	Metrics    *metrics.CronJobMetrics
}

// NewBillRetentionJob builds the job that removes bills older than the
// retention horizon.
func NewBillRetentionJob(params BillRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("bill repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = billRetentionDays
	}
	return &billRetentionJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		retention: retention,
		metrics:   params.Metrics,
		now:       time.Now,
	}, nil
}

type billRetentionJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      bills.BillRepository
	retention int
	metrics   *metrics.CronJobMetrics
	now       func() time.Time
}

func (j *billRetentionJob) Name() string { return "bill-retention" }

func (j *billRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	var deleted int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.WithTx(tx).DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("bill retention: %w", err)
	}
	if j.metrics != nil {
		j.metrics.AddSwept(j.Name(), deleted)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"bills_deleted":  deleted,
	})
	j.logg.Info(logCtx, "bill retention sweep complete")
	return nil
}
