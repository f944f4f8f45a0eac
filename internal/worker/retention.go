package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gin-jobqueue/internal/pkg/config"
	"gin-jobqueue/internal/usecase/queue"

	"github.com/robfig/cron/v3"
)

const retentionRunTimeout = 5 * time.Minute

// Retention deletes old completed jobs on a cron schedule.
type Retention struct {
	cron     *cron.Cron
	svc      queue.Service
	days     int
	schedule string
	logger   *slog.Logger
}

func NewRetention(svc queue.Service, cfg config.QueueConfig, logger *slog.Logger) (*Retention, error) {
	r := &Retention{
		cron:     cron.New(),
		svc:      svc,
		days:     cfg.RetentionDays,
		schedule: cfg.CleanupSchedule,
		logger:   logger,
	}
	if _, err := r.cron.AddFunc(cfg.CleanupSchedule, r.run); err != nil {
		return nil, fmt.Errorf("invalid QUEUE_CLEANUP_SCHEDULE %q: %w", cfg.CleanupSchedule, err)
	}
	return r, nil
}

func (r *Retention) Start() {
	r.logger.Info("retention scheduler started", "schedule", r.schedule, "retention_days", r.days)
	r.cron.Start()
}

// Stop waits for a running cleanup unless ctx ends first.
func (r *Retention) Stop(ctx context.Context) error {
	select {
	case <-r.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Retention) RunNow(ctx context.Context) (int64, error) {
	return r.svc.Cleanup(ctx, r.days)
}

func (r *Retention) run() {
	ctx, cancel := context.WithTimeout(context.Background(), retentionRunTimeout)
	defer cancel()

	if _, err := r.RunNow(ctx); err != nil {
		r.logger.Error("scheduled cleanup failed", "error", err.Error())
	}
}
