package bootstrap

import (
	"context"
	"log/slog"

	"gin-jobqueue/internal/pkg/config"
	"gin-jobqueue/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		worker.NewPool,
		worker.NewRetention,
	),
	fx.Invoke(
		startWorkers,
		startRetention,
	),
)

func startWorkers(lc fx.Lifecycle, pool *worker.Pool, cfg config.WorkerConfig) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return pool.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
			defer cancel()
			return pool.Stop(stopCtx)
		},
	})
}

func startRetention(lc fx.Lifecycle, r *worker.Retention, cfg config.QueueConfig, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if cfg.RetentionDays <= 0 {
				logger.Info("job retention disabled")
				return nil
			}
			r.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return r.Stop(ctx)
		},
	})
}
