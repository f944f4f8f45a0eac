package bootstrap

import (
	"context"
	"log/slog"

	"gin-jobqueue/internal/infra/db"
	"gin-jobqueue/internal/infra/memory"
	"gin-jobqueue/internal/infra/uow"
	"gin-jobqueue/internal/pkg/config"
	"gin-jobqueue/internal/pkg/errs"
	"gin-jobqueue/internal/usecase/shared"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork selects the job store from QUEUE_STORE. The memory store
// lives only as long as the process.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	switch cfg.Queue.Store {
	case "memory":
		logger.Warn("using in-memory job store; queued writes are lost on restart")
		return memory.NewUoW(memory.NewStore()), nil
	case "postgres":
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		return uow.NewPostgresUoW(pool, uow.WithLogger(logger)), nil
	default:
		return nil, errs.Newf("unsupported QUEUE_STORE %q", cfg.Queue.Store)
	}
}
