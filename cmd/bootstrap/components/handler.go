package components

import (
	"gin-jobqueue/internal/handler"
	"gin-jobqueue/internal/handler/api"
	"gin-jobqueue/internal/handler/middleware"
	"gin-jobqueue/internal/worker"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewUserHandler,
		api.NewMovieHandler,
		api.NewJobHandler,
		api.NewQueueHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		func(p *worker.Pool) api.WorkerStats { return p },
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Auth  *api.AuthHandler
	User  *api.UserHandler
	Movie *api.MovieHandler
	Job   *api.JobHandler
	Queue *api.QueueHandler
	Admin *api.AdminHandler
}

func newHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Auth:  p.Auth,
		User:  p.User,
		Movie: p.Movie,
		Job:   p.Job,
		Queue: p.Queue,
		Admin: p.Admin,
	}
}
