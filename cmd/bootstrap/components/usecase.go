package components

import (
	"gin-jobqueue/internal/pkg/clock"
	"gin-jobqueue/internal/usecase"
	"gin-jobqueue/internal/usecase/commands"
	"gin-jobqueue/internal/usecase/queries"
	"gin-jobqueue/internal/usecase/queue"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueueModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueueModule = fx.Module("usecase/queue",
	fx.Provide(
		queue.NewDefaultRegistry,
		queue.OptionsFromConfig,
		queue.NewService,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewUserCommands,
		commands.NewMovieCommands,
		commands.NewAdminCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewMovieQueries,
		queries.NewAdminQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
