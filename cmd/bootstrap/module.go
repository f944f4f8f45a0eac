package bootstrap

import (
	"gin-jobqueue/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	MetricsModule,
	components.UseCaseModule,
	components.HandlerModule,
	WorkerModule,
)
