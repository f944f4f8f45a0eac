package bootstrap

import (
	"gin-jobqueue/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	ConfigPartsOption,
)

// ConfigPartsOption exposes the sections constructors take directly.
var ConfigPartsOption = fx.Provide(
	func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
	func(cfg config.Config) config.QueueConfig { return cfg.Queue },
)
