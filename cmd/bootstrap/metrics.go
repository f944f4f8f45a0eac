package bootstrap

import (
	"gin-jobqueue/internal/metrics"

	"go.uber.org/fx"
)

// Instruments bind to the global otel MeterProvider; without an SDK installed
// they are no-ops.
var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.NewRecorder,
	),
)
