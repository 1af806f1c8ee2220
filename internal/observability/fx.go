package observability

import (
	"github.com/Jguyatt/backend/internal/observability/logger"
	"github.com/Jguyatt/backend/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(logger.New),
	fx.Provide(func() prometheus.Registerer { return prometheus.DefaultRegisterer }),
	fx.Provide(metrics.NewHTTPMetrics),
)
