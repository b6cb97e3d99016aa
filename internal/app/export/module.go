package export

import (
	"go.uber.org/fx"

	"orslog/internal/config"
	"orslog/internal/config/logger"
)

// Module provides the exporter and its permission flow
var Module = fx.Module("export",
	fx.Provide(func(cfg *config.Config, log logger.Logger) Exporter {
		return NewExporter(cfg.Viewer.ExportDir, log.WithComponent("EXPORT"))
	}),
	fx.Provide(func(exporter Exporter, log logger.Logger) *Flow {
		return NewFlow(exporter, log.WithComponent("EXPORT"))
	}),
)
