package logs

import (
	"go.uber.org/fx"

	"orslog/internal/config"
)

// Module provides the fx dependency injection options for the logs package
var Module = fx.Options(
	fx.Provide(func(cfg *config.Config) Store {
		return NewStore(cfg.Viewer.MaxEntries)
	}),
)
