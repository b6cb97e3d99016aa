package publisher

import (
	"go.uber.org/fx"

	"orslog/internal/app/broadcast"
	"orslog/internal/config/logger"
)

// Module provides the publisher for dependency injection
var Module = fx.Module("publisher",
	fx.Provide(func(sender broadcast.Sender, log logger.Logger) Publisher {
		return New(sender, log.WithComponent("PUBLISHER"))
	}),
)
