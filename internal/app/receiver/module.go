package receiver

import (
	"go.uber.org/fx"

	"orslog/internal/app/broadcast"
	"orslog/internal/app/bus"
	"orslog/internal/app/logs"
	"orslog/internal/app/monitor"
	"orslog/internal/app/reporter"
	"orslog/internal/config/logger"
)

// Module provides the receiver for dependency injection
var Module = fx.Module("receiver",
	fx.Provide(func(
		server broadcast.Server,
		store logs.Store,
		b bus.Bus,
		mon monitor.Monitor,
		rep reporter.Reporter,
		log logger.Logger,
	) Receiver {
		return New(server, store, b, mon, rep, log.WithComponent("RECEIVER"))
	}),
)
