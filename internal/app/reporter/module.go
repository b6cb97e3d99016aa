package reporter

import (
	"context"

	"go.uber.org/fx"

	"orslog/internal/app/bus"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

// Module provides the error reporter, feeds it viewer events and flushes it on shutdown
var Module = fx.Module("reporter",
	fx.Provide(func(cfg *config.Config, log logger.Logger) Reporter {
		return New(cfg, log.WithComponent("REPORTER"))
	}),
	fx.Invoke(Register),
)

// Register runs the event listener for the app lifetime
func Register(lc fx.Lifecycle, b bus.Bus, r Reporter, log logger.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	listener := NewListener(b, r, log.WithComponent("REPORTER"))

	var done <-chan struct{}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			done = listener.Start(ctx)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()

			select {
			case <-done:
			case <-stopCtx.Done():
			}

			r.Flush()

			return nil
		},
	})
}
