package viewer

import (
	"time"

	"go.uber.org/fx"

	"orslog/internal/app/bus"
	"orslog/internal/app/logs"
)

// Module provides the viewing session
var Module = fx.Module("viewer",
	fx.Provide(func(store logs.Store, b bus.Bus) *Session {
		return NewSession(store, b, time.Now())
	}),
)
