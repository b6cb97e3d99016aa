package broadcast

import (
	"go.uber.org/fx"
)

// Module provides the broadcast server and sender
var Module = fx.Module("broadcast",
	fx.Provide(
		NewServer,
		NewSender,
	),
)
