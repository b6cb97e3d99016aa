package reporter

import (
	"context"
	"fmt"

	"orslog/internal/app/bus"
	"orslog/internal/config/logger"
)

// Listener turns viewer events into reports: failed exports are captured,
// other viewer actions become breadcrumbs
type Listener struct {
	bus      bus.Bus
	reporter Reporter
	log      logger.Logger
}

// NewListener creates a listener for the given bus
func NewListener(b bus.Bus, r Reporter, log logger.Logger) *Listener {
	return &Listener{bus: b, reporter: r, log: log}
}

// Start subscribes to the bus and consumes messages until ctx is done
// or the bus is closed. The returned channel is closed when consuming stops.
func (l *Listener) Start(ctx context.Context) <-chan struct{} {
	msgs := l.bus.Subscribe(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		for msg := range msgs {
			l.handle(msg)
		}
	}()

	return done
}

func (l *Listener) handle(msg bus.Message) {
	switch msg.Type {
	case bus.EventExportFailed:
		data, ok := msg.Data.(bus.ExportFailed)
		if !ok || data.Error == nil {
			return
		}

		l.log.Debug().Err(data.Error).Msg("Reporting failed export")
		l.reporter.Capture(data.Error, map[string]string{"component": "export"})

	case bus.EventPermissionRequired:
		l.reporter.Breadcrumb("export", "storage permission requested")

	case bus.EventExportCompleted:
		if data, ok := msg.Data.(bus.ExportCompleted); ok {
			l.reporter.Breadcrumb("export", fmt.Sprintf("exported %d entries to %s", data.Count, data.Path))
		}

	case bus.EventLogsCleared:
		l.reporter.Breadcrumb("viewer", "logs cleared")

	case bus.EventFilterChanged:
		if data, ok := msg.Data.(bus.FilterChanged); ok {
			l.reporter.Breadcrumb("filter", fmt.Sprintf("%d of %d entries visible", data.Visible, data.Total))
		}
	}
}
