package headless

import (
	"context"
	"fmt"
	"io"

	"orslog/internal/app/bus"
	"orslog/internal/config/logger"
)

// Runner streams received entries to a writer without the TUI
type Runner interface {
	Run(ctx context.Context) error
}

type runner struct {
	msgChan   <-chan bus.Message
	formatter *Formatter
	out       io.Writer
	log       logger.Logger
}

// NewRunner creates a headless runner writing to out and subscribes to b right away
func NewRunner(ctx context.Context, b bus.Bus, formatter *Formatter, out io.Writer, log logger.Logger) Runner {
	return &runner{
		msgChan:   b.Subscribe(ctx),
		formatter: formatter,
		out:       out,
		log:       log.WithComponent("HEADLESS"),
	}
}

// Run prints every appended entry until ctx is done or the bus closes
func (r *runner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-r.msgChan:
			if !ok {
				return nil
			}

			r.handle(msg)
		}
	}
}

func (r *runner) handle(msg bus.Message) {
	switch msg.Type {
	case bus.EventReceiverStarted:
		if data, ok := msg.Data.(bus.ReceiverState); ok {
			r.formatter.RenderBanner(r.out, data.Topic, data.Socket)
		}
	case bus.EventLogAppended:
		if data, ok := msg.Data.(bus.LogAppended); ok {
			r.formatter.Write(r.out, data.Entry)
		}
	case bus.EventLogDropped:
		if data, ok := msg.Data.(bus.LogDropped); ok {
			r.log.Warn().Msgf("Dropped payload: %s", data.Reason)
		}
	case bus.EventReceiverStopped:
		fmt.Fprintln(r.out, "receiver stopped")
	}
}
