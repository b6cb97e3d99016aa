//go:generate mockgen -source=runner.go -destination=runner_mock.go -package=runner
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"orslog/internal/app/broadcast"
	"orslog/internal/app/bus"
	"orslog/internal/app/errors"
	"orslog/internal/app/receiver"
	"orslog/internal/app/ui/headless"
	"orslog/internal/app/ui/wire"
	"orslog/internal/config/logger"
)

// Runner hosts the broadcast endpoint and drives one viewer until it exits
type Runner interface {
	Run(ctx context.Context, noUI bool) error
}

type runner struct {
	server    broadcast.Server
	receiver  receiver.Receiver
	bus       bus.Bus
	ui        wire.UI
	formatter *headless.Formatter
	out       io.Writer
	log       logger.Logger
}

// NewRunner creates a new runner writing headless output to stdout
func NewRunner(
	server broadcast.Server,
	recv receiver.Receiver,
	b bus.Bus,
	ui wire.UI,
	formatter *headless.Formatter,
	log logger.Logger,
) Runner {
	return &runner{
		server:    server,
		receiver:  recv,
		bus:       b,
		ui:        ui,
		formatter: formatter,
		out:       os.Stdout,
		log:       log.WithComponent("RUNNER"),
	}
}

// Run starts the endpoint, attaches the viewer, then starts receiving.
// The viewer subscribes to the bus before the first entry can arrive.
func (r *runner) Run(ctx context.Context, noUI bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := r.server.Start(ctx); err != nil {
		return err
	}

	defer func() {
		if err := r.server.Stop(); err != nil {
			r.log.Warn().Err(err).Msg("Failed to stop broadcast server")
		}
	}()

	sigChan := make(chan os.Signal, 1)

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var (
		program *tea.Program
		stream  headless.Runner
	)

	if noUI {
		stream = headless.NewRunner(ctx, r.bus, r.formatter, r.out, r.log)
	} else {
		p, err := r.ui(ctx)
		if err != nil {
			return fmt.Errorf("failed to create UI: %w", err)
		}

		program = p
	}

	if err := r.receiver.Start(ctx); err != nil {
		return err
	}

	defer r.receiver.Stop()

	r.log.Info().Msgf("Listening on topic '%s' at %s", r.server.Topic(), r.server.SocketPath())

	go r.watchSignals(ctx, sigChan, cancel)

	if noUI {
		return stream.Run(ctx)
	}

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run UI: %w", err)
	}

	return nil
}

// watchSignals announces the first signal on the bus and cancels the run
func (r *runner) watchSignals(ctx context.Context, sigChan <-chan os.Signal, cancel context.CancelFunc) {
	select {
	case sig := <-sigChan:
		r.bus.Publish(bus.Message{
			Type:     bus.EventSignal,
			Data:     bus.Signal{Name: sig.String()},
			Critical: true,
		})
		r.log.Info().Msgf("Received signal %s, shutting down...", sig)
		cancel()
	case <-ctx.Done():
	}
}
