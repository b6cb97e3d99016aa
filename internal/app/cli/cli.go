//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"orslog/internal/app/broadcast"
	"orslog/internal/app/generator"
	"orslog/internal/app/logs"
	"orslog/internal/app/publisher"
	"orslog/internal/app/runner"
	"orslog/internal/app/watcher"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

// CLI defines the interface for cli operations
type CLI interface {
	Execute() (int, error)
}

// cli represents the command-line interface for the application
type cli struct {
	ctx       context.Context
	args      []string
	cfg       *config.Config
	runner    runner.Runner
	publisher publisher.Publisher
	sender    broadcast.Sender
	watcher   watcher.Watcher
	generator generator.Generator
	out       io.Writer
	errOut    io.Writer
	log       logger.Logger
}

// NewCLI creates a new cli instance for the process arguments
func NewCLI(
	cfg *config.Config,
	runner runner.Runner,
	publisher publisher.Publisher,
	sender broadcast.Sender,
	watcher watcher.Watcher,
	generator generator.Generator,
	log logger.Logger,
) CLI {
	return &cli{
		ctx:       context.Background(),
		args:      os.Args[1:],
		cfg:       cfg,
		runner:    runner,
		publisher: publisher,
		sender:    sender,
		watcher:   watcher,
		generator: generator,
		out:       os.Stdout,
		errOut:    os.Stderr,
		log:       log,
	}
}

// Execute parses the arguments, runs the selected command and returns the exit code
func (c *cli) Execute() (int, error) {
	opts, err := Parse(c.args)
	if err != nil {
		c.log.Debug().Err(err).Msg("Failed to parse arguments")
		fmt.Fprintln(c.errOut, RenderError(err))

		return 1, err
	}

	switch opts.Type {
	case CommandHelp:
		return c.handleHelp()
	case CommandVersion:
		return c.handleVersion()
	case CommandInit:
		return c.handleInit(opts)
	case CommandEmit:
		return c.handleEmit(opts)
	case CommandWatch:
		return c.handleWatch(opts)
	default:
		return c.handleView(opts)
	}
}

// handleView hosts the channel until the viewer exits
func (c *cli) handleView(opts *Options) (int, error) {
	c.log.Debug().Msgf("Starting viewer (no-ui: %t)", opts.NoUI)

	if err := c.runner.Run(c.ctx, opts.NoUI); err != nil {
		c.log.Error().Err(err).Msg("Viewer failed")
		fmt.Fprintln(c.errOut, RenderError(err))

		return 1, err
	}

	return 0, nil
}

// handleEmit publishes one entry; a missing viewer is not an error
func (c *cli) handleEmit(opts *Options) (int, error) {
	severity, err := logs.ParseSeverity(strings.ToUpper(opts.Severity))
	if err != nil {
		fmt.Fprintln(c.errOut, RenderError(err))
		return 1, err
	}

	tag := opts.Tag
	if tag == "" {
		tag = c.cfg.Publisher.Tag
	}

	c.publisher.Publish(severity, tag, opts.Message, logs.Caller{File: config.AppName})

	if err := c.sender.Close(); err != nil {
		c.log.Debug().Err(err).Msg("Failed to close sender")
	}

	return 0, nil
}

// handleWatch tails the given directories until interrupted
func (c *cli) handleWatch(opts *Options) (int, error) {
	ctx, stop := signal.NotifyContext(c.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defer func() {
		if err := c.sender.Close(); err != nil {
			c.log.Debug().Err(err).Msg("Failed to close sender")
		}
	}()

	defer c.watcher.Close()

	if err := c.watcher.Start(ctx, opts.Dirs); err != nil {
		c.log.Error().Err(err).Msgf("Failed to watch %v", opts.Dirs)
		fmt.Fprintln(c.errOut, RenderError(err))

		return 1, err
	}

	<-ctx.Done()
	c.log.Info().Msg("Watcher stopped")

	return 0, nil
}

// handleInit writes orslog.yaml
func (c *cli) handleInit(opts *Options) (int, error) {
	genOpts := generator.DefaultOptions()
	genOpts.Topic = c.cfg.Transport.Topic
	genOpts.Tag = c.cfg.Publisher.Tag

	if err := c.generator.Generate(genOpts, opts.Force, opts.DryRun); err != nil {
		fmt.Fprintln(c.errOut, RenderError(err))
		return 1, err
	}

	return 0, nil
}

// handleHelp displays help information
func (c *cli) handleHelp() (int, error) {
	c.log.Debug().Msg("Displaying help information")
	fmt.Fprint(c.out, RenderHelp())

	return 0, nil
}

// handleVersion displays version information
func (c *cli) handleVersion() (int, error) {
	c.log.Debug().Msg("Displaying version information")
	fmt.Fprintln(c.out, RenderTitle())

	return 0, nil
}
