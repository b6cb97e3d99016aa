package main

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"orslog/internal/app"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

// main is the entry point for the application
func main() {
	runApp()
}

// runApp contains the main application logic
func runApp() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	application := createApp(cfg, usesDashboard(os.Args[1:]))
	application.Run()
}

// hasNoUIFlag checks if --no-ui flag is present in args
func hasNoUIFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--no-ui" {
			return true
		}
	}

	return false
}

// usesDashboard reports whether args start the full screen viewer
func usesDashboard(args []string) bool {
	if hasNoUIFlag(args) {
		return false
	}

	for _, arg := range args {
		if len(arg) > 0 && arg[0] == '-' {
			continue
		}

		return arg == "view" || arg == "v"
	}

	return true
}

// loadConfig wraps config.Load for easier testing
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// createApp creates the FX application with the given config
func createApp(cfg *config.Config, dashboard bool) *fx.App {
	return fx.New(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg),
		app.Module,
		fx.Decorate(func(log logger.Logger) logger.Logger {
			if dashboard {
				return logger.NewSilentLogger(cfg)
			}

			return log
		}),
	)
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stderr}
		}

		return fxevent.NopLogger
	}
}
