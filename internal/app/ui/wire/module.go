package wire

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"

	"orslog/internal/app/bus"
	"orslog/internal/app/export"
	"orslog/internal/app/monitor"
	"orslog/internal/app/ui/dashboard"
	"orslog/internal/app/ui/headless"
	"orslog/internal/app/viewer"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

// UI creates a Bubble Tea program for the dashboard
type UI func(ctx context.Context) (*tea.Program, error)

// Module provides the UI factory and the headless formatter
var Module = fx.Options(
	fx.Provide(NewUI),
	fx.Provide(func(cfg *config.Config) *headless.Formatter {
		return headless.NewFormatter(cfg)
	}),
)

// UIParams contains dependencies for creating the UI factory
type UIParams struct {
	fx.In

	Bus     bus.Bus
	Session *viewer.Session
	Flow    *export.Flow
	Monitor monitor.Monitor
	Logger  logger.Logger
}

// NewUI creates a factory function for constructing Bubble Tea programs
func NewUI(params UIParams) UI {
	return func(ctx context.Context) (*tea.Program, error) {
		p, _ := dashboard.Run(
			ctx,
			params.Bus,
			params.Session,
			params.Flow,
			params.Monitor,
			params.Logger,
		)

		params.Logger.Debug().Msg("TUI: Program created via factory")

		return p, nil
	}
}
