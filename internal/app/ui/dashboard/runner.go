package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"orslog/internal/app/bus"
	"orslog/internal/app/export"
	"orslog/internal/app/monitor"
	"orslog/internal/app/viewer"
	"orslog/internal/config/logger"
)

// Run creates the Bubble Tea program for the dashboard
func Run(
	ctx context.Context,
	b bus.Bus,
	session *viewer.Session,
	flow *export.Flow,
	mon monitor.Monitor,
	log logger.Logger,
) (*tea.Program, Model) {
	model := NewModel(ctx, b, session, flow, mon, log)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	log.Debug().Msg("TUI: Program created")

	return p, model
}
