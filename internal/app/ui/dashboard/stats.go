package dashboard

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"orslog/internal/app/monitor"
	"orslog/internal/app/ui/components"
)

// statsUpdateMsg carries the viewer's own resource usage
type statsUpdateMsg struct {
	CPU float64
	MEM float64
}

// statsWorkerCmd schedules a single sample of this process
func statsWorkerCmd(ctx context.Context, mon monitor.Monitor) tea.Cmd {
	if mon == nil {
		return nil
	}

	return tea.Tick(components.StatsPollingInterval, func(t time.Time) tea.Msg {
		callCtx, cancel := context.WithTimeout(ctx, components.StatsCallTimeout)
		defer cancel()

		stats, err := mon.GetStats(callCtx, os.Getpid())
		if err != nil {
			return statsUpdateMsg{}
		}

		return statsUpdateMsg{CPU: stats.CPU, MEM: stats.MEM}
	})
}

// formatCPU formats a CPU percentage value
func formatCPU(cpu float64) string {
	return fmt.Sprintf("%.1f%%", cpu)
}

// formatMEM formats a memory value in MB or GB
func formatMEM(mem float64) string {
	if mem < components.MBToGB {
		return fmt.Sprintf("%.0fMB", mem)
	}

	return fmt.Sprintf("%.1fGB", mem/components.MBToGB)
}
