package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"orslog/internal/app/export"
	"orslog/internal/app/logs"
	"orslog/internal/app/ui/components"
	"orslog/internal/app/viewer"
)

const (
	checkboxOn  = "[x]"
	checkboxOff = "[ ]"
	emptyList   = "Waiting for log entries…"
)

// View renders the UI
func (m Model) View() string {
	if !m.state.ready {
		return "Initializing…"
	}

	sections := []string{
		components.RenderHeader(m.ui.width, m.renderTitle(), m.renderInfo()),
		components.RenderContent(m.renderCheckboxes()),
		components.RenderContent(m.renderInputs()),
		components.RenderLine(m.ui.width),
		components.RenderContent(m.ui.viewport.View()),
		components.RenderLine(m.ui.width),
		components.RenderContent(m.renderSummary()),
		components.RenderContent(m.renderStatus()),
		components.RenderFooter(m.ui.width, m.renderHelp()),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitle renders the app name, topic and live indicator
func (m Model) renderTitle() string {
	title := components.TitleStyle.Render("orslog")

	if m.state.topic != "" {
		title += " " + components.MutedStyle.Render(m.state.topic)
	}

	if m.state.live {
		title += " " + m.ui.blink.Render(components.LiveStyle)
	}

	return title
}

// renderInfo renders visible/total counts and the active visualization
func (m Model) renderInfo() string {
	info := fmt.Sprintf("%d/%d • %s", len(m.session.View()), m.session.Total(), m.session.Mode())

	if m.state.appCPU != 0 || m.state.appMEM != 0 {
		info += fmt.Sprintf(" • cpu %s • mem %s", formatCPU(m.state.appCPU), formatMEM(m.state.appMEM))
	}

	return components.MutedStyle.Render(info)
}

// renderCheckboxes renders the All checkbox followed by one per severity
func (m Model) renderCheckboxes() string {
	parts := make([]string, 0, len(logs.Severities())+1)
	parts = append(parts, checkbox(m.session.AllSelected())+" All")

	for i, severity := range logs.Severities() {
		label := fmt.Sprintf("%s %d %s", checkbox(m.session.Selected(severity)), i+1, severity)
		parts = append(parts, components.SeverityStyle(severity).Render(label))
	}

	return strings.Join(parts, "  ")
}

func checkbox(on bool) string {
	if on {
		return checkboxOn
	}

	return checkboxOff
}

// renderInputs renders the search and cutoff inputs side by side
func (m Model) renderInputs() string {
	search := m.ui.search.View()
	cutoff := m.ui.cutoff.View()

	if m.state.mode == modeSearch {
		search = components.SelectedStyle.Render(search)
	}

	if m.state.mode == modeCutoff {
		cutoff = components.SelectedStyle.Render(cutoff)
	}

	return search + "   " + cutoff
}

// renderSummary renders the per severity counts of the filtered view
func (m Model) renderSummary() string {
	return m.session.Counts().String()
}

// renderStatus renders the permission prompt, a notification or drop counter
func (m Model) renderStatus() string {
	if m.state.mode == modePermission {
		return components.WarningStyle.Render(export.PromptMessage)
	}

	if m.state.notice != nil {
		return m.state.notice.style.Render(m.state.notice.text)
	}

	if m.state.dropped > 0 {
		return components.WarningStyle.Render(fmt.Sprintf("%d malformed payloads dropped", m.state.dropped))
	}

	if m.ui.showTips && len(components.Tips) > 0 {
		return components.Tips[m.ui.tipOffset%len(components.Tips)]
	}

	return ""
}

// renderHelp renders the help text with keybindings
func (m Model) renderHelp() string {
	return m.ui.help.View(m.ui.keys)
}

// updateContent rebuilds the viewport for the active visualization
func (m *Model) updateContent() {
	width := m.ui.viewport.Width
	if width <= 0 {
		width = components.DefaultViewportWidth
	}

	var content string

	switch m.session.Mode() {
	case viewer.Pie:
		content = renderPie(m.session.PieSlices(), width)
	case viewer.Bar:
		content = renderBar(m.session.BarSeries(), width)
	default:
		content = renderRows(m.session.PlainRows(), width)
	}

	m.ui.viewport.SetContent(content)

	if m.session.Mode() != viewer.Plain {
		m.ui.viewport.GotoTop()
		return
	}

	if m.ui.autoscroll {
		m.ui.viewport.GotoBottom()
	}
}

// renderRows renders each row in its severity color, wrapped to width
func renderRows(rows []viewer.Row, width int) string {
	if len(rows) == 0 {
		return components.EmptyStateStyle.Render(emptyList)
	}

	lines := make([]string, 0, len(rows))

	for _, row := range rows {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color.Hex()))

		text := row.Text
		if row.Source != "" {
			text = fmt.Sprintf("%s (%s)", text, row.Source)
		}

		for _, line := range wrapText(text, width) {
			lines = append(lines, style.Render(line))
		}
	}

	return strings.Join(lines, "\n")
}
