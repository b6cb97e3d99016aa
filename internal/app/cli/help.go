package cli

import (
	"github.com/charmbracelet/lipgloss"
)

type helpLine struct {
	command     string
	description string
}

var usageLines = []helpLine{
	{command: "orslog [--no-ui]", description: "Host the channel and open the dashboard"},
	{command: "orslog emit <message>", description: "Publish one entry (--type, --tag)"},
	{command: "orslog watch [dirs...]", description: "Tail *.log files and publish new lines"},
	{command: "orslog init", description: "Generate orslog.yaml (--force, --dry-run)"},
	{command: "orslog version", description: "Show version"},
	{command: "orslog help", description: "Show help"},
}

var exampleLines = []helpLine{
	{command: "orslog --no-ui", description: "Stream entries to stdout"},
	{command: "orslog emit -t ERROR --tag DB \"query failed\"", description: "Send an error entry"},
	{command: "orslog watch ./logs", description: "Forward appended log lines"},
}

// RenderHelp renders usage and examples for all commands
func RenderHelp() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		RenderTitle(),
		sectionHeader.Render("Usage:"),
		renderLines(usageLines, commandName),
		sectionHeader.Render("Examples:"),
		renderLines(exampleLines, exampleCode),
	) + "\n"
}

func renderLines(lines []helpLine, style lipgloss.Style) string {
	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line.command))
	}

	rendered := make([]string, 0, len(lines))

	for _, line := range lines {
		cmd := style.Width(width).Render(line.command)
		rendered = append(rendered, bodyMedium.Render("  "+cmd+"  "+line.description))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
