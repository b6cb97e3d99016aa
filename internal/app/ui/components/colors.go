package components

import (
	"github.com/charmbracelet/lipgloss"

	"orslog/internal/app/logs"
)

// Color palette for the UI with semantic naming
const (
	// Foreground colors - text and elements
	FgPrimary = lipgloss.Color("#7D56F4") // Purple - primary/focus color
	FgMuted   = lipgloss.Color("7")       // Light gray - muted elements
	FgBorder  = lipgloss.Color("8")       // Gray - borders and help text

	// Background colors
	BgSelection = lipgloss.Color("235") // Dark gray - selected background

	// Status colors
	FgStatusOK      = lipgloss.Color("10") // Green - receiving, export done
	FgStatusWarning = lipgloss.Color("11") // Yellow - awaiting permission
	FgStatusError   = lipgloss.Color("9")  // Red - failures, denial
)

// SeparatorColor is the adaptive color for separators
var SeparatorColor = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"}

// SeverityColor maps a severity to its fixed RGB color
func SeverityColor(severity logs.Severity) lipgloss.Color {
	return lipgloss.Color(severity.Color().Hex())
}

// SeverityStyle returns a bold style in the severity color
func SeverityStyle(severity logs.Severity) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(SeverityColor(severity))
}
