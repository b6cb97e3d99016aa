package components

import "github.com/charmbracelet/lipgloss"

// Common styles shared across UI components
var (
	// TitleStyle for view titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(FgPrimary)

	// HeaderStyle wraps the header line
	HeaderStyle = lipgloss.NewStyle().
			Padding(1, 0, 0, 0)

	// FooterStyle wraps the footer block
	FooterStyle = lipgloss.NewStyle()

	// FooterHelpStyle for the help line below the footer separator
	FooterHelpStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// ContentStyle for the main content area
	ContentStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// SeparatorStyle for horizontal rules
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(SeparatorColor)

	// HelpStyle for help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(FgBorder)

	// MutedStyle for secondary information
	MutedStyle = lipgloss.NewStyle().
			Foreground(FgMuted)

	// SelectedStyle highlights the focused checkbox
	SelectedStyle = lipgloss.NewStyle().
			Background(BgSelection)

	// ErrorStyle for error notifications
	ErrorStyle = lipgloss.NewStyle().
			Foreground(FgStatusError)

	// WarningStyle for prompts
	WarningStyle = lipgloss.NewStyle().
			Foreground(FgStatusWarning).
			Bold(true)

	// SuccessStyle for success notifications
	SuccessStyle = lipgloss.NewStyle().
			Foreground(FgStatusOK)

	// EmptyStateStyle for empty state messages
	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(FgMuted).
			Italic(true)

	// LiveStyle colors the live indicator
	LiveStyle = lipgloss.NewStyle().
			Foreground(FgStatusOK)
)
