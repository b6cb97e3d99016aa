package cli

import (
	"github.com/charmbracelet/lipgloss"

	"orslog/internal/config"
)

// Material Design 3 Typography Scale
// https://m3.material.io/styles/typography/overview

// Headline - High-emphasis text for section headers
var (
	headlineLarge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginTop(1)
)

// Title - Medium-emphasis text for titles and subtitles
var (
	titleMedium = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
)

// Body - Main content text
var (
	bodyLarge  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	bodyMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
)

// Label - Small text for labels, captions, and supplementary content
var (
	labelLarge = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Italic(true).MarginTop(1)
)

// Semantic styles - mapped to Material typography scale
var (
	sectionHeader = headlineLarge.MarginBottom(1)
	hintText      = labelLarge

	commandName = titleMedium
	exampleCode = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))
	errorLabel  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))

	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	appVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
	titleWrapper    = lipgloss.NewStyle().MarginTop(1).MarginBottom(1)
)

// RenderTitle renders the app title block with name, version, and description
func RenderTitle() string {
	title := titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)
	description := bodyLarge.Render(config.AppDescription)

	return lipgloss.JoinVertical(lipgloss.Left, title, description)
}

// RenderError renders an error line with a hint pointing at the help command
func RenderError(err error) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		errorLabel.Render("Error:")+" "+bodyMedium.Render(err.Error()),
		hintText.Render("Use '"+config.AppName+" help' for more information."),
	)
}
