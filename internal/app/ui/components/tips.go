package components

import "github.com/charmbracelet/lipgloss"

// Tip styles
var (
	tipKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	tipDescStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"})
)

func tipKey(k string) string  { return tipKeyStyle.Render(k) }
func tipDesc(d string) string { return tipDescStyle.Render(d) }

// Tips contains helpful hints displayed in the footer
var Tips = []string{
	tipDesc("Send a test entry with ") + tipKey("orslog emit --type ERROR boom"),
	tipDesc("Tail files into the viewer with ") + tipKey("orslog watch"),
	tipDesc("Stream without TUI using ") + tipKey("orslog view --no-ui"),
	tipDesc("Press ") + tipKey("/") + tipDesc(" to search messages"),
	tipDesc("Press ") + tipKey("t") + tipDesc(" to set the time cutoff"),
	tipDesc("Press ") + tipKey("v") + tipDesc(" to switch between list, pie and bar"),
}
