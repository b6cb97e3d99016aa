package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"orslog/internal/app/logs"
	"orslog/internal/app/ui/components"
)

// KeyMap defines the key bindings for the dashboard
type KeyMap struct {
	components.ScrollKeys
	Toggle     [5]key.Binding
	ToggleAll  key.Binding
	Search     key.Binding
	Cutoff     key.Binding
	Visualize  key.Binding
	Export     key.Binding
	Clear      key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Submit     key.Binding
	ToggleTips key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		ScrollKeys: components.DefaultScrollKeys(),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Cutoff: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "since"),
		),
		Visualize: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "grant"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		ToggleTips: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "tips"),
		),
	}

	for i, severity := range logs.Severities() {
		digit := string(rune('1' + i))
		km.Toggle[i] = key.NewBinding(
			key.WithKeys(digit),
			key.WithHelp(digit, severity.String()),
		)
	}

	return km
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleAll, k.Search, k.Cutoff, k.Visualize, k.Export, k.Clear, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Toggle[:],
		{k.ToggleAll, k.Search, k.Cutoff, k.Visualize},
		k.Bindings(),
		{k.Export, k.Clear, k.ToggleTips, k.Quit},
	}
}

// severityFor returns the severity toggled by msg, if any
func (k KeyMap) severityFor(msg tea.KeyMsg) (logs.Severity, bool) {
	for i, binding := range k.Toggle {
		if key.Matches(msg, binding) {
			return logs.Severities()[i], true
		}
	}

	return 0, false
}
