package headless

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"orslog/internal/app/logs"
	"orslog/internal/app/ui/components"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

const (
	defaultTermWidth = 80
	minTermWidth     = 40
	minTagWidth      = 4
)

// Formatter renders received entries for plain terminal output
type Formatter struct {
	mu             sync.Mutex
	format         string
	tagWidth       int
	separatorStyle lipgloss.Style
	tagStyle       lipgloss.Style
	sourceStyle    lipgloss.Style
}

// jsonEntry is the line written in JSON output mode
type jsonEntry struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Tag       string `json:"tag"`
	Message   string `json:"message"`
	Source    string `json:"source,omitempty"`
}

// NewFormatter creates a formatter honoring the configured log format
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{
		format:         cfg.Logging.Format,
		tagWidth:       minTagWidth,
		separatorStyle: components.SeparatorStyle,
		tagStyle:       lipgloss.NewStyle().Bold(true),
		sourceStyle:    components.MutedStyle,
	}
}

// Format renders a single entry including the trailing newline
func (f *Formatter) Format(entry logs.Entry) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.format == logger.JSONFormat {
		data, err := json.Marshal(jsonEntry{
			Timestamp: entry.Timestamp,
			Type:      entry.Severity.String(),
			Tag:       entry.Tag,
			Message:   entry.Message,
			Source:    entry.Source,
		})
		if err != nil {
			return fmt.Sprintf(`{"type":%q,"message":%q}`+"\n", entry.Severity, entry.Message)
		}

		return string(data) + "\n"
	}

	return f.formatLine(entry)
}

// Write renders entry to w
func (f *Formatter) Write(w io.Writer, entry logs.Entry) {
	fmt.Fprint(w, f.Format(entry))
}

// formatLine renders: <timestamp> <TYPE> <tag> | <message> (source)
func (f *Formatter) formatLine(entry logs.Entry) string {
	if len(entry.Tag) > f.tagWidth {
		f.tagWidth = len(entry.Tag)
	}

	severity := components.SeverityStyle(entry.Severity).Render(components.PadRight(entry.Severity.String(), len("VERBOSE")))
	tag := f.tagStyle.Render(entry.Tag + strings.Repeat(" ", f.tagWidth-len(entry.Tag)))

	line := entry.Timestamp + " " + severity + " " + tag + " " + f.separatorStyle.Render("|") + " " + entry.Message

	if entry.Source != "" {
		line += " " + f.sourceStyle.Render("("+entry.Source+")")
	}

	return line + "\n"
}

// RenderBanner writes a box describing the channel being listened on
func (f *Formatter) RenderBanner(w io.Writer, topic, socket string) {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width < minTermWidth {
		width = defaultTermWidth
	}

	muted := components.MutedStyle.Render
	bold := lipgloss.NewStyle().Bold(true).Render

	body := lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render(config.AppName)+" "+muted("v"+config.Version),
		muted("topic: ")+bold(topic),
		muted("socket:")+" "+bold(socket),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.FgBorder).
		Padding(0, 1).
		Width(width - 2).
		Render(body)

	footer := " " + components.HelpStyle.Render("ctrl+c exit")

	fmt.Fprintln(w, box)
	fmt.Fprintln(w, footer)
}
