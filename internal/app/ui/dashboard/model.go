package dashboard

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"orslog/internal/app/bus"
	"orslog/internal/app/export"
	"orslog/internal/app/monitor"
	"orslog/internal/app/ui/components"
	"orslog/internal/app/viewer"
	"orslog/internal/config/logger"
)

// inputMode decides where key presses go
type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeCutoff
	modePermission
)

// notification is a transient status line
type notification struct {
	text    string
	style   lipgloss.Style
	expires time.Time
}

// Model represents the Bubble Tea model for the log dashboard
type Model struct {
	ctx     context.Context
	bus     bus.Bus
	session *viewer.Session
	flow    *export.Flow
	monitor monitor.Monitor
	msgChan <-chan bus.Message
	now     func() time.Time

	state struct {
		ready   bool
		mode    inputMode
		live    bool
		topic   string
		socket  string
		dropped int
		notice  *notification
		appCPU  float64
		appMEM  float64
	}

	ui struct {
		width      int
		height     int
		keys       KeyMap
		help       help.Model
		viewport   viewport.Model
		search     textinput.Model
		cutoff     textinput.Model
		blink      *components.Blink
		autoscroll bool
		showTips   bool
		tipOffset  int
	}

	log logger.Logger
}

// NewModel creates a new dashboard model and subscribes it to the bus
func NewModel(
	ctx context.Context,
	b bus.Bus,
	session *viewer.Session,
	flow *export.Flow,
	mon monitor.Monitor,
	log logger.Logger,
) Model {
	log = log.WithComponent("UI")

	m := Model{
		ctx:     ctx,
		bus:     b,
		session: session,
		flow:    flow,
		monitor: mon,
		msgChan: b.Subscribe(ctx),
		now:     time.Now,
		log:     log,
	}

	m.state.mode = modeNormal

	m.ui.keys = DefaultKeyMap()
	m.ui.help = help.New()
	m.ui.viewport = viewport.New(components.DefaultViewportWidth, components.DefaultViewportHeight)
	m.ui.search = newInput("search: ", "text in message")
	m.ui.cutoff = newInput("since: ", components.CutoffLayout)
	m.ui.cutoff.SetValue(session.Spec().MinTimestamp.Format(components.CutoffLayout))
	m.ui.blink = components.NewBlink()
	m.ui.autoscroll = true
	m.ui.showTips = true
	m.ui.tipOffset = rand.Intn(len(components.Tips)) //nolint:gosec // not security-critical

	log.Debug().Msg("Created model and subscribed to events")

	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = 256

	return ti
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForMsgCmd(m.msgChan),
		tickCmd(),
		statsWorkerCmd(m.ctx, m.monitor),
	)
}

// notify shows text until the notification TTL elapses
func (m *Model) notify(text string, style lipgloss.Style) {
	m.state.notice = &notification{
		text:    text,
		style:   style,
		expires: m.now().Add(components.NotificationTTL),
	}
}

// expireNotice drops the notification once it is stale
func (m *Model) expireNotice() {
	if m.state.notice != nil && !m.now().Before(m.state.notice.expires) {
		m.state.notice = nil
	}
}
