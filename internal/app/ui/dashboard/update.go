package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"orslog/internal/app/bus"
	"orslog/internal/app/errors"
	"orslog/internal/app/export"
	"orslog/internal/app/ui/components"
)

// msgMsg wraps a bus message for tea messaging
type msgMsg bus.Message

// tickMsg signals a UI tick for animations
type tickMsg time.Time

// channelClosedMsg signals the event channel has closed
type channelClosedMsg struct{}

// exportResultMsg carries the outcome of an export or a granted retry
type exportResultMsg struct {
	path  string
	count int
	err   error
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.help.Width = msg.Width

		height := msg.Height - components.ChromeHeight
		if height < components.MinViewportHeight {
			height = components.MinViewportHeight
		}

		m.ui.viewport.Width = msg.Width - 2
		m.ui.viewport.Height = height
		m.state.ready = true

		m.updateContent()

		return m, nil

	case tickMsg:
		m.ui.blink.Update()
		m.expireNotice()

		return m, tickCmd()

	case statsUpdateMsg:
		m.state.appCPU = msg.CPU
		m.state.appMEM = msg.MEM

		return m, statsWorkerCmd(m.ctx, m.monitor)

	case exportResultMsg:
		return m.handleExportResult(msg)

	case msgMsg:
		return m.handleMessage(bus.Message(msg))

	case channelClosedMsg:
		m.log.Warn().Msg("TUI: Event channel closed, quitting")
		return m, tea.Quit
	}

	return m, nil
}

// handleKeyPress routes keys by input mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.ui.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.state.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeCutoff:
		return m.handleCutoffKey(msg)
	case modePermission:
		return m.handlePermissionKey(msg)
	}

	if severity, ok := m.ui.keys.severityFor(msg); ok {
		m.session.ToggleSeverity(severity)
		m.updateContent()

		return m, nil
	}

	switch {
	case key.Matches(msg, m.ui.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.ui.keys.ToggleAll):
		m.session.SetAll(!m.session.AllSelected())
		m.updateContent()

	case key.Matches(msg, m.ui.keys.Search):
		m.state.mode = modeSearch
		return m, m.ui.search.Focus()

	case key.Matches(msg, m.ui.keys.Cutoff):
		m.state.mode = modeCutoff
		return m, m.ui.cutoff.Focus()

	case key.Matches(msg, m.ui.keys.Visualize):
		mode := m.session.CycleMode()
		m.log.Debug().Msgf("TUI: Visualization switched to %s", mode)
		m.updateContent()

	case key.Matches(msg, m.ui.keys.Export):
		return m, m.exportCmd()

	case key.Matches(msg, m.ui.keys.Clear):
		m.session.Clear()
		m.state.dropped = 0
		m.notify("All logs cleared", components.SuccessStyle)
		m.updateContent()

	case key.Matches(msg, m.ui.keys.ToggleTips):
		m.ui.showTips = !m.ui.showTips

	case m.ui.keys.Scroll(&m.ui.viewport, msg):
		m.ui.autoscroll = m.ui.viewport.AtBottom()
	}

	return m, nil
}

// handleSearchKey applies the query on every keystroke
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.state.mode = modeNormal
		m.ui.search.Blur()

		return m, nil
	}

	var cmd tea.Cmd

	m.ui.search, cmd = m.ui.search.Update(msg)
	m.session.SetQuery(m.ui.search.Value())
	m.updateContent()

	return m, cmd
}

// handleCutoffKey edits the cutoff and applies it on enter
func (m Model) handleCutoffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state.mode = modeNormal
		m.ui.cutoff.Blur()
		m.ui.cutoff.SetValue(m.session.Spec().MinTimestamp.Format(components.CutoffLayout))

		return m, nil

	case tea.KeyEnter:
		cutoff, err := time.ParseInLocation(components.CutoffLayout, m.ui.cutoff.Value(), time.Local)
		if err != nil {
			m.notify(errors.ErrInvalidCutoff.Error(), components.ErrorStyle)
			return m, nil
		}

		m.state.mode = modeNormal
		m.ui.cutoff.Blur()
		m.session.SetCutoff(cutoff)
		m.updateContent()

		return m, nil
	}

	var cmd tea.Cmd

	m.ui.cutoff, cmd = m.ui.cutoff.Update(msg)

	return m, cmd
}

// handlePermissionKey answers the storage permission prompt
func (m Model) handlePermissionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ui.keys.Confirm):
		m.state.mode = modeNormal
		return m, m.grantCmd()

	case key.Matches(msg, m.ui.keys.Cancel):
		m.state.mode = modeNormal

		err := m.flow.Deny(m.ctx)
		m.bus.Publish(bus.Message{Type: bus.EventExportFailed, Data: bus.ExportFailed{Error: err}})
		m.notify(export.DeniedMessage, components.ErrorStyle)
	}

	return m, nil
}

// handleExportResult reports an export outcome and opens the prompt on denial
func (m Model) handleExportResult(msg exportResultMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
		m.bus.Publish(bus.Message{
			Type: bus.EventExportCompleted,
			Data: bus.ExportCompleted{Path: msg.path, Dir: m.flow.Dir(), Count: msg.count},
		})
		m.notify("Logs exported to "+m.flow.Dir(), components.SuccessStyle)

	case m.flow.State() == export.AwaitingPermission:
		m.state.mode = modePermission
		m.bus.Publish(bus.Message{Type: bus.EventPermissionRequired, Data: bus.ExportFailed{Error: msg.err}})

	case errors.Is(msg.err, errors.ErrExportPermissionDenied):
		m.bus.Publish(bus.Message{Type: bus.EventExportFailed, Data: bus.ExportFailed{Error: msg.err}})
		m.notify(export.DeniedMessage, components.ErrorStyle)

	default:
		m.bus.Publish(bus.Message{Type: bus.EventExportFailed, Data: bus.ExportFailed{Error: msg.err}})
		m.notify(fmt.Sprintf("Export failed: %v", msg.err), components.ErrorStyle)
	}

	return m, nil
}

// handleMessage dispatches bus messages
func (m Model) handleMessage(msg bus.Message) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case bus.EventReceiverStarted:
		if data, ok := msg.Data.(bus.ReceiverState); ok {
			m.state.topic = data.Topic
			m.state.socket = data.Socket
		}

		m.state.live = true

	case bus.EventReceiverStopped:
		m.state.live = false
		m.ui.blink.Stop()

	case bus.EventLogAppended:
		m.session.Refresh()
		m.ui.blink.Pulse()
		m.updateContent()

	case bus.EventLogDropped:
		m.state.dropped++

	case bus.EventSignal:
		m.log.Info().Msg("TUI: Signal received, quitting")
		return m, tea.Quit
	}

	return m, waitForMsgCmd(m.msgChan)
}

// exportCmd writes the current filtered view off the UI goroutine
func (m Model) exportCmd() tea.Cmd {
	entries := m.session.View()
	now := m.now()

	return func() tea.Msg {
		path, err := m.flow.Export(m.ctx, entries, now)
		return exportResultMsg{path: path, count: len(entries), err: err}
	}
}

// grantCmd retries the parked export after the user grants permission
func (m Model) grantCmd() tea.Cmd {
	count := m.flow.Pending()

	return func() tea.Msg {
		path, err := m.flow.Grant(m.ctx)
		return exportResultMsg{path: path, count: count, err: err}
	}
}

// waitForMsgCmd waits for the next bus message
func waitForMsgCmd(msgChan <-chan bus.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-msgChan
		if !ok {
			return channelClosedMsg{}
		}

		return msgMsg(msg)
	}
}

// tickCmd returns a command that sends a tick after the interval
func tickCmd() tea.Cmd {
	return tea.Tick(components.UITickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
