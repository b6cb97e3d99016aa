package dashboard

import (
	"context"
	"fmt"
	"io/fs"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"orslog/internal/app/bus"
	"orslog/internal/app/errors"
	"orslog/internal/app/export"
	"orslog/internal/app/logs"
	"orslog/internal/app/viewer"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

var cutoff = time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

func newTestLogger(ctrl *gomock.Controller) *logger.MockLogger {
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().WithComponent(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().Debug().Return(nil).AnyTimes()
	log.EXPECT().Info().Return(nil).AnyTimes()
	log.EXPECT().Warn().Return(nil).AnyTimes()
	log.EXPECT().Error().Return(nil).AnyTimes()

	return log
}

type fixture struct {
	model    Model
	store    logs.Store
	session  *viewer.Session
	exporter *export.MockExporter
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := newTestLogger(ctrl)
	b := bus.New(config.DefaultConfig(), nil)
	t.Cleanup(b.Close)

	store := logs.NewStore(0)
	store.Append(logs.Entry{Severity: logs.Info, Message: "Connected to DB", Timestamp: "2024-01-01 00:00:00.000"})
	store.Append(logs.Entry{Severity: logs.Error, Message: "Query failed", Timestamp: "2024-01-01 00:00:01.000"})

	session := viewer.NewSession(store, b, cutoff)

	exporter := export.NewMockExporter(ctrl)
	exporter.EXPECT().Dir().Return("/tmp/LogExports").AnyTimes()

	flow := export.NewFlow(exporter, log)

	m := NewModel(ctx, b, session, flow, nil, log)
	m.now = func() time.Time { return cutoff }

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	return &fixture{
		model:    updated.(Model),
		store:    store,
		session:  session,
		exporter: exporter,
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg

		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}

		updated, _ := m.Update(msg)
		m = updated.(Model)
	}

	return m
}

func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)

	updated, _ := m.Update(cmd())

	return updated.(Model)
}

func Test_NewModel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	assert.True(t, f.model.state.ready)
	assert.Equal(t, modeNormal, f.model.state.mode)
	assert.Equal(t, "2024-01-01 00:00", f.model.ui.cutoff.Value())
	assert.Contains(t, f.model.View(), "Log Counts:")
	assert.Contains(t, f.model.ui.viewport.View(), "Query failed")
}

func Test_HandleKeyPress_Severities(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		expected int
		all      bool
	}{
		{name: "Toggle error off", keys: []string{"4"}, expected: 1, all: false},
		{name: "Toggle error twice", keys: []string{"4", "4"}, expected: 2, all: true},
		{name: "Deselect all", keys: []string{"a"}, expected: 0, all: false},
		{name: "Deselect then select all", keys: []string{"a", "a"}, expected: 2, all: true},
		{name: "Partial then all", keys: []string{"1", "a"}, expected: 2, all: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)
			press(f.model, tt.keys...)

			assert.Len(t, f.session.View(), tt.expected)
			assert.Equal(t, tt.all, f.session.AllSelected())
		})
	}
}

func Test_HandleKeyPress_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	m := press(f.model, "/")
	assert.Equal(t, modeSearch, m.state.mode)

	m = press(m, "Q", "u", "e")
	assert.Equal(t, "que", f.session.Spec().Query)
	assert.Len(t, f.session.View(), 1)

	m = press(m, "q")
	assert.Equal(t, modeSearch, m.state.mode, "q is typed, not quit")

	m = press(m, "esc")
	assert.Equal(t, modeNormal, m.state.mode)
	assert.Empty(t, f.session.View())
}

func Test_HandleKeyPress_Cutoff(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		expectedMode inputMode
		expectedMin  time.Time
		expectNotice bool
	}{
		{
			name:         "Valid cutoff",
			value:        "2024-01-01 00:00",
			expectedMode: modeNormal,
			expectedMin:  cutoff,
		},
		{
			name:         "Later cutoff",
			value:        "2024-06-01 12:30",
			expectedMode: modeNormal,
			expectedMin:  time.Date(2024, 6, 1, 12, 30, 0, 0, time.Local),
		},
		{
			name:         "Invalid cutoff keeps editing",
			value:        "yesterday",
			expectedMode: modeCutoff,
			expectedMin:  cutoff,
			expectNotice: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)

			m := press(f.model, "t")
			require.Equal(t, modeCutoff, m.state.mode)

			m.ui.cutoff.SetValue(tt.value)
			m = press(m, "enter")

			assert.Equal(t, tt.expectedMode, m.state.mode)
			assert.True(t, tt.expectedMin.Equal(f.session.Spec().MinTimestamp))

			if tt.expectNotice {
				require.NotNil(t, m.state.notice)
				assert.Contains(t, m.state.notice.text, errors.ErrInvalidCutoff.Error())
			}
		})
	}
}

func Test_HandleKeyPress_Visualize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	m := press(f.model, "v")
	assert.Equal(t, viewer.Pie, f.session.Mode())
	assert.Contains(t, m.ui.viewport.View(), "50.0%")

	m = press(m, "v")
	assert.Equal(t, viewer.Bar, f.session.Mode())
	assert.Contains(t, m.ui.viewport.View(), "VERBOSE")

	press(m, "v")
	assert.Equal(t, viewer.Plain, f.session.Mode())
}

func Test_HandleKeyPress_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	m := press(f.model, "c")

	assert.Zero(t, f.store.Len())
	assert.Zero(t, f.session.Total())
	require.NotNil(t, m.state.notice)
	assert.Equal(t, "All logs cleared", m.state.notice.text)
}

func Test_HandleKeyPress_Quit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func permissionErr() error {
	return fmt.Errorf("%w: %w", errors.ErrExportPermissionDenied, fs.ErrPermission)
}

func Test_Export(t *testing.T) {
	tests := []struct {
		name          string
		before        func(m *export.MockExporter)
		answer        string
		expectedState string
		expectedText  string
	}{
		{
			name: "Success",
			before: func(m *export.MockExporter) {
				m.EXPECT().Export(gomock.Len(2), cutoff).Return("/tmp/LogExports/logs_export_1.csv", nil)
			},
			expectedState: export.Idle,
			expectedText:  "Logs exported to /tmp/LogExports",
		},
		{
			name: "Failure",
			before: func(m *export.MockExporter) {
				m.EXPECT().Export(gomock.Any(), cutoff).Return("", fmt.Errorf("%w: disk full", errors.ErrExportFailed))
			},
			expectedState: export.Idle,
			expectedText:  "Export failed",
		},
		{
			name: "Permission granted",
			before: func(m *export.MockExporter) {
				gomock.InOrder(
					m.EXPECT().Export(gomock.Any(), cutoff).Return("", permissionErr()),
					m.EXPECT().Export(gomock.Len(2), cutoff).Return("/tmp/LogExports/logs_export_1.csv", nil),
				)
			},
			answer:        "y",
			expectedState: export.Idle,
			expectedText:  "Logs exported to /tmp/LogExports",
		},
		{
			name: "Permission refused",
			before: func(m *export.MockExporter) {
				m.EXPECT().Export(gomock.Any(), cutoff).Return("", permissionErr())
			},
			answer:        "n",
			expectedState: export.Denied,
			expectedText:  export.DeniedMessage,
		},
		{
			name: "Permission granted but denied again",
			before: func(m *export.MockExporter) {
				m.EXPECT().Export(gomock.Any(), cutoff).Return("", permissionErr()).Times(2)
			},
			answer:        "y",
			expectedState: export.Denied,
			expectedText:  export.DeniedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(t, ctrl)
			tt.before(f.exporter)

			updated, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
			m := run(t, updated.(Model), cmd)

			if tt.answer != "" {
				require.Equal(t, modePermission, m.state.mode)
				assert.Contains(t, m.View(), export.PromptMessage)

				updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.answer)})
				m = updated.(Model)

				if cmd != nil {
					m = run(t, m, cmd)
				}
			}

			assert.Equal(t, modeNormal, m.state.mode)
			assert.Equal(t, tt.expectedState, m.flow.State())
			require.NotNil(t, m.state.notice)
			assert.Contains(t, m.state.notice.text, tt.expectedText)
		})
	}
}

func Test_HandleMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)

	m, cmd := f.model.handleMessage(bus.Message{
		Type: bus.EventReceiverStarted,
		Data: bus.ReceiverState{Topic: "app.logs", Socket: "/tmp/orslog-app.logs.sock"},
	})
	assert.NotNil(t, cmd)

	model := m.(Model)
	assert.True(t, model.state.live)
	assert.Equal(t, "app.logs", model.state.topic)

	f.store.Append(logs.Entry{Severity: logs.Warning, Message: "disk almost full", Timestamp: "2024-01-01 00:00:05.000"})

	m, _ = model.handleMessage(bus.Message{Type: bus.EventLogAppended})
	model = m.(Model)
	assert.True(t, model.ui.blink.IsActive())
	assert.Len(t, f.session.View(), 3)
	assert.Contains(t, model.ui.viewport.View(), "disk almost full")

	m, _ = model.handleMessage(bus.Message{Type: bus.EventLogDropped, Data: bus.LogDropped{Reason: "bad"}})
	model = m.(Model)
	assert.Equal(t, 1, model.state.dropped)

	m, _ = model.handleMessage(bus.Message{Type: bus.EventReceiverStopped})
	model = m.(Model)
	assert.False(t, model.state.live)

	_, cmd = model.handleMessage(bus.Message{Type: bus.EventSignal, Data: bus.Signal{Name: "interrupt"}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func Test_ExpireNotice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl)
	m := press(f.model, "c")
	require.NotNil(t, m.state.notice)

	m.expireNotice()
	assert.NotNil(t, m.state.notice)

	m.now = func() time.Time { return cutoff.Add(time.Hour) }
	m.expireNotice()
	assert.Nil(t, m.state.notice)
}
