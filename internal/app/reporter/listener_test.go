package reporter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"

	"orslog/internal/app/bus"
	"orslog/internal/app/errors"
	"orslog/internal/config/logger"
)

func quietLogger(ctrl *gomock.Controller) logger.Logger {
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().WithComponent(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().Debug().Return(nil).AnyTimes()

	return log
}

// runListener feeds msgs through a mocked bus and waits for the listener to drain them
func runListener(t *testing.T, ctrl *gomock.Controller, r Reporter, msgs ...bus.Message) {
	t.Helper()

	ch := make(chan bus.Message, len(msgs))
	for _, msg := range msgs {
		ch <- msg
	}
	close(ch)

	b := bus.NewMockBus(ctrl)
	b.EXPECT().Subscribe(gomock.Any()).Return((<-chan bus.Message)(ch))

	done := NewListener(b, r, quietLogger(ctrl)).Start(context.Background())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop after the bus closed")
	}
}

func Test_Listener_CapturesFailedExport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rep := NewMockReporter(ctrl)
	rep.EXPECT().Capture(errors.ErrExportFailed, map[string]string{"component": "export"})

	runListener(t, ctrl, rep,
		bus.Message{Type: bus.EventExportFailed, Data: bus.ExportFailed{Error: errors.ErrExportFailed}},
		bus.Message{Type: bus.EventExportFailed, Data: bus.ExportFailed{}},
		bus.Message{Type: bus.EventLogAppended},
	)
}

func Test_Listener_Breadcrumbs(t *testing.T) {
	tests := []struct {
		name             string
		msg              bus.Message
		expectedCategory string
		expectedMessage  string
	}{
		{
			name:             "Permission required",
			msg:              bus.Message{Type: bus.EventPermissionRequired, Data: bus.ExportFailed{Error: errors.ErrExportPermissionDenied}},
			expectedCategory: "export",
			expectedMessage:  "storage permission requested",
		},
		{
			name:             "Export completed",
			msg:              bus.Message{Type: bus.EventExportCompleted, Data: bus.ExportCompleted{Path: "/tmp/logs_export_1.csv", Count: 3}},
			expectedCategory: "export",
			expectedMessage:  "exported 3 entries to /tmp/logs_export_1.csv",
		},
		{
			name:             "Logs cleared",
			msg:              bus.Message{Type: bus.EventLogsCleared},
			expectedCategory: "viewer",
			expectedMessage:  "logs cleared",
		},
		{
			name:             "Filter changed",
			msg:              bus.Message{Type: bus.EventFilterChanged, Data: bus.FilterChanged{Visible: 2, Total: 5}},
			expectedCategory: "filter",
			expectedMessage:  "2 of 5 entries visible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rep := NewMockReporter(ctrl)
			rep.EXPECT().Breadcrumb(tt.expectedCategory, tt.expectedMessage)

			runListener(t, ctrl, rep, tt.msg)
		})
	}
}

func Test_Register_StopsListenerAndFlushes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := bus.NewMockBus(ctrl)
	b.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(ctx context.Context) <-chan bus.Message {
		ch := make(chan bus.Message)

		go func() {
			<-ctx.Done()
			close(ch)
		}()

		return ch
	})

	rep := NewMockReporter(ctrl)
	rep.EXPECT().Flush()

	lc := fxtest.NewLifecycle(t)
	Register(lc, b, rep, quietLogger(ctrl))

	require.NoError(t, lc.Start(context.Background()))
	require.NoError(t, lc.Stop(context.Background()))
}
