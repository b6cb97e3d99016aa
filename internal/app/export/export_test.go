package export

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"orslog/internal/app/errors"
	"orslog/internal/app/logs"
	"orslog/internal/config/logger"
)

func quietLogger(ctrl *gomock.Controller) logger.Logger {
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Debug().Return(nil).AnyTimes()
	log.EXPECT().Info().Return(nil).AnyTimes()
	log.EXPECT().Warn().Return(nil).AnyTimes()
	log.EXPECT().Error().Return(nil).AnyTimes()

	return log
}

func Test_Write(t *testing.T) {
	tests := []struct {
		name     string
		entries  []logs.Entry
		expected string
	}{
		{
			name:     "Header only",
			entries:  nil,
			expected: "Timestamp,Type,Message\n",
		},
		{
			name: "Commas replaced",
			entries: []logs.Entry{
				{Timestamp: "2024-01-01 00:00:00.000", Severity: logs.Error, Message: "a,b"},
			},
			expected: "Timestamp,Type,Message\n2024-01-01 00:00:00.000,ERROR,a;b\n",
		},
		{
			name: "Other characters untouched",
			entries: []logs.Entry{
				{Timestamp: "2024-01-01 00:00:00.000", Severity: logs.Info, Message: `say "hi"`},
				{Timestamp: "2024-01-01 00:00:01.000", Severity: logs.Verbose, Message: "x,,y"},
			},
			expected: "Timestamp,Type,Message\n" +
				"2024-01-01 00:00:00.000,INFO,say \"hi\"\n" +
				"2024-01-01 00:00:01.000,VERBOSE,x;;y\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, Write(&buf, tt.entries))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func Test_FileName(t *testing.T) {
	now := time.UnixMilli(1704067200123)
	assert.Equal(t, "logs_export_1704067200123.csv", FileName(now))
}

func Test_Exporter_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := filepath.Join(t.TempDir(), "nested", "LogExports")
	e := NewExporter(dir, quietLogger(ctrl))
	now := time.UnixMilli(1704067200000)

	path, err := e.Export([]logs.Entry{{Timestamp: "ts", Severity: logs.Error, Message: "a,b"}}, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs_export_1704067200000.csv"), path)
	assert.Equal(t, dir, e.Dir())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,Type,Message\nts,ERROR,a;b\n", string(data))
}

func Test_Exporter_Export_Failed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	e := NewExporter(filepath.Join(blocker, "sub"), quietLogger(ctrl))

	_, err := e.Export(nil, time.Now())
	assert.ErrorIs(t, err, errors.ErrExportFailed)
}

func Test_Exporter_Export_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	parent := t.TempDir()
	require.NoError(t, os.Chmod(parent, 0500))

	defer os.Chmod(parent, 0755)

	e := NewExporter(filepath.Join(parent, "LogExports"), quietLogger(ctrl))

	_, err := e.Export(nil, time.Now())
	assert.ErrorIs(t, err, errors.ErrExportPermissionDenied)
}

func Test_Classify(t *testing.T) {
	assert.ErrorIs(t, classify(fs.ErrPermission), errors.ErrExportPermissionDenied)
	assert.ErrorIs(t, classify(fmt.Errorf("disk full")), errors.ErrExportFailed)
}

func permissionErr() error {
	return fmt.Errorf("%w: %w", errors.ErrExportPermissionDenied, fs.ErrPermission)
}

func Test_Flow(t *testing.T) {
	entries := []logs.Entry{{Timestamp: "ts", Severity: logs.Info, Message: "m"}}
	now := time.UnixMilli(1)

	tests := []struct {
		name          string
		before        func(m *MockExporter)
		run           func(t *testing.T, f *Flow)
		expectedState string
	}{
		{
			name: "Success stays idle",
			before: func(m *MockExporter) {
				m.EXPECT().Export(entries, now).Return("/tmp/x.csv", nil)
			},
			run: func(t *testing.T, f *Flow) {
				path, err := f.Export(context.Background(), entries, now)
				require.NoError(t, err)
				assert.Equal(t, "/tmp/x.csv", path)
			},
			expectedState: Idle,
		},
		{
			name: "I/O failure stays idle",
			before: func(m *MockExporter) {
				m.EXPECT().Export(entries, now).Return("", fmt.Errorf("%w: disk", errors.ErrExportFailed))
			},
			run: func(t *testing.T, f *Flow) {
				_, err := f.Export(context.Background(), entries, now)
				assert.ErrorIs(t, err, errors.ErrExportFailed)
			},
			expectedState: Idle,
		},
		{
			name: "Denial waits for permission",
			before: func(m *MockExporter) {
				m.EXPECT().Export(entries, now).Return("", permissionErr())
			},
			run: func(t *testing.T, f *Flow) {
				_, err := f.Export(context.Background(), entries, now)
				assert.ErrorIs(t, err, errors.ErrExportPermissionDenied)
			},
			expectedState: AwaitingPermission,
		},
		{
			name: "Grant retries once and succeeds",
			before: func(m *MockExporter) {
				gomock.InOrder(
					m.EXPECT().Export(entries, now).Return("", permissionErr()),
					m.EXPECT().Export(entries, now).Return("/tmp/y.csv", nil),
				)
			},
			run: func(t *testing.T, f *Flow) {
				_, _ = f.Export(context.Background(), entries, now)

				path, err := f.Grant(context.Background())
				require.NoError(t, err)
				assert.Equal(t, "/tmp/y.csv", path)
			},
			expectedState: Idle,
		},
		{
			name: "Second denial is final",
			before: func(m *MockExporter) {
				m.EXPECT().Export(entries, now).Return("", permissionErr()).Times(2)
			},
			run: func(t *testing.T, f *Flow) {
				_, _ = f.Export(context.Background(), entries, now)

				_, err := f.Grant(context.Background())
				assert.ErrorIs(t, err, errors.ErrExportPermissionDenied)
				assert.Contains(t, err.Error(), DeniedMessage)

				_, err = f.Grant(context.Background())
				assert.ErrorIs(t, err, errors.ErrExportNotAwaiting)
			},
			expectedState: Denied,
		},
		{
			name: "Deny is final",
			before: func(m *MockExporter) {
				m.EXPECT().Export(entries, now).Return("", permissionErr())
			},
			run: func(t *testing.T, f *Flow) {
				_, _ = f.Export(context.Background(), entries, now)

				err := f.Deny(context.Background())
				assert.ErrorIs(t, err, errors.ErrExportPermissionDenied)
				assert.Contains(t, err.Error(), DeniedMessage)
			},
			expectedState: Denied,
		},
		{
			name:   "Grant without pending request",
			before: func(m *MockExporter) {},
			run: func(t *testing.T, f *Flow) {
				_, err := f.Grant(context.Background())
				assert.ErrorIs(t, err, errors.ErrExportNotAwaiting)
				assert.ErrorIs(t, f.Deny(context.Background()), errors.ErrExportNotAwaiting)
			},
			expectedState: Idle,
		},
		{
			name: "Export after denial resets",
			before: func(m *MockExporter) {
				gomock.InOrder(
					m.EXPECT().Export(entries, now).Return("", permissionErr()),
					m.EXPECT().Export(entries, now).Return("/tmp/z.csv", nil),
				)
			},
			run: func(t *testing.T, f *Flow) {
				_, _ = f.Export(context.Background(), entries, now)
				_ = f.Deny(context.Background())

				path, err := f.Export(context.Background(), entries, now)
				require.NoError(t, err)
				assert.Equal(t, "/tmp/z.csv", path)
			},
			expectedState: Idle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mock := NewMockExporter(ctrl)
			tt.before(mock)

			f := NewFlow(mock, quietLogger(ctrl))
			tt.run(t, f)

			assert.Equal(t, tt.expectedState, f.State())
		})
	}
}
