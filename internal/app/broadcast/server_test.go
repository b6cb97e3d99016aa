package broadcast

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"orslog/internal/app/errors"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

func socketDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "orslog")
	require.NoError(t, err)

	t.Cleanup(func() { os.RemoveAll(dir) })

	return dir
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Transport.SocketDir = socketDir(t)
	cfg.Transport.Topic = "test.topic"
	cfg.Transport.Buffer = 16

	return cfg
}

func quietLogger(ctrl *gomock.Controller) *logger.MockLogger {
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Info().Return(nil).AnyTimes()
	log.EXPECT().Debug().Return(nil).AnyTimes()
	log.EXPECT().Warn().Return(nil).AnyTimes()
	log.EXPECT().Error().Return(nil).AnyTimes()

	return log
}

func newTestServer(t *testing.T, ctrl *gomock.Controller, cfg *config.Config) Server {
	t.Helper()

	mockLogger := logger.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithComponent("SERVER").Return(quietLogger(ctrl))

	return NewServer(cfg, mockLogger)
}

func Test_NewServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig(t)
	mockLogger := logger.NewMockLogger(ctrl)
	componentLogger := logger.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithComponent("SERVER").Return(componentLogger)

	s := NewServer(cfg, mockLogger)

	impl := s.(*server)
	assert.Equal(t, "test.topic", s.Topic())
	assert.Equal(t, SocketPath(cfg.Transport.SocketDir, "test.topic"), s.SocketPath())
	assert.NotNil(t, impl.hub)
	assert.Equal(t, componentLogger, impl.log)
}

func Test_Server_StartAndStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newTestServer(t, ctrl, testConfig(t))

	require.NoError(t, s.Start(context.Background()))
	assert.FileExists(t, s.SocketPath())

	require.NoError(t, s.Stop())
	assert.NoFileExists(t, s.SocketPath())

	require.NoError(t, s.Stop())
}

func Test_Server_StopWhenNotRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := &server{log: logger.NewMockLogger(ctrl)}

	assert.NoError(t, s.Stop())
}

func Test_Server_SocketAlreadyInUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig(t)

	first := newTestServer(t, ctrl, cfg)
	require.NoError(t, first.Start(context.Background()))

	defer first.Stop()

	second := newTestServer(t, ctrl, cfg)
	err := second.Start(context.Background())
	assert.ErrorIs(t, err, errors.ErrSocketAlreadyInUse)
}

func Test_Server_RemovesStaleSocket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig(t)
	path := SocketPath(cfg.Transport.SocketDir, cfg.Transport.Topic)
	require.NoError(t, os.WriteFile(path, nil, 0600))

	s := newTestServer(t, ctrl, cfg)
	require.NoError(t, s.Start(context.Background()))

	defer s.Stop()

	conn, err := net.Dial("unix", path)
	require.NoError(t, err)
	conn.Close()
}

func Test_Server_DeliversFromSender(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig(t)

	s := newTestServer(t, ctrl, cfg)
	require.NoError(t, s.Start(context.Background()))

	defer s.Stop()

	sub := s.Subscribe(cfg.Transport.Topic)
	defer s.Unsubscribe(sub)

	snd := NewSender(cfg)
	defer snd.Close()

	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, snd.Send(Envelope{Type: "INFO", Tag: "t", Message: msg, Timestamp: "ts"}))
	}

	for _, msg := range []string{"first", "second", "third"} {
		env := receive(t, sub)
		assert.Equal(t, msg, env.Message)
		assert.Equal(t, cfg.Transport.Topic, env.Action)
	}
}

func Test_Server_DropsMalformedAndForeign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig(t)

	s := newTestServer(t, ctrl, cfg)
	require.NoError(t, s.Start(context.Background()))

	defer s.Stop()

	sub := s.Subscribe(cfg.Transport.Topic)

	conn, err := net.Dial("unix", s.SocketPath())
	require.NoError(t, err)

	defer conn.Close()

	lines := "not json\n" +
		"\n" +
		`{"action":"other.topic","type":"INFO","message":"foreign"}` + "\n" +
		`{"action":"test.topic","message":"no type"}` + "\n" +
		`{"action":"test.topic","type":"INFO","message":"valid"}` + "\n"

	_, err = conn.Write([]byte(lines))
	require.NoError(t, err)

	assert.Equal(t, "valid", receive(t, sub).Message)

	select {
	case env := <-sub.Envelopes:
		t.Fatalf("unexpected envelope %+v", env)
	case <-time.After(50 * time.Millisecond):
	}
}

func Test_Server_UnsubscribeStopsDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig(t)

	s := newTestServer(t, ctrl, cfg)
	require.NoError(t, s.Start(context.Background()))

	defer s.Stop()

	sub := s.Subscribe(cfg.Transport.Topic)
	s.Unsubscribe(sub)

	snd := NewSender(cfg)
	defer snd.Close()

	require.NoError(t, snd.Send(Envelope{Type: "INFO", Message: "after teardown"}))

	_, ok := <-sub.Envelopes
	assert.False(t, ok)
}
