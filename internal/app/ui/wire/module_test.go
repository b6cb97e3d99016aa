package wire

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"orslog/internal/app/bus"
	"orslog/internal/app/export"
	"orslog/internal/app/logs"
	"orslog/internal/app/viewer"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

func newParams(ctrl *gomock.Controller) UIParams {
	cfg := config.DefaultConfig()
	b := bus.New(cfg, nil)

	log := logger.NewMockLogger(ctrl)
	log.EXPECT().WithComponent(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().Debug().Return(nil).AnyTimes()

	return UIParams{
		Bus:     b,
		Session: viewer.NewSession(logs.NewStore(0), b, time.Now()),
		Flow:    export.NewFlow(export.NewMockExporter(ctrl), log),
		Logger:  log,
	}
}

func Test_NewUI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	factory := NewUI(newParams(ctrl))
	assert.NotNil(t, factory)
}

func Test_UI_CreateProgram(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	params := newParams(ctrl)
	defer params.Bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	program, err := NewUI(params)(ctx)
	require.NoError(t, err)
	assert.NotNil(t, program)
}
