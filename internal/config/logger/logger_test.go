package logger

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"orslog/internal/config"
)

func Test_NewLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		format   string
		expected zerolog.Level
	}{
		{name: "Default", level: config.LogLevel, format: config.LogFormat, expected: zerolog.InfoLevel},
		{name: "Debug level", level: DebugLevel, format: ConsoleFormat, expected: zerolog.DebugLevel},
		{name: "Warn level and json format", level: WarnLevel, format: JSONFormat, expected: zerolog.WarnLevel},
		{name: "Empty level and format (defaults)", level: "", format: "", expected: zerolog.InfoLevel},
		{name: "Error level", level: ErrorLevel, format: ConsoleFormat, expected: zerolog.ErrorLevel},
		{name: "Trace level", level: TraceLevel, format: ConsoleFormat, expected: zerolog.TraceLevel},
		{name: "Unknown level", level: "unknown", format: "unknown", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level
			cfg.Logging.Format = tt.format

			log := NewLogger(cfg)
			assert.NotNil(t, log)

			appLogger, ok := log.(*AppLogger)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, appLogger.log.GetLevel())
		})
	}
}

func Test_NewLogger_FillsEmptyConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = ""
	cfg.Logging.Format = ""

	NewLogger(cfg)

	assert.Equal(t, InfoLevel, cfg.Logging.Level)
	assert.Equal(t, ConsoleFormat, cfg.Logging.Format)
}

func Test_NewLoggerWithOutput(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Format = JSONFormat

	var buf bytes.Buffer

	log := NewLoggerWithOutput(cfg, &buf)
	log.Info().Str("key", "value").Msg("hello")

	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Contains(t, buf.String(), `"key":"value"`)
	assert.Contains(t, buf.String(), `"version":"`+config.Version+`"`)
}

func Test_NewSilentLogger(t *testing.T) {
	log := NewSilentLogger(config.DefaultConfig())

	assert.NotPanics(t, func() {
		log.Error().Err(errors.New("boom")).Msg("discarded")
	})
}

func Test_WithComponent(t *testing.T) {
	cfg := config.DefaultConfig()

	var buf bytes.Buffer

	log := NewLoggerWithOutput(cfg, &buf).WithComponent("RECEIVER")
	log.Warn().Msg("dropped payload")

	assert.Contains(t, buf.String(), `"component":"RECEIVER"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "Trace", level: TraceLevel, expected: zerolog.TraceLevel},
		{name: "Debug", level: DebugLevel, expected: zerolog.DebugLevel},
		{name: "Info", level: InfoLevel, expected: zerolog.InfoLevel},
		{name: "Warn", level: WarnLevel, expected: zerolog.WarnLevel},
		{name: "Error", level: ErrorLevel, expected: zerolog.ErrorLevel},
		{name: "Unknown", level: "unknown", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getLogLevel(tt.level))
		})
	}
}

func Test_newConsoleWriter(t *testing.T) {
	var buf bytes.Buffer

	writer := newConsoleWriter(&buf)
	log := zerolog.New(writer).With().Timestamp().Str("component", "BUS").Logger()
	log.Info().Dur("took", time.Millisecond).Msg("published")

	out := buf.String()
	assert.Contains(t, out, "[BUS]")
	assert.Contains(t, out, "published")
}

func Test_Module(t *testing.T) {
	assert.NotNil(t, Module)
}
