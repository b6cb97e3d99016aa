//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=publisher
package publisher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"orslog/internal/app/broadcast"
	"orslog/internal/app/logs"
	"orslog/internal/config/logger"
)

// Publisher emits entries on the broadcast channel and mirrors them to a console sink
type Publisher interface {
	Publish(severity logs.Severity, tag, message string, caller logs.Caller)
	Debug(tag, message string)
	Info(tag, message string)
	Warning(tag, message string)
	Error(tag, message string, err error)
	Verbose(tag, message string)
}

type publisher struct {
	sender  broadcast.Sender
	console io.Writer
	now     func() time.Time
	pid     int
	mu      sync.Mutex
	log     logger.Logger
}

// New creates a publisher writing console lines to stdout
func New(sender broadcast.Sender, log logger.Logger) Publisher {
	return NewWithConsole(sender, os.Stdout, log)
}

// NewWithConsole creates a publisher writing console lines to console
func NewWithConsole(sender broadcast.Sender, console io.Writer, log logger.Logger) Publisher {
	return &publisher{
		sender:  sender,
		console: console,
		now:     time.Now,
		pid:     os.Getpid(),
		log:     log,
	}
}

// Publish strips escape codes, stamps the message and sends it; the console line is always written
func (p *publisher) Publish(severity logs.Severity, tag, message string, caller logs.Caller) {
	p.publish(severity, tag, message, caller, nil)
}

// Debug publishes a DEBUG entry attributed to the caller
func (p *publisher) Debug(tag, message string) {
	p.publish(logs.Debug, tag, message, callerAt(2), nil)
}

// Info publishes an INFO entry attributed to the caller
func (p *publisher) Info(tag, message string) {
	p.publish(logs.Info, tag, message, callerAt(2), nil)
}

// Warning publishes a WARNING entry attributed to the caller
func (p *publisher) Warning(tag, message string) {
	p.publish(logs.Warning, tag, message, callerAt(2), nil)
}

// Error publishes an ERROR entry; a non-nil err is printed after the console line
func (p *publisher) Error(tag, message string, err error) {
	p.publish(logs.Error, tag, message, callerAt(2), err)
}

// Verbose publishes a VERBOSE entry attributed to the caller
func (p *publisher) Verbose(tag, message string) {
	p.publish(logs.Verbose, tag, message, callerAt(2), nil)
}

func (p *publisher) publish(severity logs.Severity, tag, message string, caller logs.Caller, cause error) {
	clean := logs.StripANSI(message)
	timestamp := logs.Timestamp(p.now())

	env := broadcast.Envelope{
		Type:       severity.String(),
		Tag:        tag,
		Message:    clean,
		Timestamp:  timestamp,
		FileName:   caller.File,
		LineNumber: caller.Line,
		PID:        p.pid,
	}

	if p.sender != nil {
		if err := p.sender.Send(env); err != nil {
			p.log.Debug().Err(err).Msg("Skipping broadcast, transport unavailable")
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.console, logs.ConsoleLine(tag, severity, timestamp, clean))

	if cause != nil {
		fmt.Fprintln(p.console, cause.Error())
	}
}

func callerAt(skip int) logs.Caller {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return logs.Caller{}
	}

	return logs.Caller{File: filepath.Base(file), Line: line}
}
