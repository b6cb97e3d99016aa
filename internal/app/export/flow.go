package export

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"orslog/internal/app/errors"
	"orslog/internal/app/logs"
	"orslog/internal/config/logger"
)

// FSM states
const (
	Idle               = "idle"
	AwaitingPermission = "awaiting_permission"
	Denied             = "denied"
)

// FSM events
const (
	Request = "request"
	Grant   = "grant"
	Refuse  = "refuse"
	Reset   = "reset"
)

// User facing messages
const (
	PromptMessage = "Storage permission required to export logs. Grant? (y/n)"
	DeniedMessage = "Permission denied. Cannot export logs."
)

// Flow drives an export through the permission prompt: a denial parks the
// request, a grant retries it exactly once, a refusal or second denial is final
type Flow struct {
	exporter Exporter
	machine  *fsm.FSM
	pending  []logs.Entry
	at       time.Time
	mu       sync.Mutex
	log      logger.Logger
}

// NewFlow creates a permission flow around exporter
func NewFlow(exporter Exporter, log logger.Logger) *Flow {
	f := &Flow{
		exporter: exporter,
		log:      log,
	}

	f.machine = fsm.NewFSM(
		Idle,
		fsm.Events{
			{Name: Request, Src: []string{Idle, Denied}, Dst: AwaitingPermission},
			{Name: Grant, Src: []string{AwaitingPermission}, Dst: Idle},
			{Name: Refuse, Src: []string{AwaitingPermission}, Dst: Denied},
			{Name: Reset, Src: []string{Denied}, Dst: Idle},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				log.Debug().Msgf("STATE export: %s → %s (trigger: %s)", e.Src, e.Dst, e.Event)
			},
			"enter_" + Idle: func(ctx context.Context, e *fsm.Event) {
				f.pending = nil
			},
			"enter_" + Denied: func(ctx context.Context, e *fsm.Event) {
				f.pending = nil
			},
		},
	)

	return f
}

// State returns the current flow state
func (f *Flow) State() string {
	return f.machine.Current()
}

// Dir returns the export directory
func (f *Flow) Dir() string {
	return f.exporter.Dir()
}

// Pending returns the number of entries parked behind the permission prompt
func (f *Flow) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.pending)
}

// Export attempts to write entries; on a permission failure the request is kept
// and the flow waits for Grant or Deny
func (f *Flow) Export(ctx context.Context, entries []logs.Entry, now time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path, err := f.exporter.Export(entries, now)
	if err == nil {
		if f.machine.Is(Denied) {
			f.fire(ctx, Reset)
		}

		return path, nil
	}

	if !errors.Is(err, errors.ErrExportPermissionDenied) {
		f.log.Error().Err(err).Msg("Export failed")
		return "", err
	}

	if f.machine.Can(Request) {
		f.fire(ctx, Request)
	}

	f.pending = append([]logs.Entry(nil), entries...)
	f.at = now

	return "", err
}

// Grant retries the parked export once
func (f *Flow) Grant(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.machine.Is(AwaitingPermission) {
		return "", errors.ErrExportNotAwaiting
	}

	path, err := f.exporter.Export(f.pending, f.at)
	if err == nil {
		f.fire(ctx, Grant)
		return path, nil
	}

	if errors.Is(err, errors.ErrExportPermissionDenied) {
		f.fire(ctx, Refuse)
		return "", fmt.Errorf("%w: %s", errors.ErrExportPermissionDenied, DeniedMessage)
	}

	f.fire(ctx, Grant)

	return "", err
}

// Deny abandons the parked export
func (f *Flow) Deny(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.machine.Is(AwaitingPermission) {
		return errors.ErrExportNotAwaiting
	}

	f.fire(ctx, Refuse)

	return fmt.Errorf("%w: %s", errors.ErrExportPermissionDenied, DeniedMessage)
}

func (f *Flow) fire(ctx context.Context, event string) {
	if err := f.machine.Event(ctx, event); err != nil {
		f.log.Warn().Err(err).Msgf("Export flow rejected event %s", event)
	}
}
