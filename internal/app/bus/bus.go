//go:generate mockgen -source=bus.go -destination=bus_mock.go -package=bus
package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"orslog/internal/app/logs"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

// MessageType represents the type of message
type MessageType string

// Event types
const (
	EventReceiverStarted    MessageType = "receiver_started"
	EventReceiverStopped    MessageType = "receiver_stopped"
	EventLogAppended        MessageType = "log_appended"
	EventLogDropped         MessageType = "log_dropped"
	EventLogsCleared        MessageType = "logs_cleared"
	EventFilterChanged      MessageType = "filter_changed"
	EventExportCompleted    MessageType = "export_completed"
	EventExportFailed       MessageType = "export_failed"
	EventPermissionRequired MessageType = "permission_required"
	EventSignal             MessageType = "signal"
)

// Message represents a bus message
type Message struct {
	Type      MessageType
	Timestamp time.Time
	Data      interface{}
	Critical  bool
}

// ReceiverState describes the channel a receiver is bound to
type ReceiverState struct {
	Topic  string
	Socket string
}

// LogAppended carries an entry that was just stored
type LogAppended struct {
	Entry logs.Entry
}

// LogDropped indicates a payload that could not be turned into an entry
type LogDropped struct {
	Reason string
}

// FilterChanged reports the visible and total entry counts after a recompute
type FilterChanged struct {
	Visible int
	Total   int
}

// ExportCompleted indicates a CSV file was written
type ExportCompleted struct {
	Path  string
	Dir   string
	Count int
}

// ExportFailed indicates an export attempt that did not produce a file
type ExportFailed struct {
	Error error
}

// Signal contains information about a received OS signal
type Signal struct {
	Name string
}

// Bus handles pub/sub messaging
type Bus interface {
	Subscribe(ctx context.Context) <-chan Message
	Publish(msg Message)
	Close()
}

// bus implements the Bus interface with pub/sub messaging
type bus struct {
	cfg         *config.Config
	subscribers []chan Message
	mu          sync.RWMutex
	closed      bool
	log         logger.Logger
}

// New creates a new Bus
func New(cfg *config.Config, log logger.Logger) Bus {
	return &bus{
		cfg:         cfg,
		subscribers: make([]chan Message, 0),
		log:         log,
	}
}

// Subscribe creates a new subscription channel
func (b *bus) Subscribe(ctx context.Context) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Message, b.cfg.Transport.Buffer)

	if b.closed {
		close(ch)
		return ch
	}

	b.subscribers = append(b.subscribers, ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// Publish sends a message to all subscribers
func (b *bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	msg.Timestamp = time.Now()

	if b.log != nil {
		b.log.Debug().Msgf("%s %s", msg.Type, formatData(msg.Data))
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			if msg.Critical {
				go func(c chan Message, m Message) {
					defer func() { recover() }()

					c <- m
				}(ch, msg)
			}
		}
	}
}

// Close closes all subscriber channels
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for _, ch := range b.subscribers {
		close(ch)
	}

	b.subscribers = nil
}

func (b *bus) unsubscribe(ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)

			close(ch)

			break
		}
	}
}

func formatData(data interface{}) string {
	switch d := data.(type) {
	case nil:
		return "{}"
	case ReceiverState:
		return fmt.Sprintf("{topic: %s, socket: %s}", d.Topic, d.Socket)
	case LogAppended:
		return fmt.Sprintf("{type: %s, tag: %s, ts: %s}", d.Entry.Severity, d.Entry.Tag, d.Entry.Timestamp)
	case LogDropped:
		return fmt.Sprintf("{reason: %s}", d.Reason)
	case FilterChanged:
		return fmt.Sprintf("{visible: %d, total: %d}", d.Visible, d.Total)
	case ExportCompleted:
		return fmt.Sprintf("{path: %s, count: %d}", d.Path, d.Count)
	case ExportFailed:
		return fmt.Sprintf("{error: %v}", d.Error)
	case Signal:
		return fmt.Sprintf("{signal: %s}", d.Name)
	default:
		return fmt.Sprintf("%+v", data)
	}
}

// NoOp returns a no-op bus for when messaging is disabled
func NoOp() Bus {
	return &noOpBus{}
}

// noOpBus implements Bus interface with no-op methods for testing
type noOpBus struct{}

func (n *noOpBus) Subscribe(ctx context.Context) <-chan Message {
	ch := make(chan Message)

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (n *noOpBus) Publish(msg Message) {}
func (n *noOpBus) Close()              {}
