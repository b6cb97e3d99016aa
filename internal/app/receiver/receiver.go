package receiver

import (
	"context"
	"sync"

	"orslog/internal/app/broadcast"
	"orslog/internal/app/bus"
	"orslog/internal/app/logs"
	"orslog/internal/app/monitor"
	"orslog/internal/app/reporter"
	"orslog/internal/config/logger"
)

// Receiver turns broadcast envelopes into stored entries
type Receiver interface {
	Start(ctx context.Context) error
	Stop()
	Received() int
}

type receiver struct {
	server   broadcast.Server
	store    logs.Store
	bus      bus.Bus
	monitor  monitor.Monitor
	reporter reporter.Reporter
	sub      *broadcast.Subscription
	received int
	stopped  bool
	mu       sync.Mutex
	wg       sync.WaitGroup
	log      logger.Logger
}

// New creates a receiver bound to the server's topic
func New(
	server broadcast.Server,
	store logs.Store,
	b bus.Bus,
	mon monitor.Monitor,
	rep reporter.Reporter,
	log logger.Logger,
) Receiver {
	return &receiver{
		server:   server,
		store:    store,
		bus:      b,
		monitor:  mon,
		reporter: rep,
		log:      log,
	}
}

// Start subscribes once and processes envelopes until Stop or the server shuts down
func (r *receiver) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sub != nil {
		return nil
	}

	r.sub = r.server.Subscribe(r.server.Topic())

	r.bus.Publish(bus.Message{
		Type:     bus.EventReceiverStarted,
		Data:     bus.ReceiverState{Topic: r.server.Topic(), Socket: r.server.SocketPath()},
		Critical: true,
	})

	r.wg.Add(1)

	go func(sub *broadcast.Subscription) {
		defer r.wg.Done()

		for env := range sub.Envelopes {
			r.handle(ctx, env)
		}
	}(r.sub)

	return nil
}

// Stop unsubscribes; envelopes arriving afterwards are dropped
func (r *receiver) Stop() {
	r.mu.Lock()

	if r.sub == nil || r.stopped {
		r.mu.Unlock()
		return
	}

	r.stopped = true
	sub := r.sub
	r.mu.Unlock()

	r.server.Unsubscribe(sub)
	r.wg.Wait()

	r.bus.Publish(bus.Message{
		Type:     bus.EventReceiverStopped,
		Data:     bus.ReceiverState{Topic: r.server.Topic(), Socket: r.server.SocketPath()},
		Critical: true,
	})
}

// Received returns the number of entries stored so far
func (r *receiver) Received() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.received
}

func (r *receiver) handle(ctx context.Context, env broadcast.Envelope) {
	r.mu.Lock()
	stopped := r.stopped
	r.mu.Unlock()

	if stopped {
		return
	}

	entry, err := r.decode(ctx, env)
	if err != nil {
		r.log.Warn().Err(err).Msgf("Dropping payload from tag '%s'", env.Tag)
		r.reporter.Capture(err, map[string]string{"component": "receiver", "type": env.Type})
		r.bus.Publish(bus.Message{Type: bus.EventLogDropped, Data: bus.LogDropped{Reason: err.Error()}})

		return
	}

	r.store.Append(entry)

	r.mu.Lock()
	r.received++
	r.mu.Unlock()

	r.bus.Publish(bus.Message{Type: bus.EventLogAppended, Data: bus.LogAppended{Entry: entry}})
}

// decode rebuilds an entry exactly as the publisher formatted it
func (r *receiver) decode(ctx context.Context, env broadcast.Envelope) (logs.Entry, error) {
	severity, err := logs.ParseSeverity(env.Type)
	if err != nil {
		return logs.Entry{}, err
	}

	caller := logs.Caller{File: env.FileName, Line: env.LineNumber}
	entry := logs.NewEntry(severity, env.Tag, env.Message, env.Timestamp, caller)

	if r.monitor != nil {
		entry.Source = r.monitor.ProcessName(ctx, env.PID)
	}

	return entry, nil
}
