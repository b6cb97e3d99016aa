package broadcast

import (
	"context"
	"sync"
	"sync/atomic"
)

// Hub fans decoded envelopes out to in-process subscriptions
type Hub interface {
	Subscribe(topic string) *Subscription
	Unsubscribe(sub *Subscription)
	Deliver(env Envelope)
	Run(ctx context.Context)
}

// Subscription receives envelopes whose action equals Topic
type Subscription struct {
	ID        int64
	Topic     string
	Envelopes chan Envelope
	dropped   atomic.Int64
}

// NewSubscription creates a subscription with the given buffer size
func NewSubscription(id int64, topic string, bufferSize int) *Subscription {
	return &Subscription{
		ID:        id,
		Topic:     topic,
		Envelopes: make(chan Envelope, bufferSize),
	}
}

// ShouldReceive reports whether an envelope with the given action belongs to this subscription
func (s *Subscription) ShouldReceive(action string) bool {
	return s.Topic == action
}

// Dropped returns how many envelopes were discarded because the buffer was full
func (s *Subscription) Dropped() int64 {
	return s.dropped.Load()
}

// hub implements the Hub interface
type hub struct {
	bufferSize  int
	nextID      atomic.Int64
	subscribers map[*Subscription]bool
	register    chan *Subscription
	unregister  chan *Subscription
	broadcast   chan Envelope
	done        chan struct{}
	mu          sync.RWMutex
}

// NewHub creates a new Hub instance with the specified buffer size
func NewHub(bufferSize int) Hub {
	return &hub{
		bufferSize:  bufferSize,
		subscribers: make(map[*Subscription]bool),
		register:    make(chan *Subscription),
		unregister:  make(chan *Subscription),
		broadcast:   make(chan Envelope, bufferSize),
		done:        make(chan struct{}),
	}
}

// Subscribe registers a new subscription for topic; after the hub stops the returned channel is closed
func (h *hub) Subscribe(topic string) *Subscription {
	sub := NewSubscription(h.nextID.Add(1), topic, h.bufferSize)

	select {
	case h.register <- sub:
	case <-h.done:
		close(sub.Envelopes)
	}

	return sub
}

// Unsubscribe removes a subscription; nothing is delivered to it afterwards
func (h *hub) Unsubscribe(sub *Subscription) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Deliver queues an envelope for fan-out, waiting while the queue is full
func (h *hub) Deliver(env Envelope) {
	select {
	case h.broadcast <- env:
	case <-h.done:
	}
}

// Run starts the hub's main loop
func (h *hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()

			for sub := range h.subscribers {
				close(sub.Envelopes)
				delete(h.subscribers, sub)
			}

			h.mu.Unlock()

			return
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub] = true
			h.mu.Unlock()
		case sub := <-h.unregister:
			h.mu.Lock()

			if _, ok := h.subscribers[sub]; ok {
				close(sub.Envelopes)
				delete(h.subscribers, sub)
			}

			h.mu.Unlock()
		case env := <-h.broadcast:
			h.mu.RLock()

			for sub := range h.subscribers {
				if sub.ShouldReceive(env.Action) {
					select {
					case sub.Envelopes <- env:
					default:
						sub.dropped.Add(1)
					}
				}
			}

			h.mu.RUnlock()
		}
	}
}
