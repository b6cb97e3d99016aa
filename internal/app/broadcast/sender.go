//go:generate mockgen -source=sender.go -destination=sender_mock.go -package=broadcast
package broadcast

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"orslog/internal/app/errors"
	"orslog/internal/config"
)

// Sender delivers envelopes to the viewer hosting a topic
type Sender interface {
	Send(env Envelope) error
	Topic() string
	Close() error
}

type sender struct {
	topic        string
	socketPath   string
	dialTimeout  time.Duration
	writeTimeout time.Duration
	conn         net.Conn
	mu           sync.Mutex
}

// NewSender creates a sender for the configured topic; the connection is opened lazily
func NewSender(cfg *config.Config) Sender {
	return &sender{
		topic:        cfg.Transport.Topic,
		socketPath:   SocketPath(cfg.Transport.SocketDir, cfg.Transport.Topic),
		dialTimeout:  cfg.Transport.DialTimeout,
		writeTimeout: config.SocketWriteTimeout,
	}
}

// Topic returns the topic stamped into every envelope
func (s *sender) Topic() string {
	return s.topic
}

// Send writes one envelope; a missing or dead endpoint yields ErrTransportUnavailable
func (s *sender) Send(env Envelope) error {
	env.Action = s.topic

	data, err := Encode(env)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}

	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		s.reset()
		return fmt.Errorf("%w: %w", errors.ErrTransportUnavailable, err)
	}

	if _, err := s.conn.Write(data); err != nil {
		s.reset()
		return fmt.Errorf("%w: %w: %w", errors.ErrTransportUnavailable, errors.ErrFailedToWriteSocket, err)
	}

	return nil
}

// Close closes the underlying connection if one is open
func (s *sender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	err := s.conn.Close()
	s.conn = nil

	return err
}

func (s *sender) connect() error {
	if _, err := os.Stat(s.socketPath); err != nil {
		return fmt.Errorf("%w: %s", errors.ErrTransportUnavailable, s.socketPath)
	}

	conn, err := net.DialTimeout("unix", s.socketPath, s.dialTimeout)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrTransportUnavailable, err)
	}

	s.conn = conn

	return nil
}

func (s *sender) reset() {
	s.conn.Close()
	s.conn = nil
}
