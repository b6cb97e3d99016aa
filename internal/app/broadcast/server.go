package broadcast

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"orslog/internal/app/errors"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

// Server hosts the topic endpoint and feeds publisher lines into the hub
type Server interface {
	Start(ctx context.Context) error
	Stop() error
	Subscribe(topic string) *Subscription
	Unsubscribe(sub *Subscription)
	SocketPath() string
	Topic() string
}

// server implements the Server interface
type server struct {
	topic      string
	socketPath string
	listener   net.Listener
	hub        Hub
	running    atomic.Bool
	wg         sync.WaitGroup
	connID     atomic.Int64
	cancel     context.CancelFunc
	log        logger.Logger
}

// NewServer creates a new broadcast server for the configured topic
func NewServer(cfg *config.Config, log logger.Logger) Server {
	return &server{
		topic:      cfg.Transport.Topic,
		socketPath: SocketPath(cfg.Transport.SocketDir, cfg.Transport.Topic),
		hub:        NewHub(cfg.Transport.Buffer),
		log:        log.WithComponent("SERVER"),
	}
}

// SocketPath returns the socket path for this server
func (s *server) SocketPath() string {
	return s.socketPath
}

// Topic returns the topic this server is bound to
func (s *server) Topic() string {
	return s.topic
}

// Subscribe registers an in-process subscription; the server must be started
func (s *server) Subscribe(topic string) *Subscription {
	return s.hub.Subscribe(topic)
}

// Unsubscribe removes an in-process subscription
func (s *server) Unsubscribe(sub *Subscription) {
	s.hub.Unsubscribe(sub)
}

// Start starts the Unix socket server
func (s *server) Start(ctx context.Context) error {
	if err := s.cleanupStaleSocket(); err != nil {
		if errors.Is(err, errors.ErrSocketAlreadyInUse) {
			return err
		}

		return fmt.Errorf("%w: %w", errors.ErrFailedToCleanupSocket, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errors.ErrFailedToListenSocket, s.socketPath, err)
	}

	s.listener = listener
	s.running.Store(true)
	s.log.Info().Msgf("Server listening on %s", s.socketPath)

	serverCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.hub.Run(serverCtx)
	}()

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.acceptConnections(serverCtx)
	}()

	return nil
}

// Stop stops the server and cleans up resources
func (s *server) Stop() error {
	if !s.running.Load() {
		return nil
	}

	s.running.Store(false)

	if s.cancel != nil {
		s.cancel()
	}

	if s.listener != nil {
		s.listener.Close()
	}

	s.wg.Wait()

	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Msgf("Failed to remove socket file: %s", s.socketPath)
	}

	s.log.Info().Msg("Server stopped")

	return nil
}

// cleanupStaleSocket removes stale socket file if not in use
func (s *server) cleanupStaleSocket() error {
	if _, err := os.Stat(s.socketPath); os.IsNotExist(err) {
		return nil
	}

	conn, err := net.DialTimeout("unix", s.socketPath, config.SocketDialTimeout)
	if err == nil {
		conn.Close()

		return fmt.Errorf("%w: %s", errors.ErrSocketAlreadyInUse, s.socketPath)
	}

	s.log.Info().Msgf("Removing stale socket: %s", s.socketPath)

	return os.Remove(s.socketPath)
}

// acceptConnections handles incoming publisher connections
func (s *server) acceptConnections(ctx context.Context) {
	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.running.Load() {
				s.log.Error().Err(err).Msg("Failed to accept connection")
			}

			continue
		}

		s.wg.Add(1)

		go func(c net.Conn) {
			defer s.wg.Done()

			s.handleConnection(ctx, c)
		}(conn)
	}
}

// handleConnection reads envelopes line by line until the publisher hangs up
func (s *server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	connID := s.connID.Add(1)
	publisherID := fmt.Sprintf("publisher-%d", connID)

	s.log.Debug().Msgf("Publisher connected: %s", publisherID)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), config.SocketReadLineLimit)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		env, err := Decode(line)
		if err != nil {
			s.log.Warn().Err(err).Msgf("Dropping malformed payload from %s", publisherID)
			continue
		}

		if env.Action != s.topic {
			s.log.Debug().Msgf("Dropping payload for foreign topic '%s' from %s", env.Action, publisherID)
			continue
		}

		s.hub.Deliver(env)
	}

	if err := scanner.Err(); err != nil && s.running.Load() {
		s.log.Debug().Err(err).Msgf("Publisher %s read failed", publisherID)
	}

	s.log.Debug().Msgf("Publisher disconnected: %s", publisherID)
}
