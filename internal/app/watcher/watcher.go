//go:generate mockgen -source=watcher.go -destination=watcher_mock.go -package=watcher
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"orslog/internal/app/errors"
	"orslog/internal/app/logs"
	"orslog/internal/app/publisher"
	"orslog/internal/config"
	"orslog/internal/config/logger"
)

// Watcher tails matching files under a set of directories and publishes new lines
type Watcher interface {
	Start(ctx context.Context, dirs []string) error
	Close()
}

// manager implements the Watcher interface
type manager struct {
	cfg       *config.Config
	publisher publisher.Publisher
	tailer    Tailer
	selector  *Selector
	pending   *batch
	fsWatcher *fsnotify.Watcher
	roots     []string
	log       logger.Logger
	mu        sync.RWMutex
	closed    bool
}

// NewWatcher creates a new Watcher instance
func NewWatcher(cfg *config.Config, pub publisher.Publisher, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &manager{
		cfg:       cfg,
		publisher: pub,
		tailer:    NewTailer(),
		fsWatcher: fsw,
		log:       log.WithComponent("WATCHER"),
	}, nil
}

// Start begins watching dirs; existing files are tailed from their current end
func (m *manager) Start(ctx context.Context, dirs []string) error {
	if len(m.cfg.Watch.Include) == 0 {
		return errors.ErrNoWatchPatterns
	}

	selector, err := NewSelector(m.cfg.Watch.Include, m.cfg.Watch.Ignore)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.selector = selector
	m.pending = newBatch(m.cfg.Watch.Debounce, m.flush)

	for _, dir := range dirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			m.mu.Unlock()
			return err
		}

		if err := m.addDirRecursive(absDir); err != nil {
			m.mu.Unlock()
			return err
		}

		m.roots = append(m.roots, absDir)
		m.log.Info().Msgf("Watching %s for %v", absDir, m.cfg.Watch.Include)
	}
	m.mu.Unlock()

	go m.processEvents(ctx)

	return nil
}

// Close stops the watcher and releases resources
func (m *manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	m.closed = true

	if m.pending != nil {
		m.pending.Stop()
	}

	m.fsWatcher.Close()
}

// processEvents handles fsnotify events until ctx is done or the watcher closes
func (m *manager) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.Close()
			return
		case event, ok := <-m.fsWatcher.Events:
			if !ok {
				return
			}

			m.handleEvent(event)
		case err, ok := <-m.fsWatcher.Errors:
			if !ok {
				return
			}

			m.log.Error().Err(err).Msg("Watcher error")
		}
	}
}

// handleEvent routes a single fsnotify event to the tailer
func (m *manager) handleEvent(event fsnotify.Event) {
	if !isRelevantEvent(event) {
		return
	}

	if event.Has(fsnotify.Create) {
		m.handleCreate(event.Name)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed || !m.matches(event.Name) {
		return
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		m.tailer.Forget(event.Name)
		return
	}

	m.pending.Add(event.Name)
}

// matches reports whether path is under a root and matches the patterns
func (m *manager) matches(path string) bool {
	rel, ok := m.relToRoot(path)

	return ok && m.selector.Selects(rel)
}

// relToRoot returns path relative to the first watched root containing it
func (m *manager) relToRoot(path string) (string, bool) {
	for _, root := range m.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}

		return rel, true
	}

	return "", false
}

// handleCreate watches a new directory tree and queues the matching files already inside it
func (m *manager) handleCreate(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		rel, ok := m.relToRoot(p)
		if !ok {
			return nil
		}

		if d.IsDir() {
			if m.selector.Prunes(rel) {
				return filepath.SkipDir
			}

			if err := m.fsWatcher.Add(p); err != nil {
				m.log.Warn().Err(err).Msgf("Failed to watch new directory: %s", p)
			}

			return nil
		}

		if m.selector.Selects(rel) {
			m.pending.Add(p)
		}

		return nil
	})
}

// flush publishes the lines appended to each changed file
func (m *manager) flush(files []string) {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()

	if closed {
		return
	}

	for _, path := range files {
		lines, err := m.tailer.ReadNew(path)
		if err != nil {
			m.log.Debug().Err(err).Msgf("Failed to read %s", path)
			continue
		}

		tag := filepath.Base(path)
		for _, line := range lines {
			m.publisher.Publish(DetectSeverity(line), tag, line, logs.Caller{File: tag})
		}
	}
}

// addDirRecursive watches dir and its subdirectories and seeds matching files
func (m *manager) addDirRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}

		if info.IsDir() {
			if path != dir && m.selector.Prunes(relPath) {
				return filepath.SkipDir
			}

			if err := m.fsWatcher.Add(path); err != nil {
				m.log.Warn().Err(err).Msgf("Failed to watch directory: %s", path)
			}

			return nil
		}

		if m.selector.Selects(relPath) {
			m.tailer.Seed(path)
		}

		return nil
	})
}

// isRelevantEvent returns true if the event may change a tailed file
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
