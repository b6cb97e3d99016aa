package watcher

import (
	"sync"
	"time"
)

// batch collects touched files until writes settle for the quiet period
type batch struct {
	quiet   time.Duration
	flush   func(paths []string)
	mu      sync.Mutex
	timer   *time.Timer
	pending []string
	seen    map[string]bool
	stopped bool
}

// newBatch creates a batch that hands files to flush in first-touch order
func newBatch(quiet time.Duration, flush func(paths []string)) *batch {
	return &batch{
		quiet: quiet,
		flush: flush,
		seen:  make(map[string]bool),
	}
}

// Add records a touched file and restarts the quiet period
func (b *batch) Add(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopped {
		return
	}

	if !b.seen[path] {
		b.seen[path] = true
		b.pending = append(b.pending, path)
	}

	if b.timer == nil {
		b.timer = time.AfterFunc(b.quiet, b.release)
		return
	}

	b.timer.Reset(b.quiet)
}

// Stop drops pending files; later Adds are ignored
func (b *batch) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopped = true
	b.pending = nil
	b.seen = make(map[string]bool)

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *batch) release() {
	b.mu.Lock()

	if b.stopped || len(b.pending) == 0 {
		b.mu.Unlock()
		return
	}

	paths := b.pending
	b.pending = nil
	b.seen = make(map[string]bool)
	b.timer = nil

	b.mu.Unlock()

	b.flush(paths)
}
