package viewer

import (
	"sync"
	"time"

	"orslog/internal/app/bus"
	"orslog/internal/app/filter"
	"orslog/internal/app/logs"
)

// Session owns the viewing criteria and the view derived from the store
type Session struct {
	store  logs.Store
	bus    bus.Bus
	spec   filter.Spec
	view   []logs.Entry
	counts filter.Counts
	total  int
	mode   Visualization
	mu     sync.RWMutex
}

// NewSession creates a session with every severity selected and the cutoff at now
func NewSession(store logs.Store, b bus.Bus, now time.Time) *Session {
	s := &Session{
		store: store,
		bus:   b,
		spec:  filter.DefaultSpec(now),
		mode:  Plain,
	}

	s.Refresh()

	return s
}

// Refresh re-runs the filter over the whole store
func (s *Session) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recompute()
}

// ToggleSeverity flips a single severity checkbox
func (s *Session) ToggleSeverity(severity logs.Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !severity.Valid() {
		return
	}

	if s.spec.Severities[severity] {
		delete(s.spec.Severities, severity)
	} else {
		s.spec.Severities[severity] = true
	}

	s.recompute()
}

// SetAll selects or deselects every severity at once
func (s *Session) SetAll(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enabled {
		s.spec.Severities = filter.AllSeverities()
	} else {
		s.spec.Severities = make(map[logs.Severity]bool)
	}

	s.recompute()
}

// AllSelected reports whether every individual severity is selected
func (s *Session) AllSelected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, severity := range logs.Severities() {
		if !s.spec.Severities[severity] {
			return false
		}
	}

	return true
}

// Selected reports whether a single severity is active
func (s *Session) Selected(severity logs.Severity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.spec.Severities[severity]
}

// SetQuery normalizes and applies raw search input
func (s *Session) SetQuery(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec.Query = filter.NormalizeQuery(raw)
	s.recompute()
}

// SetCutoff moves the minimum timestamp
func (s *Session) SetCutoff(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spec.MinTimestamp = cutoff
	s.recompute()
}

// Clear empties the store and the derived view
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Clear()
	s.recompute()

	if s.bus != nil {
		s.bus.Publish(bus.Message{Type: bus.EventLogsCleared})
	}
}

// Spec returns a copy of the active criteria
func (s *Session) Spec() filter.Spec {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.spec.Clone()
}

// View returns the filtered entries in insertion order
func (s *Session) View() []logs.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := make([]logs.Entry, len(s.view))
	copy(view, s.view)

	return view
}

// Counts returns per severity counts over the filtered view
func (s *Session) Counts() filter.Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(filter.Counts, len(s.counts))
	for k, v := range s.counts {
		counts[k] = v
	}

	return counts
}

// Total returns the number of stored entries before filtering
func (s *Session) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.total
}

// Mode returns the active visualization
func (s *Session) Mode() Visualization {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mode
}

// SetMode switches the visualization
func (s *Session) SetMode(mode Visualization) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
}

// CycleMode advances plain → pie → bar → plain
func (s *Session) CycleMode() Visualization {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = s.mode.Next()

	return s.mode
}

func (s *Session) recompute() {
	all := s.store.All()

	s.total = len(all)
	s.view = filter.Apply(all, s.spec)
	s.counts = filter.Count(s.view)

	if s.bus != nil {
		s.bus.Publish(bus.Message{
			Type: bus.EventFilterChanged,
			Data: bus.FilterChanged{Visible: len(s.view), Total: s.total},
		})
	}
}
