package logs

import "sync"

// Store is the ordered in-memory list of received entries
type Store interface {
	Append(entry Entry)
	All() []Entry
	Len() int
	Clear()
}

// store is append-only; a non-zero limit keeps only the newest entries
type store struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int
}

// NewStore creates a store. A limit of 0 keeps every entry until Clear.
func NewStore(limit int) Store {
	return &store{
		entries: []Entry{},
		limit:   limit,
	}
}

// Append adds an entry at the end of the list
func (s *store) Append(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)

	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
}

// All returns a copy of the entries in insertion order
func (s *store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)

	return entries
}

// Len returns the number of stored entries
func (s *store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Clear removes every entry
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []Entry{}
}
