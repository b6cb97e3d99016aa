package filter

import (
	"strings"
	"time"

	"orslog/internal/app/logs"
)

// Spec holds the active viewing criteria
type Spec struct {
	Severities   map[logs.Severity]bool
	Query        string
	MinTimestamp time.Time
}

// DefaultSpec selects every severity, no search text and a cutoff at now
func DefaultSpec(now time.Time) Spec {
	return Spec{
		Severities:   AllSeverities(),
		Query:        "",
		MinTimestamp: now,
	}
}

// AllSeverities returns a fresh set containing every severity
func AllSeverities() map[logs.Severity]bool {
	set := make(map[logs.Severity]bool, len(logs.Severities()))
	for _, s := range logs.Severities() {
		set[s] = true
	}

	return set
}

// NormalizeQuery trims and lower-cases raw search box input
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Clone returns a deep copy of the spec
func (s Spec) Clone() Spec {
	severities := make(map[logs.Severity]bool, len(s.Severities))
	for k, v := range s.Severities {
		severities[k] = v
	}

	return Spec{
		Severities:   severities,
		Query:        s.Query,
		MinTimestamp: s.MinTimestamp,
	}
}

// Matches reports whether a single entry passes the spec
func (s Spec) Matches(entry logs.Entry) bool {
	if !s.Severities[entry.Severity] {
		return false
	}

	if s.Query != "" && !strings.Contains(strings.ToLower(entry.Message), s.Query) {
		return false
	}

	ts, err := entry.Time()
	if err != nil {
		return false
	}

	return !ts.Before(s.MinTimestamp)
}

// Apply returns, in insertion order, every entry matching the spec
func Apply(entries []logs.Entry, spec Spec) []logs.Entry {
	result := make([]logs.Entry, 0, len(entries))

	if len(spec.Severities) == 0 {
		return result
	}

	for _, entry := range entries {
		if spec.Matches(entry) {
			result = append(result, entry)
		}
	}

	return result
}
