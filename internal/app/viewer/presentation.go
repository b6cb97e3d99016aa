package viewer

import (
	"orslog/internal/app/logs"
)

// Visualization selects how the filtered view is drawn
type Visualization int

const (
	Plain Visualization = iota
	Pie
	Bar
)

var visualizationNames = [...]string{"plain", "pie", "bar"}

// String returns the lower-case mode name
func (v Visualization) String() string {
	if v < Plain || v > Bar {
		return "plain"
	}

	return visualizationNames[v]
}

// Next returns the following mode, wrapping around
func (v Visualization) Next() Visualization {
	return (v + 1) % (Bar + 1)
}

// Row is one line of the plain list
type Row struct {
	Severity logs.Severity
	Text     string
	Source   string
	Color    logs.RGB
}

// Slice is one pie segment; severities with no entries are omitted
type Slice struct {
	Severity logs.Severity
	Count    int
	Percent  float64
	Color    logs.RGB
}

// Series is one bar; every severity is present in declaration order
type Series struct {
	Severity logs.Severity
	Count    int
	Color    logs.RGB
}

// PlainRows renders the filtered view as colored rows
func (s *Session) PlainRows() []Row {
	view := s.View()
	rows := make([]Row, 0, len(view))

	for _, entry := range view {
		rows = append(rows, Row{
			Severity: entry.Severity,
			Text:     entry.Message,
			Source:   entry.Source,
			Color:    entry.Severity.Color(),
		})
	}

	return rows
}

// PieSlices returns the share of each severity in the filtered view
func (s *Session) PieSlices() []Slice {
	counts := s.Counts()
	total := counts.Total()
	slices := make([]Slice, 0, len(logs.Severities()))

	if total == 0 {
		return slices
	}

	for _, severity := range logs.Severities() {
		n := counts[severity]
		if n == 0 {
			continue
		}

		slices = append(slices, Slice{
			Severity: severity,
			Count:    n,
			Percent:  float64(n) * 100 / float64(total),
			Color:    severity.Color(),
		})
	}

	return slices
}

// BarSeries returns one bar per severity over the filtered view
func (s *Session) BarSeries() []Series {
	counts := s.Counts()
	series := make([]Series, 0, len(logs.Severities()))

	for _, severity := range logs.Severities() {
		series = append(series, Series{
			Severity: severity,
			Count:    counts[severity],
			Color:    severity.Color(),
		})
	}

	return series
}
