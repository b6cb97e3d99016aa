package filter

import (
	"fmt"
	"strings"

	"orslog/internal/app/logs"
)

// Counts maps every severity to the number of entries carrying it
type Counts map[logs.Severity]int

// Count tallies entries per severity; absent severities map to 0
func Count(entries []logs.Entry) Counts {
	counts := make(Counts, len(logs.Severities()))
	for _, s := range logs.Severities() {
		counts[s] = 0
	}

	for _, entry := range entries {
		counts[entry.Severity]++
	}

	return counts
}

// Total returns the sum of all counts
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}

	return total
}

// String renders the summary shown under the list
func (c Counts) String() string {
	var b strings.Builder

	b.WriteString("Log Counts:")

	for _, s := range logs.Severities() {
		fmt.Fprintf(&b, " %s: %d", s, c[s])
	}

	return b.String()
}
