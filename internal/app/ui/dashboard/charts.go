package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"orslog/internal/app/ui/components"
	"orslog/internal/app/viewer"
)

const (
	barGlyph    = "█"
	legendGlyph = "■"
	noChartData = "No entries match the current filter"
)

// renderPie draws the slices as a proportional strip followed by a legend
func renderPie(slices []viewer.Slice, width int) string {
	if len(slices) == 0 {
		return components.EmptyStateStyle.Render(noChartData)
	}

	stripWidth := components.PieWidth
	if width > 0 && width < stripWidth {
		stripWidth = width
	}

	cells := pieCells(slices, stripWidth)

	var strip strings.Builder

	for i, slice := range slices {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(slice.Color.Hex()))
		strip.WriteString(style.Render(strings.Repeat(barGlyph, cells[i])))
	}

	lines := []string{strip.String(), ""}

	for _, slice := range slices {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(slice.Color.Hex()))
		label := components.PadRight(slice.Severity.String(), components.ChartLabelWidth)

		lines = append(lines, fmt.Sprintf("%s %s %5d  %5.1f%%", style.Render(legendGlyph), label, slice.Count, slice.Percent))
	}

	return strings.Join(lines, "\n")
}

// pieCells distributes width across slices by share, giving every slice at least one cell
func pieCells(slices []viewer.Slice, width int) []int {
	cells := make([]int, len(slices))
	used := 0
	largest := 0

	for i, slice := range slices {
		n := int(slice.Percent * float64(width) / 100)
		if n < 1 {
			n = 1
		}

		cells[i] = n
		used += n

		if slice.Count > slices[largest].Count {
			largest = i
		}
	}

	cells[largest] += width - used
	if cells[largest] < 1 {
		cells[largest] = 1
	}

	return cells
}

// renderBar draws one horizontal bar per severity scaled to the largest count
func renderBar(series []viewer.Series, width int) string {
	maxCount := 0

	for _, s := range series {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}

	if maxCount == 0 {
		return components.EmptyStateStyle.Render(noChartData)
	}

	barWidth := width - components.ChartLabelWidth - components.ChartCountWidth
	if barWidth < 1 {
		barWidth = 1
	}

	lines := make([]string, 0, len(series))

	for _, s := range series {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color.Hex()))
		length := s.Count * barWidth / maxCount

		if s.Count > 0 && length == 0 {
			length = 1
		}

		label := components.PadRight(s.Severity.String(), components.ChartLabelWidth)
		bar := components.PadRight(style.Render(strings.Repeat(barGlyph, length)), barWidth)

		lines = append(lines, fmt.Sprintf("%s %s %d", label, bar, s.Count))
	}

	return strings.Join(lines, "\n")
}
