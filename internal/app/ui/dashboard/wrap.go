package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxWastedSpace is the most trailing space a line may give up to break on a word
const maxWastedSpace = 20

// wrapText splits text into lines no wider than maxWidth display cells
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 || lipgloss.Width(text) <= maxWidth {
		return []string{text}
	}

	var lines []string

	runes := []rune(text)

	for len(runes) > 0 {
		width := 0
		breakAt := len(runes)
		lastSpace := -1

		for i, r := range runes {
			w := lipgloss.Width(string(r))
			if width+w > maxWidth {
				breakAt = i
				break
			}

			width += w

			if isSpace(r) {
				lastSpace = i
			}
		}

		if breakAt < len(runes) && !isSpace(runes[breakAt]) && lastSpace > 0 && breakAt-lastSpace <= maxWastedSpace {
			breakAt = lastSpace + 1
		}

		if breakAt == 0 {
			breakAt = 1
		}

		line := strings.TrimRight(string(runes[:breakAt]), " \t")
		if line != "" {
			lines = append(lines, line)
		}

		runes = []rune(strings.TrimLeft(string(runes[breakAt:]), " \t"))
	}

	return lines
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
