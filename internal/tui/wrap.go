// Package tui provides the Bubble Tea autocorrect demo interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapLine breaks a line on word boundaries so no row exceeds the given
// display width. Words wider than the limit are kept whole.
func wrapLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	current := 0
	for i, word := range words {
		w := runewidth.StringWidth(word)
		switch {
		case i == 0:
			b.WriteString(word)
			current = w
		case current+1+w <= width:
			b.WriteByte(' ')
			b.WriteString(word)
			current += 1 + w
		default:
			b.WriteByte('\n')
			b.WriteString(word)
			current = w
		}
	}
	return b.String()
}
