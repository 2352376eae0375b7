package slack

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis marks a shortened summary.
const Ellipsis = "…"

// Shorten collapses whitespace and, if the text is still longer than width
// runes, keeps as many whole words as fit together with placeholder. When not
// even one word fits, only the placeholder is returned. The result never
// exceeds width runes.
func Shorten(text string, width int, placeholder string) string {
	words := strings.Fields(text)
	joined := strings.Join(words, " ")
	if utf8.RuneCountInString(joined) <= width {
		return joined
	}

	phLen := utf8.RuneCountInString(placeholder)
	if phLen > width {
		return ""
	}

	n := 0
	kept := 0
	for i, w := range words {
		wl := utf8.RuneCountInString(w)
		if i > 0 {
			wl++
		}
		if n+wl+phLen > width {
			break
		}
		n += wl
		kept++
	}

	if kept == 0 {
		return strings.TrimLeft(placeholder, " ")
	}
	return strings.Join(words[:kept], " ") + placeholder
}
