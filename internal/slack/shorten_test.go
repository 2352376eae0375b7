package slack

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestShorten(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short stays", "Hello world", 20, "Hello world"},
		{"exact width", "Hello world", 11, "Hello world"},
		{"collapses whitespace", "Hello \n\n  world", 20, "Hello world"},
		{"cuts at word", "Hello there world", 12, "Hello there…"},
		{"drops partial word", "Hello there world", 11, "Hello…"},
		{"no word fits", "Supercalifragilistic", 5, "…"},
		{"empty", "", 10, ""},
		{"multibyte counted as runes", "日本 の ニュース です", 8, "日本 の…"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Shorten(tc.text, tc.width, Ellipsis))
		})
	}
}

func TestShortenNeverExceedsWidthOrSplitsWords(t *testing.T) {
	text := "Wesco International said on Tuesday it would expand its rental fleet across " +
		"North America, adding several hundred units to meet demand from data center builders."
	words := map[string]bool{}
	for _, w := range strings.Fields(text) {
		words[w] = true
	}

	for width := 1; width <= len(text)+5; width++ {
		got := Shorten(text, width, Ellipsis)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), width, "width %d", width)

		body := strings.TrimSuffix(got, Ellipsis)
		for _, w := range strings.Fields(body) {
			assert.True(t, words[w], "width %d produced split word %q", width, w)
		}
	}
}
