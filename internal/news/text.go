package news

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// NormalizeText collapses every whitespace run to a single space and trims.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fingerprint hashes the raw title and URL, in that order, with no separator.
func Fingerprint(title, url string) string {
	sum := md5.Sum([]byte(title + url))
	return hex.EncodeToString(sum[:])
}

// BuildQuery matches the exact company name or the bare symbol.
func BuildQuery(p TickerProfile) string {
	return fmt.Sprintf(`"%s" OR %s`, p.Company, p.Symbol)
}

// Keywords returns the symbol, company name and aliases in that order, skipping blanks.
func (p TickerProfile) Keywords() []string {
	keys := make([]string, 0, 2+len(p.Aliases))
	for _, k := range append([]string{p.Symbol, p.Company}, p.Aliases...) {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Score counts keywords found, case-insensitively, in the title or summary.
// Plain substring matching: "SEE" also matches "seeking".
func Score(p TickerProfile, title, summary string) int {
	title = strings.ToLower(title)
	summary = strings.ToLower(summary)

	score := 0
	for _, k := range p.Keywords() {
		k = strings.ToLower(k)
		if strings.Contains(title, k) || strings.Contains(summary, k) {
			score++
		}
	}
	return score
}
