package keyphrase

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases a phrase, applies NFKC, collapses whitespace and trims
// punctuation from both ends of every word. Phrases without a letter become "".
func Normalize(s string) string {
	s = norm.NFKC.String(strings.ToLower(s))
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		w = strings.TrimFunc(w, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if w != "" {
			kept = append(kept, w)
		}
	}
	p := strings.Join(kept, " ")
	if strings.IndexFunc(p, unicode.IsLetter) < 0 {
		return ""
	}
	return p
}
