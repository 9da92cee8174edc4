package keyphrase

import (
	"strings"

	textrank "github.com/DavidBelicza/TextRank"
)

type textRankExtractor struct {
	opts Options
}

// Extract merges TextRank word pairs and single words into one ranking.
// TextRank only produces one and two word phrases. Its pairs are unordered
// co-occurrences, so a pair is kept only where the two words stand next to
// each other in text, spelled in text order.
func (e *textRankExtractor) Extract(text string) []string {
	if blank(text) {
		return []string{}
	}
	tr := textrank.NewTextRank()
	tr.Populate(text, textrank.NewDefaultLanguage(), textrank.NewDefaultRule())
	tr.Ranking(textrank.NewDefaultAlgorithm())

	words := strings.Fields(Normalize(text))
	var ranked []scored
	for _, p := range textrank.FindPhrases(tr) {
		if phrase, ok := adjacent(words, Normalize(p.Left), Normalize(p.Right)); ok {
			ranked = append(ranked, scored{phrase: phrase, score: float64(p.Weight)})
		}
	}
	for _, w := range textrank.FindSingleWords(tr) {
		ranked = append(ranked, scored{phrase: w.Word, score: float64(w.Weight)})
	}
	return selectTop(rank(ranked, text), e.opts)
}

// adjacent reports the first place where a and b follow each other in words,
// in either order, and returns them in that order.
func adjacent(words []string, a, b string) (string, bool) {
	if a == "" || b == "" || a == b {
		return "", false
	}
	for i := 0; i+1 < len(words); i++ {
		switch {
		case words[i] == a && words[i+1] == b:
			return a + " " + b, true
		case words[i] == b && words[i+1] == a:
			return b + " " + a, true
		}
	}
	return "", false
}
