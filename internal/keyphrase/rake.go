package keyphrase

import (
	rake "github.com/afjoseph/RAKE.Go"
)

type rakeExtractor struct {
	opts Options
}

// Extract returns RAKE candidates by descending score.
func (e *rakeExtractor) Extract(text string) []string {
	if blank(text) {
		return []string{}
	}
	candidates := rake.RunRake(text)
	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, scored{phrase: c.Key, score: c.Value})
	}
	return selectTop(rank(ranked, text), e.opts)
}
