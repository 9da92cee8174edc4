package keyphrase

import "strings"

var stopWords = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, p := range particles() {
		m[p] = struct{}{}
	}
	return m
}()

func particles() []string {
	return []string{
		"the", "of", "and", "a", "to", "is", "in", "or", "for", "be", "may", "are", "as", "on", "with", "by", "not", "one",
		"that", "at", "an", "has", "if", "he", "each", "it", "can", "such", "this", "his", "will", "use", "any", "all", "from",
		"no", "per", "they", "but", "their", "who", "during", "should", "only", "using", "she", "than", "once", "into", "been",
		"being", "does", "then", "thus", "between", "do", "other", "used", "where", "some", "also", "was", "were", "we", "our",
		"its", "these", "those", "there", "which", "what", "when", "how", "have", "had", "you", "your", "i", "me", "my",
	}
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

func allStopWords(phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if !isStopWord(w) {
			return false
		}
	}
	return true
}
