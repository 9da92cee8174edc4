// Package chunk splits document text into fixed-size word windows.
package chunk

import "strings"

const DefaultSize = 500

// Split tokenizes text on whitespace and re-joins consecutive,
// non-overlapping groups of at most size tokens. Empty text yields no chunks.
func Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultSize
	}
	words := strings.Fields(text)
	chunks := make([]string, 0, (len(words)+size-1)/size)
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
