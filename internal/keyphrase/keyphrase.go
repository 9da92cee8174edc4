// Package keyphrase ranks candidate phrases of a text chunk.
//
// Several models are available behind the Extractor interface; all of them
// return at most TopN distinct, normalized phrases of MinTokens to MaxTokens
// words, most relevant first.
package keyphrase

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	RAKE     = "rake"
	TextRank = "textrank"
	Prose    = "prose"
)

// Methods lists the available models, default first.
var Methods = []string{RAKE, TextRank, Prose}

type Options struct {
	MinTokens int
	MaxTokens int
	TopN      int
}

func DefaultOptions() Options {
	return Options{MinTokens: 1, MaxTokens: 3, TopN: 5}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinTokens <= 0 {
		o.MinTokens = d.MinTokens
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = d.MaxTokens
	}
	if o.MaxTokens < o.MinTokens {
		o.MaxTokens = o.MinTokens
	}
	if o.TopN <= 0 {
		o.TopN = d.TopN
	}
	return o
}

type Extractor interface {
	// Extract never fails; degenerate text yields an empty slice.
	Extract(text string) []string
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(text string) []string

func (f ExtractorFunc) Extract(text string) []string {
	return f(text)
}

func New(method string, opts Options) (Extractor, error) {
	opts = opts.withDefaults()
	switch strings.ToLower(method) {
	case "", RAKE:
		return &rakeExtractor{opts: opts}, nil
	case TextRank:
		return &textRankExtractor{opts: opts}, nil
	case Prose:
		return &proseExtractor{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown keyphrase method %q, only %s supported", method, strings.Join(Methods, ", "))
	}
}

type scored struct {
	phrase string
	score  float64
}

// rank orders candidates by descending score. Equal scores go to the phrase
// that occurs first in text, then alphabetically, so a chunk always ranks the
// same way.
func rank(candidates []scored, text string) []string {
	body := " " + Normalize(text) + " "
	pos := make(map[string]int, len(candidates))
	for _, c := range candidates {
		if _, ok := pos[c.phrase]; ok {
			continue
		}
		p := Normalize(c.phrase)
		i := -1
		if p != "" {
			i = strings.Index(body, " "+p+" ")
		}
		if i < 0 {
			i = math.MaxInt
		}
		pos[c.phrase] = i
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if pos[a.phrase] != pos[b.phrase] {
			return pos[a.phrase] < pos[b.phrase]
		}
		return a.phrase < b.phrase
	})
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.phrase
	}
	return out
}

// window cuts a phrase to its leading n words and drops trailing stop words,
// e.g. "theory of the universe" becomes "theory".
func window(phrase string, n int) string {
	words := strings.Fields(phrase)
	if len(words) <= n {
		return phrase
	}
	words = words[:n]
	for len(words) > 1 && isStopWord(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// selectTop normalizes ranked candidates and keeps the first TopN distinct
// phrases. Phrases longer than MaxTokens are cut to a leading window.
func selectTop(candidates []string, opts Options) []string {
	seen := make(map[string]struct{}, opts.TopN)
	out := make([]string, 0, opts.TopN)
	for _, c := range candidates {
		if len(out) == opts.TopN {
			break
		}
		p := Normalize(c)
		if p == "" {
			continue
		}
		p = window(p, opts.MaxTokens)
		if len(strings.Fields(p)) < opts.MinTokens {
			continue
		}
		if allStopWords(p) {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func blank(text string) bool {
	return strings.TrimSpace(text) == ""
}
