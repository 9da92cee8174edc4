package summary

import (
	"fmt"
	"strings"

	textrank "github.com/DavidBelicza/TextRank"
	"github.com/DavidBelicza/TextRank/rank"
	"github.com/JesusIslam/tldr"
)

const (
	LexRank  = "lexrank"
	TextRank = "textrank"
)

// Summarizer picks the most representative sentences of a text.
type Summarizer interface {
	Summarize(text string, n int) ([]string, error)
}

type Func func(text string, n int) ([]string, error)

func (f Func) Summarize(text string, n int) ([]string, error) {
	return f(text, n)
}

// New returns a summarizer for method. TextRank accepts a weighting suffix,
// `textrank:qty` for quantity or `textrank:rel` for relationship (default).
func New(method string) (Summarizer, error) {
	name, weighting := method, ""
	if i := strings.IndexByte(method, ':'); i >= 0 {
		name, weighting = method[:i], method[i+1:]
	}
	switch strings.ToLower(name) {
	case "", LexRank:
		return Func(lex), nil
	case TextRank:
		fn, err := text(weighting)
		if err != nil {
			return nil, err
		}
		return Func(fn), nil
	default:
		return nil, fmt.Errorf("unknown summary method %q, only %s and %s supported", method, LexRank, TextRank)
	}
}

func lex(s string, n int) ([]string, error) {
	if strings.TrimSpace(s) == "" || n <= 0 {
		return []string{}, nil
	}
	bag := tldr.New()
	sum, err := bag.Summarize(s, n)
	if err != nil {
		return nil, fmt.Errorf("lexrank: %w", err)
	}
	return trim(sum, n), nil
}

func text(method string) (func(s string, n int) ([]string, error), error) {
	var sumFn func(*textrank.TextRank, int) []rank.Sentence
	switch method {
	case "qty":
		sumFn = textrank.FindSentencesByWordQtyWeight
	case "", "rel":
		sumFn = textrank.FindSentencesByRelationWeight
	default:
		return nil, fmt.Errorf("invalid textrank weighting %q, only `qty` and `rel` supported", method)
	}
	return func(s string, n int) ([]string, error) {
		if strings.TrimSpace(s) == "" || n <= 0 {
			return []string{}, nil
		}
		tr := textrank.NewTextRank()
		tr.Populate(s, textrank.NewDefaultLanguage(), textrank.NewDefaultRule())
		tr.Ranking(textrank.NewDefaultAlgorithm())

		sentences := sumFn(tr, n)
		result := make([]string, 0, len(sentences))
		for _, sent := range sentences {
			result = append(result, sent.Value)
		}
		return trim(result, n), nil
	}, nil
}

func trim(sentences []string, n int) []string {
	out := make([]string, 0, n)
	for _, s := range sentences {
		if len(out) == n {
			break
		}
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
