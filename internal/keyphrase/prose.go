package keyphrase

import (
	"sort"
	"strings"

	"github.com/jdkato/prose/v3"
	"github.com/sirupsen/logrus"
)

type proseExtractor struct {
	opts Options
}

// Extract ranks named entities ahead of nouns, each group by frequency and
// then by first appearance.
func (e *proseExtractor) Extract(text string) []string {
	if blank(text) {
		return []string{}
	}
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.UsingTokenizer(prose.NewIterTokenizer(prose.UsingSanitizer(strings.NewReplacer("-\n", "")))),
	)
	if err != nil {
		logrus.Debugf("prose: %v", err)
		return []string{}
	}

	entities := newFreqList()
	for _, ent := range doc.Entities() {
		entities.add(ent.Text)
	}
	nouns := newFreqList()
	for _, tok := range doc.Tokens() {
		if strings.HasPrefix(tok.Tag, "NN") {
			nouns.add(tok.Text)
		}
	}
	return selectTop(append(entities.ranked(), nouns.ranked()...), e.opts)
}

type freqList struct {
	counts map[string]int
	order  []string
}

func newFreqList() *freqList {
	return &freqList{counts: make(map[string]int)}
}

func (f *freqList) add(s string) {
	k := Normalize(s)
	if k == "" {
		return
	}
	if _, ok := f.counts[k]; !ok {
		f.order = append(f.order, k)
	}
	f.counts[k]++
}

func (f *freqList) ranked() []string {
	out := append([]string(nil), f.order...)
	sort.SliceStable(out, func(i, j int) bool {
		return f.counts[out[i]] > f.counts[out[j]]
	})
	return out
}
