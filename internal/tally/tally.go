package tally

import "sort"

// Keyword is a distinct phrase and the number of chunks it was ranked in.
type Keyword struct {
	Phrase string
	Count  int
}

// Counts maps each distinct phrase to its total occurrences and remembers the
// order in which phrases were first observed.
type Counts struct {
	counts map[string]int
	order  []string
}

func New() *Counts {
	return &Counts{counts: make(map[string]int)}
}

// Count tallies a flat sequence of phrases.
func Count(phrases []string) *Counts {
	c := New()
	c.Observe(phrases...)
	return c
}

// Add this observation to the collection
func (c *Counts) Observe(phrases ...string) {
	for _, p := range phrases {
		if _, ok := c.counts[p]; !ok {
			c.order = append(c.order, p)
		}
		c.counts[p]++
	}
}

func (c *Counts) Get(phrase string) int {
	return c.counts[phrase]
}

// Len is the number of distinct phrases.
func (c *Counts) Len() int {
	return len(c.order)
}

// Total is the number of observations, duplicates included.
func (c *Counts) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// Map returns a copy of the phrase counts.
func (c *Counts) Map() map[string]int {
	m := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		m[k] = v
	}
	return m
}

// Ordered lists keywords in first-appearance order.
func (c *Counts) Ordered() []Keyword {
	kws := make([]Keyword, 0, len(c.order))
	for _, p := range c.order {
		kws = append(kws, Keyword{Phrase: p, Count: c.counts[p]})
	}
	return kws
}

// ByFrequency lists keywords by descending count, ties kept in
// first-appearance order.
func (c *Counts) ByFrequency() []Keyword {
	kws := c.Ordered()
	sort.SliceStable(kws, func(i, j int) bool {
		return kws[i].Count > kws[j].Count
	})
	return kws
}
