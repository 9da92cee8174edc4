package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountMatchesChunkMembership(t *testing.T) {
	lists := [][]string{
		{"albert einstein", "theory of relativity", "physics"},
		{"physics", "quantum"},
		{"albert einstein", "physics"},
		{},
	}
	var flat []string
	for _, l := range lists {
		flat = append(flat, l...)
	}
	c := Count(flat)

	union := map[string]bool{}
	for _, l := range lists {
		for _, p := range l {
			union[p] = true
		}
	}
	assert.Equal(t, len(union), c.Len())
	for p := range union {
		want := 0
		for _, l := range lists {
			for _, q := range l {
				if q == p {
					want++
				}
			}
		}
		assert.Equal(t, want, c.Get(p), p)
	}
	assert.Equal(t, map[string]int{
		"albert einstein":      2,
		"theory of relativity": 1,
		"physics":              3,
		"quantum":              1,
	}, c.Map())
	assert.Equal(t, len(flat), c.Total())
}

func TestOrdering(t *testing.T) {
	c := Count([]string{"b", "a", "c", "a", "c", "c"})
	assert.Equal(t, []Keyword{{"b", 1}, {"a", 2}, {"c", 3}}, c.Ordered())
	assert.Equal(t, []Keyword{{"c", 3}, {"a", 2}, {"b", 1}}, c.ByFrequency())
}

func TestEmpty(t *testing.T) {
	c := Count(nil)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Ordered())
	assert.Empty(t, c.Map())
	assert.Equal(t, 0, c.Get("missing"))
}

func TestMapIsCopy(t *testing.T) {
	c := Count([]string{"x"})
	m := c.Map()
	m["x"] = 42
	assert.Equal(t, 1, c.Get("x"))
}
