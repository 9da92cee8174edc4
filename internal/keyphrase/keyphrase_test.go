package keyphrase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Albert Einstein developed the theory of relativity, one of the two pillars
of modern physics. The theory of relativity changed physics. Einstein also contributed to
quantum mechanics. His mass-energy equivalence formula has been called the world's most
famous equation. Einstein received the Nobel Prize in Physics for his services to
theoretical physics and for his discovery of the law of the photoelectric effect.`

func TestExtractorsContract(t *testing.T) {
	for _, method := range Methods {
		t.Run(method, func(t *testing.T) {
			ex, err := New(method, DefaultOptions())
			require.NoError(t, err)

			got := ex.Extract(sample)
			assert.LessOrEqual(t, len(got), 5)

			seen := map[string]bool{}
			for _, p := range got {
				assert.False(t, seen[p], "duplicate phrase %q", p)
				seen[p] = true
				n := len(strings.Fields(p))
				assert.True(t, n >= 1 && n <= 3, "phrase %q has %d tokens", p, n)
				assert.Equal(t, Normalize(p), p)
			}
		})
	}
}

func TestExtractorsDegenerateInput(t *testing.T) {
	for _, method := range Methods {
		t.Run(method, func(t *testing.T) {
			ex, err := New(method, DefaultOptions())
			require.NoError(t, err)
			assert.Empty(t, ex.Extract(""))
			assert.Empty(t, ex.Extract(" \n\t "))
		})
	}
}

func TestRakeFindsPhrases(t *testing.T) {
	ex, err := New(RAKE, Options{TopN: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, ex.Extract(sample))
}

func TestNewUnknownMethod(t *testing.T) {
	_, err := New("keybert", DefaultOptions())
	assert.Error(t, err)
}

func TestOptionsDefaults(t *testing.T) {
	assert.Equal(t, DefaultOptions(), Options{}.withDefaults())
	assert.Equal(t, Options{MinTokens: 4, MaxTokens: 4, TopN: 2}, Options{MinTokens: 4, MaxTokens: 2, TopN: 2}.withDefaults())
}

func TestSelectTop(t *testing.T) {
	opts := Options{MinTokens: 1, MaxTokens: 3, TopN: 3}
	got := selectTop([]string{
		"Theory of Relativity",
		"theory  of relativity",
		"the of",
		"general theory of the universe",
		"1905",
		"Einstein,",
		"physics",
		"quantum",
	}, opts)
	assert.Equal(t, []string{"theory of relativity", "general theory", "einstein"}, got)
}

func TestWindow(t *testing.T) {
	assert.Equal(t, "theory of relativity", window("theory of relativity", 3))
	assert.Equal(t, "theory", window("theory of the universe", 3))
	assert.Equal(t, "physics physics physics", window(strings.Repeat("physics ", 1200), 3))
}

func TestRankBreaksTiesByPosition(t *testing.T) {
	got := rank([]scored{
		{phrase: "gravity", score: 4},
		{phrase: "quantum mechanics", score: 4},
		{phrase: "atoms", score: 1},
		{phrase: "unseen", score: 4},
		{phrase: "relativity", score: 9},
	}, "Quantum mechanics explains atoms. Relativity explains gravity.")
	assert.Equal(t, []string{"relativity", "quantum mechanics", "gravity", "unseen", "atoms"}, got)
}

const ties = `Quantum mechanics explains atoms. Relativity explains gravity.
Chemistry explains bonds. Biology explains cells. Astronomy explains stars.
Ecology explains habitats. Optics explains lenses. Geology explains rocks.`

func TestExtractIsDeterministic(t *testing.T) {
	for _, method := range Methods {
		t.Run(method, func(t *testing.T) {
			ex, err := New(method, DefaultOptions())
			require.NoError(t, err)
			want := ex.Extract(ties)
			for i := 0; i < 100; i++ {
				require.Equal(t, want, ex.Extract(ties))
			}
		})
	}
}

func TestRakeKeepsLongRuns(t *testing.T) {
	ex, err := New(RAKE, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"physics physics physics"}, ex.Extract(strings.Repeat("physics ", 1200)))
}

func TestTextRankPhrasesOccurInText(t *testing.T) {
	texts := []string{
		"The general theory of relativity was published by Albert Einstein in Berlin.",
		sample,
	}
	ex, err := New(TextRank, Options{TopN: 20})
	require.NoError(t, err)
	for _, text := range texts {
		body := " " + Normalize(text) + " "
		for _, p := range ex.Extract(text) {
			assert.Contains(t, body, " "+p+" ")
		}
	}
}

func TestAdjacent(t *testing.T) {
	words := strings.Fields("albert einstein developed general relativity")
	p, ok := adjacent(words, "einstein", "albert")
	assert.True(t, ok)
	assert.Equal(t, "albert einstein", p)

	_, ok = adjacent(words, "albert", "relativity")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Albert   EINSTEIN ": "albert einstein",
		"\"relativity\".":     "relativity",
		"ｆｕｌｌｗｉｄｔｈ":          "fullwidth",
		"world's":             "world's",
		"--- 42 ---":          "",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestExtractorFunc(t *testing.T) {
	var ex Extractor = ExtractorFunc(func(text string) []string { return strings.Fields(text) })
	assert.Equal(t, []string{"a", "b"}, ex.Extract("a b"))
}
