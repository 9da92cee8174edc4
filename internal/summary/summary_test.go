package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `Albert Einstein was a German-born theoretical physicist. He developed the theory of relativity.
Relativity is one of the two pillars of modern physics. Einstein is also known for the mass-energy equivalence formula.
He received the Nobel Prize in Physics in 1921. The prize recognized his services to theoretical physics.
Einstein published more than 300 scientific papers.`

func TestSummarizers(t *testing.T) {
	for _, method := range []string{LexRank, TextRank, "textrank:qty", "textrank:rel"} {
		t.Run(method, func(t *testing.T) {
			s, err := New(method)
			require.NoError(t, err)

			sum, err := s.Summarize(doc, 2)
			require.NoError(t, err)
			assert.NotEmpty(t, sum)
			assert.LessOrEqual(t, len(sum), 2)
			for _, sentence := range sum {
				assert.NotEmpty(t, sentence)
			}
		})
	}
}

func TestSummarizeEmpty(t *testing.T) {
	for _, method := range []string{LexRank, TextRank} {
		s, err := New(method)
		require.NoError(t, err)
		sum, err := s.Summarize("  ", 3)
		require.NoError(t, err)
		assert.Empty(t, sum)
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New("bagofwords")
	assert.Error(t, err)
	_, err = New("textrank:sideways")
	assert.Error(t, err)
}

func TestTrim(t *testing.T) {
	assert.Equal(t, []string{"a b", "c"}, trim([]string{" a \n b", "", "c", "d"}, 2))
}
