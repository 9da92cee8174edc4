package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slurpwiki/internal/keyphrase"
	"slurpwiki/internal/summary"
	"slurpwiki/internal/tally"
	"slurpwiki/internal/wikidata"
)

type fakeResolver struct {
	mu      sync.Mutex
	known   map[string]wikidata.Entity
	delay   map[string]time.Duration
	queried []string
}

func (f *fakeResolver) Resolve(ctx context.Context, phrase string) (*wikidata.Entity, error) {
	f.mu.Lock()
	f.queried = append(f.queried, phrase)
	d := f.delay[phrase]
	f.mu.Unlock()
	if d > 0 {
		time.Sleep(d)
	}
	e, ok := f.known[phrase]
	if !ok {
		return nil, wikidata.ErrNoMatch
	}
	return &e, nil
}

// fixed returns the listed phrases for every chunk containing the key.
func fixed(per map[string][]string) keyphrase.Extractor {
	return keyphrase.ExtractorFunc(func(text string) []string {
		for k, v := range per {
			if strings.Contains(text, k) {
				return v
			}
		}
		return nil
	})
}

func TestEinsteinScenario(t *testing.T) {
	ex := fixed(map[string][]string{"Einstein": {"albert einstein", "theory of relativity"}})
	res := &fakeResolver{known: map[string]wikidata.Entity{
		"albert einstein":      {ID: "Q937", Label: "Albert Einstein"},
		"theory of relativity": {ID: "Q43514", Label: "theory of relativity"},
	}}
	p := New(ex, res, nil, Options{})

	run, err := p.ProcessText(context.Background(), "Albert Einstein developed the theory of relativity")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 1, run.Chunks)
	assert.Equal(t, 2, run.Occurrences)
	assert.Equal(t, []tally.Keyword{{Phrase: "albert einstein", Count: 1}, {Phrase: "theory of relativity", Count: 1}}, run.Keywords)
	assert.Equal(t, []Match{
		{Keyword: "albert einstein", Count: 1, Entity: wikidata.Entity{ID: "Q937", Label: "Albert Einstein"}},
		{Keyword: "theory of relativity", Count: 1, Entity: wikidata.Entity{ID: "Q43514", Label: "theory of relativity"}},
	}, run.Matches)
	assert.Empty(t, run.Notice)
}

func TestUnmatchedKeywordIsDropped(t *testing.T) {
	ex := keyphrase.ExtractorFunc(func(string) []string {
		return []string{"albert einstein", "zzxqj", "physics"}
	})
	res := &fakeResolver{known: map[string]wikidata.Entity{
		"albert einstein": {ID: "Q937", Label: "Albert Einstein"},
		"physics":         {ID: "Q413", Label: "physics"},
	}}
	run, err := New(ex, res, nil, Options{}).ProcessText(context.Background(), "some text")
	require.NoError(t, err)

	var ids []string
	for _, m := range run.Matches {
		ids = append(ids, m.Entity.ID)
		assert.NotEqual(t, "zzxqj", m.Keyword)
	}
	assert.Equal(t, []string{"Q937", "Q413"}, ids)
	assert.ElementsMatch(t, []string{"albert einstein", "zzxqj", "physics"}, res.queried)
}

func TestCountsAcrossChunks(t *testing.T) {
	ex := keyphrase.ExtractorFunc(func(text string) []string {
		if strings.HasPrefix(text, "a") {
			return []string{"physics", "einstein"}
		}
		return []string{"physics"}
	})
	res := &fakeResolver{known: map[string]wikidata.Entity{"physics": {ID: "Q413", Label: "physics"}}}

	run, err := New(ex, res, nil, Options{ChunkSize: 2}).ProcessText(context.Background(), "a b c d a e")
	require.NoError(t, err)
	assert.Equal(t, 3, run.Chunks)
	assert.Equal(t, []tally.Keyword{{Phrase: "physics", Count: 3}, {Phrase: "einstein", Count: 2}}, run.Keywords)
	require.Len(t, run.Matches, 1)
	assert.Equal(t, 3, run.Matches[0].Count)
	// one lookup per distinct keyword
	assert.Len(t, res.queried, 2)
}

func TestNoKeywords(t *testing.T) {
	res := &fakeResolver{}
	for _, text := range []string{"", "nothing useful here"} {
		run, err := New(fixed(nil), res, nil, Options{}).ProcessText(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, NoticeNoKeywords, run.Notice)
		assert.Empty(t, run.Matches)
	}
	assert.Empty(t, res.queried)
}

func TestNoMatches(t *testing.T) {
	ex := keyphrase.ExtractorFunc(func(string) []string { return []string{"zzxqj"} })
	run, err := New(ex, &fakeResolver{}, nil, Options{}).ProcessText(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, NoticeNoMatches, run.Notice)
	assert.Len(t, run.Keywords, 1)
	assert.Empty(t, run.Matches)
}

func TestConcurrentLookupsKeepKeywordOrder(t *testing.T) {
	phrases := []string{"k0", "k1", "k2", "k3", "k4", "k5"}
	known := map[string]wikidata.Entity{}
	delay := map[string]time.Duration{}
	for i, ph := range phrases {
		known[ph] = wikidata.Entity{ID: fmt.Sprintf("Q%d", i+1), Label: ph}
		delay[ph] = time.Duration(len(phrases)-i) * 5 * time.Millisecond
	}
	ex := keyphrase.ExtractorFunc(func(string) []string { return phrases })

	var mu sync.Mutex
	var progress []int
	p := New(ex, &fakeResolver{known: known, delay: delay}, nil, Options{
		Workers: 4,
		Progress: func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, len(phrases), total)
			progress = append(progress, done)
		},
	})
	run, err := p.ProcessText(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, run.Matches, len(phrases))
	for i, m := range run.Matches {
		assert.Equal(t, phrases[i], m.Keyword)
	}
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, progress)
}

func TestSequentialByDefault(t *testing.T) {
	phrases := []string{"c", "a", "b"}
	ex := keyphrase.ExtractorFunc(func(string) []string { return phrases })
	res := &fakeResolver{}
	_, err := New(ex, res, nil, Options{}).ProcessText(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, phrases, res.queried)
}

func TestCancelledRun(t *testing.T) {
	ex := keyphrase.ExtractorFunc(func(string) []string { return []string{"a", "b"} })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(ex, &fakeResolver{}, nil, Options{}).ProcessText(ctx, "text")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSummaryAttached(t *testing.T) {
	ex := keyphrase.ExtractorFunc(func(string) []string { return []string{"a"} })
	sum := summary.Func(func(text string, n int) ([]string, error) {
		assert.Equal(t, 2, n)
		return []string{"first", "second"}, nil
	})
	run, err := New(ex, &fakeResolver{}, sum, Options{SummarySentences: 2}).ProcessText(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, run.Summary)

	failing := summary.Func(func(string, int) ([]string, error) { return nil, errors.New("boom") })
	run, err = New(ex, &fakeResolver{}, failing, Options{SummarySentences: 2}).ProcessText(context.Background(), "text")
	require.NoError(t, err)
	assert.Nil(t, run.Summary)
}

func TestProcessPDFRejectsGarbage(t *testing.T) {
	b := []byte("definitely not a pdf")
	_, err := New(fixed(nil), &fakeResolver{}, nil, Options{}).ProcessPDF(context.Background(), strings.NewReader(string(b)), int64(len(b)))
	assert.Error(t, err)
}

func TestWithWikidataClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("search") {
		case "albert einstein":
			_, _ = fmt.Fprint(w, `{"search":[{"id":"Q937","label":"Albert Einstein"}]}`)
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = fmt.Fprint(w, `{"search":[]}`)
		}
	}))
	defer server.Close()

	client := wikidata.NewClient(wikidata.Options{SearchURL: server.URL})
	ex := keyphrase.ExtractorFunc(func(string) []string {
		return []string{"broken", "albert einstein", "zzxqj"}
	})
	run, err := New(ex, client, nil, Options{}).ProcessText(context.Background(), "text")
	require.NoError(t, err)
	require.Len(t, run.Matches, 1)
	assert.Equal(t, "Q937", run.Matches[0].Entity.ID)
	assert.Equal(t, "Albert Einstein", run.Matches[0].Entity.Label)
}
