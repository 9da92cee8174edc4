// Package pipeline maps the text of a document to knowledge-base entities.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"slurpwiki/internal/chunk"
	"slurpwiki/internal/keyphrase"
	"slurpwiki/internal/pdf"
	"slurpwiki/internal/summary"
	"slurpwiki/internal/tally"
	"slurpwiki/internal/wikidata"
)

const (
	NoticeNoKeywords = "No keywords were found in the document."
	NoticeNoMatches  = "No Wikidata matches found."
)

// Resolver maps a phrase to its best knowledge-base entity.
type Resolver interface {
	Resolve(ctx context.Context, phrase string) (*wikidata.Entity, error)
}

// Match is an aggregated keyword resolved to an entity.
type Match struct {
	Keyword string
	Count   int
	Entity  wikidata.Entity
}

// Run is the outcome of processing one document.
type Run struct {
	ID          string
	Chunks      int
	Occurrences int
	Keywords    []tally.Keyword
	Matches     []Match
	Summary     []string
	// Notice is set when the run produced nothing to show.
	Notice      string
}

type Options struct {
	ChunkSize        int
	// Workers bounds concurrent lookups; 1 resolves strictly sequentially.
	Workers          int
	SummarySentences int
	PDFMode          pdf.Mode

	// Progress is called after every lookup. It is advisory only and may be
	// called from several goroutines when Workers > 1.
	Progress func(done, total int)
}

type Pipeline struct {
	extractor  keyphrase.Extractor
	resolver   Resolver
	summarizer summary.Summarizer
	opts       Options
}

// New builds a pipeline. summarizer may be nil to skip summaries.
func New(extractor keyphrase.Extractor, resolver Resolver, summarizer summary.Summarizer, opts Options) *Pipeline {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = chunk.DefaultSize
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Pipeline{
		extractor:  extractor,
		resolver:   resolver,
		summarizer: summarizer,
		opts:       opts,
	}
}

// ProcessPDF extracts the text of every page and processes it.
func (p *Pipeline) ProcessPDF(ctx context.Context, r io.ReaderAt, size int64) (*Run, error) {
	rd, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return p.ProcessText(ctx, pdf.PlainText(rd, pdf.AllPages, p.opts.PDFMode))
}

// ProcessText runs chunking, keyphrase extraction, aggregation and entity
// resolution. Lookup failures for single keywords are logged and skipped; only
// context cancellation aborts the run.
func (p *Pipeline) ProcessText(ctx context.Context, text string) (*Run, error) {
	run := &Run{ID: uuid.New().String()}
	log := logrus.WithField("run", run.ID)

	chunks := chunk.Split(text, p.opts.ChunkSize)
	run.Chunks = len(chunks)
	log.Infof("%d text chunks were extracted", len(chunks))

	var phrases []string
	for _, c := range chunks {
		phrases = append(phrases, p.extractor.Extract(c)...)
	}
	if len(phrases) == 0 {
		run.Notice = NoticeNoKeywords
		log.Warn(run.Notice)
		return run, nil
	}

	counts := tally.Count(phrases)
	run.Occurrences = counts.Total()
	run.Keywords = counts.Ordered()
	log.Infof("found %d keywords, %d unique items", run.Occurrences, counts.Len())

	run.Summary = p.summarize(log, text)

	matches, err := p.resolve(ctx, log, run.Keywords)
	if err != nil {
		return nil, err
	}
	run.Matches = matches
	if len(matches) == 0 {
		run.Notice = NoticeNoMatches
		log.Warn(run.Notice)
	}
	return run, nil
}

// resolve looks every keyword up with at most Workers requests in flight.
// Matches keep the order of keywords regardless of completion order.
func (p *Pipeline) resolve(ctx context.Context, log *logrus.Entry, keywords []tally.Keyword) ([]Match, error) {
	slots := make([]*Match, len(keywords))
	var done int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)
	for i, kw := range keywords {
		i, kw := i, kw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e, err := p.resolver.Resolve(gctx, kw.Phrase)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.WithField("keyword", kw.Phrase).Debugf("skipping keyword: %v", err)
			} else {
				slots[i] = &Match{Keyword: kw.Phrase, Count: kw.Count, Entity: *e}
			}
			n := atomic.AddInt32(&done, 1)
			if p.opts.Progress != nil {
				p.opts.Progress(int(n), len(keywords))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve keywords: %w", err)
	}

	matches := make([]Match, 0, len(keywords))
	for _, m := range slots {
		if m != nil {
			matches = append(matches, *m)
		}
	}
	log.Infof("%d of %d keywords resolved", len(matches), len(keywords))
	return matches, nil
}

func (p *Pipeline) summarize(log *logrus.Entry, text string) []string {
	if p.summarizer == nil || p.opts.SummarySentences <= 0 {
		return nil
	}
	sum, err := p.summarizer.Summarize(text, p.opts.SummarySentences)
	if err != nil {
		log.Warnf("summary: %v", err)
		return nil
	}
	return sum
}
