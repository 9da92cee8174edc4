// Package web serves the two-screen interface: a keyword/entity table and the
// statement table of one selected entity.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"slurpwiki/internal/pipeline"
	"slurpwiki/internal/session"
	"slurpwiki/internal/wikidata"
)

//go:embed templates
var templateFiles embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

type Processor interface {
	ProcessPDF(ctx context.Context, r io.ReaderAt, size int64) (*pipeline.Run, error)
}

type StatementFetcher interface {
	Statements(ctx context.Context, id, lang string) ([]wikidata.Statement, error)
}

type Options struct {
	WikiURL        string
	Language       string
	MaxUploadBytes int64
}

// Server owns the session state. Every action holds the lock until it
// completes, so actions never overlap.
type Server struct {
	mu         sync.Mutex
	state      session.State
	processor  Processor
	statements StatementFetcher
	opts       Options
}

func NewServer(processor Processor, statements StatementFetcher, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	return &Server{processor: processor, statements: statements, opts: opts}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.HandleIndex)
	mux.HandleFunc("POST /process", s.HandleProcess)
	mux.HandleFunc("POST /inspect", s.HandleInspect)
	mux.HandleFunc("POST /back", s.HandleBack)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok\n")
	})
	return mux
}

// State returns a snapshot of the session state.
func (s *Server) State() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Server) dispatch(a session.Action) {
	s.state = session.Reduce(s.state, a)
	logrus.Debugf("state: screen=%s selected=%q results=%d", s.state.Screen(), s.state.Selected, len(s.state.Results))
}

type row struct {
	Keyword string
	Count   int
	ID      string
	Label   string
	URL     string
}

type page struct {
	session.State
	View       string
	Rows       []row
	Summary    []string
	Statements []wikidata.Statement
	Error      string
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := page{State: s.state, View: s.state.Screen().String()}
	switch s.state.Screen() {
	case session.Detail:
		rows, err := s.statements.Statements(r.Context(), s.state.Selected, s.opts.Language)
		if err != nil {
			logrus.Errorf("statements %s: %v", s.state.Selected, err)
			p.Error = "Property query failed: " + err.Error()
		}
		p.Statements = rows
	default:
		for _, m := range s.state.Results {
			p.Rows = append(p.Rows, row{
				Keyword: m.Keyword,
				Count:   m.Count,
				ID:      m.Entity.ID,
				Label:   m.Entity.Label,
				URL:     m.Entity.URL(s.opts.WikiURL),
			})
		}
		if s.state.Run != nil {
			p.Summary = s.state.Run.Summary
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, p); err != nil {
		logrus.Errorf("render: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) HandleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	f, header, err := r.FormFile("pdf")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Upload a PDF file in field \"pdf\"", http.StatusBadRequest)
		return
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}
	logrus.Infof("processing %s (%d bytes)", header.Filename, len(b))

	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.processor.ProcessPDF(r.Context(), bytes.NewReader(b), int64(len(b)))
	if err != nil {
		logrus.Errorf("process %s: %v", header.Filename, err)
		run = &pipeline.Run{Notice: "Could not process " + header.Filename + ": " + err.Error()}
	}
	s.dispatch(session.RunCompleted{Run: run})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) HandleInspect(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	if !wikidata.ValidID(id) {
		http.Error(w, "Invalid entity id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(session.Inspect{ID: id})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) HandleBack(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(session.Back{})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
