package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"slurpwiki/internal/config"
	"slurpwiki/internal/keyphrase"
	"slurpwiki/internal/pdf"
	"slurpwiki/internal/pipeline"
	"slurpwiki/internal/summary"
	"slurpwiki/internal/web"
	"slurpwiki/internal/wikidata"
)

var (
	cfg = config.Default()
	app = kingpin.New("slurpwiki", "map the keyphrases of a pdf file to wikidata entities")

	serve = app.Command("serve", "run the web interface")

	mapCmd  = app.Command("map", "process a pdf file and print the keyword/entity table")
	mapArgs = struct {
		input *string
	}{
		input: mapCmd.Arg("pdf", "input file to process").Required().ExistingFile(),
	}

	statements     = app.Command("statements", "print every statement of an entity")
	statementsArgs = struct {
		id *string
	}{
		id: statements.Arg("id", "entity identifier, e.g. Q937").Required().String(),
	}

	configCmd = app.Command("config", "print the effective configuration as yaml")
)

func env(name string) string {
	return config.EnvPrefix + name
}

func init() {
	app.Flag("log-level", "log level (debug, info, warn, error)").Envar(env("LOG_LEVEL")).Default(cfg.Log.Level).StringVar(&cfg.Log.Level)
	app.Flag("log-format", "log format (text, json)").Envar(env("LOG_FORMAT")).Default(cfg.Log.Format).EnumVar(&cfg.Log.Format, "text", "json")

	app.Flag("chunk-size", "maximum words per chunk").Envar(env("CHUNK_SIZE")).Default(fmt.Sprint(cfg.Chunk.Size)).IntVar(&cfg.Chunk.Size)
	app.Flag("columns", "read pdf pages by text columns").Envar(env("COLUMNS")).BoolVar(&cfg.Chunk.Columns)

	app.Flag("method", "keyphrase model ("+strings.Join(keyphrase.Methods, ", ")+")").Short('m').Envar(env("METHOD")).Default(cfg.Keyphrase.Method).EnumVar(&cfg.Keyphrase.Method, keyphrase.Methods...)
	app.Flag("top-n", "keyphrases kept per chunk").Short('n').Envar(env("TOP_N")).Default(fmt.Sprint(cfg.Keyphrase.TopN)).IntVar(&cfg.Keyphrase.TopN)
	app.Flag("min-tokens", "minimum words per keyphrase").Envar(env("MIN_TOKENS")).Default(fmt.Sprint(cfg.Keyphrase.MinTokens)).IntVar(&cfg.Keyphrase.MinTokens)
	app.Flag("max-tokens", "maximum words per keyphrase").Envar(env("MAX_TOKENS")).Default(fmt.Sprint(cfg.Keyphrase.MaxTokens)).IntVar(&cfg.Keyphrase.MaxTokens)

	app.Flag("search-url", "wikidata entity search endpoint").Envar(env("SEARCH_URL")).Default(cfg.Wikidata.SearchURL).StringVar(&cfg.Wikidata.SearchURL)
	app.Flag("sparql-url", "wikidata sparql endpoint").Envar(env("SPARQL_URL")).Default(cfg.Wikidata.SparqlURL).StringVar(&cfg.Wikidata.SparqlURL)
	app.Flag("wiki-url", "base url of entity pages").Envar(env("WIKI_URL")).Default(cfg.Wikidata.WikiURL).StringVar(&cfg.Wikidata.WikiURL)
	app.Flag("lang", "statement label language; entity search is always english").Envar(env("LANG")).Default(cfg.Wikidata.Language).StringVar(&cfg.Wikidata.Language)
	app.Flag("ua", "HTTP User-Agent").Envar(env("USER_AGENT")).Default(cfg.Wikidata.UserAgent).StringVar(&cfg.Wikidata.UserAgent)
	app.Flag("timeout", "HTTP timeout per request").Envar(env("TIMEOUT")).Default(cfg.Wikidata.Timeout.String()).DurationVar(&cfg.Wikidata.Timeout)
	app.Flag("search-limit", "candidates requested per keyword search").Envar(env("SEARCH_LIMIT")).Default(fmt.Sprint(cfg.Wikidata.SearchLimit)).IntVar(&cfg.Wikidata.SearchLimit)
	app.Flag("workers", "concurrent entity lookups (1 = sequential)").Envar(env("WORKERS")).Default(fmt.Sprint(cfg.Wikidata.Workers)).IntVar(&cfg.Wikidata.Workers)

	app.Flag("summary", "summary method (lexrank, textrank, textrank:qty)").Envar(env("SUMMARY")).Default(cfg.Summary.Method).StringVar(&cfg.Summary.Method)
	app.Flag("sumlen", "number of summary sentences, 0 to disable").Envar(env("SUMLEN")).Default(fmt.Sprint(cfg.Summary.Sentences)).IntVar(&cfg.Summary.Sentences)

	serve.Flag("addr", "listen address").Envar(env("ADDR")).Default(cfg.Server.Addr).StringVar(&cfg.Server.Addr)
	serve.Flag("max-upload", "maximum upload size in bytes").Envar(env("MAX_UPLOAD")).Default(fmt.Sprint(cfg.Server.MaxUploadBytes)).Int64Var(&cfg.Server.MaxUploadBytes)
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf(".env: %v", err)
	}
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}
	if err := cfg.Log.Apply(os.Stderr); err != nil {
		logrus.Fatal(err)
	}

	client := wikidata.NewClient(cfg.WikidataOptions())

	switch cmd {
	case serve.FullCommand():
		runServe(newPipeline(client), client)
	case mapCmd.FullCommand():
		runMap(newPipeline(client))
	case statements.FullCommand():
		runStatements(client)
	case configCmd.FullCommand():
		if err := cfg.Write(os.Stdout); err != nil {
			logrus.Fatal(err)
		}
	}
}

func newPipeline(resolver pipeline.Resolver) *pipeline.Pipeline {
	extractor, err := keyphrase.New(cfg.Keyphrase.Method, cfg.KeyphraseOptions())
	if err != nil {
		logrus.Fatal(err)
	}
	summarizer, err := summary.New(cfg.Summary.Method)
	if err != nil {
		logrus.Fatal(err)
	}
	mode := pdf.Stream
	if cfg.Chunk.Columns {
		mode = pdf.Columns
	}
	return pipeline.New(extractor, resolver, summarizer, pipeline.Options{
		ChunkSize:        cfg.Chunk.Size,
		Workers:          cfg.Wikidata.Workers,
		SummarySentences: cfg.Summary.Sentences,
		PDFMode:          mode,
		Progress: func(done, total int) {
			logrus.Debugf("running wikidata lookups: %d/%d", done, total)
		},
	})
}

func runServe(p *pipeline.Pipeline, client *wikidata.Client) {
	srv := web.NewServer(p, client, web.Options{
		WikiURL:        cfg.Wikidata.WikiURL,
		Language:       cfg.Wikidata.Language,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})
	logrus.Infof("listening on http://%s", cfg.Server.Addr)
	logrus.Fatal(http.ListenAndServe(cfg.Server.Addr, srv.Routes()))
}

func runMap(p *pipeline.Pipeline) {
	logrus.Infof("input: %s", *mapArgs.input)
	f, err := os.Open(*mapArgs.input)
	if err != nil {
		logrus.Fatal(err)
	}
	defer func() {
		_ = f.Close()
	}()
	info, err := f.Stat()
	if err != nil {
		logrus.Fatal(err)
	}

	run, err := p.ProcessPDF(context.Background(), f, info.Size())
	if err != nil {
		logrus.Fatal(err)
	}
	fmt.Printf("%d text chunks, %d keywords, %d unique\n", run.Chunks, run.Occurrences, len(run.Keywords))
	for i, s := range run.Summary {
		fmt.Printf("[%d] %s\n", i+1, s)
	}
	if run.Notice != "" {
		fmt.Println(run.Notice)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	_, _ = fmt.Fprintf(w, "Keyword\tCount\tQID\tWikidata Label\tURL\n")
	for _, m := range run.Matches {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", m.Keyword, m.Count, m.Entity.ID, m.Entity.Label, m.Entity.URL(cfg.Wikidata.WikiURL))
	}
	_ = w.Flush()
}

func runStatements(client *wikidata.Client) {
	rows, err := client.Statements(context.Background(), *statementsArgs.id, cfg.Wikidata.Language)
	if err != nil {
		logrus.Fatal(err)
	}
	if len(rows) == 0 {
		fmt.Println("No properties found for this entity.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', 0)
	_, _ = fmt.Fprintf(w, "Property ID\tProperty\tValue\tQualifier\tQualifier Value\tUnit\tRank\n")
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.PropertyID, r.Property, r.Value, r.Qualifier, r.QualifierValue, r.Unit, r.Rank)
	}
	_ = w.Flush()
}
