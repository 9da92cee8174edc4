package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"slurpwiki/internal/chunk"
	"slurpwiki/internal/keyphrase"
	"slurpwiki/internal/summary"
	"slurpwiki/internal/wikidata"
)

// EnvPrefix prefixes every environment variable bound to a flag.
const EnvPrefix = "SLURPWIKI_"

type Config struct {
	Chunk     ChunkConfig     `yaml:"chunk"`
	Keyphrase KeyphraseConfig `yaml:"keyphrase"`
	Wikidata  WikidataConfig  `yaml:"wikidata"`
	Summary   SummaryConfig   `yaml:"summary"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

type ChunkConfig struct {
	Size    int  `yaml:"size"`
	// Columns reads PDF pages with layout analysis instead of stream order.
	Columns bool `yaml:"columns"`
}

type KeyphraseConfig struct {
	Method    string `yaml:"method"`
	TopN      int    `yaml:"top_n"`
	MinTokens int    `yaml:"min_tokens"`
	MaxTokens int    `yaml:"max_tokens"`
}

type WikidataConfig struct {
	SearchURL   string        `yaml:"search_url"`
	SparqlURL   string        `yaml:"sparql_url"`
	WikiURL     string        `yaml:"wiki_url"`
	Language    string        `yaml:"language"`
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	SearchLimit int           `yaml:"search_limit"`
	Workers     int           `yaml:"workers"`
}

type SummaryConfig struct {
	Method    string `yaml:"method"`
	Sentences int    `yaml:"sentences"`
}

type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	kp := keyphrase.DefaultOptions()
	return Config{
		Chunk: ChunkConfig{Size: chunk.DefaultSize},
		Keyphrase: KeyphraseConfig{
			Method:    keyphrase.RAKE,
			TopN:      kp.TopN,
			MinTokens: kp.MinTokens,
			MaxTokens: kp.MaxTokens,
		},
		Wikidata: WikidataConfig{
			SearchURL:   wikidata.DefaultSearchURL,
			SparqlURL:   wikidata.DefaultSparqlURL,
			WikiURL:     wikidata.DefaultWikiURL,
			Language:    wikidata.DefaultLanguage,
			UserAgent:   wikidata.DefaultUserAgent,
			Timeout:     30 * time.Second,
			SearchLimit: 1,
			Workers:     1,
		},
		Summary: SummaryConfig{Method: summary.LexRank, Sentences: 3},
		Server:  ServerConfig{Addr: "localhost:8501", MaxUploadBytes: 32 << 20},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

func (c Config) Validate() error {
	var errs []string
	if c.Chunk.Size <= 0 {
		errs = append(errs, "chunk size must be positive")
	}
	if _, err := keyphrase.New(c.Keyphrase.Method, c.KeyphraseOptions()); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Keyphrase.TopN <= 0 {
		errs = append(errs, "keyphrase top_n must be positive")
	}
	if c.Keyphrase.MinTokens <= 0 || c.Keyphrase.MaxTokens < c.Keyphrase.MinTokens {
		errs = append(errs, fmt.Sprintf("invalid keyphrase token range %d..%d", c.Keyphrase.MinTokens, c.Keyphrase.MaxTokens))
	}
	if c.Wikidata.SearchURL == "" || c.Wikidata.SparqlURL == "" {
		errs = append(errs, "wikidata search_url and sparql_url are required")
	}
	if c.Wikidata.Workers <= 0 {
		errs = append(errs, "wikidata workers must be positive")
	}
	if c.Wikidata.SearchLimit <= 0 {
		errs = append(errs, "wikidata search_limit must be positive")
	}
	if _, err := summary.New(c.Summary.Method); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, "server max_upload_bytes must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

func (c Config) KeyphraseOptions() keyphrase.Options {
	return keyphrase.Options{
		MinTokens: c.Keyphrase.MinTokens,
		MaxTokens: c.Keyphrase.MaxTokens,
		TopN:      c.Keyphrase.TopN,
	}
}

func (c Config) WikidataOptions() wikidata.Options {
	return wikidata.Options{
		SearchURL:   c.Wikidata.SearchURL,
		SparqlURL:   c.Wikidata.SparqlURL,
		Language:    c.Wikidata.Language,
		UserAgent:   c.Wikidata.UserAgent,
		Timeout:     c.Wikidata.Timeout,
		SearchLimit: c.Wikidata.SearchLimit,
	}
}

// Write dumps the configuration as YAML.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return enc.Close()
}

// Apply configures the package-level logrus logger.
func (c LogConfig) Apply(out io.Writer) error {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	if out != nil {
		logrus.SetOutput(out)
	}
	if c.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
