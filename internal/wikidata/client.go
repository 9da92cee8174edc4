// Package wikidata talks to the public Wikidata search API and SPARQL endpoint.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultSearchURL = "https://www.wikidata.org/w/api.php"
	DefaultSparqlURL = "https://query.wikidata.org/sparql"
	DefaultWikiURL   = "https://www.wikidata.org/wiki/"
	DefaultLanguage  = "en"
	SearchLanguage   = "en"
	DefaultUserAgent = "slurpwiki/0.1 (+https://github.com/durp/slurpwiki)"

	maxBodyBytes = 16 << 20
)

type Options struct {
	SearchURL   string
	SparqlURL   string
	Language    string // statement labels; entity search always uses SearchLanguage
	UserAgent   string
	Timeout     time.Duration
	SearchLimit int // candidates requested by Resolve
}

type Client struct {
	httpClient *http.Client
	searchURL  string
	sparqlURL  string
	language   string
	userAgent  string
	limit      int
}

func NewClient(opts Options) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		searchURL:  opts.SearchURL,
		sparqlURL:  opts.SparqlURL,
		language:   opts.Language,
		userAgent:  opts.UserAgent,
		limit:      opts.SearchLimit,
	}
	if c.httpClient.Timeout <= 0 {
		c.httpClient.Timeout = 30 * time.Second
	}
	if c.searchURL == "" {
		c.searchURL = DefaultSearchURL
	}
	if c.sparqlURL == "" {
		c.sparqlURL = DefaultSparqlURL
	}
	if c.language == "" {
		c.language = DefaultLanguage
	}
	if c.limit <= 0 {
		c.limit = 1
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	return c
}

// getJSON issues a GET and decodes a JSON body into v. Non-2xx statuses become
// a *StatusError, undecodable bodies ErrMalformedResponse.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, v interface{}) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, application/sparql-results+json")

	logrus.Debugf("GET %s", u.Host+u.Path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: snippet(body)}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v: %s", ErrMalformedResponse, err, snippet(body))
	}
	return nil
}

func snippet(b []byte) string {
	const n = 500
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
