package wikidata

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"text/template"
)

// Statement is one flattened (property, value, qualifier) row of an entity.
// Optional fields are empty when the binding lacks them.
type Statement struct {
	PropertyID     string `json:"property_id"`
	Property       string `json:"property"`
	Value          string `json:"value"`
	Qualifier      string `json:"qualifier,omitempty"`
	QualifierValue string `json:"qualifier_value,omitempty"`
	Unit           string `json:"unit,omitempty"`
	Rank           Rank   `json:"rank"`
}

var (
	entityIDPattern = regexp.MustCompile(`^[QPL][1-9][0-9]*$`)
	languagePattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-z0-9]+)*$`)
)

// ValidID reports whether id looks like a Wikidata entity identifier.
func ValidID(id string) bool {
	return entityIDPattern.MatchString(id)
}

var statementsQuery = template.Must(template.New("statements").Parse(`
SELECT
  ?property
  ?propertyLabel
  ?statementValue
  ?statementValueLabel
  ?qualifierProperty
  ?qualifierPropertyLabel
  ?qualifierValue
  ?qualifierValueLabel
  ?unitOfMeasure
  ?unitOfMeasureLabel
  ?statementRank
  ?statementRankLabel
WHERE {
  VALUES ?item { wd:{{.ID}} }
  ?item ?propertyPredicate ?statement .
  ?statement ?statementPropertyPredicate ?statementValue .
  ?property wikibase:claim ?propertyPredicate .
  ?property wikibase:statementProperty ?statementPropertyPredicate .
  ?statement wikibase:rank ?statementRank .
  BIND(IF(?statementRank = wikibase:NormalRank, "Normal",
    IF(?statementRank = wikibase:PreferredRank, "Preferred",
    IF(?statementRank = wikibase:DeprecatedRank, "Deprecated", "Unknown"))) AS ?statementRankLabel)
  OPTIONAL { ?statement ?qualifierPredicate ?qualifierValue .
             ?qualifierProperty wikibase:qualifier ?qualifierPredicate . }
  OPTIONAL { ?statement ?statementValueNodePredicate ?valueNode .
             ?valueNode wikibase:quantityUnit ?unitOfMeasure . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "{{.Language}}, en". }
}
ORDER BY ?property ?statementValue ?qualifierProperty ?qualifierValue
`))

// StatementsQuery renders the SPARQL query for every statement of id.
func StatementsQuery(id, lang string) (string, error) {
	if !ValidID(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if lang == "" {
		lang = DefaultLanguage
	}
	if !languagePattern.MatchString(lang) {
		return "", fmt.Errorf("invalid label language %q", lang)
	}
	var sb strings.Builder
	err := statementsQuery.Execute(&sb, struct{ ID, Language string }{id, lang})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

type sparqlResponse struct {
	Results *struct {
		Bindings []binding `json:"bindings"`
	} `json:"results"`
}

type binding map[string]struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (b binding) get(name string) string {
	return b[name].Value
}

// Statements returns every statement of id with labels in lang, falling back
// to English. An entity without statements yields an empty slice; transport
// and decoding failures are returned as errors.
func (c *Client) Statements(ctx context.Context, id, lang string) ([]Statement, error) {
	if lang == "" {
		lang = c.language
	}
	q, err := StatementsQuery(id, lang)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("query", q)
	params.Set("format", "json")

	var resp sparqlResponse
	if err := c.getJSON(ctx, c.sparqlURL, params, &resp); err != nil {
		return nil, fmt.Errorf("statements %s: %w", id, err)
	}
	if resp.Results == nil || resp.Results.Bindings == nil {
		return nil, fmt.Errorf("statements %s: %w: missing results.bindings", id, ErrMalformedResponse)
	}

	rows := make([]Statement, 0, len(resp.Results.Bindings))
	for _, b := range resp.Results.Bindings {
		rows = append(rows, flatten(b))
	}
	return rows, nil
}

func flatten(b binding) Statement {
	value := b.get("statementValueLabel")
	if value == "" {
		value = b.get("statementValue")
	}
	qualifierValue := b.get("qualifierValueLabel")
	if qualifierValue == "" {
		qualifierValue = b.get("qualifierValue")
	}
	rank := b.get("statementRankLabel")
	if rank == "" {
		rank = b.get("statementRank")
	}
	return Statement{
		PropertyID:     lastSegment(b.get("property")),
		Property:       b.get("propertyLabel"),
		Value:          value,
		Qualifier:      b.get("qualifierPropertyLabel"),
		QualifierValue: qualifierValue,
		Unit:           b.get("unitOfMeasureLabel"),
		Rank:           ClassifyRank(rank),
	}
}

func lastSegment(iri string) string {
	if iri == "" {
		return ""
	}
	return iri[strings.LastIndex(iri, "/")+1:]
}
