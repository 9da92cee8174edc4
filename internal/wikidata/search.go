package wikidata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Entity is a knowledge-base match for a phrase.
type Entity struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// URL links to the entity page under the given wiki base, e.g.
// https://www.wikidata.org/wiki/.
func (e Entity) URL(base string) string {
	if base == "" {
		base = DefaultWikiURL
	}
	return strings.TrimSuffix(base, "/") + "/" + url.PathEscape(e.ID)
}

type searchResponse struct {
	Search *[]searchHit `json:"search"`
	Error  *apiError    `json:"error"`
}

type searchHit struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Display     struct {
		Label struct {
			Value string `json:"value"`
		} `json:"label"`
	} `json:"display"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// Search returns up to limit entities matching phrase, best first.
func (c *Client) Search(ctx context.Context, phrase string, limit int) ([]Entity, error) {
	if limit <= 0 {
		limit = 1
	}
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("format", "json")
	params.Set("type", "item")
	params.Set("search", phrase)
	params.Set("language", SearchLanguage)
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.getJSON(ctx, c.searchURL, params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", phrase, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("search %q: %w: %s: %s", phrase, ErrMalformedResponse, resp.Error.Code, resp.Error.Info)
	}
	if resp.Search == nil {
		return nil, fmt.Errorf("search %q: %w: missing search list", phrase, ErrMalformedResponse)
	}

	entities := make([]Entity, 0, len(*resp.Search))
	for _, hit := range *resp.Search {
		if hit.ID == "" {
			continue
		}
		label := hit.Label
		if label == "" {
			label = hit.Display.Label.Value
		}
		entities = append(entities, Entity{ID: hit.ID, Label: label, Description: hit.Description})
		if len(entities) == limit {
			break
		}
	}
	return entities, nil
}

// Resolve returns the first (best) search match for phrase, or ErrNoMatch.
func (c *Client) Resolve(ctx context.Context, phrase string) (*Entity, error) {
	entities, err := c.Search(ctx, phrase, c.limit)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("search %q: %w", phrase, ErrNoMatch)
	}
	return &entities[0], nil
}
