package wikidata

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoMatch means the search returned no candidate entity.
	ErrNoMatch = errors.New("no matching entity")
	// ErrMalformedResponse means a response body did not fit the expected schema.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrInvalidID means an entity identifier is not of the form Q123, P123 or L123.
	ErrInvalidID = errors.New("invalid entity identifier")
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, http.StatusText(e.Code))
}
