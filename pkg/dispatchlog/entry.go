// Package dispatchlog records dispatched requests and their serialized
// responses for end-of-scenario inspection. Recording is purely
// observational: it never alters dispatch behavior.
package dispatchlog

import (
	"fmt"
	"time"

	"github.com/ohler55/ojg/jp"
)

// Entry captures one dispatched request and its response.
type Entry struct {
	// ID is a unique identifier for the log entry.
	ID string `json:"id"`

	// Timestamp is when the request was dispatched.
	Timestamp time.Time `json:"timestamp"`

	// Verb is the request verb.
	Verb string `json:"verb"`

	// Path is the full request path including any query string.
	Path string `json:"path"`

	// Pattern is the winning route pattern, empty when nothing matched.
	Pattern string `json:"pattern,omitempty"`

	// Class is the winning route's registration class.
	Class string `json:"class,omitempty"`

	// Body is the serialized response body.
	Body string `json:"body,omitempty"`

	// Document is the response in generic map/slice form, kept for
	// structural queries.
	Document any `json:"-"`

	// Error holds the failure message when dispatch failed.
	Error string `json:"error,omitempty"`
}

// Query evaluates a JSONPath expression against the entry's response
// document, e.g. "$.book.author.name".
func (e *Entry) Query(path string) ([]any, error) {
	if e.Document == nil {
		return nil, fmt.Errorf("entry %s has no response document", e.ID)
	}
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return expr.Get(e.Document), nil
}
