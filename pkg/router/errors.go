package router

import (
	"fmt"
	"strings"
)

// RequestNotFoundError is returned when no registered pattern matches
// a dispatched request. It carries the literal unmatched path: this is
// the primary signal telling the test author which mock is missing,
// so it is never swallowed.
type RequestNotFoundError struct {
	Verb string
	Path string

	// Registered holds the patterns registered for the same verb, for
	// near-miss diagnostics.
	Registered []string
}

func (e *RequestNotFoundError) Error() string {
	return fmt.Sprintf("no registered mock matches %s %q", e.Verb, e.Path)
}

// Hint returns a suggestion for resolving this error.
func (e *RequestNotFoundError) Hint() string {
	if len(e.Registered) == 0 {
		return fmt.Sprintf("Nothing is registered for %s. Define the resource type or register a custom route.", e.Verb)
	}
	return fmt.Sprintf("Registered %s patterns: %s. Register a route matching %q or adjust the request.",
		e.Verb, strings.Join(e.Registered, ", "), e.Path)
}
