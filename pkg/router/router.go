// Package router maps verb + path-pattern registrations to handlers,
// emulating a remote endpoint in process. Two registration classes
// exist: custom routes added by the test author and default routes
// derived from resource definitions. Custom routes are always
// consulted first; within a class the first registration wins.
package router

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/stubkit/stubkit/pkg/logging"
)

// Handler produces a response value for a matched request. Captured
// groups from the path pattern are passed positionally. The result may
// be a *resource.Record, a []*resource.Record, or an already-built
// document value; the engine pipes records through the serializer.
type Handler func(captures []string) (any, error)

// Class identifies a registration's precedence class.
type Class string

// Registration classes.
const (
	ClassCustom  Class = "custom"
	ClassDefault Class = "default"
)

type route struct {
	verb    string
	raw     string
	pattern *regexp.Regexp
	handler Handler
}

// Match describes the winning route of a dispatch.
type Match struct {
	Verb    string
	Pattern string
	Class   Class
	Value   any
}

// Router holds the registered routes.
type Router struct {
	custom   []route
	defaults []route
	log      *slog.Logger
}

// New creates an empty router.
func New() *Router {
	return &Router{log: logging.Nop()}
}

// SetLogger sets the logger.
func (r *Router) SetLogger(log *slog.Logger) {
	if log != nil {
		r.log = log
	}
}

// Register adds a custom route. The pattern is a regular expression
// matched against the full request path including any query string;
// it is anchored at both ends unless already anchored. Capture groups
// are passed positionally to the handler.
func (r *Router) Register(verb, pattern string, h Handler) error {
	rt, err := compile(verb, pattern, h)
	if err != nil {
		return err
	}
	r.custom = append(r.custom, rt)
	r.log.Debug("custom route registered", "verb", verb, "pattern", pattern)
	return nil
}

// RegisterDefault adds a definition-derived route. Default routes are
// consulted only when no custom route matches.
func (r *Router) RegisterDefault(verb, pattern string, h Handler) error {
	rt, err := compile(verb, pattern, h)
	if err != nil {
		return err
	}
	r.defaults = append(r.defaults, rt)
	r.log.Debug("default route registered", "verb", verb, "pattern", pattern)
	return nil
}

func compile(verb, pattern string, h Handler) (route, error) {
	anchored := pattern
	if !strings.HasPrefix(anchored, "^") {
		anchored = "^" + anchored
	}
	if !strings.HasSuffix(anchored, "$") {
		anchored += "$"
	}
	re, err := regexp.Compile(anchored)
	if err != nil {
		return route{}, fmt.Errorf("invalid route pattern %q: %w", pattern, err)
	}
	return route{verb: strings.ToUpper(verb), raw: pattern, pattern: re, handler: h}, nil
}

// Dispatch resolves a request against the registered routes: custom
// registrations first, then defaults, first match wins within a class.
// On a match the handler runs with its positional captures and the
// result is returned in the Match. No match fails with
// RequestNotFoundError carrying the literal path.
func (r *Router) Dispatch(verb, path string) (*Match, error) {
	verb = strings.ToUpper(verb)

	for _, class := range []struct {
		routes []route
		class  Class
	}{
		{r.custom, ClassCustom},
		{r.defaults, ClassDefault},
	} {
		for _, rt := range class.routes {
			if rt.verb != verb {
				continue
			}
			groups := rt.pattern.FindStringSubmatch(path)
			if groups == nil {
				continue
			}
			r.log.Debug("route matched", "verb", verb, "path", path, "pattern", rt.raw, "class", class.class)
			value, err := rt.handler(groups[1:])
			if err != nil {
				return nil, err
			}
			return &Match{Verb: verb, Pattern: rt.raw, Class: class.class, Value: value}, nil
		}
	}

	err := &RequestNotFoundError{Verb: verb, Path: path, Registered: r.patternsFor(verb)}
	r.log.Debug("no route matched", "verb", verb, "path", path)
	return nil, err
}

// Routes returns every registration as (verb, pattern, class) triples,
// custom first, in registration order.
func (r *Router) Routes() []Match {
	out := make([]Match, 0, len(r.custom)+len(r.defaults))
	for _, rt := range r.custom {
		out = append(out, Match{Verb: rt.verb, Pattern: rt.raw, Class: ClassCustom})
	}
	for _, rt := range r.defaults {
		out = append(out, Match{Verb: rt.verb, Pattern: rt.raw, Class: ClassDefault})
	}
	return out
}

func (r *Router) patternsFor(verb string) []string {
	var out []string
	for _, rt := range r.custom {
		if rt.verb == verb {
			out = append(out, rt.raw)
		}
	}
	for _, rt := range r.defaults {
		if rt.verb == verb {
			out = append(out, rt.raw)
		}
	}
	return out
}

// ResetCustom drops all custom registrations. Invoked at scenario
// start; default routes persist with their definitions.
func (r *Router) ResetCustom() {
	r.custom = nil
}
