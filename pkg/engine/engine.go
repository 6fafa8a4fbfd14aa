// Package engine wires the definition registry, store, factory,
// serializer, and router into one scenario-scoped virtualization
// engine. Test code defines types and creates records; the simulated
// client dispatches requests through Request and receives the
// serialized documents a real backend would emit.
package engine

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/stubkit/stubkit/internal/inflect"
	"github.com/stubkit/stubkit/pkg/dispatchlog"
	"github.com/stubkit/stubkit/pkg/document"
	"github.com/stubkit/stubkit/pkg/factory"
	"github.com/stubkit/stubkit/pkg/logging"
	"github.com/stubkit/stubkit/pkg/resource"
	"github.com/stubkit/stubkit/pkg/router"
	"github.com/stubkit/stubkit/pkg/schema"
)

// Config holds engine construction options.
type Config struct {
	// Logger receives structured engine logs. Defaults to the no-op logger.
	Logger *slog.Logger

	// RecordDispatches turns on the diagnostics log from the start.
	RecordDispatches bool
}

// Engine is one scenario's virtualization state. It is single threaded
// and fully synchronous; a harness running scenarios in parallel must
// give each scenario its own Engine.
type Engine struct {
	registry   *schema.Registry
	store      *resource.Store
	factory    *factory.Factory
	router     *router.Router
	serializer *document.Serializer
	dispatches dispatchlog.Store
	recording  bool
	derived    map[string]bool
	log        *slog.Logger
}

// New creates an engine with empty definitions and an empty store.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}

	registry := schema.NewRegistry()
	store := resource.NewStore()
	rt := router.New()

	registry.SetLogger(log)
	store.SetLogger(log)
	rt.SetLogger(log)

	f := factory.New(registry, store)
	f.SetLogger(log)

	ser := document.NewSerializer(registry)
	ser.SetLogger(log)

	return &Engine{
		registry:   registry,
		store:      store,
		factory:    f,
		router:     rt,
		serializer: ser,
		dispatches: dispatchlog.NewMemoryStore(),
		recording:  cfg.RecordDispatches,
		derived:    make(map[string]bool),
		log:        log,
	}
}

// Define registers or extends the schema for a type and derives the
// type's default collection and member routes on first definition.
func (e *Engine) Define(typeName string, build func(*schema.Builder)) error {
	typeName = inflect.Singular(typeName)
	if err := e.registry.Define(typeName, build); err != nil {
		return err
	}
	if !e.derived[typeName] {
		if err := e.deriveRoutes(typeName); err != nil {
			return err
		}
		e.derived[typeName] = true
	}
	return nil
}

// deriveRoutes registers the convention routes for a type: GET on the
// collection path returns all records, GET on the member path returns
// one by id. Paths may carry an .xml suffix and a query string.
func (e *Engine) deriveRoutes(typeName string) error {
	plural := inflect.Plural(typeName)

	collection := fmt.Sprintf(`/%s(?:\.xml)?(?:\?.*)?`, plural)
	if err := e.router.RegisterDefault("GET", collection, func([]string) (any, error) {
		return e.store.Find(typeName), nil
	}); err != nil {
		return err
	}

	member := fmt.Sprintf(`/%s/(\d+)(?:\.xml)?(?:\?.*)?`, plural)
	return e.router.RegisterDefault("GET", member, func(captures []string) (any, error) {
		id, err := strconv.Atoi(captures[0])
		if err != nil {
			return nil, err
		}
		return e.store.FindID(typeName, id)
	})
}

// Create builds one record. The type may be given singular or plural.
func (e *Engine) Create(typeName string, attrs resource.Attrs) (*resource.Record, error) {
	return e.factory.Create(inflect.Singular(typeName), attrs)
}

// CreateAll builds one record per attribute map, in input order.
func (e *Engine) CreateAll(typeName string, attrs []resource.Attrs) ([]*resource.Record, error) {
	return e.factory.CreateAll(inflect.Singular(typeName), attrs)
}

// Stub generates count records from a shared template.
func (e *Engine) Stub(count int, typeName string, like resource.Attrs) ([]*resource.Record, error) {
	return e.factory.Stub(count, inflect.Singular(typeName), like)
}

// Find returns all records of a type in creation order.
func (e *Engine) Find(typeName string) []*resource.Record {
	return e.store.Find(inflect.Singular(typeName))
}

// FindID returns one record by id or a NotFoundError.
func (e *Engine) FindID(typeName string, id int) (*resource.Record, error) {
	return e.store.FindID(inflect.Singular(typeName), id)
}

// FindFunc returns the records matching a Go predicate.
func (e *Engine) FindFunc(typeName string, pred func(*resource.Record) bool) []*resource.Record {
	return e.store.FindFunc(inflect.Singular(typeName), pred)
}

// FindWhere returns the records matching an expr-language predicate.
func (e *Engine) FindWhere(typeName, expression string) ([]*resource.Record, error) {
	return e.store.FindWhere(inflect.Singular(typeName), expression)
}

// Register adds a custom route. Custom routes win over the derived
// defaults whenever both match.
func (e *Engine) Register(verb, pattern string, h router.Handler) error {
	return e.router.Register(verb, pattern, h)
}

// Request dispatches a simulated request and returns the serialized
// response body. Handler results that are records pass through the
// graph serializer; raw strings and prebuilt documents pass through
// as-is. A missing registration fails with RequestNotFoundError.
func (e *Engine) Request(verb, path string) (string, error) {
	match, err := e.router.Dispatch(verb, path)
	if err != nil {
		e.record(&dispatchlog.Entry{Verb: verb, Path: path, Error: err.Error()})
		return "", err
	}

	body, doc, err := e.render(match.Value)
	if err != nil {
		e.record(&dispatchlog.Entry{Verb: verb, Path: path, Pattern: match.Pattern, Class: string(match.Class), Error: err.Error()})
		return "", err
	}

	e.record(&dispatchlog.Entry{
		Verb:     verb,
		Path:     path,
		Pattern:  match.Pattern,
		Class:    string(match.Class),
		Body:     body,
		Document: doc,
	})
	return body, nil
}

// render turns a handler result into a response body and its generic
// document form for the dispatch log.
func (e *Engine) render(value any) (string, any, error) {
	switch v := value.(type) {
	case *resource.Record:
		obj := e.serializer.Serialize(v)
		body, err := document.EncodeXML(obj)
		if err != nil {
			return "", nil, err
		}
		return body, map[string]any{obj.Name: obj.Interface()}, nil
	case []*resource.Record:
		name := "records"
		if len(v) > 0 {
			name = inflect.Plural(v[0].Type())
		}
		list := e.serializer.SerializeAll(name, v)
		body, err := document.EncodeXML(list)
		if err != nil {
			return "", nil, err
		}
		return body, list.Interface(), nil
	case *document.Object:
		body, err := document.EncodeXML(v)
		if err != nil {
			return "", nil, err
		}
		return body, map[string]any{v.Name: v.Interface()}, nil
	case *document.List:
		body, err := document.EncodeXML(v)
		if err != nil {
			return "", nil, err
		}
		return body, v.Interface(), nil
	case string:
		return v, nil, nil
	case nil:
		return "", nil, nil
	default:
		return "", nil, fmt.Errorf("handler returned unsupported type %T", value)
	}
}

func (e *Engine) record(entry *dispatchlog.Entry) {
	if !e.recording {
		return
	}
	e.dispatches.Log(entry)
}

// SetRecording toggles the diagnostics log. Purely observational:
// dispatch behavior is identical either way.
func (e *Engine) SetRecording(on bool) {
	e.recording = on
}

// Recording reports whether dispatches are being recorded.
func (e *Engine) Recording() bool {
	return e.recording
}

// Dispatches returns the diagnostics log.
func (e *Engine) Dispatches() dispatchlog.Store {
	return e.dispatches
}

// ResetScenario clears all scenario-scoped state: records, custom
// registrations, and the dispatch log. Definitions and their derived
// default routes persist. Call this at scenario start, not its end.
func (e *Engine) ResetScenario() {
	e.store.Reset()
	e.router.ResetCustom()
	e.dispatches.Clear()
	e.log.Debug("scenario state reset")
}

// Registry returns the definition registry.
func (e *Engine) Registry() *schema.Registry {
	return e.registry
}

// Store returns the record store.
func (e *Engine) Store() *resource.Store {
	return e.store
}

// Router returns the request router.
func (e *Engine) Router() *router.Router {
	return e.router
}

// Factory returns the record factory, for use inside default
// generators that create related records.
func (e *Engine) Factory() *factory.Factory {
	return e.factory
}

// Serializer returns the graph serializer.
func (e *Engine) Serializer() *document.Serializer {
	return e.serializer
}
