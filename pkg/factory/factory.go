// Package factory creates mock records by resolving schema defaults
// against caller overrides and writing the results into the store.
package factory

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/stubkit/stubkit/pkg/logging"
	"github.com/stubkit/stubkit/pkg/resource"
	"github.com/stubkit/stubkit/pkg/schema"
)

// maxUniqueAttempts bounds the uniqueness-generation loop.
const maxUniqueAttempts = 1000

// Factory resolves schema defaults and creates records.
type Factory struct {
	registry *schema.Registry
	store    *resource.Store
	log      *slog.Logger
}

// New creates a factory over the given registry and store.
func New(registry *schema.Registry, store *resource.Store) *Factory {
	return &Factory{
		registry: registry,
		store:    store,
		log:      logging.Nop(),
	}
}

// SetLogger sets the logger.
func (f *Factory) SetLogger(log *slog.Logger) {
	if log != nil {
		f.log = log
	}
}

// Create builds one record of the given type. Schema defaults are
// evaluated lazily in declaration order, so a dependent generator sees
// every sibling resolved before it (overridden ones included) and
// may recursively call Create for nested defaults. Explicit overrides
// always win; an explicit nil override suppresses the default.
// Override attributes outside the schema are applied afterwards in
// sorted name order, keeping attribute order reproducible.
func (f *Factory) Create(typeName string, overrides resource.Attrs) (*resource.Record, error) {
	s := f.registry.SchemaFor(typeName)
	rec := resource.New(typeName)

	for _, def := range s.Attributes() {
		if v, present := overrides[def.Name]; present {
			rec.Set(def.Name, v)
			continue
		}
		if def.Default.Kind() == schema.ProviderNone && !def.Unique {
			continue
		}
		value, err := f.resolveDefault(typeName, def, rec)
		if err != nil {
			return nil, err
		}
		rec.Set(def.Name, value)
	}

	for _, name := range sortedExtraKeys(overrides, s) {
		rec.Set(name, overrides[name])
	}

	f.store.Add(rec)
	f.log.Debug("record created", "type", typeName, "id", rec.ID())
	return rec, nil
}

// MustCreate is Create for use inside default generators, where an
// error cannot propagate. It panics on failure.
func (f *Factory) MustCreate(typeName string, overrides resource.Attrs) *resource.Record {
	rec, err := f.Create(typeName, overrides)
	if err != nil {
		panic(err)
	}
	return rec
}

// CreateAll builds one record per attribute map, preserving input
// order in the returned sequence.
func (f *Factory) CreateAll(typeName string, overrides []resource.Attrs) ([]*resource.Record, error) {
	out := make([]*resource.Record, 0, len(overrides))
	for _, attrs := range overrides {
		rec, err := f.Create(typeName, attrs)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Stub generates count records from a shared template. The template
// merges beneath schema defaults exactly like per-call overrides do.
func (f *Factory) Stub(count int, typeName string, like resource.Attrs) ([]*resource.Record, error) {
	out := make([]*resource.Record, 0, count)
	for i := 0; i < count; i++ {
		rec, err := f.Create(typeName, like)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// resolveDefault evaluates the attribute's provider and, for uniquified
// attributes, walks candidates until one is unused within the type.
func (f *Factory) resolveDefault(typeName string, def schema.AttributeDef, partial *resource.Record) (any, error) {
	value := def.Default.Resolve(partial)
	if !def.Unique {
		return value, nil
	}

	if def.Default.Kind() == schema.ProviderNone {
		// No generator: synthesize values from the type and attribute names.
		for n := 1; n <= maxUniqueAttempts; n++ {
			candidate := fmt.Sprintf("%s %s %d", typeName, def.Name, n)
			if !f.store.AttributeTaken(typeName, def.Name, candidate) {
				return candidate, nil
			}
		}
		return nil, &UniquenessExhaustedError{Type: typeName, Attribute: def.Name, Attempts: maxUniqueAttempts}
	}

	previous := value
	for attempt := 1; attempt <= maxUniqueAttempts; attempt++ {
		if !f.store.AttributeTaken(typeName, def.Name, value) {
			return value, nil
		}
		value = f.nextCandidate(def, partial, value, attempt)
		if value == previous {
			// Deterministic provider with no way to vary the value.
			return nil, &UniquenessExhaustedError{Type: typeName, Attribute: def.Name, Attempts: attempt}
		}
		previous = value
	}
	return nil, &UniquenessExhaustedError{Type: typeName, Attribute: def.Name, Attempts: maxUniqueAttempts}
}

// nextCandidate produces the next uniqueness candidate: strings get a
// numeric suffix on the colliding value, everything else re-invokes
// the provider in case it is non-deterministic.
func (f *Factory) nextCandidate(def schema.AttributeDef, partial *resource.Record, current any, attempt int) any {
	if s, ok := current.(string); ok {
		return fmt.Sprintf("%s %d", s, attempt+1)
	}
	return def.Default.Resolve(partial)
}

func sortedExtraKeys(overrides resource.Attrs, s *schema.Schema) []string {
	var extras []string
	for name := range overrides {
		if _, declared := s.Attribute(name); !declared {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return extras
}
