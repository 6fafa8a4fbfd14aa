package schema

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/stubkit/stubkit/pkg/logging"
	"github.com/stubkit/stubkit/pkg/resource"
)

// Schema is the accumulated attribute set for one type, in declaration
// order. The zero-attribute schema is valid: undefined types are
// creatable ad hoc, so absence of a definition is never an error.
type Schema struct {
	TypeName string
	attrs    []AttributeDef
	index    map[string]int
}

func newSchema(typeName string) *Schema {
	return &Schema{TypeName: typeName, index: make(map[string]int)}
}

// Attributes returns the declared attributes in declaration order.
func (s *Schema) Attributes() []AttributeDef {
	out := make([]AttributeDef, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Attribute returns the definition for a name, if declared.
func (s *Schema) Attribute(name string) (AttributeDef, bool) {
	if i, ok := s.index[name]; ok {
		return s.attrs[i], true
	}
	return AttributeDef{}, false
}

// Names returns the declared attribute names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		out[i] = a.Name
	}
	return out
}

// Empty reports whether the schema declares no attributes.
func (s *Schema) Empty() bool {
	return len(s.attrs) == 0
}

// DefinitionConflictError is returned when a repeated Define call
// redeclares an attribute's default with a different rule. Additive,
// non-conflicting redefinition is allowed.
type DefinitionConflictError struct {
	Type      string
	Attribute string
}

func (e *DefinitionConflictError) Error() string {
	return fmt.Sprintf("conflicting redefinition of %s.%s", e.Type, e.Attribute)
}

// Hint returns a suggestion for resolving this error.
func (e *DefinitionConflictError) Hint() string {
	return fmt.Sprintf("Attribute %q already carries a default; repeated define calls may only add attributes or fill in missing defaults.", e.Attribute)
}

// Registry holds the schemas for every defined type.
type Registry struct {
	schemas map[string]*Schema
	log     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*Schema),
		log:     logging.Nop(),
	}
}

// SetLogger sets the logger.
func (r *Registry) SetLogger(log *slog.Logger) {
	if log != nil {
		r.log = log
	}
}

// Define registers or extends the schema for a type. The builder
// callback declares attributes; declarations merge into any existing
// schema. Merging is additive: a conflicting default redeclaration
// fails with DefinitionConflictError.
func (r *Registry) Define(typeName string, build func(*Builder)) error {
	b := &Builder{}
	build(b)

	s, ok := r.schemas[typeName]
	if !ok {
		s = newSchema(typeName)
		r.schemas[typeName] = s
	}

	for _, def := range b.attrs {
		if err := s.merge(typeName, def); err != nil {
			return err
		}
	}

	r.log.Debug("type defined", "type", typeName, "attributes", len(s.attrs))
	return nil
}

func (s *Schema) merge(typeName string, def AttributeDef) error {
	i, exists := s.index[def.Name]
	if !exists {
		s.index[def.Name] = len(s.attrs)
		s.attrs = append(s.attrs, def)
		return nil
	}

	existing := &s.attrs[i]
	if def.Default.Kind() != ProviderNone {
		if existing.Default.Kind() != ProviderNone {
			return &DefinitionConflictError{Type: typeName, Attribute: def.Name}
		}
		existing.Default = def.Default
	}
	// Uniqueness only ever tightens.
	if def.Unique {
		existing.Unique = true
	}
	return nil
}

// SchemaFor returns the schema for a type, or an empty schema when the
// type was never defined.
func (r *Registry) SchemaFor(typeName string) *Schema {
	if s, ok := r.schemas[typeName]; ok {
		return s
	}
	return newSchema(typeName)
}

// Defined returns the defined type names, sorted.
func (r *Registry) Defined() []string {
	out := make([]string, 0, len(r.schemas))
	for t := range r.schemas {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Builder collects attribute declarations inside a Define call.
type Builder struct {
	attrs []AttributeDef
}

// Plain declares an attribute with no default.
func (b *Builder) Plain(name string) *Builder {
	b.attrs = append(b.attrs, AttributeDef{Name: name})
	return b
}

// Default declares an attribute with a literal default value.
func (b *Builder) Default(name string, value any) *Builder {
	b.attrs = append(b.attrs, AttributeDef{Name: name, Default: Literal(value)})
	return b
}

// Generated declares an attribute defaulted by a zero-argument
// generator, invoked once per created record.
func (b *Builder) Generated(name string, fn func() any) *Builder {
	b.attrs = append(b.attrs, AttributeDef{Name: name, Default: Generator(fn)})
	return b
}

// Derived declares an attribute defaulted by a generator that receives
// the partially built record, so it may read resolved siblings or
// create related records.
func (b *Builder) Derived(name string, fn func(partial *resource.Record) any) *Builder {
	b.attrs = append(b.attrs, AttributeDef{Name: name, Default: Dependent(fn)})
	return b
}

// Uniquify declares an attribute whose generated value must be unique
// within the type. Without a generator the factory synthesizes values
// from the type and attribute names.
func (b *Builder) Uniquify(name string) *Builder {
	b.attrs = append(b.attrs, AttributeDef{Name: name, Unique: true})
	return b
}

// UniquifyWith is Uniquify with an explicit generator supplying the
// candidate values.
func (b *Builder) UniquifyWith(name string, fn func() any) *Builder {
	b.attrs = append(b.attrs, AttributeDef{Name: name, Default: Generator(fn), Unique: true})
	return b
}
