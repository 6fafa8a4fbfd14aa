// Package schema holds per-type attribute definitions and their
// default-generation rules. Definitions are registered once per
// process and extended additively; true conflicts are flagged.
package schema

import "github.com/stubkit/stubkit/pkg/resource"

// ProviderKind identifies how a default value is produced.
type ProviderKind int

// Provider kinds.
const (
	// ProviderNone declares the attribute with no default.
	ProviderNone ProviderKind = iota

	// ProviderLiteral supplies a fixed value.
	ProviderLiteral

	// ProviderGenerator invokes a zero-argument function per record.
	ProviderGenerator

	// ProviderDependent invokes a function over the partially built
	// record, so a default may read already-resolved siblings or
	// recursively create related records.
	ProviderDependent
)

// Provider is the tagged default rule for an attribute.
type Provider struct {
	kind     ProviderKind
	literal  any
	generate func() any
	derive   func(partial *resource.Record) any
}

// Literal returns a provider that yields a fixed value.
func Literal(value any) Provider {
	return Provider{kind: ProviderLiteral, literal: value}
}

// Generator returns a provider that yields fn() per record.
func Generator(fn func() any) Provider {
	return Provider{kind: ProviderGenerator, generate: fn}
}

// Dependent returns a provider that yields fn(partial) per record,
// where partial carries the attributes resolved so far.
func Dependent(fn func(partial *resource.Record) any) Provider {
	return Provider{kind: ProviderDependent, derive: fn}
}

// Kind returns the provider kind.
func (p Provider) Kind() ProviderKind {
	return p.kind
}

// Resolve produces the default value for the partially built record.
// A ProviderNone resolves to nil.
func (p Provider) Resolve(partial *resource.Record) any {
	switch p.kind {
	case ProviderLiteral:
		return p.literal
	case ProviderGenerator:
		return p.generate()
	case ProviderDependent:
		return p.derive(partial)
	default:
		return nil
	}
}

// AttributeDef is one declared attribute: its name, default rule, and
// whether generated values must be unique within the type.
type AttributeDef struct {
	Name    string
	Default Provider
	Unique  bool
}
