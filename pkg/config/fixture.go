// Package config loads scenario fixtures: declarative YAML files that
// define resource types, seed records, and custom routes, applied to
// an engine at scenario setup.
package config

// Fixture is the root of a fixture file.
type Fixture struct {
	// Version is the fixture format version.
	Version string `yaml:"version"`

	// Types declares resource schemas.
	Types []TypeDef `yaml:"types,omitempty"`

	// Seeds creates records, in file order.
	Seeds []Seed `yaml:"seeds,omitempty"`

	// Routes registers custom routes answered from the store.
	Routes []RouteDef `yaml:"routes,omitempty"`
}

// TypeDef declares one resource type.
type TypeDef struct {
	// Name is the singular type name.
	Name string `yaml:"name"`

	// Attributes declares the type's attributes in order.
	Attributes []AttributeSpec `yaml:"attributes,omitempty"`
}

// AttributeSpec declares one attribute. Generators are code-level
// constructs; fixtures express plain attributes, literal defaults,
// and uniquify flags.
type AttributeSpec struct {
	// Name is the attribute name.
	Name string `yaml:"name"`

	// Default is an optional literal default value.
	Default any `yaml:"default,omitempty"`

	// Uniquify requires generated values to be unique within the type.
	Uniquify bool `yaml:"uniquify,omitempty"`
}

// Seed creates one record. Attribute values may be scalars or
// references to earlier seeds written as "ref:type/id" (or a list of
// such references); references resolve after all seeds are created.
type Seed struct {
	// Type is the singular type name.
	Type string `yaml:"type"`

	// Attrs are the record's attributes.
	Attrs map[string]any `yaml:"attrs,omitempty"`
}

// RouteDef registers a custom route answered by a store query, so
// fixtures can pin responses without writing handler code.
type RouteDef struct {
	// Verb is the request verb.
	Verb string `yaml:"verb"`

	// Pattern is the path pattern (regular expression, anchored).
	Pattern string `yaml:"pattern"`

	// Type is the singular type name the route answers with.
	Type string `yaml:"type"`

	// ID selects a single record when non-zero.
	ID int `yaml:"id,omitempty"`

	// Where filters the collection with an expr predicate when set.
	Where string `yaml:"where,omitempty"`
}
