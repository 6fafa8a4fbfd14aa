// Package resource provides the mock record model and the in-memory
// store that holds all records created during a scenario.
package resource

import "fmt"

// Attrs is a bag of named attribute values. A value may be a scalar,
// a *Record reference, or a []*Record sequence.
type Attrs map[string]any

// Key identifies a record by its type and id. Relations are traversed
// by key so cyclic graphs never create cyclic ownership.
type Key struct {
	Type string
	ID   int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Type, k.ID)
}

// Record is a single mock resource instance: a type tag, an integer id
// unique within the type, and named attributes in insertion order.
type Record struct {
	typeName string
	id       int
	values   map[string]any
	order    []string
}

// New creates an unstored record of the given type. The id is zero
// until the record is added to a Store.
func New(typeName string) *Record {
	return &Record{
		typeName: typeName,
		values:   make(map[string]any),
	}
}

// Type returns the record's type tag.
func (r *Record) Type() string {
	return r.typeName
}

// ID returns the record's id within its type, or zero if unstored.
func (r *Record) ID() int {
	return r.id
}

// Key returns the (type, id) key for this record.
func (r *Record) Key() Key {
	return Key{Type: r.typeName, ID: r.id}
}

// Set assigns an attribute value. First assignment fixes the
// attribute's position in the emission order; reassignment keeps it.
func (r *Record) Set(name string, value any) {
	if _, exists := r.values[name]; !exists {
		r.order = append(r.order, name)
	}
	r.values[name] = value
}

// Get returns an attribute value and whether it was ever assigned.
// An explicit nil assignment reports true.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns an attribute value, or nil when unassigned.
func (r *Record) Value(name string) any {
	return r.values[name]
}

// Names returns the attribute names in insertion order.
func (r *Record) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AsRecord reports whether a value is a single record reference.
func AsRecord(v any) (*Record, bool) {
	r, ok := v.(*Record)
	return r, ok
}

// AsRecords reports whether a value is a sequence of record references.
func AsRecords(v any) ([]*Record, bool) {
	rs, ok := v.([]*Record)
	return rs, ok
}

// Env returns the record flattened for expression evaluation: id, type,
// and every attribute. Relations appear as shallow maps (id, type, and
// scalar attributes only) so cyclic graphs cannot recurse.
func (r *Record) Env() map[string]any {
	env := map[string]any{
		"id":   r.id,
		"type": r.typeName,
	}
	for _, name := range r.order {
		env[name] = flattenValue(r.values[name])
	}
	return env
}

func flattenValue(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.shallowEnv()
	case []*Record:
		out := make([]map[string]any, len(val))
		for i, rec := range val {
			out[i] = rec.shallowEnv()
		}
		return out
	default:
		return v
	}
}

// shallowEnv is Env without relation expansion.
func (r *Record) shallowEnv() map[string]any {
	env := map[string]any{
		"id":   r.id,
		"type": r.typeName,
	}
	for _, name := range r.order {
		v := r.values[name]
		if _, isRec := v.(*Record); isRec {
			continue
		}
		if _, isSeq := v.([]*Record); isSeq {
			continue
		}
		env[name] = v
	}
	return env
}
