package document

import (
	"log/slog"

	"github.com/stubkit/stubkit/pkg/logging"
	"github.com/stubkit/stubkit/pkg/resource"
	"github.com/stubkit/stubkit/pkg/schema"
)

// Serializer expands rooted records depth first, tracking the (type,
// id) keys on the active path so cyclic graphs serialize to finite
// trees. Attribute emission follows the declared schema order when the
// type is defined, else the record's insertion order, so identical
// input always yields identical output.
type Serializer struct {
	registry *schema.Registry
	log      *slog.Logger
}

// NewSerializer creates a serializer ordering attributes by the given
// registry's schemas.
func NewSerializer(registry *schema.Registry) *Serializer {
	return &Serializer{
		registry: registry,
		log:      logging.Nop(),
	}
}

// SetLogger sets the logger.
func (s *Serializer) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// Serialize expands one root record into an Object.
func (s *Serializer) Serialize(rec *resource.Record) *Object {
	return s.expand(rec, map[resource.Key]bool{})
}

// SerializeAll expands several roots into a List under the given name,
// each root with its own traversal path.
func (s *Serializer) SerializeAll(name string, recs []*resource.Record) *List {
	list := &List{Name: name}
	for _, rec := range recs {
		list.Items = append(list.Items, s.expand(rec, map[resource.Key]bool{}))
	}
	return list
}

// expand emits a record not currently on the active path: all its
// attributes, recursing through relations.
func (s *Serializer) expand(rec *resource.Record, path map[resource.Key]bool) *Object {
	key := rec.Key()
	path[key] = true
	defer delete(path, key)

	obj := &Object{Name: rec.Type()}
	obj.Fields = append(obj.Fields, Field{Name: "id", Value: rec.ID()})

	for _, name := range s.emissionOrder(rec) {
		value, _ := rec.Get(name)
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case *resource.Record:
			if path[v.Key()] {
				obj.Fields = append(obj.Fields, Field{Name: name, Value: s.pruned(v, path)})
			} else {
				obj.Fields = append(obj.Fields, Field{Name: name, Value: s.expand(v, path)})
			}
		case []*resource.Record:
			obj.Fields = append(obj.Fields, Field{Name: name, Value: s.expandSequence(name, v, path)})
		default:
			obj.Fields = append(obj.Fields, Field{Name: name, Value: v})
		}
	}
	return obj
}

// pruned emits a record that is already on the active path: its
// scalars are retained, relations that would re-enter the path are
// omitted outright, everything else expands normally.
func (s *Serializer) pruned(rec *resource.Record, path map[resource.Key]bool) *Object {
	obj := &Object{Name: rec.Type()}
	obj.Fields = append(obj.Fields, Field{Name: "id", Value: rec.ID()})

	for _, name := range s.emissionOrder(rec) {
		value, _ := rec.Get(name)
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case *resource.Record:
			if path[v.Key()] {
				s.log.Debug("back edge pruned", "from", rec.Key(), "attribute", name, "to", v.Key())
				continue
			}
			obj.Fields = append(obj.Fields, Field{Name: name, Value: s.expand(v, path)})
		case []*resource.Record:
			kept := v[:0:0]
			for _, item := range v {
				if path[item.Key()] {
					s.log.Debug("back edge pruned", "from", rec.Key(), "attribute", name, "to", item.Key())
					continue
				}
				kept = append(kept, item)
			}
			if len(kept) > 0 {
				obj.Fields = append(obj.Fields, Field{Name: name, Value: s.expandSequence(name, kept, path)})
			}
		default:
			obj.Fields = append(obj.Fields, Field{Name: name, Value: v})
		}
	}
	return obj
}

func (s *Serializer) expandSequence(name string, recs []*resource.Record, path map[resource.Key]bool) *List {
	list := &List{Name: name}
	for _, rec := range recs {
		if path[rec.Key()] {
			list.Items = append(list.Items, s.pruned(rec, path))
		} else {
			list.Items = append(list.Items, s.expand(rec, path))
		}
	}
	return list
}

// emissionOrder is the declared schema order for attributes the record
// carries, then any undeclared attributes in insertion order.
func (s *Serializer) emissionOrder(rec *resource.Record) []string {
	sch := s.registry.SchemaFor(rec.Type())
	declared := sch.Names()

	var order []string
	seen := make(map[string]bool, len(declared))
	for _, name := range declared {
		if _, assigned := rec.Get(name); assigned {
			order = append(order, name)
			seen[name] = true
		}
	}
	for _, name := range rec.Names() {
		if !seen[name] {
			order = append(order, name)
		}
	}
	return order
}
