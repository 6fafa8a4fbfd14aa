// Package document turns interrelated mock records into an acyclic
// hierarchical value, the shape a real backend would emit. Cycles in
// the relational graph are pruned at the back edge during traversal.
package document

// Object is one serialized record: an element name (the record's type
// tag) and its fields in emission order.
type Object struct {
	Name   string
	Fields []Field
}

// Field is a named value inside an Object. Value is a scalar, a
// nested *Object, or a *List.
type Field struct {
	Name  string
	Value any
}

// List is an ordered sequence of serialized records under one name,
// used both for relation sequences and for collection responses.
type List struct {
	Name  string
	Items []*Object
}

// Interface converts the object to plain maps and slices for use with
// generic tooling (JSONPath queries, JSON encoders). Field order is
// lost; use the Object form where ordering matters.
func (o *Object) Interface() map[string]any {
	out := make(map[string]any, len(o.Fields))
	for _, f := range o.Fields {
		switch v := f.Value.(type) {
		case *Object:
			out[f.Name] = v.Interface()
		case *List:
			out[f.Name] = v.items()
		default:
			out[f.Name] = v
		}
	}
	return out
}

// Interface converts the list to a map of the list name to its items.
func (l *List) Interface() map[string]any {
	return map[string]any{l.Name: l.items()}
}

func (l *List) items() []any {
	out := make([]any, len(l.Items))
	for i, item := range l.Items {
		out[i] = item.Interface()
	}
	return out
}
