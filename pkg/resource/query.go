package resource

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Find returns all records of a type in creation order.
func (s *Store) Find(typeName string) []*Record {
	return s.All(typeName)
}

// FindID returns the record with the given id or a NotFoundError.
func (s *Store) FindID(typeName string, id int) (*Record, error) {
	if r := s.Get(typeName, id); r != nil {
		return r, nil
	}
	return nil, &NotFoundError{Type: typeName, ID: id}
}

// FindFunc returns the records matching the predicate, in creation
// order. The predicate sees the full record, so it can compose
// substring matches, numeric comparisons, and relation dereferences.
func (s *Store) FindFunc(typeName string, pred func(*Record) bool) []*Record {
	var out []*Record
	for _, r := range s.records[typeName] {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// FindWhere filters records with an expr-language predicate evaluated
// against each record's attribute environment, e.g.
//
//	FindWhere("book", `price > 10 && author.name == "Iain Banks"`)
//
// Relations are visible one level deep (id, type, scalar attributes).
func (s *Store) FindWhere(typeName, expression string) ([]*Record, error) {
	program, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compiling predicate %q: %w", expression, err)
	}

	var out []*Record
	for _, r := range s.records[typeName] {
		result, err := expr.Run(program, r.Env())
		if err != nil {
			return nil, fmt.Errorf("evaluating predicate %q against %s: %w", expression, r.Key(), err)
		}
		if matched, ok := result.(bool); ok && matched {
			out = append(out, r)
		}
	}
	return out, nil
}
