package resource

import (
	"log/slog"
	"sort"

	"github.com/stubkit/stubkit/pkg/logging"
)

// Store holds every record created during a scenario, grouped by type
// and in creation order. Ids are assigned per type, strictly increasing
// from 1, and never reused within a scenario. The store is scenario
// scoped: Reset clears it wholesale at scenario start.
//
// The store is not safe for concurrent scenarios; a harness running
// scenarios in parallel must give each one its own Store.
type Store struct {
	records map[string][]*Record
	nextID  map[string]int
	log     *slog.Logger
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string][]*Record),
		nextID:  make(map[string]int),
		log:     logging.Nop(),
	}
}

// SetLogger sets the logger.
func (s *Store) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// Add assigns the record the next id for its type and appends it.
// Returns the same record for chaining.
func (s *Store) Add(r *Record) *Record {
	next, ok := s.nextID[r.typeName]
	if !ok {
		next = 1
	}
	r.id = next
	s.nextID[r.typeName] = next + 1
	s.records[r.typeName] = append(s.records[r.typeName], r)
	s.log.Debug("record stored", "type", r.typeName, "id", r.id)
	return r
}

// All returns the records of a type in creation order. An unknown type
// yields an empty slice, never an error.
func (s *Store) All(typeName string) []*Record {
	recs := s.records[typeName]
	out := make([]*Record, len(recs))
	copy(out, recs)
	return out
}

// Get returns the record with the given id, or nil if absent.
func (s *Store) Get(typeName string, id int) *Record {
	for _, r := range s.records[typeName] {
		if r.id == id {
			return r
		}
	}
	return nil
}

// Count returns the number of records of a type.
func (s *Store) Count(typeName string) int {
	return len(s.records[typeName])
}

// Types returns the type names present in the store, sorted.
func (s *Store) Types() []string {
	out := make([]string, 0, len(s.records))
	for t := range s.records {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// AttributeTaken reports whether any record of the type already holds
// the value for the attribute. Used to enforce uniquify constraints.
func (s *Store) AttributeTaken(typeName, attr string, value any) bool {
	for _, r := range s.records[typeName] {
		if v, ok := r.Get(attr); ok && v == value {
			return true
		}
	}
	return false
}

// Reset clears all records and id counters. Invoked at scenario start.
func (s *Store) Reset() {
	s.records = make(map[string][]*Record)
	s.nextID = make(map[string]int)
	s.log.Debug("store reset")
}
