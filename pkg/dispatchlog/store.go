package dispatchlog

import (
	"time"

	"github.com/google/uuid"
)

// Logger is the minimal interface for recording dispatch entries.
type Logger interface {
	Log(entry *Entry)
}

// Store is the interface for dispatch history storage.
type Store interface {
	Logger

	// Get retrieves a log entry by ID.
	Get(id string) *Entry

	// List returns all entries in dispatch order.
	List() []*Entry

	// Clear removes all entries.
	Clear()

	// Count returns the number of entries.
	Count() int
}

// MemoryStore is an in-memory Store keeping entries in dispatch order.
type MemoryStore struct {
	entries []*Entry
	byID    map[string]*Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*Entry)}
}

// Log records an entry, assigning it an id and timestamp if unset.
func (s *MemoryStore) Log(entry *Entry) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.entries = append(s.entries, entry)
	s.byID[entry.ID] = entry
}

// Get retrieves an entry by ID. Returns nil if not found.
func (s *MemoryStore) Get(id string) *Entry {
	return s.byID[id]
}

// List returns all entries in dispatch order.
func (s *MemoryStore) List() []*Entry {
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear removes all entries.
func (s *MemoryStore) Clear() {
	s.entries = nil
	s.byID = make(map[string]*Entry)
}

// Count returns the number of entries.
func (s *MemoryStore) Count() int {
	return len(s.entries)
}

var _ Store = (*MemoryStore)(nil)
