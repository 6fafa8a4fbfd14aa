package dispatchlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Log(t *testing.T) {
	s := NewMemoryStore()

	s.Log(&Entry{Verb: "GET", Path: "/books.xml"})
	s.Log(&Entry{Verb: "GET", Path: "/books/1.xml"})

	require.Equal(t, 2, s.Count())

	entries := s.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "/books.xml", entries[0].Path)
	assert.Equal(t, "/books/1.xml", entries[1].Path)

	// Ids and timestamps are assigned on log.
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
	assert.NotEqual(t, entries[0].ID, entries[1].ID)

	assert.Same(t, entries[0], s.Get(entries[0].ID))
	assert.Nil(t, s.Get("nope"))
}

func TestMemoryStore_LogNil(t *testing.T) {
	s := NewMemoryStore()
	s.Log(nil)
	assert.Zero(t, s.Count())
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore()
	s.Log(&Entry{Verb: "GET", Path: "/books.xml"})

	s.Clear()

	assert.Zero(t, s.Count())
	assert.Empty(t, s.List())
}

func TestEntry_Query(t *testing.T) {
	entry := &Entry{
		Verb: "GET",
		Path: "/books/1.xml",
		Document: map[string]any{
			"book": map[string]any{
				"id":   1,
				"name": "Excession",
				"author": map[string]any{
					"name": "Iain Banks",
				},
			},
		},
	}

	got, err := entry.Query("$.book.author.name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Iain Banks"}, got)

	got, err = entry.Query("$.book.missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEntry_Query_Errors(t *testing.T) {
	entry := &Entry{ID: "x"}
	_, err := entry.Query("$.book.name")
	assert.Error(t, err, "no document recorded")

	entry.Document = map[string]any{"book": map[string]any{}}
	_, err = entry.Query("[[[")
	assert.Error(t, err)
}
