package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stubkit/stubkit/pkg/resource"
	"github.com/stubkit/stubkit/pkg/router"
	"github.com/stubkit/stubkit/pkg/schema"
)

// newBookEngine defines the canonical book/author pair: both with
// uniquified names, books defaulting to a freshly created author.
func newBookEngine(t *testing.T) *Engine {
	t.Helper()
	eng := New(Config{})

	require.NoError(t, eng.Define("author", func(b *schema.Builder) {
		b.Uniquify("name")
	}))
	require.NoError(t, eng.Define("book", func(b *schema.Builder) {
		b.Uniquify("name")
		b.Derived("author", func(*resource.Record) any {
			return eng.Factory().MustCreate("author", nil)
		})
	}))
	return eng
}

func TestEngine_EndToEnd_BookAuthor(t *testing.T) {
	eng := newBookEngine(t)

	first, err := eng.Create("book", nil)
	require.NoError(t, err)
	second, err := eng.Create("book", nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID()+1, second.ID())
	assert.NotEqual(t, first.Value("name"), second.Value("name"))

	a1, _ := resource.AsRecord(first.Value("author"))
	a2, _ := resource.AsRecord(second.Value("author"))
	assert.NotEqual(t, a1.Value("name"), a2.Value("name"))
}

func TestEngine_DefaultRoutes(t *testing.T) {
	eng := newBookEngine(t)
	_, err := eng.Create("book", resource.Attrs{"name": "Excession"})
	require.NoError(t, err)
	_, err = eng.Create("book", resource.Attrs{"name": "Matter"})
	require.NoError(t, err)

	body, err := eng.Request("GET", "/books.xml")
	require.NoError(t, err)
	assert.Contains(t, body, "<books>")
	assert.Contains(t, body, "<name>Excession</name>")
	assert.Contains(t, body, "<name>Matter</name>")

	body, err = eng.Request("GET", "/books/2.xml")
	require.NoError(t, err)
	assert.Contains(t, body, "<name>Matter</name>")
	assert.NotContains(t, body, "Excession")

	// Suffix and query string are optional on derived routes.
	_, err = eng.Request("GET", "/books")
	require.NoError(t, err)
	_, err = eng.Request("GET", "/books.xml?page=1")
	require.NoError(t, err)
}

func TestEngine_DefaultRoute_MemberNotFound(t *testing.T) {
	eng := newBookEngine(t)

	_, err := eng.Request("GET", "/books/7.xml")
	require.Error(t, err)
	var notFound *resource.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 7, notFound.ID)
}

func TestEngine_Request_NotFound(t *testing.T) {
	eng := newBookEngine(t)

	_, err := eng.Request("GET", "/unknown.xml")
	require.Error(t, err)

	var notFound *router.RequestNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "/unknown.xml", notFound.Path)
}

func TestEngine_CustomRouteBeatsDefault(t *testing.T) {
	eng := newBookEngine(t)
	featured, err := eng.Create("book", resource.Attrs{"name": "Excession"})
	require.NoError(t, err)
	_, err = eng.Create("book", resource.Attrs{"name": "Matter"})
	require.NoError(t, err)

	require.NoError(t, eng.Register("GET", `/books\.xml`, func([]string) (any, error) {
		return featured, nil
	}))

	body, err := eng.Request("GET", "/books.xml")
	require.NoError(t, err)
	assert.Contains(t, body, "Excession")
	assert.NotContains(t, body, "Matter")
}

func TestEngine_CustomRoute_Captures(t *testing.T) {
	eng := newBookEngine(t)
	_, err := eng.Create("book", resource.Attrs{"name": "Excession"})
	require.NoError(t, err)

	require.NoError(t, eng.Register("GET", `/search\.xml\?name=(\w+)`, func(captures []string) (any, error) {
		return eng.FindWhere("book", `name == "`+captures[0]+`"`)
	}))

	body, err := eng.Request("GET", "/search.xml?name=Excession")
	require.NoError(t, err)
	assert.Contains(t, body, "<name>Excession</name>")
}

func TestEngine_Request_RawDocument(t *testing.T) {
	eng := newBookEngine(t)
	require.NoError(t, eng.Register("GET", `/status`, func([]string) (any, error) {
		return "<status>ok</status>", nil
	}))

	body, err := eng.Request("GET", "/status")
	require.NoError(t, err)
	assert.Equal(t, "<status>ok</status>", body)
}

func TestEngine_Serialization_Deterministic(t *testing.T) {
	eng := newBookEngine(t)
	book, err := eng.Create("book", nil)
	require.NoError(t, err)
	author, _ := resource.AsRecord(book.Value("author"))
	author.Set("books", []*resource.Record{book})

	first, err := eng.Request("GET", "/books/1.xml")
	require.NoError(t, err)
	second, err := eng.Request("GET", "/books/1.xml")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Cycle safety: finite output with the back edge omitted.
	assert.Equal(t, 1, strings.Count(first, "<author>"))
}

func TestEngine_Recording(t *testing.T) {
	eng := newBookEngine(t)
	_, err := eng.Create("book", resource.Attrs{"name": "Excession"})
	require.NoError(t, err)

	// Off by default: nothing is recorded.
	_, err = eng.Request("GET", "/books.xml")
	require.NoError(t, err)
	assert.Zero(t, eng.Dispatches().Count())

	eng.SetRecording(true)
	_, err = eng.Request("GET", "/books.xml")
	require.NoError(t, err)
	_, _ = eng.Request("GET", "/unknown.xml")

	entries := eng.Dispatches().List()
	require.Len(t, entries, 2)

	assert.Equal(t, "/books.xml", entries[0].Path)
	assert.Equal(t, string(router.ClassDefault), entries[0].Class)
	assert.Empty(t, entries[0].Error)

	got, err := entries[0].Query("$.books[0].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Excession"}, got)

	assert.Equal(t, "/unknown.xml", entries[1].Path)
	assert.NotEmpty(t, entries[1].Error)
}

func TestEngine_ResetScenario(t *testing.T) {
	eng := newBookEngine(t)
	eng.SetRecording(true)

	_, err := eng.Create("book", nil)
	require.NoError(t, err)
	require.NoError(t, eng.Register("GET", `/special\.xml`, func([]string) (any, error) {
		return "<ok/>", nil
	}))
	_, err = eng.Request("GET", "/special.xml")
	require.NoError(t, err)

	eng.ResetScenario()

	// Records, custom routes, and the dispatch log are gone.
	assert.Empty(t, eng.Find("books"))
	assert.Zero(t, eng.Dispatches().Count())
	_, err = eng.Request("GET", "/special.xml")
	assert.Error(t, err)

	// Definitions and derived routes persist; ids restart at 1.
	rec, err := eng.Create("book", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID())
	_, err = eng.Request("GET", "/books.xml")
	assert.NoError(t, err)
}

func TestEngine_PluralAndSingularNames(t *testing.T) {
	eng := newBookEngine(t)
	_, err := eng.Create("books", resource.Attrs{"name": "Excession"})
	require.NoError(t, err)

	assert.Len(t, eng.Find("books"), 1)
	assert.Len(t, eng.Find("book"), 1)

	rec, err := eng.FindID("books", 1)
	require.NoError(t, err)
	assert.Equal(t, "Excession", rec.Value("name"))
}

func TestClient(t *testing.T) {
	eng := newBookEngine(t)
	_, err := eng.Create("book", resource.Attrs{"name": "Excession"})
	require.NoError(t, err)

	client := NewClient(eng)
	body, err := client.Get("/books/1.xml")
	require.NoError(t, err)
	assert.Contains(t, body, "Excession")

	_, err = client.Do("GET", "/nope.xml")
	assert.Error(t, err)
}
