package inflect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		singular string
		plural   string
	}{
		{"book", "books"},
		{"author", "authors"},
		{"category", "categories"},
		{"day", "days"},
		{"box", "boxes"},
		{"address", "addresses"},
		{"branch", "branches"},
		{"dish", "dishes"},
		{"quiz", "quizes"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.plural, Plural(tt.singular), "Plural(%q)", tt.singular)
	}
}

func TestSingular(t *testing.T) {
	tests := []struct {
		plural   string
		singular string
	}{
		{"books", "book"},
		{"categories", "category"},
		{"boxes", "box"},
		{"branches", "branch"},
		{"dishes", "dish"},
		{"addresses", "address"},
		{"book", "book"},   // already singular
		{"glass", "glass"}, // trailing ss is not a plural
	}
	for _, tt := range tests {
		assert.Equal(t, tt.singular, Singular(tt.plural), "Singular(%q)", tt.plural)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"book", "author", "category", "box", "branch"} {
		assert.Equal(t, name, Singular(Plural(name)))
	}
}
