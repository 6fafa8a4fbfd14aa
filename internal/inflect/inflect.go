// Package inflect maps between singular type names and the plural
// collection names used in request paths and queries. The rules cover
// the regular English cases the naming convention relies on; callers
// with irregular nouns should register routes explicitly.
package inflect

import "strings"

// Plural returns the collection name for a type name.
func Plural(name string) string {
	switch {
	case name == "":
		return ""
	case strings.HasSuffix(name, "y") && !endsInVowelY(name):
		return name[:len(name)-1] + "ies"
	case strings.HasSuffix(name, "s"),
		strings.HasSuffix(name, "x"),
		strings.HasSuffix(name, "z"),
		strings.HasSuffix(name, "ch"),
		strings.HasSuffix(name, "sh"):
		return name + "es"
	default:
		return name + "s"
	}
}

// Singular returns the type name for a collection name. Names that are
// already singular pass through unchanged.
func Singular(name string) string {
	switch {
	case strings.HasSuffix(name, "ies") && len(name) > 3:
		return name[:len(name)-3] + "y"
	case strings.HasSuffix(name, "ches"),
		strings.HasSuffix(name, "shes"),
		strings.HasSuffix(name, "xes"),
		strings.HasSuffix(name, "zes"),
		strings.HasSuffix(name, "ses"):
		return name[:len(name)-2]
	case strings.HasSuffix(name, "s") && !strings.HasSuffix(name, "ss"):
		return name[:len(name)-1]
	default:
		return name
	}
}

func endsInVowelY(name string) bool {
	if len(name) < 2 {
		return false
	}
	return strings.ContainsRune("aeiou", rune(name[len(name)-2]))
}
