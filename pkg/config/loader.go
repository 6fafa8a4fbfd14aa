package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stubkit/stubkit/pkg/engine"
	"github.com/stubkit/stubkit/pkg/resource"
	"github.com/stubkit/stubkit/pkg/schema"
)

// Common errors for fixture loading.
var (
	ErrFileNotFound = errors.New("fixture file not found")
	ErrEmptyFile    = errors.New("fixture file is empty")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
)

// refPrefix marks a seed attribute value as a record reference,
// written "ref:type/id".
const refPrefix = "ref:"

// LoadFromFile reads a Fixture from a YAML file.
func LoadFromFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return Parse(data)
}

// Parse reads a Fixture from YAML bytes.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return &f, nil
}

// Apply installs the fixture into an engine: definitions first, then
// seeds in file order, then reference resolution, then custom routes.
func Apply(f *Fixture, eng *engine.Engine) error {
	for _, t := range f.Types {
		def := t
		err := eng.Define(def.Name, func(b *schema.Builder) {
			for _, attr := range def.Attributes {
				switch {
				case attr.Uniquify && attr.Default != nil:
					value := attr.Default
					b.UniquifyWith(attr.Name, func() any { return value })
				case attr.Uniquify:
					b.Uniquify(attr.Name)
				case attr.Default != nil:
					b.Default(attr.Name, attr.Default)
				default:
					b.Plain(attr.Name)
				}
			}
		})
		if err != nil {
			return fmt.Errorf("defining type %q: %w", def.Name, err)
		}
	}

	created := make([]*resource.Record, 0, len(f.Seeds))
	for i, seed := range f.Seeds {
		attrs := make(resource.Attrs, len(seed.Attrs))
		for k, v := range seed.Attrs {
			attrs[k] = v
		}
		rec, err := eng.Create(seed.Type, attrs)
		if err != nil {
			return fmt.Errorf("creating seed %d (%s): %w", i, seed.Type, err)
		}
		created = append(created, rec)
	}

	if err := resolveReferences(created, eng); err != nil {
		return err
	}

	for _, r := range f.Routes {
		if err := registerRoute(r, eng); err != nil {
			return err
		}
	}
	return nil
}

// resolveReferences replaces "ref:type/id" attribute values with the
// records they name, after all seeds exist. Lists of references become
// record sequences.
func resolveReferences(created []*resource.Record, eng *engine.Engine) error {
	for _, rec := range created {
		for _, name := range rec.Names() {
			value, _ := rec.Get(name)
			resolved, changed, err := resolveValue(value, eng)
			if err != nil {
				return fmt.Errorf("resolving %s.%s: %w", rec.Key(), name, err)
			}
			if changed {
				rec.Set(name, resolved)
			}
		}
	}
	return nil
}

func resolveValue(value any, eng *engine.Engine) (any, bool, error) {
	switch v := value.(type) {
	case string:
		if !strings.HasPrefix(v, refPrefix) {
			return value, false, nil
		}
		rec, err := lookupRef(v, eng)
		if err != nil {
			return nil, false, err
		}
		return rec, true, nil
	case []any:
		recs := make([]*resource.Record, 0, len(v))
		changed := false
		for _, item := range v {
			s, ok := item.(string)
			if !ok || !strings.HasPrefix(s, refPrefix) {
				return value, false, nil
			}
			rec, err := lookupRef(s, eng)
			if err != nil {
				return nil, false, err
			}
			recs = append(recs, rec)
			changed = true
		}
		return recs, changed, nil
	default:
		return value, false, nil
	}
}

func lookupRef(ref string, eng *engine.Engine) (*resource.Record, error) {
	spec := strings.TrimPrefix(ref, refPrefix)
	typeName, idPart, ok := strings.Cut(spec, "/")
	if !ok {
		return nil, fmt.Errorf("malformed reference %q, want ref:type/id", ref)
	}
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return nil, fmt.Errorf("malformed reference id in %q: %w", ref, err)
	}
	return eng.FindID(typeName, id)
}

// registerRoute wires a fixture route to a store query.
func registerRoute(r RouteDef, eng *engine.Engine) error {
	route := r
	return eng.Register(route.Verb, route.Pattern, func([]string) (any, error) {
		switch {
		case route.ID != 0:
			return eng.FindID(route.Type, route.ID)
		case route.Where != "":
			return eng.FindWhere(route.Type, route.Where)
		default:
			return eng.Find(route.Type), nil
		}
	})
}
