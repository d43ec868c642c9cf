package director

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"filmcraft/internal/store"
)

// schemaFor infers the JSON schema of T and decorates it from struct tags:
//
//	vocab:"<field>"  restricts a string (or each element of a string slice)
//	                 to the named store vocabulary
//	minimum:"<n>"    inclusive lower bound for a number
//	maximum:"<n>"    inclusive upper bound for a number
//
// Optional pointer fields are inferred as ["null", T]; they are collapsed to
// T because absent keys, not nulls, mark omitted arguments.
func schemaFor[T any]() (*jsonschema.Schema, error) {
	t := reflect.TypeFor[T]()
	s, err := jsonschema.ForType(t, &jsonschema.ForOptions{})
	if err != nil {
		return nil, fmt.Errorf("inferring schema for %s: %w", t, err)
	}
	if err := decorate(s, t); err != nil {
		return nil, fmt.Errorf("decorating schema for %s: %w", t, err)
	}
	return s, nil
}

func decorate(s *jsonschema.Schema, t reflect.Type) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	collapseNull(s)

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if s.Items != nil {
			return decorate(s.Items, t.Elem())
		}
	case reflect.Struct:
		for _, f := range reflect.VisibleFields(t) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			name := jsonName(f)
			prop := s.Properties[name]
			if prop == nil {
				continue
			}
			if err := decorate(prop, f.Type); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if err := applyTags(prop, f); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

func applyTags(prop *jsonschema.Schema, f reflect.StructField) error {
	if field, ok := f.Tag.Lookup("vocab"); ok {
		v, ok := store.LookupVocabulary(field)
		if !ok {
			return fmt.Errorf("unknown vocabulary %q", field)
		}
		target := prop
		if prop.Type == "array" && prop.Items != nil {
			target = prop.Items
		}
		target.Enum = v.Enum()
	}
	for tag, dst := range map[string]**float64{"minimum": &prop.Minimum, "maximum": &prop.Maximum} {
		raw, ok := f.Tag.Lookup(tag)
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("parsing %s tag: %w", tag, err)
		}
		*dst = jsonschema.Ptr(n)
	}
	return nil
}

func collapseNull(s *jsonschema.Schema) {
	if len(s.Types) != 2 {
		return
	}
	switch {
	case s.Types[0] == "null":
		s.Type, s.Types = s.Types[1], nil
	case s.Types[1] == "null":
		s.Type, s.Types = s.Types[0], nil
	}
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
