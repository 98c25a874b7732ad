package reflect

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

const TagKey = "paprika"

var ErrInvalidDescriptor = errors.New("invalid field descriptor")

// Field is the descriptor of one exported struct field.
type Field struct {
	Name     string
	GoName   string
	Index    int
	Required bool
	Type     reflect.Type
}

// FieldSpec is one row of an explicit descriptor table.
type FieldSpec struct {
	Name     string
	Required bool
}

var fieldCache sync.Map

// StructFields extracts descriptors from the exported fields of t in
// declaration order, honoring `paprika:"name,required"` and `paprika:"-"`.
func StructFields(t reflect.Type) ([]Field, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct type", ErrInvalidDescriptor, typeString(t))
	}

	fields := make([]Field, 0, t.NumField())
	seen := make(map[string]string, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, required, skip, err := parseTag(sf.Tag.Get(TagKey))
		if err != nil {
			return nil, fmt.Errorf("%w: field %s.%s: %w", ErrInvalidDescriptor, t.Name(), sf.Name, err)
		}
		if skip {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf(
				"%w: fields %s and %s of %s share the name %q",
				ErrInvalidDescriptor, prev, sf.Name, t.Name(), name,
			)
		}
		seen[name] = sf.Name

		fields = append(
			fields, Field{
				Name:     name,
				GoName:   sf.Name,
				Index:    i,
				Required: required,
				Type:     sf.Type,
			},
		)
	}

	return fields, nil
}

// FieldsFromTable resolves an explicit descriptor table against t. Repeated
// names collapse into the first occurrence; required wins.
func FieldsFromTable(t reflect.Type, specs []FieldSpec) ([]Field, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct type", ErrInvalidDescriptor, typeString(t))
	}

	all := exportedFields(t)
	fields := make([]Field, 0, len(specs))
	pos := make(map[int]int, len(specs))

	for _, spec := range specs {
		f, ok := LookupField(all, spec.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no exported field %q", ErrInvalidDescriptor, t.Name(), spec.Name)
		}
		if at, dup := pos[f.Index]; dup {
			fields[at].Required = fields[at].Required || spec.Required
			continue
		}
		f.Required = spec.Required
		pos[f.Index] = len(fields)
		fields = append(fields, f)
	}

	return fields, nil
}

// LookupField finds a descriptor by descriptor name, then by Go field name.
func LookupField(fields []Field, name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range fields {
		if f.GoName == name {
			return f, true
		}
	}
	return Field{}, false
}

// exportedFields returns descriptors for every exported field, falling back
// to plain Go names when the tags are malformed. Results are cached per type.
func exportedFields(t reflect.Type) []Field {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]Field)
	}

	fields, err := StructFields(t)
	if err != nil {
		fields = fields[:0]
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			fields = append(fields, Field{Name: sf.Name, GoName: sf.Name, Index: i, Type: sf.Type})
		}
	} else {
		// "-" fields stay reachable by Go name for attribute access.
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if sf.IsExported() && sf.Tag.Get(TagKey) == "-" {
				fields = append(fields, Field{Name: sf.Name, GoName: sf.Name, Index: i, Type: sf.Type})
			}
		}
	}

	fieldCache.Store(t, fields)
	return fields
}

func parseTag(tag string) (name string, required, skip bool, err error) {
	if tag == "" {
		return "", false, false, nil
	}
	if tag == "-" {
		return "", false, true, nil
	}

	parts := strings.Split(tag, ",")
	name = strings.TrimSpace(parts[0])
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "required":
			required = true
		case "":
		default:
			return "", false, false, fmt.Errorf("unknown tag option %q", opt)
		}
	}
	return name, required, false, nil
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
