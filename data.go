package paprika

import (
	"fmt"
	"log/slog"
	reflectPkg "reflect"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/paprika-go/paprika/internal/reflect"
)

// Descriptor describes one field of an augmented struct.
type Descriptor = reflect.Field

// FieldSpec is one row of an explicit descriptor table, see WithFields.
type FieldSpec = reflect.FieldSpec

func Field(name string) FieldSpec {
	return FieldSpec{Name: name}
}

func Required(name string) FieldSpec {
	return FieldSpec{Name: name, Required: true}
}

// Type is a struct type augmented with a synthesized constructor, structural
// equality, hashing and string rendering. Descriptors are fixed when the
// Type is built.
type Type[T any] struct {
	name   string
	fields []Descriptor
	sorted []Descriptor
	shown  []Descriptor
	logger *slog.Logger
}

// Data augments the struct type T. Descriptors come from `paprika` struct
// tags unless WithFields supplies an explicit table. Malformed metadata is
// reported here rather than at construction time.
func Data[T any](opts ...Option) (*Type[T], error) {
	cfg := newConfig(opts)
	rt := reflectPkg.TypeOf((*T)(nil)).Elem()
	name := reflect.TypeName[T]()

	var (
		fields []Descriptor
		err    error
	)
	if cfg.hasFields {
		fields, err = reflect.FieldsFromTable(rt, cfg.fields)
	} else {
		fields, err = reflect.StructFields(rt)
	}
	if err != nil {
		return nil, errInvalidDescriptor(name, err)
	}

	sorted := make([]Descriptor, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	cfg.logger.Debug("type augmented", "type", name, "fields", len(fields))

	return &Type[T]{
		name:   name,
		fields: fields,
		sorted: sorted,
		shown:  shownFields(rt, fields),
		logger: cfg.logger,
	}, nil
}

// shownFields lists every exported non-func field of rt in lexicographic
// order. Descriptor fields go by their descriptor name, the rest by Go name.
func shownFields(rt reflectPkg.Type, fields []Descriptor) []Descriptor {
	named := make(map[int]Descriptor, len(fields))
	for _, f := range fields {
		named[f.Index] = f
	}

	shown := make([]Descriptor, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() || sf.Type.Kind() == reflectPkg.Func {
			continue
		}
		f, ok := named[i]
		if !ok {
			f = Descriptor{Name: sf.Name, GoName: sf.Name, Index: i, Type: sf.Type}
		}
		shown = append(shown, f)
	}
	sort.Slice(shown, func(i, j int) bool { return shown[i].Name < shown[j].Name })
	return shown
}

func MustData[T any](opts ...Option) *Type[T] {
	t, err := Data[T](opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Type[T]) Name() string {
	return t.name
}

// Fields returns the descriptors in declaration (or table) order.
func (t *Type[T]) Fields() []Descriptor {
	out := make([]Descriptor, len(t.fields))
	copy(out, t.fields)
	return out
}

// New binds positional arguments to the descriptors in order. Surplus
// arguments are ignored.
func (t *Type[T]) New(args ...any) (*T, error) {
	return t.NewKw(nil, args...)
}

// NewKw binds positional arguments first and named arguments second, so a
// named argument overrides a positional one. Names that match no descriptor
// are ignored.
func (t *Type[T]) NewKw(named map[string]any, args ...any) (*T, error) {
	v := new(T)
	if err := t.Init(v, named, args...); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *Type[T]) MustNew(args ...any) *T {
	v, err := t.New(args...)
	if err != nil {
		panic(err)
	}
	return v
}

// Init binds arguments into an existing value with the same rules as NewKw.
func (t *Type[T]) Init(dst *T, named map[string]any, args ...any) error {
	if dst == nil {
		return newError(ErrCodeUnknown, "cannot bind into a nil instance", nil).WithType(t.name)
	}
	rv := reflectPkg.ValueOf(dst).Elem()

	for i := 0; i < len(args) && i < len(t.fields); i++ {
		if err := t.bind(rv, t.fields[i], args[i]); err != nil {
			return err
		}
	}

	if len(named) == 0 {
		return nil
	}
	keys := make([]string, 0, len(named))
	for k := range named {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		f, ok := reflect.LookupField(t.fields, k)
		if !ok {
			continue
		}
		if err := t.bind(rv, f, named[k]); err != nil {
			return err
		}
	}
	return nil
}

func (t *Type[T]) bind(rv reflectPkg.Value, f Descriptor, v any) error {
	if f.Required && reflect.IsNil(v) {
		return errRequiredField(t.name, f.Name)
	}
	if err := reflect.Assign(rv.Field(f.Index), v); err != nil {
		return errFieldType(t.name, f.Name, err)
	}
	return nil
}

// equality folds together the values a zero-omitting encoder cannot tell
// apart: nil and empty slices and maps, and nil pointers and pointers to
// empty values. Hash follows the same rules.
var equality = cmp.Options{
	cmp.Exporter(func(reflectPkg.Type) bool { return true }),
	cmpopts.EquateEmpty(),
	cmp.FilterValues(emptyPointers, cmp.Comparer(func(_, _ any) bool { return true })),
}

func emptyPointers(x, y any) bool {
	vx, vy := reflectPkg.ValueOf(x), reflectPkg.ValueOf(y)
	if !vx.IsValid() || !vy.IsValid() || vx.Kind() != reflectPkg.Ptr || vy.Kind() != reflectPkg.Ptr {
		return false
	}
	return reflect.IsEmpty(vx) && reflect.IsEmpty(vy)
}

// Equal reports whether every descriptor field of a and b is deeply equal.
// Nil and empty slices and maps are equal, as are a nil pointer and a pointer
// to an empty value, so an instance equals itself after Save and Load.
func (t *Type[T]) Equal(a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return cmp.Equal(t.values(a), t.values(b), equality)
}

// EqualAny is Equal for untyped values: both must be *T.
func (t *Type[T]) EqualAny(a, b any) bool {
	pa, ok := a.(*T)
	if !ok {
		return false
	}
	pb, ok := b.(*T)
	if !ok {
		return false
	}
	return t.Equal(pa, pb)
}

// Hash hashes the descriptor names in sorted order, each paired with its
// field value. Instances that are Equal hash identically.
func (t *Type[T]) Hash(v *T) uint64 {
	if v == nil {
		return 0
	}

	rv := reflectPkg.ValueOf(v).Elem()
	h := reflect.NewHasher()
	h.WriteString(t.name)
	for _, f := range t.sorted {
		h.WriteString(f.Name)
		h.WriteValue(rv.Field(f.Index))
	}
	return h.Sum64()
}

// String renders v as Name@[field=value, ...] over every exported non-func
// field in lexicographic order, including fields that are not descriptors.
func (t *Type[T]) String(v *T) string {
	if v == nil {
		return t.name + "@nil"
	}

	rv := reflectPkg.ValueOf(v).Elem()
	parts := make([]string, 0, len(t.shown))
	for _, f := range t.shown {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Name, rv.Field(f.Index).Interface()))
	}
	return t.name + "@[" + strings.Join(parts, ", ") + "]"
}

// Diff describes how the descriptor fields of a and b differ. It returns an
// empty string when they are Equal.
func (t *Type[T]) Diff(a, b *T) string {
	return cmp.Diff(t.values(a), t.values(b), equality)
}

func (t *Type[T]) values(v *T) map[string]any {
	if v == nil {
		return nil
	}
	rv := reflectPkg.ValueOf(v).Elem()
	out := make(map[string]any, len(t.fields))
	for _, f := range t.fields {
		out[f.Name] = rv.Field(f.Index).Interface()
	}
	return out
}
