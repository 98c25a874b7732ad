package reflect

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotIndexable       = errors.New("value does not support indexed access")
	ErrNotFieldAccessible = errors.New("value does not support field access")
	ErrAccess             = errors.New("access rejected")
)

// IndexAccessor gives indexed access to slices, arrays and maps.
type IndexAccessor struct {
	v        reflect.Value
	writable bool
}

// Indexed probes v for indexed access. Slices, maps and pointers to arrays
// are writable; arrays held by value are read-only.
func Indexed(v any) (*IndexAccessor, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		switch rv.Elem().Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return &IndexAccessor{v: rv.Elem(), writable: true}, true
		}
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return &IndexAccessor{v: rv, writable: true}, true
	case reflect.Array:
		return &IndexAccessor{v: rv, writable: false}, true
	default:
		return nil, false
	}
}

func (a *IndexAccessor) GetIndex(key any) (any, error) {
	if a.v.Kind() == reflect.Map {
		k, err := ValueFor(key, a.v.Type().Key())
		if err != nil {
			return nil, err
		}
		val := a.v.MapIndex(k)
		if !val.IsValid() {
			return nil, fmt.Errorf("%w: key %v not found", ErrAccess, key)
		}
		return val.Interface(), nil
	}

	i, err := a.position(key)
	if err != nil {
		return nil, err
	}
	return a.v.Index(i).Interface(), nil
}

func (a *IndexAccessor) SetIndex(key, value any) error {
	if !a.writable {
		return fmt.Errorf("%w: %s held by value is read-only", ErrAccess, a.v.Type())
	}

	if a.v.Kind() == reflect.Map {
		if a.v.IsNil() {
			return fmt.Errorf("%w: assignment to entry in nil map", ErrAccess)
		}
		k, err := ValueFor(key, a.v.Type().Key())
		if err != nil {
			return err
		}
		val, err := ValueFor(value, a.v.Type().Elem())
		if err != nil {
			return err
		}
		a.v.SetMapIndex(k, val)
		return nil
	}

	i, err := a.position(key)
	if err != nil {
		return err
	}
	return Assign(a.v.Index(i), value)
}

// position resolves an integer key, counting negative keys from the end.
func (a *IndexAccessor) position(key any) (int, error) {
	kv := reflect.ValueOf(key)
	var i int
	switch kv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i = int(kv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i = int(kv.Uint())
	default:
		return 0, fmt.Errorf("%w: index must be an integer, got %T", ErrAccess, key)
	}

	n := a.v.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: index %v out of range [0:%d]", ErrAccess, key, n)
	}
	return i, nil
}

// FieldAccessor gives named access to the exported fields of a struct.
type FieldAccessor struct {
	v        reflect.Value
	fields   []Field
	writable bool
}

// Fields probes v for named field access. Pointers to structs are writable;
// structs held by value are read-only.
func Fields(v any) (*FieldAccessor, bool) {
	rv := reflect.ValueOf(v)
	writable := false
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
		writable = true
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	return &FieldAccessor{v: rv, fields: exportedFields(rv.Type()), writable: writable}, true
}

// GetField reads a field by descriptor or Go name, falling back to a method
// of that name, which is returned bound to the value.
func (a *FieldAccessor) GetField(name string) (any, error) {
	if f, ok := LookupField(a.fields, name); ok {
		return a.v.Field(f.Index).Interface(), nil
	}

	recv := a.v
	if recv.CanAddr() {
		recv = recv.Addr()
	}
	if m := recv.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}

	return nil, fmt.Errorf("%w: %s has no field or method %q", ErrAccess, a.v.Type(), name)
}

func (a *FieldAccessor) SetField(name string, value any) error {
	f, ok := LookupField(a.fields, name)
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrAccess, a.v.Type(), name)
	}
	if !a.writable {
		return fmt.Errorf("%w: %s held by value is read-only", ErrAccess, a.v.Type())
	}
	return Assign(a.v.Field(f.Index), value)
}
