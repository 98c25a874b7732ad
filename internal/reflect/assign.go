package reflect

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrFieldType = errors.New("value type mismatch")

// ValueFor converts v into a value of type t. A null v yields the zero value
// of t. Numeric values convert between numeric kinds and string kinds convert
// between string types; everything else must be assignable.
func ValueFor(v any, t reflect.Type) (reflect.Value, error) {
	if IsNil(v) {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if convertible(rv.Type(), t) {
		return rv.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: cannot use %s as %s", ErrFieldType, rv.Type(), t)
}

// Assign stores v into the settable value dst.
func Assign(dst reflect.Value, v any) error {
	val, err := ValueFor(v, dst.Type())
	if err != nil {
		return err
	}
	dst.Set(val)
	return nil
}

func convertible(from, to reflect.Type) bool {
	switch {
	case isNumeric(from.Kind()) && isNumeric(to.Kind()):
		return from.ConvertibleTo(to)
	case from.Kind() == reflect.String && to.Kind() == reflect.String:
		return true
	default:
		return false
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
