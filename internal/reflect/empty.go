package reflect

import (
	"reflect"
	"time"
)

// IsEmpty reports whether v carries no information beyond its type: a nil or
// zero-length slice or map, a nil pointer or one whose target is empty, a
// nil interface, the zero instant, and structs and arrays made only of empty
// values. Encoders
// that omit zero values cannot tell these apart, so equality and hashing
// treat them as one value. Cyclic values are never empty.
func IsEmpty(v reflect.Value) bool {
	return isEmpty(v, nil)
}

func isEmpty(v reflect.Value, seen map[uintptr]struct{}) bool {
	if !v.IsValid() {
		return true
	}
	if v.Type() == timeType && v.CanInterface() {
		return v.Interface().(time.Time).IsZero()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr:
		if v.IsNil() {
			return true
		}
		if _, ok := seen[v.Pointer()]; ok {
			return false
		}
		if seen == nil {
			seen = make(map[uintptr]struct{})
		}
		seen[v.Pointer()] = struct{}{}
		return isEmpty(v.Elem(), seen)
	case reflect.Interface:
		return v.IsNil()
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !isEmpty(v.Field(i), seen) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !isEmpty(v.Index(i), seen) {
				return false
			}
		}
		return true
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Complex64, reflect.Complex128:
		return v.Complex() == 0
	default:
		return v.IsZero()
	}
}
