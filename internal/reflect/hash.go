package reflect

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// Hasher writes structural hashes that agree with deep equality once empty
// values are folded together (see IsEmpty): equal values always produce the
// same bytes. Times hash by instant.
type Hasher struct {
	h       hash.Hash64
	buf     [8]byte
	visited map[visit]struct{}
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

func NewHasher() *Hasher {
	return &Hasher{h: fnv.New64a()}
}

func (h *Hasher) Sum64() uint64 {
	return h.h.Sum64()
}

func (h *Hasher) WriteString(s string) {
	h.writeUint(uint64(len(s)))
	_, _ = h.h.Write([]byte(s))
}

// HashValue returns the structural hash of a single value.
func HashValue(v any) uint64 {
	h := NewHasher()
	h.WriteValue(reflect.ValueOf(v))
	return h.Sum64()
}

func (h *Hasher) WriteValue(v reflect.Value) {
	if !v.IsValid() {
		h.writeUint(0)
		return
	}

	h.writeUint(uint64(v.Kind()))

	if v.Type() == timeType && v.CanInterface() {
		t := v.Interface().(time.Time)
		h.writeUint(uint64(t.Unix()))
		h.writeUint(uint64(t.Nanosecond()))
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			h.writeUint(1)
		} else {
			h.writeUint(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		h.writeUint(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		h.writeUint(v.Uint())
	case reflect.Float32, reflect.Float64:
		h.writeFloat(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		h.writeFloat(real(c))
		h.writeFloat(imag(c))
	case reflect.String:
		h.WriteString(v.String())
	case reflect.Slice:
		if v.Len() == 0 {
			h.writeUint(0)
			return
		}
		if h.enter(v) {
			return
		}
		h.writeSeq(v)
		h.leave(v)
	case reflect.Array:
		h.writeSeq(v)
	case reflect.Map:
		if v.Len() == 0 {
			h.writeUint(0)
			return
		}
		if h.enter(v) {
			return
		}
		h.writeMap(v)
		h.leave(v)
	case reflect.Ptr:
		if IsEmpty(v) {
			h.writeUint(0)
			return
		}
		if h.enter(v) {
			return
		}
		h.writeUint(1)
		h.WriteValue(v.Elem())
		h.leave(v)
	case reflect.Interface:
		if v.IsNil() {
			h.writeUint(0)
			return
		}
		h.WriteString(TypeKeyOf(v.Elem().Type()))
		h.WriteValue(v.Elem())
	case reflect.Struct:
		h.writeUint(uint64(v.NumField()))
		for i := 0; i < v.NumField(); i++ {
			h.WriteValue(v.Field(i))
		}
	case reflect.Chan, reflect.UnsafePointer:
		h.writeUint(uint64(v.Pointer()))
	case reflect.Func:
		// Non-nil funcs are never deeply equal, so only nil-ness is stable.
		if v.IsNil() {
			h.writeUint(0)
		} else {
			h.writeUint(1)
		}
	}
}

func (h *Hasher) writeSeq(v reflect.Value) {
	h.writeUint(uint64(v.Len()))
	for i := 0; i < v.Len(); i++ {
		h.WriteValue(v.Index(i))
	}
}

func (h *Hasher) writeMap(v reflect.Value) {
	h.writeUint(uint64(v.Len()))

	var sum uint64
	iter := v.MapRange()
	for iter.Next() {
		entry := &Hasher{h: fnv.New64a(), visited: h.visited}
		entry.WriteValue(iter.Key())
		entry.WriteValue(iter.Value())
		sum += entry.Sum64()
	}
	h.writeUint(sum)
}

// enter pushes v onto the current path and reports whether v is already on
// it, which only happens for cyclic values.
func (h *Hasher) enter(v reflect.Value) bool {
	if h.visited == nil {
		h.visited = make(map[visit]struct{})
	}
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if _, ok := h.visited[key]; ok {
		h.writeUint(2)
		return true
	}
	h.visited[key] = struct{}{}
	return false
}

func (h *Hasher) leave(v reflect.Value) {
	delete(h.visited, visit{ptr: v.Pointer(), typ: v.Type()})
}

func (h *Hasher) writeFloat(f float64) {
	if f == 0 {
		f = 0 // folds -0 into +0
	}
	h.writeUint(math.Float64bits(f))
}

func (h *Hasher) writeUint(u uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], u)
	_, _ = h.h.Write(h.buf[:])
}
