package paprika

import (
	"errors"
	"fmt"

	"github.com/paprika-go/paprika/internal/reflect"
)

// IndexedAccessible is implemented by delegates that support get/set by key
// or index.
type IndexedAccessible interface {
	GetIndex(key any) (any, error)
	SetIndex(key, value any) error
}

// FieldAccessible is implemented by delegates that support get/set by field
// name.
type FieldAccessible interface {
	GetField(name string) (any, error)
	SetField(name string, value any) error
}

// Proxy forwards indexed and named access to a delegate and counts every
// operation in its registry before forwarding it. The count is kept even
// when the delegate rejects the operation.
type Proxy struct {
	name     string
	delegate any
	registry *Registry
	indexed  IndexedAccessible
	fields   FieldAccessible
}

// NewProxy wraps delegate and registers a zeroed counter entry for it.
// Capabilities are probed once: a delegate implementing IndexedAccessible or
// FieldAccessible is used as is, otherwise slices, arrays and maps get
// indexed access and structs get field access by reflection.
func NewProxy(r *Registry, name string, delegate any) *Proxy {
	if r == nil {
		r = DefaultRegistry()
	}

	p := &Proxy{
		name:     name,
		delegate: delegate,
		registry: r,
	}

	if ia, ok := delegate.(IndexedAccessible); ok {
		p.indexed = ia
	} else if a, ok := reflect.Indexed(delegate); ok {
		p.indexed = a
	}

	if fa, ok := delegate.(FieldAccessible); ok {
		p.fields = fa
	} else if a, ok := reflect.Fields(delegate); ok {
		p.fields = a
	}

	r.Register(p, delegate, name)
	return p
}

func (p *Proxy) Name() string {
	return p.name
}

func (p *Proxy) Delegate() any {
	return p.delegate
}

// Counts returns the reads and writes recorded so far.
func (p *Proxy) Counts() (reads, writes int64) {
	e, _ := p.registry.Get(p)
	return e.Reads, e.Writes
}

// Get reads delegate[key].
func (p *Proxy) Get(key any) (any, error) {
	p.registry.RecordRead(p)
	if p.indexed == nil {
		return nil, p.unsupported(reflect.ErrNotIndexable)
	}
	v, err := p.indexed.GetIndex(key)
	if err != nil {
		return nil, p.forwardErr(err)
	}
	return v, nil
}

// Set writes delegate[key] = value.
func (p *Proxy) Set(key, value any) error {
	p.registry.RecordWrite(p)
	if p.indexed == nil {
		return p.unsupported(reflect.ErrNotIndexable)
	}
	return p.forwardErr(p.indexed.SetIndex(key, value))
}

// Attr reads the named field of the delegate.
func (p *Proxy) Attr(name string) (any, error) {
	p.registry.RecordRead(p)
	if p.fields == nil {
		return nil, p.unsupported(reflect.ErrNotFieldAccessible)
	}
	v, err := p.fields.GetField(name)
	if err != nil {
		return nil, p.forwardErr(err)
	}
	return v, nil
}

// SetAttr writes the named field of the delegate.
func (p *Proxy) SetAttr(name string, value any) error {
	p.registry.RecordWrite(p)
	if p.fields == nil {
		return p.unsupported(reflect.ErrNotFieldAccessible)
	}
	return p.forwardErr(p.fields.SetField(name, value))
}

func (p *Proxy) unsupported(sentinel error) error {
	return errAccess(p.name, fmt.Errorf("%w: %T", sentinel, p.delegate))
}

// forwardErr classifies errors raised by the reflective adapters. Errors
// from delegates with their own capability implementation pass through
// untouched.
func (p *Proxy) forwardErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, reflect.ErrAccess) || errors.Is(err, reflect.ErrFieldType) {
		return errAccess(p.name, err)
	}
	return err
}

// GetAs reads p[key] and asserts the result to V.
func GetAs[V any](p *Proxy, key any) (V, error) {
	var zero V
	v, err := p.Get(key)
	if err != nil {
		return zero, err
	}
	return as[V](p, v)
}

// AttrAs reads the named field through p and asserts the result to V.
func AttrAs[V any](p *Proxy, name string) (V, error) {
	var zero V
	v, err := p.Attr(name)
	if err != nil {
		return zero, err
	}
	return as[V](p, v)
}

func as[V any](p *Proxy, v any) (V, error) {
	if v == nil {
		var zero V
		return zero, nil
	}
	out, ok := v.(V)
	if !ok {
		var zero V
		return zero, errAccess(p.name, fmt.Errorf("%w: got %T, want %T", reflect.ErrFieldType, v, zero))
	}
	return out, nil
}
