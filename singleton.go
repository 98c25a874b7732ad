package paprika

import (
	"log/slog"
	"sync"

	"github.com/paprika-go/paprika/internal/lifecycle"
	"github.com/paprika-go/paprika/internal/reflect"
)

type State = lifecycle.State

const (
	Uninitialized = lifecycle.Uninitialized
	Initialized   = lifecycle.Initialized
)

// Initializer is implemented by types that construct themselves from the
// positional and named argument convention. A Singleton of such a type calls
// Init instead of the synthesized constructor.
type Initializer interface {
	Init(args []any, named map[string]any) error
}

// Singleton is one lazily constructed instance of T. The first successful
// Get builds it; every later Get returns the same pointer and ignores its
// arguments.
type Singleton[T any] struct {
	mu        sync.Mutex
	state     State
	instance  *T
	name      string
	construct func(named map[string]any, args []any) (*T, error)
	logger    *slog.Logger
}

// NewSingleton decides once how T is built: through its own Init when *T
// implements Initializer, otherwise through the constructor synthesized by
// Data. Descriptor errors for the latter surface here.
func NewSingleton[T any](opts ...Option) (*Singleton[T], error) {
	cfg := newConfig(opts)
	s := &Singleton[T]{
		name:   reflect.TypeName[T](),
		logger: cfg.logger,
	}

	if _, ok := any(new(T)).(Initializer); ok {
		s.construct = func(named map[string]any, args []any) (*T, error) {
			v := new(T)
			if err := any(v).(Initializer).Init(args, named); err != nil {
				return nil, err
			}
			return v, nil
		}
		return s, nil
	}

	typ, err := Data[T](opts...)
	if err != nil {
		return nil, err
	}
	s.construct = func(named map[string]any, args []any) (*T, error) {
		return typ.NewKw(named, args...)
	}
	return s, nil
}

func MustSingleton[T any](opts ...Option) *Singleton[T] {
	s, err := NewSingleton[T](opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Singleton[T]) Get(args ...any) (*T, error) {
	return s.GetKw(nil, args...)
}

// GetKw returns the cached instance, constructing it on the first call. A
// failed construction leaves the singleton uninitialized.
func (s *Singleton[T]) GetKw(named map[string]any, args ...any) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Initialized {
		return s.instance, nil
	}

	v, err := s.construct(named, args)
	if err != nil {
		return nil, err
	}
	s.instance = v
	s.state = Initialized
	s.logger.Debug("singleton initialized", "type", s.name)
	return v, nil
}

func (s *Singleton[T]) MustGet(args ...any) *T {
	v, err := s.Get(args...)
	if err != nil {
		panic(err)
	}
	return v
}

func (s *Singleton[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Singleton[T]) Initialized() bool {
	return s.State() == Initialized
}
