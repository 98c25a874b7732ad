// Package wrap decorates plain functions with timing, profiling, repetition,
// delays, background execution and error catching.
//
// Every wrapper takes and returns a Func, so wrappers compose:
//
//	f := wrap.Repeat(3, wrap.Timeit("load", load))
//	v, err := f()
package wrap

import (
	"time"
)

// Func is the shape every wrapper accepts and returns.
type Func[R any] func() (R, error)

// Repeat calls fn n times and returns the last result. It stops at the first
// error. For n < 1 fn is never called and the zero value is returned.
func Repeat[R any](n int, fn Func[R]) Func[R] {
	return func() (R, error) {
		var (
			ret R
			err error
		)
		for i := 0; i < n; i++ {
			if ret, err = fn(); err != nil {
				return ret, err
			}
		}
		return ret, nil
	}
}

func SleepBefore[R any](d time.Duration, fn Func[R]) Func[R] {
	return func() (R, error) {
		time.Sleep(d)
		return fn()
	}
}

// SleepAfter sleeps for d after fn returns, also when it fails.
func SleepAfter[R any](d time.Duration, fn Func[R]) Func[R] {
	return func() (R, error) {
		ret, err := fn()
		time.Sleep(d)
		return ret, err
	}
}
