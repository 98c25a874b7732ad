package wrap

import (
	"errors"
)

// Catch returns fn guarded against errors and panics matching the configured
// targets. A caught failure goes to the error handler, or is logged when no
// handler is set, and the call returns the zero value. Failures that match
// no target propagate unchanged.
func Catch[R any](fn Func[R], opts ...Option) Func[R] {
	cfg := newConfig(opts)
	return guard(fn, cfg, func(err error) error {
		if cfg.errHandler != nil {
			return cfg.errHandler(err)
		}
		cfg.logger.Error("caught error", "error", err)
		return nil
	})
}

// SilentCatch is Catch without handler or logging.
func SilentCatch[R any](fn Func[R], opts ...Option) Func[R] {
	cfg := newConfig(opts)
	return guard(fn, cfg, func(error) error { return nil })
}

func guard[R any](fn Func[R], cfg *config, caught func(error) error) Func[R] {
	return func() (ret R, err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			perr := &PanicError{Value: r}
			if !cfg.matches(perr) {
				panic(r)
			}
			var zero R
			ret, err = zero, caught(perr)
		}()

		ret, err = fn()
		if err != nil && cfg.matches(err) {
			var zero R
			return zero, caught(err)
		}
		return ret, err
	}
}

// matches reports whether err is one of the targets. A panic only matches
// explicit targets when its value is an error.
func (cfg *config) matches(err error) bool {
	if len(cfg.targets) == 0 {
		return true
	}
	for _, target := range cfg.targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
