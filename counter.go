package paprika

import (
	"fmt"
)

// ReportHandler receives the counters of one instrumented call keyed by
// parameter name.
type ReportHandler func(map[string]Entry)

// Call carries the proxied positional arguments and the untouched named
// arguments of one instrumented call.
type Call struct {
	Args   []*Proxy
	Kwargs map[string]any
}

func (c *Call) Arg(i int) *Proxy {
	if i < 0 || i >= len(c.Args) {
		return nil
	}
	return c.Args[i]
}

// Param returns the proxy of the positional argument bound to name.
func (c *Call) Param(name string) *Proxy {
	for _, p := range c.Args {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

func (c *Call) Kwarg(name string) (any, bool) {
	v, ok := c.Kwargs[name]
	return v, ok
}

// Instrumented is a function whose positional arguments are wrapped in
// counting proxies on every call.
type Instrumented[R any] struct {
	name   string
	params []string
	body   func(*Call) (R, error)
	cfg    *config
}

// AccessCounter instruments body. params names the positional parameters in
// order; arguments beyond them are named argN. After each call that received
// positional arguments, a report of reads and writes per argument is
// delivered to the report handler and written to the report writer.
func AccessCounter[R any](name string, params []string, body func(*Call) (R, error), opts ...Option) *Instrumented[R] {
	return &Instrumented[R]{
		name:   name,
		params: append([]string(nil), params...),
		body:   body,
		cfg:    newConfig(opts),
	}
}

func (f *Instrumented[R]) Name() string {
	return f.name
}

func (f *Instrumented[R]) Call(args ...any) (R, error) {
	return f.CallKw(nil, args...)
}

// CallKw proxies args, passes named through unchanged and runs the body. The
// report is emitted even when the body fails.
func (f *Instrumented[R]) CallKw(named map[string]any, args ...any) (R, error) {
	call := &Call{
		Args:   make([]*Proxy, len(args)),
		Kwargs: named,
	}
	for i, arg := range args {
		call.Args[i] = NewProxy(f.cfg.registry, f.paramName(i), arg)
	}

	ret, err := f.body(call)

	if len(call.Args) > 0 {
		f.report(call.Args)
	}
	return ret, err
}

func (f *Instrumented[R]) paramName(i int) string {
	if i < len(f.params) {
		return f.params[i]
	}
	return fmt.Sprintf("arg%d", i)
}

func (f *Instrumented[R]) report(proxies []*Proxy) {
	rep := Report{
		Func:    f.name,
		Entries: f.cfg.registry.Snapshot(proxies...),
	}

	f.cfg.logger.Debug("instrumented call finished", "func", f.name, "args", len(proxies))

	if f.cfg.reportHandler != nil {
		f.cfg.reportHandler(rep.ByName())
	}
	if f.cfg.reportOut != nil {
		colored := useColor(f.cfg.reportOut, f.cfg.color)
		if err := rep.Fprint(f.cfg.reportOut, f.cfg.reportFormat, colored); err != nil {
			f.cfg.logger.Warn("failed to write access report", "func", f.name, "error", err)
		}
	}
}
