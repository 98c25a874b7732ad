package wrap

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ygrebnov/metrics"
)

type Option func(*config)

type config struct {
	logger *slog.Logger
	now    func() time.Time

	timingHandler func(name string, d time.Duration)
	provider      metrics.Provider

	out     io.Writer
	profile io.Writer

	targets    []error
	errHandler func(error) error
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger: slog.Default(),
		now:    time.Now,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithClock replaces time.Now for duration measurements.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithTimingHandler receives the name and duration of every timed call.
func WithTimingHandler(h func(name string, d time.Duration)) Option {
	return func(cfg *config) {
		cfg.timingHandler = h
	}
}

// WithMetrics makes Timeit and Hotspots record every measured duration, in
// nanoseconds, into the histogram of p named after the wrapped function.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) {
		cfg.provider = p
	}
}

func (cfg *config) histogram(name string) metrics.Histogram {
	return cfg.provider.Histogram(
		name,
		metrics.WithUnit("ns"),
		metrics.WithDescription("durations of "+name),
	)
}

// WithOutput sets where Hotspots writes its ranking. A nil writer disables
// it.
func WithOutput(w io.Writer) Option {
	return func(cfg *config) {
		cfg.out = w
	}
}

// WithProfileOutput enables CPU profiling during Hotspots and writes the
// pprof profile to w.
func WithProfileOutput(w io.Writer) Option {
	return func(cfg *config) {
		cfg.profile = w
	}
}

// WithTargets limits Catch and SilentCatch to errors matching one of errs
// with errors.Is. Without targets every error is caught.
func WithTargets(errs ...error) Option {
	return func(cfg *config) {
		cfg.targets = append(cfg.targets, errs...)
	}
}

// WithErrorHandler receives errors caught by Catch. A non-nil return value
// becomes the error of the wrapped call.
func WithErrorHandler(h func(error) error) Option {
	return func(cfg *config) {
		cfg.errHandler = h
	}
}
