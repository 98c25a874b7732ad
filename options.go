package paprika

import (
	"io"
	"log/slog"
	"os"

	"github.com/paprika-go/paprika/internal/reflect"
)

// Option configures Data, NewSingleton, Pickled and AccessCounter. Each of
// them reads only the settings that apply to it.
type Option func(*config)

type config struct {
	logger *slog.Logger

	fields    []reflect.FieldSpec
	hasFields bool

	protocol int

	registry      *Registry
	reportOut     io.Writer
	reportHandler ReportHandler
	reportFormat  ReportFormat
	color         *bool
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger:    slog.Default(),
		registry:  DefaultRegistry(),
		reportOut: os.Stdout,
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

// WithFields supplies an explicit descriptor table instead of reading
// struct tags.
func WithFields(fields ...FieldSpec) Option {
	return func(cfg *config) {
		cfg.fields = append(cfg.fields, fields...)
		cfg.hasFields = true
	}
}

// WithProtocol selects the persistence protocol. Zero means DefaultProtocol
// and negative values mean HighestProtocol.
func WithProtocol(protocol int) Option {
	return func(cfg *config) {
		cfg.protocol = protocol
	}
}

// WithRegistry routes proxy counters to r instead of the process-wide
// registry.
func WithRegistry(r *Registry) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.registry = r
		}
	}
}

// WithReportWriter sets where the text report is written. A nil writer
// disables the text report.
func WithReportWriter(w io.Writer) Option {
	return func(cfg *config) {
		cfg.reportOut = w
	}
}

func WithReportHandler(h ReportHandler) Option {
	return func(cfg *config) {
		cfg.reportHandler = h
	}
}

func WithReportFormat(f ReportFormat) Option {
	return func(cfg *config) {
		cfg.reportFormat = f
	}
}

// WithColor forces coloured table headers on or off. Without it, colour is
// used only when the report writer is a terminal.
func WithColor(enabled bool) Option {
	return func(cfg *config) {
		cfg.color = &enabled
	}
}
