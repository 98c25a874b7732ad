// Package paprikatest provides helpers for testing code built on paprika.
package paprikatest

import (
	"path/filepath"
	"sync"

	"github.com/paprika-go/paprika"
	"github.com/paprika-go/paprika/internal/reflect"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	TempDir() string
}

// Recorder collects the access reports of instrumented functions on an
// isolated registry, so tests never touch the process-wide counters.
type Recorder struct {
	tb       TB
	registry *paprika.Registry

	mu      sync.Mutex
	reports []map[string]paprika.Entry
}

func NewRecorder(tb TB) *Recorder {
	tb.Helper()

	return &Recorder{
		tb:       tb,
		registry: paprika.NewRegistry(),
	}
}

// Options routes counters to the recorder and silences the text report.
func (r *Recorder) Options() []paprika.Option {
	return []paprika.Option{
		paprika.WithRegistry(r.registry),
		paprika.WithReportHandler(r.record),
		paprika.WithReportWriter(nil),
	}
}

func (r *Recorder) Registry() *paprika.Registry {
	return r.registry
}

func (r *Recorder) record(report map[string]paprika.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
}

func (r *Recorder) Reports() []map[string]paprika.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]map[string]paprika.Entry(nil), r.reports...)
}

// Last returns the most recent report.
func (r *Recorder) Last() map[string]paprika.Entry {
	r.tb.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reports) == 0 {
		r.tb.Fatal("no access report was recorded")
		return nil
	}
	return r.reports[len(r.reports)-1]
}

// RequireCounts checks the counters of argument name in the last report.
func (r *Recorder) RequireCounts(name string, reads, writes int64) {
	r.tb.Helper()

	last := r.Last()
	if last == nil {
		return
	}
	e, ok := last[name]
	if !ok {
		r.tb.Fatalf("argument %s missing from access report", name)
		return
	}
	if e.Reads != reads || e.Writes != writes {
		r.tb.Fatalf("argument %s: got %d reads, %d writes; want %d reads, %d writes", name, e.Reads, e.Writes, reads, writes)
	}
}

func (r *Recorder) RequireNoReport() {
	r.tb.Helper()

	if n := len(r.Reports()); n != 0 {
		r.tb.Fatalf("expected no access report, got %d", n)
	}
}

func MustData[T any](tb TB, opts ...paprika.Option) *paprika.Type[T] {
	tb.Helper()

	typ, err := paprika.Data[T](opts...)
	if err != nil {
		tb.Fatalf("failed to augment %s: %v", reflect.TypeKey[T](), err)
	}
	return typ
}

func MustNew[T any](tb TB, typ *paprika.Type[T], args ...any) *T {
	tb.Helper()

	v, err := typ.New(args...)
	if err != nil {
		tb.Fatalf("failed to construct %s: %v", typ.Name(), err)
	}
	return v
}

// RequireEqual compares with the synthesized equality and reports a diff on
// mismatch.
func RequireEqual[T any](tb TB, typ *paprika.Type[T], want, got *T) {
	tb.Helper()

	if !typ.Equal(want, got) {
		tb.Fatalf("%s values differ (-want +got):\n%s", typ.Name(), typ.Diff(want, got))
	}
}

// RoundTrip saves v to a temporary file with p, loads it back and returns
// the loaded copy.
func RoundTrip[T any](tb TB, p *paprika.Persistence[T], v *T) *T {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), reflect.TypeName[T]()+".pkl")
	if err := p.Save(v, path); err != nil {
		tb.Fatalf("failed to save %s: %v", reflect.TypeKey[T](), err)
		return nil
	}
	out, err := p.Load(path)
	if err != nil {
		tb.Fatalf("failed to load %s: %v", reflect.TypeKey[T](), err)
	}
	return out
}
