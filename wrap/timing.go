package wrap

import (
	"fmt"
	"io"
	"runtime/pprof"
	"sort"
	"strconv"
	"time"

	"github.com/ygrebnov/metrics"

	"github.com/paprika-go/paprika"
	"github.com/paprika-go/paprika/internal/table"
)

// Timeit measures every call of fn, passes the duration to the timing
// handler and logs it.
func Timeit[R any](name string, fn Func[R], opts ...Option) Func[R] {
	cfg := newConfig(opts)
	return func() (R, error) {
		start := cfg.now()
		ret, err := fn()
		d := cfg.now().Sub(start)

		if cfg.timingHandler != nil {
			cfg.timingHandler(name, d)
		}
		if cfg.provider != nil {
			cfg.histogram(name).Record(float64(d))
		}
		cfg.logger.Info("function executed", "func", name, "duration", d)
		return ret, err
	}
}

// Stats summarizes the durations recorded over a Hotspots call.
type Stats struct {
	Count int64
	Sum   time.Duration
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
}

func statsOf(s metrics.HistSnapshot) Stats {
	return Stats{
		Count: s.Count,
		Sum:   time.Duration(s.Sum),
		Min:   time.Duration(s.Min),
		Max:   time.Duration(s.Max),
		Mean:  time.Duration(s.Mean),
	}
}

// Run is one measured call made by Hotspots.
type Run struct {
	N        int
	Duration time.Duration
}

// HotspotReport is what Hotspots measured over all runs.
type HotspotReport struct {
	Func  string
	Stats Stats
	// Slowest holds at most topN runs, slowest first.
	Slowest []Run
}

func (r HotspotReport) Fprint(w io.Writer) error {
	if _, err := fmt.Fprintf(
		w, "hotspots for function: %s (runs=%d total=%s mean=%s min=%s max=%s)\n",
		r.Func, r.Stats.Count, r.Stats.Sum, r.Stats.Mean, r.Stats.Min, r.Stats.Max,
	); err != nil {
		return err
	}

	g := &table.Grid{
		Headers: []string{"Rank", "Run", "Duration"},
		Align:   []table.Align{table.Right, table.Right, table.Right},
	}
	for i, run := range r.Slowest {
		g.Rows = append(g.Rows, []string{strconv.Itoa(i + 1), strconv.Itoa(run.N), run.Duration.String()})
	}
	return g.Fprint(w)
}

// Hotspots calls fn runs times, ranks the topN slowest runs and writes the
// ranking to the output writer. With WithProfileOutput a CPU profile covering
// all runs is written as well. The last result is returned; the first error
// ends the runs early.
func Hotspots[R any](name string, fn Func[R], runs, topN int, opts ...Option) Func[R] {
	cfg := newConfig(opts)
	if runs < 1 {
		runs = 1
	}

	return func() (ret R, err error) {
		if cfg.profile != nil {
			if err := pprof.StartCPUProfile(cfg.profile); err != nil {
				return ret, fmt.Errorf("failed to start cpu profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		hist := metrics.NewBasicProvider().Histogram(name, metrics.WithUnit("ns")).(*metrics.BasicHistogram)
		var total metrics.Histogram
		if cfg.provider != nil {
			total = cfg.histogram(name)
		}

		measured := make([]Run, 0, runs)
		for i := 0; i < runs; i++ {
			start := cfg.now()
			ret, err = fn()
			d := cfg.now().Sub(start)

			hist.Record(float64(d))
			if total != nil {
				total.Record(float64(d))
			}
			measured = append(measured, Run{N: i + 1, Duration: d})
			if err != nil {
				break
			}
		}

		rep := rank(name, statsOf(hist.Snapshot()), measured, topN)
		if cfg.timingHandler != nil {
			cfg.timingHandler(name, rep.Stats.Sum)
		}
		if cfg.out != nil {
			if werr := rep.Fprint(cfg.out); werr != nil {
				cfg.logger.Warn("failed to write hotspot report", "func", name, "error", werr)
			}
		}
		cfg.logger.Debug("hotspots measured", "func", name, "runs", rep.Stats.Count, "mean", rep.Stats.Mean)
		return ret, err
	}
}

func rank(name string, stats Stats, runs []Run, topN int) HotspotReport {
	sort.SliceStable(
		runs, func(i, j int) bool {
			return runs[i].Duration > runs[j].Duration
		},
	)
	if topN >= 0 && topN < len(runs) {
		runs = runs[:topN]
	}
	return HotspotReport{Func: name, Stats: stats, Slowest: runs}
}

// Profile instruments f with access counting and measures it with Hotspots:
// every run prints its access report and the ranking follows the last run.
func Profile[R any](f *paprika.Instrumented[R], runs, topN int, opts ...Option) func(args ...any) (R, error) {
	return func(args ...any) (R, error) {
		return Hotspots(
			f.Name(), func() (R, error) {
				return f.Call(args...)
			}, runs, topN, opts...,
		)()
	}
}
