package paprika

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/paprika-go/paprika/internal/table"
)

type ReportFormat int

const (
	ReportTable ReportFormat = iota
	ReportYAML
)

func (f ReportFormat) String() string {
	switch f {
	case ReportTable:
		return "table"
	case ReportYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

func ParseReportFormat(s string) (ReportFormat, error) {
	switch strings.ToLower(s) {
	case "table", "t", "":
		return ReportTable, nil
	case "yaml", "y":
		return ReportYAML, nil
	default:
		return ReportTable, fmt.Errorf("unknown report format %q", s)
	}
}

// Report lists the counters of one instrumented call in argument order.
type Report struct {
	Func    string  `yaml:"function"`
	Entries []Entry `yaml:"arguments"`
}

func (r Report) ByName() map[string]Entry {
	out := make(map[string]Entry, len(r.Entries))
	for _, e := range r.Entries {
		out[e.Name] = e
	}
	return out
}

func (r Report) Fprint(w io.Writer, format ReportFormat, colored bool) error {
	switch format {
	case ReportYAML:
		return r.fprintYAML(w)
	default:
		return r.fprintTable(w, colored)
	}
}

func (r Report) String() string {
	var sb strings.Builder
	_ = r.fprintTable(&sb, false)
	return sb.String()
}

func (r Report) fprintTable(w io.Writer, colored bool) error {
	if _, err := fmt.Fprintf(w, "data access summary for function: %s\n", r.Func); err != nil {
		return err
	}

	g := &table.Grid{
		Headers: []string{"Arg Name", "nReads", "nWrites"},
		Align:   []table.Align{table.Left, table.Right, table.Right},
		Rows:    make([][]string, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		g.Rows = append(
			g.Rows, []string{
				e.Name,
				strconv.FormatInt(e.Reads, 10),
				strconv.FormatInt(e.Writes, 10),
			},
		)
	}
	if colored {
		header := color.New(color.Bold, color.FgCyan)
		header.EnableColor()
		g.HeaderStyle = func(s string) string { return header.Sprint(s) }
	}
	return g.Fprint(w)
}

func (r Report) fprintYAML(w io.Writer) error {
	out, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func useColor(w io.Writer, forced *bool) bool {
	if forced != nil {
		return *forced
	}
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
