// Package table renders rows as a grid of ASCII boxes.
//
//	+----------+----------+
//	| Arg Name |   nReads |
//	+==========+==========+
//	| seq      |        0 |
//	+----------+----------+
package table

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type Align int

const (
	Left Align = iota
	Right
)

type Grid struct {
	Headers []string
	Align   []Align
	Rows    [][]string

	// HeaderStyle decorates padded header cells, e.g. with terminal colours.
	HeaderStyle func(string) string
}

func (g *Grid) Fprint(w io.Writer) error {
	widths := g.widths()

	sep := rule(widths, '-')
	if _, err := fmt.Fprintln(w, sep); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, g.line(widths, g.Headers, g.HeaderStyle)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, rule(widths, '=')); err != nil {
		return err
	}
	for _, row := range g.Rows {
		if _, err := fmt.Fprintln(w, g.line(widths, row, nil)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, sep); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) String() string {
	var sb strings.Builder
	_ = g.Fprint(&sb)
	return sb.String()
}

func (g *Grid) widths() []int {
	widths := make([]int, len(g.Headers))
	for i, h := range g.Headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range g.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if n := utf8.RuneCountInString(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func (g *Grid) line(widths []int, cells []string, style func(string) string) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded := pad(cell, w, g.align(i))
		if style != nil {
			padded = style(padded)
		}
		sb.WriteByte(' ')
		sb.WriteString(padded)
		sb.WriteString(" |")
	}
	return sb.String()
}

func (g *Grid) align(i int) Align {
	if i < len(g.Align) {
		return g.Align[i]
	}
	return Left
}

func pad(s string, width int, align Align) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	if align == Right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

func rule(widths []int, fill byte) string {
	var sb strings.Builder
	sb.WriteByte('+')
	for _, w := range widths {
		sb.WriteString(strings.Repeat(string(fill), w+2))
		sb.WriteByte('+')
	}
	return sb.String()
}
