// Package report renders the engine's structured diff and search output as
// console text. It is a pure consumer: nothing here feeds back into the
// comparison or search passes.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mukunda-/mdb-tools/internal/engine"
)

// displayValueLimit caps how much of a matched cell value is printed. The
// engine always hands back the full value; the cut happens here only.
const displayValueLimit = 200

var (
	labelColor   = color.New(color.FgCyan)
	diffColor    = color.New(color.FgRed)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	sectionColor = color.New(color.Bold)
)

// SchemaDiff renders the schema pass output.
func SchemaDiff(w io.Writer, diff *engine.SchemaDiff) {
	if diff.Empty() {
		okColor.Fprintln(w, "Schemas are identical.")
		return
	}

	if len(diff.AdditionalTables) > 0 {
		sectionColor.Fprintln(w, "Additional tables")
		t := newTable(w)
		t.AppendHeader(table.Row{"Source", "Table"})
		for _, at := range diff.AdditionalTables {
			t.AppendRow(table.Row{string(at.Source), at.Table})
		}
		t.Render()
	}

	if len(diff.AdditionalFields) > 0 {
		sectionColor.Fprintln(w, "Additional fields")
		t := newTable(w)
		t.AppendHeader(table.Row{"Source", "Table", "Field"})
		for _, af := range diff.AdditionalFields {
			t.AppendRow(table.Row{string(af.Source), af.Table, af.Field})
		}
		t.Render()
	}

	if len(diff.AttributeDiffs) > 0 {
		sectionColor.Fprintln(w, "Field attribute differences")
		t := newTable(w)
		t.AppendHeader(table.Row{"Table", "Field", "Attribute", "A", "B"})
		for _, d := range diff.AttributeDiffs {
			t.AppendRow(table.Row{d.Table, d.Field, d.Attribute, d.ValueA, d.ValueB})
		}
		t.Render()
	}
}

// DataDiff renders the data pass output: one side-by-side block per
// divergent table, then count mismatches and per-table scan failures.
func DataDiff(w io.Writer, diff *engine.DataDiff) {
	if len(diff.Divergences) == 0 && len(diff.CountMismatches) == 0 && len(diff.Failures) == 0 {
		okColor.Fprintln(w, "Table data is identical.")
		return
	}

	for i := range diff.Divergences {
		divergence(w, &diff.Divergences[i])
	}
	for _, table := range diff.CountMismatches {
		warnColor.Fprintf(w, "Record count mismatch in table %s\n", table)
	}
	for _, f := range diff.Failures {
		warnColor.Fprintf(w, "Scan of table %s failed: %v\n", f.Table, f.Err)
	}
}

func divergence(w io.Writer, div *engine.RowDivergence) {
	title := fmt.Sprintf("Divergent rows in %s", div.Table)
	if div.Truncated {
		title += warnColor.Sprintf(" (truncated at %d)", len(div.Pairs))
	}
	sectionColor.Fprintln(w, title)

	t := newTable(w)
	header := table.Row{"Row", "Source"}
	for _, f := range div.Fields {
		header = append(header, f)
	}
	t.AppendHeader(header)

	for _, pair := range div.Pairs {
		differing := differingIndexes(pair.A.Values, pair.B.Values)
		t.AppendRow(pairRow(pair.A, "A", differing))
		t.AppendRow(pairRow(pair.B, "B", differing))
		t.AppendSeparator()
	}
	t.Render()
}

func pairRow(snap engine.RowSnapshot, label string, differing map[int]bool) table.Row {
	row := table.Row{snap.Row, labelColor.Sprint(label)}
	for i, v := range snap.Values {
		if differing[i] {
			row = append(row, diffColor.Sprint(v))
		} else {
			row = append(row, v)
		}
	}
	return row
}

func differingIndexes(a, b []string) map[int]bool {
	out := map[int]bool{}
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			out[i] = true
		}
	}
	return out
}

// MatchPrinter streams search matches as they arrive, so output shows up
// while long value scans are still running.
type MatchPrinter struct {
	w     io.Writer
	count int
}

func NewMatchPrinter(w io.Writer) *MatchPrinter {
	return &MatchPrinter{w: w}
}

func (p *MatchPrinter) Print(m engine.Match) {
	p.count++
	switch m.Kind {
	case engine.MatchTableName:
		fmt.Fprintf(p.w, "%s %s\n", labelColor.Sprint("table"), m.Table)
	case engine.MatchFieldName:
		fmt.Fprintf(p.w, "%s %s.%s\n", labelColor.Sprint("field"), m.Table, m.Field)
	case engine.MatchFieldValue:
		fmt.Fprintf(p.w, "%s %s.%s row %d: %s\n",
			labelColor.Sprint("value"), m.Table, m.Field, m.Row, TruncateValue(m.Value))
	}
}

// Count returns how many matches were printed.
func (p *MatchPrinter) Count() int { return p.count }

// TruncateValue cuts a cell value for display, rune-safe.
func TruncateValue(v string) string {
	runes := []rune(v)
	if len(runes) <= displayValueLimit {
		return v
	}
	return string(runes[:displayValueLimit]) + "..."
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	return t
}
