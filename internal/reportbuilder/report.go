package reportbuilder

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Report is an ordered collection of rows. Build it, export it once, then
// discard it.
type Report struct {
	lineSeparator string
	rows          []row
}

// row maps a column to its cell slots. Rendering reads slot 0.
type row map[ColumnID][]string

// NewReport creates an empty report whose rendered lines are joined with
// lineSeparator.
func NewReport(lineSeparator string) *Report {
	return &Report{lineSeparator: lineSeparator}
}

// RowBuilder sets cell values on a single row.
type RowBuilder struct {
	cells row
}

// NewRow appends an empty row and returns a builder scoped to it.
func (r *Report) NewRow() *RowBuilder {
	cells := make(row)
	r.rows = append(r.rows, cells)
	return &RowBuilder{cells: cells}
}

// Set stores value in the given slot of col. Negative indexes are ignored.
func (b *RowBuilder) Set(col *Column, index int, value string) *RowBuilder {
	if index < 0 {
		return b
	}
	slots := b.cells[col.id]
	for len(slots) <= index {
		slots = append(slots, "")
	}
	slots[index] = value
	b.cells[col.id] = slots
	return b
}

func (rw row) value(col *Column) string {
	slots := rw[col.id]
	if len(slots) == 0 {
		return ""
	}
	return slots[0]
}

// Exporter renders a report with a fixed column order.
type Exporter struct {
	report  *Report
	columns []*Column
	divider rune
	border  rune
}

// Export fixes the columns to render, in order. Columns present in rows but
// not listed here are skipped.
func (r *Report) Export(columns ...*Column) *Exporter {
	return &Exporter{
		report:  r,
		columns: columns,
	}
}

// SeparateColumnNamesWith draws a line of ch between the header and the data.
func (e *Exporter) SeparateColumnNamesWith(ch rune) *Exporter {
	e.divider = ch
	return e
}

// TableBorderWith draws a line of ch above and below the table.
func (e *Exporter) TableBorderWith(ch rune) *Exporter {
	e.border = ch
	return e
}

// String renders the table.
func (e *Exporter) String() string {
	widths := e.columnWidths()

	total := 0
	for i, col := range e.columns {
		total += widths[i] + runewidth.StringWidth(col.attrs.Separator)
	}

	lines := make([]string, 0, len(e.report.rows)+4)
	if e.border != 0 {
		lines = append(lines, strings.Repeat(string(e.border), total))
	}

	lines = append(lines, e.renderLine(widths, func(col *Column) string { return col.name }))
	if e.divider != 0 {
		lines = append(lines, strings.Repeat(string(e.divider), total))
	}

	for _, rw := range e.report.rows {
		lines = append(lines, e.renderLine(widths, rw.value))
	}

	if e.border != 0 {
		lines = append(lines, strings.Repeat(string(e.border), total))
	}

	return strings.Join(lines, e.report.lineSeparator)
}

// columnWidths returns the widest header or cell per exported column.
func (e *Exporter) columnWidths() []int {
	widths := make([]int, len(e.columns))
	for i, col := range e.columns {
		widths[i] = runewidth.StringWidth(col.name)
		for _, rw := range e.report.rows {
			if w := runewidth.StringWidth(rw.value(col)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (e *Exporter) renderLine(widths []int, text func(*Column) string) string {
	var sb strings.Builder
	for i, col := range e.columns {
		sb.WriteString(col.Format(text(col), widths[i]))
		sb.WriteString(col.attrs.Separator)
	}
	return sb.String()
}
