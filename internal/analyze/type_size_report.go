package analyze

import (
	"fmt"
	"strconv"

	"github.com/dbsmedya/sizereport/internal/reportbuilder"
)

var (
	emptyFirst = reportbuilder.MustColumn("", reportbuilder.Attributes{
		Separator: "|",
	})
	labelColumn = reportbuilder.MustColumn("Type", reportbuilder.Attributes{
		FillAfter: '.',
		Separator: "...",
	})
	sizeColumn = reportbuilder.MustColumn("bytes", reportbuilder.Attributes{
		Align:      reportbuilder.AlignRight,
		FillBefore: '.',
		Separator:  "|",
	})
)

var _ TreeProcessor = (*TypeSizeReport)(nil)

// TypeSizeReport emits a table of accumulated bytes per type.
// It holds no state between calls and is safe for concurrent use.
type TypeSizeReport struct {
	sink Sink
	walk Walk
}

// Option configures a TypeSizeReport.
type Option func(*TypeSizeReport)

// WithWalk selects the traversal strategy.
func WithWalk(w Walk) Option {
	return func(r *TypeSizeReport) {
		r.walk = w
	}
}

// NewTypeSizeReport creates a processor emitting to sink. A nil sink is only
// usable with Render; Process rejects it.
func NewTypeSizeReport(sink Sink, opts ...Option) *TypeSizeReport {
	r := &TypeSizeReport{sink: sink}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process renders the report for tree and emits it to the sink. Nothing is
// traversed when the sink has debug output disabled.
func (r *TypeSizeReport) Process(tree SerializedObjectTree) error {
	if isNil(tree) {
		return fmt.Errorf("%w: tree is nil", ErrInvalidArgument)
	}
	if isNil(r.sink) {
		return fmt.Errorf("%w: sink is nil", ErrInvalidArgument)
	}
	if !r.sink.DebugEnabled() {
		return nil
	}

	text, err := r.Render(tree)
	if err != nil {
		return err
	}
	r.sink.Emit(text)
	return nil
}

// Render aggregates tree and returns the table without consulting the sink.
func (r *TypeSizeReport) Render(tree SerializedObjectTree) (string, error) {
	rows, err := Aggregate(tree, r.walk)
	if err != nil {
		return "", err
	}
	return RenderRows(rows), nil
}

// RenderRows formats already aggregated rows in the order given.
func RenderRows(rows []TypeSize) string {
	report := reportbuilder.NewReport("\n")
	for _, row := range rows {
		report.NewRow().
			Set(labelColumn, 0, row.Type).
			Set(sizeColumn, 0, strconv.FormatInt(row.Size, 10))
	}

	return report.Export(emptyFirst, labelColumn, sizeColumn).
		SeparateColumnNamesWith('-').
		TableBorderWith('=').
		String()
}
