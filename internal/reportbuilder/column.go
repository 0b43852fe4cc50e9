// Package reportbuilder renders rows of string cells into aligned, bordered
// text tables.
package reportbuilder

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Align controls which side of a cell receives padding.
type Align int

const (
	// AlignLeft pads after the content.
	AlignLeft Align = iota
	// AlignRight pads before the content.
	AlignRight
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// Attributes configures how a column renders.
// A zero fill rune means the column pads with spaces.
type Attributes struct {
	Separator  string // Printed after the column
	Align      Align  // AlignLeft or AlignRight
	FillBefore rune   // Pad character for right-aligned cells only
	FillAfter  rune   // Pad character for left-aligned cells only
}

// ColumnID is the stable handle rows use to address a column.
type ColumnID uint64

var nextColumnID atomic.Uint64

// Column is a named table column.
type Column struct {
	id    ColumnID
	name  string
	attrs Attributes
}

// ConfigurationError reports invalid column attributes.
type ConfigurationError struct {
	Column  string
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("column %q: %s: %s", e.Column, e.Field, e.Message)
}

// NewColumn creates a column after validating its attributes.
func NewColumn(name string, attrs Attributes) (*Column, error) {
	if attrs.Align != AlignLeft && attrs.Align != AlignRight {
		return nil, &ConfigurationError{
			Column:  name,
			Field:   "align",
			Message: fmt.Sprintf("unsupported alignment %d", int(attrs.Align)),
		}
	}
	if err := validateFill(name, "fill_before", attrs.FillBefore); err != nil {
		return nil, err
	}
	if err := validateFill(name, "fill_after", attrs.FillAfter); err != nil {
		return nil, err
	}
	if attrs.Align == AlignLeft && attrs.FillBefore != 0 {
		return nil, &ConfigurationError{
			Column:  name,
			Field:   "fill_before",
			Message: "only applies to right-aligned columns",
		}
	}
	if attrs.Align == AlignRight && attrs.FillAfter != 0 {
		return nil, &ConfigurationError{
			Column:  name,
			Field:   "fill_after",
			Message: "only applies to left-aligned columns",
		}
	}

	return &Column{
		id:    ColumnID(nextColumnID.Add(1)),
		name:  name,
		attrs: attrs,
	}, nil
}

// MustColumn is like NewColumn but panics on invalid attributes.
// Intended for package-level column definitions.
func MustColumn(name string, attrs Attributes) *Column {
	c, err := NewColumn(name, attrs)
	if err != nil {
		panic(err)
	}
	return c
}

func validateFill(column, field string, r rune) error {
	if r == 0 {
		return nil
	}
	if unicode.IsControl(r) || runewidth.RuneWidth(r) != 1 {
		return &ConfigurationError{
			Column:  column,
			Field:   field,
			Message: fmt.Sprintf("fill %q must be a single-width printable character", r),
		}
	}
	return nil
}

// ID returns the column handle.
func (c *Column) ID() ColumnID { return c.id }

// Name returns the header text.
func (c *Column) Name() string { return c.name }

// Attributes returns the column configuration.
func (c *Column) Attributes() Attributes { return c.attrs }

// Format pads value to width according to the column's alignment and fill.
// Values already at or beyond width are returned unchanged.
func (c *Column) Format(value string, width int) string {
	missing := width - runewidth.StringWidth(value)
	if missing <= 0 {
		return value
	}

	if c.attrs.Align == AlignRight {
		return strings.Repeat(string(fillOrSpace(c.attrs.FillBefore)), missing) + value
	}
	return value + strings.Repeat(string(fillOrSpace(c.attrs.FillAfter)), missing)
}

func fillOrSpace(r rune) rune {
	if r == 0 {
		return ' '
	}
	return r
}
