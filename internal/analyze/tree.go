// Package analyze aggregates serialized-object trees into per-type size
// reports.
package analyze

import (
	"errors"
	"fmt"
	"io"
	"reflect"
)

// ErrInvalidArgument is returned when a processor is handed a nil tree.
var ErrInvalidArgument = errors.New("invalid argument")

// SerializedObjectTree describes how one value of an object graph was
// serialized. Size excludes the bytes written by Children.
type SerializedObjectTree interface {
	Type() string
	Size() int64
	Children() []SerializedObjectTree
}

// TreeProcessor consumes a serialized-object tree.
type TreeProcessor interface {
	Process(tree SerializedObjectTree) error
}

// Sink receives rendered reports. Processors check DebugEnabled before doing
// any work.
type Sink interface {
	DebugEnabled() bool
	Emit(report string)
}

// WriterSink writes every report to W followed by a newline.
type WriterSink struct {
	W io.Writer
}

// DebugEnabled always reports true.
func (s WriterSink) DebugEnabled() bool { return true }

// Emit writes the report. Write errors are dropped.
func (s WriterSink) Emit(report string) {
	_, _ = fmt.Fprintln(s.W, report)
}

func isNil(x any) bool {
	if x == nil {
		return true
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
