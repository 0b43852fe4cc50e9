package analyze

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTree counts every method call made on it through calls.
type stubTree struct {
	typ      string
	size     int64
	children []*stubTree
	calls    *int
}

func node(typ string, size int64, children ...*stubTree) *stubTree {
	return &stubTree{typ: typ, size: size, children: children}
}

func (s *stubTree) touch() {
	if s.calls != nil {
		*s.calls++
	}
}

func (s *stubTree) Type() string {
	s.touch()
	return s.typ
}

func (s *stubTree) Size() int64 {
	s.touch()
	return s.size
}

func (s *stubTree) Children() []SerializedObjectTree {
	s.touch()
	out := make([]SerializedObjectTree, len(s.children))
	for i, c := range s.children {
		out[i] = c
	}
	return out
}

func (s *stubTree) track(calls *int) *stubTree {
	s.calls = calls
	for _, c := range s.children {
		c.track(calls)
	}
	return s
}

type recordingSink struct {
	enabled bool
	emitted []string
}

func (s *recordingSink) DebugEnabled() bool { return s.enabled }
func (s *recordingSink) Emit(report string) { s.emitted = append(s.emitted, report) }

func samplePage() *stubTree {
	return node("com.example.Page", 10,
		node("java.lang.String", 5),
		node("com.example.Panel", 20,
			node("java.lang.String", 7),
		),
	)
}

func TestProcessEmitsReport(t *testing.T) {
	sink := &recordingSink{enabled: true}
	report := NewTypeSizeReport(sink)

	require.NoError(t, report.Process(samplePage()))
	require.Len(t, sink.emitted, 1)

	want := strings.Join([]string{
		strings.Repeat("=", 27),
		"|Type................bytes|",
		strings.Repeat("-", 27),
		"|com.example.Panel......20|",
		"|java.lang.String.......12|",
		"|com.example.Page.......10|",
		strings.Repeat("=", 27),
	}, "\n")
	assert.Equal(t, want, sink.emitted[0])
}

func TestProcessSkipsWorkWhenDebugDisabled(t *testing.T) {
	calls := 0
	tree := samplePage().track(&calls)
	sink := &recordingSink{enabled: false}

	require.NoError(t, NewTypeSizeReport(sink).Process(tree))

	assert.Zero(t, calls, "tree must not be traversed")
	assert.Empty(t, sink.emitted)
}

func TestProcessRejectsNilTree(t *testing.T) {
	sink := &recordingSink{enabled: true}
	report := NewTypeSizeReport(sink)

	err := report.Process(nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	var typedNil *stubTree
	err = report.Process(typedNil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	assert.Empty(t, sink.emitted)
}

func TestProcessRejectsNilSink(t *testing.T) {
	err := NewTypeSizeReport(nil).Process(node("a.B", 1))
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	var typedNil *recordingSink
	err = NewTypeSizeReport(typedNil).Process(node("a.B", 1))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestProcessSingleZeroSizeNode(t *testing.T) {
	sink := &recordingSink{enabled: true}
	require.NoError(t, NewTypeSizeReport(sink).Process(node("x.Y", 0)))

	lines := strings.Split(sink.emitted[0], "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "|Type...bytes|", lines[1])
	assert.Equal(t, "|x.Y........0|", lines[3])
}

func TestRenderMatchesBetweenWalks(t *testing.T) {
	tree := randomTree(rand.New(rand.NewSource(7)), 4, 5)

	recursive, err := NewTypeSizeReport(nil, WithWalk(WalkRecursive)).Render(tree)
	require.NoError(t, err)
	iterative, err := NewTypeSizeReport(nil, WithWalk(WalkIterative)).Render(tree)
	require.NoError(t, err)

	assert.Equal(t, recursive, iterative)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := WriterSink{W: &buf}
	assert.True(t, sink.DebugEnabled())

	require.NoError(t, NewTypeSizeReport(sink).Process(node("a.B", 3)))
	assert.True(t, strings.HasSuffix(buf.String(), "=\n"))
	assert.Contains(t, buf.String(), "|a.B........3|")
}

func TestRenderRowsKeepsGivenOrder(t *testing.T) {
	out := RenderRows([]TypeSize{{Type: "b", Size: 1}, {Type: "a", Size: 2}})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[3], "|b"))
	assert.True(t, strings.HasPrefix(lines[4], "|a"))
}
