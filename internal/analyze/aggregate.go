package analyze

import (
	"fmt"
	"sort"

	"github.com/elliotchance/orderedmap/v2"
)

// Walk selects how a tree is traversed. Both walks visit nodes in the same
// pre-order, so they produce identical reports.
type Walk int

const (
	// WalkRecursive descends with plain recursion.
	WalkRecursive Walk = iota
	// WalkIterative uses an explicit stack, for trees deep enough to
	// exhaust the goroutine stack.
	WalkIterative
)

// ParseWalk converts a configuration value to a Walk.
func ParseWalk(s string) (Walk, error) {
	switch s {
	case "recursive", "":
		return WalkRecursive, nil
	case "iterative":
		return WalkIterative, nil
	default:
		return WalkRecursive, fmt.Errorf("unknown walk %q (want recursive or iterative)", s)
	}
}

// String returns the configuration name of the walk.
func (w Walk) String() string {
	if w == WalkIterative {
		return "iterative"
	}
	return "recursive"
}

// TypeSize is the accumulated size of every node of one type.
type TypeSize struct {
	Type string
	Size int64
}

type counter struct {
	size int64
}

// accumulator holds running totals keyed by type, in first-seen order.
type accumulator struct {
	totals *orderedmap.OrderedMap[string, *counter]
}

func newAccumulator() *accumulator {
	return &accumulator{totals: orderedmap.NewOrderedMap[string, *counter]()}
}

// add sums size without validating it; negative sizes show up in the report.
func (a *accumulator) add(node SerializedObjectTree) {
	typ := node.Type()
	c, ok := a.totals.Get(typ)
	if !ok {
		c = &counter{}
		a.totals.Set(typ, c)
	}
	c.size += node.Size()
}

func (a *accumulator) walkRecursive(node SerializedObjectTree) {
	a.add(node)
	for _, child := range node.Children() {
		if isNil(child) {
			continue
		}
		a.walkRecursive(child)
	}
}

func (a *accumulator) walkIterative(root SerializedObjectTree) {
	stack := []SerializedObjectTree{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		a.add(node)

		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if isNil(children[i]) {
				continue
			}
			stack = append(stack, children[i])
		}
	}
}

// sorted returns the totals by descending size. Equal sizes keep first-seen
// order.
func (a *accumulator) sorted() []TypeSize {
	rows := make([]TypeSize, 0, a.totals.Len())
	for el := a.totals.Front(); el != nil; el = el.Next() {
		rows = append(rows, TypeSize{Type: el.Key, Size: el.Value.size})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Size > rows[j].Size
	})
	return rows
}

// Aggregate sums Size per Type over every node of tree, root included, and
// returns the totals sorted by descending size. Nil children are skipped.
func Aggregate(tree SerializedObjectTree, walk Walk) ([]TypeSize, error) {
	if isNil(tree) {
		return nil, fmt.Errorf("%w: tree is nil", ErrInvalidArgument)
	}

	acc := newAccumulator()
	if walk == WalkIterative {
		acc.walkIterative(tree)
	} else {
		acc.walkRecursive(tree)
	}
	return acc.sorted(), nil
}
