package analyze

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var randomTypes = []string{
	"java.lang.String",
	"java.lang.Integer",
	"java.util.ArrayList",
	"com.example.Page",
	"com.example.Label",
}

func randomTree(r *rand.Rand, depth, fanout int) *stubTree {
	n := node(randomTypes[r.Intn(len(randomTypes))], int64(r.Intn(4)*8))
	if depth == 0 {
		return n
	}
	kids := r.Intn(fanout + 1)
	for i := 0; i < kids; i++ {
		n.children = append(n.children, randomTree(r, depth-1, fanout))
	}
	return n
}

func treeSum(n *stubTree) int64 {
	total := n.size
	for _, c := range n.children {
		total += treeSum(c)
	}
	return total
}

func rowSum(rows []TypeSize) int64 {
	var total int64
	for _, row := range rows {
		total += row.Size
	}
	return total
}

func TestAggregateConservesTotal(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			tree := randomTree(rand.New(rand.NewSource(seed)), 5, 4)

			for _, walk := range []Walk{WalkRecursive, WalkIterative} {
				rows, err := Aggregate(tree, walk)
				require.NoError(t, err)
				assert.Equal(t, treeSum(tree), rowSum(rows), "walk %s", walk)
			}
		})
	}
}

func TestAggregateSortsDescending(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		tree := randomTree(rand.New(rand.NewSource(seed)), 5, 4)

		rows, err := Aggregate(tree, WalkRecursive)
		require.NoError(t, err)
		for i := 1; i < len(rows); i++ {
			assert.GreaterOrEqual(t, rows[i-1].Size, rows[i].Size)
		}
	}
}

func TestAggregateGroupsSameTypeAcrossDepths(t *testing.T) {
	tree := node("com.example.Page", 1,
		node("java.lang.String", 3),
		node("com.example.Panel", 2,
			node("java.lang.String", 5,
				node("java.lang.String", 11),
			),
		),
	)

	rows, err := Aggregate(tree, WalkRecursive)
	require.NoError(t, err)

	assert.Equal(t, []TypeSize{
		{Type: "java.lang.String", Size: 19},
		{Type: "com.example.Panel", Size: 2},
		{Type: "com.example.Page", Size: 1},
	}, rows)
}

func TestAggregateSumsNegativeSizes(t *testing.T) {
	tree := node("a.A", 10,
		node("b.B", -4),
		node("a.A", -3),
	)

	rows, err := Aggregate(tree, WalkIterative)
	require.NoError(t, err)
	assert.Equal(t, []TypeSize{
		{Type: "a.A", Size: 7},
		{Type: "b.B", Size: -4},
	}, rows)
}

func TestAggregateSingleNode(t *testing.T) {
	rows, err := Aggregate(node("x.Y", 0), WalkRecursive)
	require.NoError(t, err)
	assert.Equal(t, []TypeSize{{Type: "x.Y", Size: 0}}, rows)
}

func TestAggregateTiesHaveNonIncreasingSizes(t *testing.T) {
	tree := node("r.Root", 8,
		node("a.A", 4),
		node("b.B", 4),
		node("c.C", 4),
	)

	rows, err := Aggregate(tree, WalkRecursive)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "r.Root", rows[0].Type)

	bucket := map[string]int64{}
	for _, row := range rows[1:] {
		bucket[row.Type] = row.Size
	}
	assert.Equal(t, map[string]int64{"a.A": 4, "b.B": 4, "c.C": 4}, bucket)
}

func TestAggregateDeepTreeIteratively(t *testing.T) {
	const depth = 200000
	root := node("chain.Link", 1)
	cur := root
	for i := 1; i < depth; i++ {
		next := node("chain.Link", 1)
		cur.children = []*stubTree{next}
		cur = next
	}

	rows, err := Aggregate(root, WalkIterative)
	require.NoError(t, err)
	assert.Equal(t, []TypeSize{{Type: "chain.Link", Size: depth}}, rows)
}

func TestAggregateRejectsNil(t *testing.T) {
	_, err := Aggregate(nil, WalkRecursive)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

// holeyTree returns an untyped nil among its children.
type holeyTree struct{ children []SerializedObjectTree }

func (h holeyTree) Type() string { return "a.Holder" }
func (h holeyTree) Size() int64 { return 4 }
func (h holeyTree) Children() []SerializedObjectTree { return h.children }

func TestAggregateSkipsNilChildren(t *testing.T) {
	var missing *stubTree
	tree := holeyTree{children: []SerializedObjectTree{
		nil,
		node("a.Leaf", 2, missing, node("a.Leaf", 3)),
		missing,
	}}

	for _, walk := range []Walk{WalkRecursive, WalkIterative} {
		t.Run(walk.String(), func(t *testing.T) {
			rows, err := Aggregate(tree, walk)
			require.NoError(t, err)
			assert.Equal(t, []TypeSize{
				{Type: "a.Leaf", Size: 5},
				{Type: "a.Holder", Size: 4},
			}, rows)
		})
	}
}

func TestParseWalk(t *testing.T) {
	tests := []struct {
		input    string
		want     Walk
		wantName string
		wantErr  bool
	}{
		{"recursive", WalkRecursive, "recursive", false},
		{"", WalkRecursive, "recursive", false},
		{"iterative", WalkIterative, "iterative", false},
		{"breadth-first", WalkRecursive, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWalk(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantName, got.String())
		})
	}
}
