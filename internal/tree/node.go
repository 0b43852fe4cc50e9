// Package tree reads serialized-object tree dumps written by an external
// serialization inspector.
package tree

import (
	"github.com/dbsmedya/sizereport/internal/analyze"
)

// Node is one serialized value and the values nested inside it.
type Node struct {
	TypeName string
	Bytes    int64
	Nodes    []*Node
}

var _ analyze.SerializedObjectTree = (*Node)(nil)

// Type returns the fully qualified type name.
func (n *Node) Type() string { return n.TypeName }

// Size returns the bytes written for this node alone.
func (n *Node) Size() int64 { return n.Bytes }

// Children returns the nested nodes in serialization order.
func (n *Node) Children() []analyze.SerializedObjectTree {
	out := make([]analyze.SerializedObjectTree, len(n.Nodes))
	for i, c := range n.Nodes {
		out[i] = c
	}
	return out
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.visit(func(*Node) { count++ })
	return count
}

// TotalSize returns the sum of Bytes over the tree rooted at n.
func (n *Node) TotalSize() int64 {
	var total int64
	n.visit(func(v *Node) { total += v.Bytes })
	return total
}

// Depth returns the number of levels in the tree rooted at n; a lone node
// has depth 1.
func (n *Node) Depth() int {
	type level struct {
		node  *Node
		depth int
	}
	maxDepth := 0
	stack := []level{{n, 1}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.node == nil {
			continue
		}
		if cur.depth > maxDepth {
			maxDepth = cur.depth
		}
		for _, child := range cur.node.Nodes {
			stack = append(stack, level{child, cur.depth + 1})
		}
	}
	return maxDepth
}

// TypeCount returns the number of distinct types in the tree rooted at n.
func (n *Node) TypeCount() int {
	seen := make(map[string]struct{})
	n.visit(func(v *Node) { seen[v.TypeName] = struct{}{} })
	return len(seen)
}

func (n *Node) visit(fn func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		fn(cur)
		stack = append(stack, cur.Nodes...)
	}
}
