// Package tree implements C4, the Tree Builder: it consumes register
// entries in order with a child-count stack to hydrate the logical tree,
// then computes each node's subtree byte range.
package tree

import (
	"fmt"

	"bgui/internal/container"
	"bgui/internal/diag"
	"bgui/internal/register"
	"bgui/internal/source"
)

// Node is one entry in the reconstructed logical tree. Container is nil
// for a dangling node: the register named an id the scanner never found.
type Node struct {
	ID         uint32
	ChildCount uint32
	Container  *container.Container
	Dangling   bool
	Children   []*Node

	SubtreeRange source.ByteRange
}

// Result is the forest C4 produces. In the standard variant Roots has
// exactly one element; additional entries are pathological second roots.
type Result struct {
	Roots []*Node
}

type frame struct {
	node      *Node
	remaining uint32
}

// Build runs the pre-order, child-count-stack tree reconstruction.
func Build(entries []register.Entry, containers map[uint32]*container.Container, rep diag.Reporter) Result {
	var roots []*Node
	var stack []*frame

	for _, e := range entries {
		n := &Node{ID: e.ID, ChildCount: e.ChildCount}
		entryRange := source.Range(e.Offset, e.Offset+8)

		if c, ok := containers[e.ID]; ok {
			n.Container = c
		} else {
			n.Dangling = true
			rep.Report(diag.NewWarning(diag.DanglingRegisterId, entryRange,
				fmt.Sprintf("register id %d has no matching container", e.ID)))
		}

		if len(stack) == 0 {
			if len(roots) > 0 {
				rep.Report(diag.NewWarning(diag.SecondRoot, entryRange,
					fmt.Sprintf("register id %d forms an additional root", e.ID)))
			}
			roots = append(roots, n)
		} else {
			top := stack[len(stack)-1]
			top.node.Children = append(top.node.Children, n)
			top.remaining--
		}

		if n.ChildCount > 0 {
			stack = append(stack, &frame{node: n, remaining: n.ChildCount})
		}

		for len(stack) > 0 && stack[len(stack)-1].remaining == 0 {
			stack = stack[:len(stack)-1]
		}
	}

	for _, f := range stack {
		got := f.node.ChildCount - f.remaining
		rep.Report(diag.NewWarning(diag.RegisterShortfall, source.ByteRange{},
			fmt.Sprintf("node %d declared %d children but the register only supplied %d", f.node.ID, f.node.ChildCount, got)))
	}

	for _, r := range roots {
		computeSubtreeRange(r)
	}

	return Result{Roots: roots}
}

// computeSubtreeRange does a single post-order walk: a node's range is
// its own container's footprint unioned with every child's subtree
// range.
func computeSubtreeRange(n *Node) source.ByteRange {
	var rng source.ByteRange
	if n.Container != nil {
		rng = source.Range(n.Container.MarkerOffset, n.Container.BlockEnd)
	}
	for _, child := range n.Children {
		rng = rng.Cover(computeSubtreeRange(child))
	}
	n.SubtreeRange = rng
	return rng
}

// PreOrderIDs walks the forest in pre-order, for checking that it matches
// the register's own entry order.
func PreOrderIDs(roots []*Node) []uint32 {
	var out []uint32
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.ID)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}
