// Package testkit holds invariant checkers shared between this module's
// own tests and any host that wants to sanity-check a ParsedFile it
// received, mirroring a compiler's span-invariant checker adapted to this
// format's container/register/tree invariants.
package testkit

import (
	"fmt"

	"bgui/internal/container"
	"bgui/internal/register"
	"bgui/internal/tree"
)

// CheckContainerInvariants verifies that every accepted container's
// offsets are strictly ordered and within the register start.
func CheckContainerInvariants(containers []container.Container, registerStart uint32) error {
	for _, c := range containers {
		if !(c.MarkerOffset < c.BodyOffset) {
			return fmt.Errorf("container %d: marker_offset %d is not before body_offset %d", c.ID, c.MarkerOffset, c.BodyOffset)
		}
		if !(c.BodyOffset < c.BlockEnd) {
			return fmt.Errorf("container %d: body_offset %d is not before block_end %d", c.ID, c.BodyOffset, c.BlockEnd)
		}
		if c.BlockEnd > registerStart {
			return fmt.Errorf("container %d: block_end %d exceeds register_start %d", c.ID, c.BlockEnd, registerStart)
		}
	}
	return nil
}

// CheckSubtreeMonotone verifies that a parent's subtree range contains
// every descendant's subtree range.
func CheckSubtreeMonotone(n *tree.Node) error {
	for _, child := range n.Children {
		if !n.SubtreeRange.Contains(child.SubtreeRange) && !child.SubtreeRange.Empty() {
			return fmt.Errorf("node %d subtree %v does not contain child %d subtree %v", n.ID, n.SubtreeRange, child.ID, child.SubtreeRange)
		}
		if err := CheckSubtreeMonotone(child); err != nil {
			return err
		}
	}
	return nil
}

// CheckPreOrderMatchesRegister verifies that the tree's pre-order id
// sequence equals the register's entry order.
func CheckPreOrderMatchesRegister(roots []*tree.Node, entries []register.Entry) error {
	got := tree.PreOrderIDs(roots)
	if len(got) != len(entries) {
		return fmt.Errorf("pre-order emits %d ids, register has %d entries", len(got), len(entries))
	}
	for i, e := range entries {
		if got[i] != e.ID {
			return fmt.Errorf("pre-order id at index %d is %d, want %d", i, got[i], e.ID)
		}
	}
	return nil
}

// CheckChildCounts verifies that no node has more children attached than
// its declared child_count. A node with fewer children (one closed early by
// a RegisterShortfall) is not flagged.
func CheckChildCounts(n *tree.Node) error {
	if uint32(len(n.Children)) > n.ChildCount {
		return fmt.Errorf("node %d has %d children but declared child_count %d", n.ID, len(n.Children), n.ChildCount)
	}
	for _, child := range n.Children {
		if err := CheckChildCounts(child); err != nil {
			return err
		}
	}
	return nil
}

// IDSetEqual reports whether two id sets are equal, used to compare the
// register's id set against the scanned container id set when reporting
// their symmetric difference.
func IDSetEqual(a, b map[uint32]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
