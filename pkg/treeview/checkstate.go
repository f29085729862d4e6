package treeview

// Check-state propagation. Three mutually exclusive policies:
//
//   - CheckIndependent: the target node only.
//   - CheckCascade: target plus every descendant, downward only.
//   - CheckTriState: cascade downward, then recompute each ancestor as
//     Checked / Unchecked / Indeterminate from its direct children,
//     stopping as soon as an ancestor's state stops changing.
//
// Indeterminate is never a user-settable target in cascade/tri-state
// modes; it is only produced by the upward recomputation.

// CheckMode returns the active propagation policy.
func (t *Tree[T]) CheckMode() CheckMode { return t.checkMode }

// SetCheckMode selects the propagation policy for subsequent changes.
// Existing node states are left as they are.
func (t *Tree[T]) SetCheckMode(m CheckMode) { t.checkMode = m }

// SetCheckState applies a check state to a node under the active policy
// and raises a single NodeChecked notification for the node acted on once
// propagation has settled. Unknown (nil) nodes are ignored.
func (t *Tree[T]) SetCheckState(n *Node[T], state CheckState) {
	if n == nil {
		return
	}
	switch t.checkMode {
	case CheckIndependent:
		n.Check = state
	case CheckCascade:
		setCheckRecursive(n, state)
	case CheckTriState:
		setCheckRecursive(n, state)
		t.recomputeAncestors(n)
	}
	t.notify.nodeChecked(n, n.Check)
}

// ToggleCheck flips a node between Checked and Unchecked under the active
// policy. An indeterminate node toggles to Checked.
func (t *Tree[T]) ToggleCheck(n *Node[T]) {
	if n == nil {
		return
	}
	next := Checked
	if n.Check == Checked {
		next = Unchecked
	}
	t.SetCheckState(n, next)
}

// CheckedItems returns the items of all currently checked nodes in
// flattened-view-independent pre-order (indeterminate nodes excluded).
func (t *Tree[T]) CheckedItems() []T {
	var out []T
	var walk func(n *Node[T])
	walk = func(n *Node[T]) {
		if n.Check == Checked {
			out = append(out, n.Item)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range t.roots {
		walk(r)
	}
	return out
}

func setCheckRecursive[T any](n *Node[T], state CheckState) {
	n.Check = state
	for _, c := range n.Children {
		setCheckRecursive(c, state)
	}
}

// recomputeAncestors walks upward from n's parent, deriving each
// ancestor's state from its direct children. The walk stops early when a
// recomputation leaves an ancestor unchanged, since nothing above it can
// change either.
func (t *Tree[T]) recomputeAncestors(n *Node[T]) {
	for p := n.Parent; p != nil; p = p.Parent {
		derived := deriveFromChildren(p)
		if p.Check == derived {
			return
		}
		p.Check = derived
	}
}

func deriveFromChildren[T any](n *Node[T]) CheckState {
	allChecked, allUnchecked := true, true
	for _, c := range n.Children {
		switch c.Check {
		case Checked:
			allUnchecked = false
		case Unchecked:
			allChecked = false
		default:
			allChecked, allUnchecked = false, false
		}
	}
	switch {
	case allChecked:
		return Checked
	case allUnchecked:
		return Unchecked
	default:
		return Indeterminate
	}
}
