package treeview

// SelectionMode controls how many nodes may be selected at once.
type SelectionMode int

const (
	// SelectionNone disables selection entirely; mutating operations are
	// no-ops.
	SelectionNone SelectionMode = iota
	// SelectionSingle keeps at most one node selected at any time.
	SelectionSingle
	// SelectionMultiple keeps an arbitrary set of selected nodes.
	SelectionMultiple
)

// SelectionMode returns the active selection mode.
func (t *Tree[T]) SelectionMode() SelectionMode { return t.selMode }

// SetSelectionMode switches selection semantics. Dropping from Multiple
// to Single keeps only the first selected node (view order); switching to
// None clears the selection. Each node dropped raises ItemDeselected, and
// one SelectionChanged is raised if the observable selection changed.
func (t *Tree[T]) SetSelectionMode(m SelectionMode) {
	if m == t.selMode {
		return
	}
	prior := t.selectionSnapshot()
	t.selMode = m

	var keep []*Node[T]
	switch m {
	case SelectionNone:
	case SelectionSingle:
		if len(t.selected) > 0 {
			keep = t.selected[:1]
		}
	default:
		keep = t.selected
	}
	keepSet := make(map[*Node[T]]bool, len(keep))
	for _, k := range keep {
		keepSet[k] = true
	}
	var dropped []*Node[T]
	for _, n := range t.selected {
		if !keepSet[n] {
			n.Selected = false
			dropped = append(dropped, n)
		}
	}
	t.selected = append([]*Node[T](nil), keep...)

	if len(dropped) > 0 {
		for _, d := range dropped {
			t.notify.itemDeselected(d)
		}
		t.notify.selectionChanged(prior, t.selectionSnapshot())
	}
}

// Select selects a node under the active mode. In Single mode any
// previously selected node is deselected first. No-op under SelectionNone,
// for nil nodes, and for already-selected nodes.
func (t *Tree[T]) Select(n *Node[T]) {
	if t.selMode == SelectionNone || n == nil || n.Selected {
		return
	}
	prior := t.selectionSnapshot()

	if t.selMode == SelectionSingle {
		for _, prev := range t.selected {
			prev.Selected = false
			t.notify.itemDeselected(prev)
		}
		t.selected = t.selected[:0]
	}
	n.Selected = true
	t.selected = append(t.selected, n)
	t.orderSelectionByView()

	t.notify.selectionChanged(prior, t.selectionSnapshot())
}

// Deselect removes a node from the selection. No-op under SelectionNone
// and for nodes not currently selected.
func (t *Tree[T]) Deselect(n *Node[T]) {
	if t.selMode == SelectionNone || n == nil || !n.Selected {
		return
	}
	prior := t.selectionSnapshot()
	n.Selected = false
	t.pruneSelected()
	t.notify.itemDeselected(n)
	t.notify.selectionChanged(prior, t.selectionSnapshot())
}

// ToggleSelect flips a node's membership in the selection.
func (t *Tree[T]) ToggleSelect(n *Node[T]) {
	if n == nil {
		return
	}
	if n.Selected {
		t.Deselect(n)
	} else {
		t.Select(n)
	}
}

// SelectAll selects every node currently in the flattened view. Hidden
// descendants of collapsed nodes are not touched. In Single mode only the
// first node of the view is selected; under SelectionNone nothing happens.
func (t *Tree[T]) SelectAll() {
	switch t.selMode {
	case SelectionNone:
		return
	case SelectionSingle:
		if len(t.flat) > 0 {
			t.Select(t.flat[0])
		}
		return
	}

	prior := t.selectionSnapshot()
	changed := false
	for _, n := range t.flat {
		if !n.Selected {
			n.Selected = true
			t.selected = append(t.selected, n)
			changed = true
		}
	}
	if !changed {
		return
	}
	t.orderSelectionByView()
	t.notify.selectionChanged(prior, t.selectionSnapshot())
}

// ClearSelection empties the selection, raising ItemDeselected per node.
func (t *Tree[T]) ClearSelection() {
	if len(t.selected) == 0 {
		return
	}
	prior := t.selectionSnapshot()
	dropped := t.selected
	t.selected = nil
	for _, n := range dropped {
		n.Selected = false
		t.notify.itemDeselected(n)
	}
	t.notify.selectionChanged(prior, t.selectionSnapshot())
}

// SetSelection replaces the selection with the nodes bound to the given
// items. Items not present in the index are silently ignored; this is a
// deliberate tolerance policy, not a defect. Under SelectionSingle only
// the first resolvable item is selected; under SelectionNone nothing
// happens.
func (t *Tree[T]) SetSelection(items ...T) {
	if t.selMode == SelectionNone {
		return
	}
	prior := t.selectionSnapshot()

	var want []*Node[T]
	seen := make(map[*Node[T]]bool)
	for _, item := range items {
		n, ok := t.NodeOf(item)
		if !ok || seen[n] {
			continue
		}
		seen[n] = true
		want = append(want, n)
		if t.selMode == SelectionSingle {
			break
		}
	}

	changed := false
	for _, n := range t.selected {
		if !seen[n] {
			n.Selected = false
			t.notify.itemDeselected(n)
			changed = true
		}
	}
	for _, n := range want {
		if !n.Selected {
			n.Selected = true
			changed = true
		}
	}
	t.selected = want
	t.orderSelectionByView()

	if changed {
		t.notify.selectionChanged(prior, t.selectionSnapshot())
	}
}

// SelectedNodes returns the selected nodes, visible ones first in view
// order.
func (t *Tree[T]) SelectedNodes() []*Node[T] {
	return append([]*Node[T](nil), t.selected...)
}

// SelectedItems returns the items of the selected nodes.
func (t *Tree[T]) SelectedItems() []T { return t.selectionSnapshot() }

func (t *Tree[T]) selectionSnapshot() []T {
	out := make([]T, len(t.selected))
	for i, n := range t.selected {
		out[i] = n.Item
	}
	return out
}

// pruneSelected drops nodes whose Selected flag has been cleared.
func (t *Tree[T]) pruneSelected() {
	kept := t.selected[:0]
	for _, n := range t.selected {
		if n.Selected {
			kept = append(kept, n)
		}
	}
	t.selected = kept
}

// orderSelectionByView sorts the selection bookkeeping into flattened-view
// order so snapshots read top to bottom; nodes hidden under a collapsed
// ancestor keep their relative order at the end.
func (t *Tree[T]) orderSelectionByView() {
	if len(t.selected) < 2 {
		return
	}
	pos := make(map[*Node[T]]int, len(t.flat))
	for i, n := range t.flat {
		pos[n] = i
	}
	ordered := make([]*Node[T], 0, len(t.selected))
	var hidden []*Node[T]
	for _, n := range t.selected {
		if _, ok := pos[n]; ok {
			ordered = append(ordered, n)
		} else {
			hidden = append(hidden, n)
		}
	}
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && pos[ordered[j-1]] > pos[ordered[j]]; j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}
	t.selected = append(ordered, hidden...)
}
