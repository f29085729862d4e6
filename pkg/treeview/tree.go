package treeview

import (
	"errors"
	"fmt"
)

// ErrNotRegistered is returned by ReloadChildren when the given key was
// never registered in the tree's index. Unlike lookups driven by user
// input, which are tolerated as no-ops, calling the reload entry point
// with an unknown key is a programmer error and fails loudly.
var ErrNotRegistered = errors.New("treeview: item not registered")

// Tree owns the node graph: all root nodes plus a key index for O(1)
// lookup, the flattened projection of the currently visible nodes, and
// the check/selection policy state.
type Tree[T any] struct {
	adapter Adapter[T]
	notify  *Notifier[T]

	roots []*Node[T]
	index map[string]*Node[T]
	flat  []*Node[T]

	checkMode CheckMode
	selMode   SelectionMode
	selected  []*Node[T]

	built bool
}

// New creates an empty tree. The adapter's KeyOf and ChildrenOf accessors
// are required.
func New[T any](adapter Adapter[T]) (*Tree[T], error) {
	if err := adapter.validate(); err != nil {
		return nil, err
	}
	return &Tree[T]{
		adapter: adapter,
		index:   make(map[string]*Node[T]),
	}, nil
}

// SetNotifier installs the host's observation callbacks. Passing nil
// silences all notifications.
func (t *Tree[T]) SetNotifier(n *Notifier[T]) { t.notify = n }

// Adapter returns the accessor set the tree was built with.
func (t *Tree[T]) Adapter() Adapter[T] { return t.adapter }

// IsBuilt reports whether Build has run at least once.
func (t *Tree[T]) IsBuilt() bool { return t.built }

// Roots returns the root nodes in source order.
func (t *Tree[T]) Roots() []*Node[T] { return t.roots }

// NodeByKey looks up a node by item key. Unknown keys return (nil, false);
// callers must check before acting.
func (t *Tree[T]) NodeByKey(key string) (*Node[T], bool) {
	n, ok := t.index[key]
	return n, ok
}

// NodeOf looks up the node bound to an item, keyed through the adapter.
func (t *Tree[T]) NodeOf(item T) (*Node[T], bool) {
	return t.NodeByKey(t.adapter.KeyOf(item))
}

// Build discards all existing nodes and reconstructs the graph from the
// given top-level items. Expansion, check and selection state is carried
// over to nodes whose keys survive the rebuild; state attached to keys
// that vanish is dropped, raising ItemDeselected for previously selected
// nodes that no longer exist.
func (t *Tree[T]) Build(items []T) {
	type carried struct {
		expanded, selected bool
		check              CheckState
	}
	var prior map[string]carried
	var priorSelection []T
	if t.built {
		prior = make(map[string]carried, len(t.index))
		for key, n := range t.index {
			prior[key] = carried{expanded: n.Expanded, selected: n.Selected, check: n.Check}
		}
		priorSelection = t.selectionSnapshot()
	}

	t.roots = nil
	t.flat = nil
	t.index = make(map[string]*Node[T])
	t.selected = nil

	for _, item := range items {
		if n := t.buildNode(item, 0, nil); n != nil {
			t.roots = append(t.roots, n)
		}
	}

	if prior != nil {
		for key, st := range prior {
			n, ok := t.index[key]
			if !ok {
				continue
			}
			n.Expanded = st.expanded
			n.Check = st.check
			if st.selected {
				n.Selected = true
				t.selected = append(t.selected, n)
			}
		}
	}

	t.built = true
	t.reflatten()

	if prior != nil {
		t.orderSelectionByView()
		newSelection := t.selectionSnapshot()
		if !sameKeys(priorSelection, newSelection, t.adapter.KeyOf) {
			t.notify.selectionChanged(priorSelection, newSelection)
		}
	}
}

// buildNode constructs one node and, unless the host declared lazy
// children for it, its subtree. A key already present in the index means
// the same item is reachable at two positions (or the child accessor
// cycles); the first occurrence wins and the duplicate is reported.
func (t *Tree[T]) buildNode(item T, level int, parent *Node[T]) *Node[T] {
	key := t.adapter.KeyOf(item)
	if _, exists := t.index[key]; exists {
		t.notify.duplicateKey(key)
		return nil
	}

	n := &Node[T]{
		Item:           item,
		Key:            key,
		Parent:         parent,
		Level:          level,
		ChildrenLoaded: true,
	}
	t.index[key] = n

	if t.adapter.HasChildrenOf != nil && t.adapter.HasChildrenOf(item) {
		// Lazy: children stay empty until first expansion triggers a load.
		n.HasPotentialChildren = true
		n.ChildrenLoaded = false
		return n
	}

	for _, child := range t.adapter.ChildrenOf(item) {
		if cn := t.buildNode(child, level+1, n); cn != nil {
			n.Children = append(n.Children, cn)
		}
	}

	if t.adapter.ExpandedOf != nil && t.adapter.ExpandedOf(item) {
		n.Expanded = true
	}
	return n
}

// Expand marks a node expanded, loading children first when they are
// declared but not yet materialized. Returns false when nothing changed:
// nil node, already expanded, or a leaf with no potential children.
//
// For an unloaded node the LoadChildren callback fires and the node is
// treated as expanded-but-empty until the host calls ReloadChildren;
// ChildrenLoaded stays false so a repeat expansion re-triggers the load.
func (t *Tree[T]) Expand(n *Node[T]) bool {
	if n == nil {
		return false
	}
	if !n.ChildrenLoaded && n.HasPotentialChildren {
		wasExpanded := n.Expanded
		n.Expanded = true
		if !wasExpanded {
			t.reflatten()
		}
		t.notify.loadChildren(n.Item)
		if !wasExpanded {
			t.notify.nodeExpanded(n)
		}
		return true
	}
	if n.Expanded || len(n.Children) == 0 {
		return false
	}
	n.Expanded = true
	t.reflatten()
	t.notify.nodeExpanded(n)
	return true
}

// Collapse marks a node collapsed. The NodeCollapsing callback may veto
// the operation before any state is mutated. Loaded children are kept for
// fast re-expansion. Returns false when nothing changed.
func (t *Tree[T]) Collapse(n *Node[T]) bool {
	if n == nil || !n.Expanded {
		return false
	}
	if !t.notify.nodeCollapsing(n) {
		return false
	}
	n.Expanded = false
	t.reflatten()
	t.notify.nodeCollapsed(n)
	return true
}

// ToggleExpand expands a collapsed node or collapses an expanded one.
func (t *Tree[T]) ToggleExpand(n *Node[T]) bool {
	if n == nil {
		return false
	}
	if n.Expanded {
		return t.Collapse(n)
	}
	return t.Expand(n)
}

// ExpandPathTo expands every ancestor of the keyed node so it appears in
// the flattened view, typically before scrolling to it. The node itself
// is not expanded. Unknown keys return (nil, false).
func (t *Tree[T]) ExpandPathTo(key string) (*Node[T], bool) {
	n, ok := t.index[key]
	if !ok {
		return nil, false
	}
	var chain []*Node[T]
	for p := n.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	// Root first, so each expansion reveals the next link.
	for i := len(chain) - 1; i >= 0; i-- {
		if !chain[i].Expanded {
			t.Expand(chain[i])
		}
	}
	return n, true
}

// ExpandSubtree recursively expands a node and its entire descendant
// subtree, then re-flattens once. Unloaded lazy nodes fire their load
// callback; their subtrees fill in when the host reloads them.
func (t *Tree[T]) ExpandSubtree(n *Node[T]) bool {
	if n == nil {
		return false
	}
	var pending []T
	changed := expandRecursive(n, &pending)
	if !changed {
		return false
	}
	t.reflatten()
	for _, item := range pending {
		t.notify.loadChildren(item)
	}
	t.notify.nodeExpanded(n)
	return true
}

func expandRecursive[T any](n *Node[T], pending *[]T) bool {
	changed := false
	if !n.ChildrenLoaded && n.HasPotentialChildren {
		if !n.Expanded {
			n.Expanded = true
			changed = true
		}
		*pending = append(*pending, n.Item)
	} else if len(n.Children) > 0 && !n.Expanded {
		n.Expanded = true
		changed = true
	}
	for _, c := range n.Children {
		if expandRecursive(c, pending) {
			changed = true
		}
	}
	return changed
}

// ExpandAll expands every node in the tree.
func (t *Tree[T]) ExpandAll() {
	var pending []T
	for _, r := range t.roots {
		expandRecursive(r, &pending)
	}
	t.reflatten()
	for _, item := range pending {
		t.notify.loadChildren(item)
	}
}

// CollapseAll collapses every node in the tree. Bulk collapse is not
// subject to the NodeCollapsing veto.
func (t *Tree[T]) CollapseAll() {
	for _, r := range t.roots {
		collapseRecursive(r)
	}
	t.reflatten()
}

func collapseRecursive[T any](n *Node[T]) {
	n.Expanded = false
	for _, c := range n.Children {
		collapseRecursive(c)
	}
}

// ReloadChildren discards the keyed node's current children and replaces
// them with a freshly computed set from the child accessor, marking the
// node loaded. This is the completion side of the lazy-load bridge.
func (t *Tree[T]) ReloadChildren(key string) error {
	n, ok := t.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotRegistered, key)
	}

	priorSelection := t.selectionSnapshot()
	var dropped []*Node[T]
	for _, c := range n.Children {
		t.unregister(c, &dropped)
	}
	n.Children = nil

	for _, child := range t.adapter.ChildrenOf(n.Item) {
		if cn := t.buildNode(child, n.Level+1, n); cn != nil {
			n.Children = append(n.Children, cn)
		}
	}
	n.ChildrenLoaded = true
	n.HasPotentialChildren = len(n.Children) > 0

	t.reflatten()

	if len(dropped) > 0 {
		t.pruneSelected()
		for _, d := range dropped {
			t.notify.itemDeselected(d)
		}
		t.notify.selectionChanged(priorSelection, t.selectionSnapshot())
	}
	return nil
}

// unregister removes a subtree from the index, collecting any selected
// nodes it contained.
func (t *Tree[T]) unregister(n *Node[T], droppedSelected *[]*Node[T]) {
	delete(t.index, n.Key)
	if n.Selected {
		*droppedSelected = append(*droppedSelected, n)
	}
	for _, c := range n.Children {
		t.unregister(c, droppedSelected)
	}
}

// Tap applies the tap gesture to a node: select it under the current
// selection mode, then report the tap.
func (t *Tree[T]) Tap(n *Node[T]) {
	if n == nil {
		return
	}
	t.Select(n)
	t.notify.itemTapped(n)
}

// DoubleTap applies the double-tap gesture: toggle expansion, then report.
func (t *Tree[T]) DoubleTap(n *Node[T]) {
	if n == nil {
		return
	}
	t.ToggleExpand(n)
	t.notify.itemDoubleTapped(n)
}

func sameKeys[T any](a, b []T, keyOf func(T) string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if keyOf(a[i]) != keyOf(b[i]) {
			return false
		}
	}
	return true
}
