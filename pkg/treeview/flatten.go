package treeview

// Flattening: the visible projection of the graph is a pre-order walk
// over the roots where a node's children are visited only while it is
// expanded. A node's subtree is therefore contiguous in the flat list,
// and collapsing removes exactly that contiguous range.
//
// The walk is not incremental; a full re-walk after every structural
// mutation is fine because the list is bounded by what the user has
// expanded.

// Flat returns the current flattened view. A node appears iff every one
// of its ancestors is expanded; order is pre-order. The returned slice is
// owned by the tree and valid until the next mutation.
func (t *Tree[T]) Flat() []*Node[T] { return t.flat }

// Len returns the number of nodes in the flattened view.
func (t *Tree[T]) Len() int { return len(t.flat) }

// NodeAt returns the flattened-view node at index i, or nil when i is out
// of range.
func (t *Tree[T]) NodeAt(i int) *Node[T] {
	if i < 0 || i >= len(t.flat) {
		return nil
	}
	return t.flat[i]
}

// IndexOf returns the node's position in the flattened view, or -1 when
// the node is not currently visible.
func (t *Tree[T]) IndexOf(n *Node[T]) int {
	for i, f := range t.flat {
		if f == n {
			return i
		}
	}
	return -1
}

func (t *Tree[T]) reflatten() {
	t.flat = t.flat[:0]
	for _, r := range t.roots {
		t.appendVisible(r)
	}
	t.notify.viewChanged(t.flat)
}

func (t *Tree[T]) appendVisible(n *Node[T]) {
	t.flat = append(t.flat, n)
	if n.Expanded {
		for _, c := range n.Children {
			t.appendVisible(c)
		}
	}
}
