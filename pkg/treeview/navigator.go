package treeview

// Keyboard navigation: a state machine whose state is a single focus
// position in the flattened view. Inputs either move focus, mutate the
// graph (expand/collapse/check/select), or report "not handled" so the
// host can let the key propagate elsewhere.

// Key is a logical navigation input. The host's input layer maps physical
// keys (or gestures) onto these.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeySpace
	// KeyExpand expands the focused node only if collapsed ('+').
	KeyExpand
	// KeyCollapse collapses the focused node only if expanded ('-').
	KeyCollapse
	// KeyExpandSubtree recursively expands the focused node's subtree ('*').
	KeyExpandSubtree
)

// DefaultPageSize is the PageUp/PageDown stride when the host has not set
// one from its viewport height.
const DefaultPageSize = 10

// Navigator owns the focus position over a tree's flattened view.
type Navigator[T any] struct {
	tree     *Tree[T]
	focus    int
	pageSize int

	// SelectionFollowsFocus makes Up/Down/Home/End/PageUp/PageDown also
	// select the newly focused node. Hosts map a modifier to MoveFocus
	// for pure focus moves.
	SelectionFollowsFocus bool

	// ShowCheckBoxes routes Space to check toggling instead of selection.
	ShowCheckBoxes bool
}

// NewNavigator creates a navigator over the tree with an unset focus.
// Focus becomes 0 on the first focus-in while the view is non-empty.
func NewNavigator[T any](tree *Tree[T]) *Navigator[T] {
	return &Navigator[T]{tree: tree, focus: -1, pageSize: DefaultPageSize}
}

// SetPageSize sets the PageUp/PageDown stride, typically the viewport
// height. Non-positive values reset to the default.
func (nav *Navigator[T]) SetPageSize(n int) {
	if n <= 0 {
		n = DefaultPageSize
	}
	nav.pageSize = n
}

// Focus returns the focus position in the flattened view, clamped to the
// current view bounds, or -1 when the view is empty or nothing has been
// focused yet.
func (nav *Navigator[T]) Focus() int {
	if nav.focus < 0 || nav.tree.Len() == 0 {
		return -1
	}
	if nav.focus >= nav.tree.Len() {
		nav.focus = nav.tree.Len() - 1
	}
	return nav.focus
}

// FocusedNode returns the node under focus, or nil.
func (nav *Navigator[T]) FocusedNode() *Node[T] {
	return nav.tree.NodeAt(nav.Focus())
}

// FocusIn gives the navigator focus: an unset position becomes 0 when the
// view is non-empty. Reports whether a position is now focused.
func (nav *Navigator[T]) FocusIn() bool {
	if nav.tree.Len() == 0 {
		return false
	}
	if nav.focus < 0 {
		nav.focus = 0
	}
	return true
}

// FocusNode moves focus to the given node if it is currently visible.
func (nav *Navigator[T]) FocusNode(n *Node[T]) bool {
	i := nav.tree.IndexOf(n)
	if i < 0 {
		return false
	}
	nav.focus = i
	return true
}

// MoveFocus moves the focus by delta without wrapping and without
// touching the selection, clamped to the view extents. This is the pure
// focus move hosts bind to a modifier.
func (nav *Navigator[T]) MoveFocus(delta int) bool {
	if !nav.FocusIn() {
		return false
	}
	next := nav.Focus() + delta
	if next < 0 {
		next = 0
	}
	if next >= nav.tree.Len() {
		next = nav.tree.Len() - 1
	}
	nav.focus = next
	return true
}

// Handle feeds one input to the state machine. The return value is false
// when the input did not apply (empty view, structural key on a leaf,
// '+' on an expanded node, and so on) so the host can propagate it.
func (nav *Navigator[T]) Handle(k Key) bool {
	if !nav.FocusIn() {
		return false
	}
	cur := nav.FocusedNode()

	switch k {
	case KeyUp:
		nav.focusIndex(nav.wrap(nav.Focus() - 1))
		return true

	case KeyDown:
		nav.focusIndex(nav.wrap(nav.Focus() + 1))
		return true

	case KeyLeft:
		if cur.Expanded && len(cur.Children) > 0 {
			return nav.tree.Collapse(cur)
		}
		if cur.Parent != nil {
			if i := nav.tree.IndexOf(cur.Parent); i >= 0 {
				nav.focusIndex(i)
				return true
			}
		}
		return false

	case KeyRight:
		if !cur.Expanded && !cur.IsLeaf() {
			// Expand without moving focus; a second press descends.
			return nav.tree.Expand(cur)
		}
		if cur.Expanded && len(cur.Children) > 0 {
			if i := nav.tree.IndexOf(cur.Children[0]); i >= 0 {
				nav.focusIndex(i)
				return true
			}
		}
		return false

	case KeyHome:
		nav.focusIndex(0)
		return true

	case KeyEnd:
		nav.focusIndex(nav.tree.Len() - 1)
		return true

	case KeyPageUp:
		nav.focusIndex(clamp(nav.Focus()-nav.pageSize, 0, nav.tree.Len()-1))
		return true

	case KeyPageDown:
		nav.focusIndex(clamp(nav.Focus()+nav.pageSize, 0, nav.tree.Len()-1))
		return true

	case KeyEnter:
		if cur.IsLeaf() {
			return false
		}
		return nav.tree.ToggleExpand(cur)

	case KeySpace:
		if nav.ShowCheckBoxes {
			nav.tree.ToggleCheck(cur)
			return true
		}
		if nav.tree.SelectionMode() == SelectionNone {
			return false
		}
		nav.tree.ToggleSelect(cur)
		return true

	case KeyExpand:
		if cur.Expanded {
			return false
		}
		return nav.tree.Expand(cur)

	case KeyCollapse:
		if !cur.Expanded {
			return false
		}
		return nav.tree.Collapse(cur)

	case KeyExpandSubtree:
		return nav.tree.ExpandSubtree(cur)
	}
	return false
}

// focusIndex commits a focus move, selecting the newly focused node when
// selection follows focus.
func (nav *Navigator[T]) focusIndex(i int) {
	nav.focus = i
	if nav.SelectionFollowsFocus {
		nav.tree.Select(nav.tree.NodeAt(i))
	}
}

// wrap maps an out-of-range index onto the opposite end of the view.
func (nav *Navigator[T]) wrap(i int) int {
	n := nav.tree.Len()
	if i < 0 {
		return n - 1
	}
	if i >= n {
		return 0
	}
	return i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
