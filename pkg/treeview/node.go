// Package treeview implements the hierarchical tree engine behind the
// terminal tree-view control: graph construction with lazy child loading,
// pre-order flattening for linear display, check-state propagation,
// selection semantics, and keyboard navigation over the flattened view.
//
// The engine is single-threaded and synchronous. All mutation, propagation
// and re-flattening happen on the calling goroutine; hosts that need
// asynchronous child loading drive the engine through ReloadChildren when
// their fetch completes.
package treeview

import "fmt"

// CheckState is the tri-valued check state of a node.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
	// Indeterminate means "some but not all descendants checked". It is a
	// derived, display-only state: users toggle between Checked and
	// Unchecked, and Indeterminate is only ever produced by the upward
	// recomputation in tri-state mode.
	Indeterminate
)

func (s CheckState) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	}
	return fmt.Sprintf("CheckState(%d)", int(s))
}

// CheckMode selects the propagation policy applied when a node's check
// state changes.
type CheckMode int

const (
	// CheckIndependent sets only the target node.
	CheckIndependent CheckMode = iota
	// CheckCascade sets the target node and every descendant to the same
	// state. Ancestors are untouched.
	CheckCascade
	// CheckTriState cascades downward like CheckCascade, then walks upward
	// recomputing each ancestor as Checked / Unchecked / Indeterminate from
	// its direct children.
	CheckTriState
)

// Node is one position in the tree, bound to exactly one source item.
// Nodes are owned by their Tree; hosts read them but mutate only through
// Tree operations so that flattening and notifications stay consistent.
type Node[T any] struct {
	Item T

	// Key is the host-supplied identity of Item. One node per distinct key.
	Key string

	Parent   *Node[T]
	Children []*Node[T]

	// Level is 0 for roots, Parent.Level+1 otherwise.
	Level int

	Expanded bool
	Selected bool
	Check    CheckState

	// HasPotentialChildren is the host's hint that children exist but have
	// not been materialized yet (lazy loading).
	HasPotentialChildren bool

	// ChildrenLoaded is false while Children may be stale or empty pending
	// a load callback. A second expansion attempt on an unloaded node
	// re-triggers the load rather than silently doing nothing.
	ChildrenLoaded bool
}

// IsLeaf reports whether the node has no children and no potential children.
func (n *Node[T]) IsLeaf() bool {
	return len(n.Children) == 0 && !n.HasPotentialChildren
}

// HasVisibleChildren reports whether expanding the node would reveal rows.
func (n *Node[T]) HasVisibleChildren() bool {
	return len(n.Children) > 0
}

// Adapter supplies the accessor functions the engine needs to project host
// items into nodes. KeyOf and ChildrenOf are required; the rest are
// optional and may be nil.
//
// KeyOf is a required capability rather than a convenience: Go has no
// identity hash for arbitrary values, so the host must say what makes two
// items the same item.
type Adapter[T any] struct {
	// KeyOf returns the stable identity of an item. Required.
	KeyOf func(item T) string

	// ChildrenOf returns the ordered children of an item, or nil for a
	// leaf. Required.
	ChildrenOf func(item T) []T

	// DisplayOf returns the display text of an item. When nil, items fall
	// back to their default string form via fmt.Sprint.
	DisplayOf func(item T) string

	// IconOf returns an icon reference for an item, or "" for none.
	IconOf func(item T) string

	// HasChildrenOf reports whether an item has children that should be
	// loaded lazily on first expansion. When nil, children are always
	// materialized eagerly during Build.
	HasChildrenOf func(item T) bool

	// ExpandedOf seeds a node's initial expansion state during Build.
	// When nil, nodes start collapsed.
	ExpandedOf func(item T) bool
}

func (a Adapter[T]) validate() error {
	if a.KeyOf == nil {
		return fmt.Errorf("treeview: Adapter.KeyOf is required")
	}
	if a.ChildrenOf == nil {
		return fmt.Errorf("treeview: Adapter.ChildrenOf is required")
	}
	return nil
}

// Display returns the display text for an item using the adapter's
// DisplayOf accessor, falling back to fmt.Sprint.
func (a Adapter[T]) Display(item T) string {
	if a.DisplayOf != nil {
		return a.DisplayOf(item)
	}
	return fmt.Sprint(item)
}
