package treeview

// Notifier carries the host's observation callbacks. Any field may be nil,
// in which case that notification is simply dropped. Within a single
// operation the ordering is always: mutate state, re-flatten, notify.
//
// Callbacks run synchronously on the mutating goroutine. They must not
// re-enter the tree with further mutations, with one exception: a
// LoadChildren callback may call ReloadChildren for the item it was
// given before returning.
type Notifier[T any] struct {
	// NodeExpanded fires after a node's expansion is committed and the
	// view re-flattened.
	NodeExpanded func(n *Node[T])

	// NodeCollapsing fires before a collapse is committed. Returning
	// false cancels the collapse; no state is mutated.
	NodeCollapsing func(n *Node[T]) bool

	// NodeCollapsed fires after a collapse is committed.
	NodeCollapsed func(n *Node[T])

	// NodeChecked fires once per SetCheckState/ToggleCheck call for the
	// node the user acted on, after propagation has settled.
	NodeChecked func(n *Node[T], state CheckState)

	// SelectionChanged fires once per operation that changes the
	// externally observable selection, carrying the prior and new
	// selection snapshots in view order.
	SelectionChanged func(old, new []T)

	// ItemDeselected fires once per node actually deselected during an
	// operation, so hosts can react per item (releasing resources, etc).
	ItemDeselected func(n *Node[T])

	// ItemTapped / ItemDoubleTapped fire from the Tap and DoubleTap entry
	// points after their selection / expansion side effects.
	ItemTapped       func(n *Node[T])
	ItemDoubleTapped func(n *Node[T])

	// LoadChildren is the lazy-load bridge: it fires when a node whose
	// children are not yet materialized is expanded. The host must
	// eventually call ReloadChildren for the item (synchronously or after
	// an asynchronous fetch). Until then the node renders expanded but
	// empty and a repeat expansion re-fires this callback.
	LoadChildren func(item T)

	// ViewChanged fires with the full flattened view after every
	// structural mutation (expand, collapse, rebuild, reload).
	ViewChanged func(flat []*Node[T])

	// DuplicateKey fires when Build or ReloadChildren encounters an item
	// whose key is already registered. The later occurrence is skipped.
	DuplicateKey func(key string)
}

func (no *Notifier[T]) nodeExpanded(n *Node[T]) {
	if no != nil && no.NodeExpanded != nil {
		no.NodeExpanded(n)
	}
}

func (no *Notifier[T]) nodeCollapsing(n *Node[T]) bool {
	if no != nil && no.NodeCollapsing != nil {
		return no.NodeCollapsing(n)
	}
	return true
}

func (no *Notifier[T]) nodeCollapsed(n *Node[T]) {
	if no != nil && no.NodeCollapsed != nil {
		no.NodeCollapsed(n)
	}
}

func (no *Notifier[T]) nodeChecked(n *Node[T], s CheckState) {
	if no != nil && no.NodeChecked != nil {
		no.NodeChecked(n, s)
	}
}

func (no *Notifier[T]) selectionChanged(old, new []T) {
	if no != nil && no.SelectionChanged != nil {
		no.SelectionChanged(old, new)
	}
}

func (no *Notifier[T]) itemDeselected(n *Node[T]) {
	if no != nil && no.ItemDeselected != nil {
		no.ItemDeselected(n)
	}
}

func (no *Notifier[T]) itemTapped(n *Node[T]) {
	if no != nil && no.ItemTapped != nil {
		no.ItemTapped(n)
	}
}

func (no *Notifier[T]) itemDoubleTapped(n *Node[T]) {
	if no != nil && no.ItemDoubleTapped != nil {
		no.ItemDoubleTapped(n)
	}
}

func (no *Notifier[T]) loadChildren(item T) {
	if no != nil && no.LoadChildren != nil {
		no.LoadChildren(item)
	}
}

func (no *Notifier[T]) viewChanged(flat []*Node[T]) {
	if no != nil && no.ViewChanged != nil {
		no.ViewChanged(flat)
	}
}

func (no *Notifier[T]) duplicateKey(key string) {
	if no != nil && no.DuplicateKey != nil {
		no.DuplicateKey(key)
	}
}
