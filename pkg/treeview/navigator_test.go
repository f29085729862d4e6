package treeview

import "testing"

func newNavTree(t *testing.T) (*Tree[entry], *Navigator[entry]) {
	t.Helper()
	tree := newTestTree(t, sampleItems())
	return tree, NewNavigator(tree)
}

func TestNavigatorEmptyView(t *testing.T) {
	tree := newTestTree(t, nil)
	nav := NewNavigator(tree)

	if nav.Focus() != -1 {
		t.Errorf("focus on empty view = %d, want -1", nav.Focus())
	}
	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd, KeyEnter, KeySpace} {
		if nav.Handle(k) {
			t.Errorf("Handle(%v) on empty view = true, want not handled", k)
		}
	}
}

func TestNavigatorFirstFocusIn(t *testing.T) {
	_, nav := newNavTree(t)

	if nav.Focus() != -1 {
		t.Errorf("initial focus = %d, want -1 (unset)", nav.Focus())
	}
	if !nav.FocusIn() {
		t.Fatal("FocusIn on non-empty view = false")
	}
	if nav.Focus() != 0 {
		t.Errorf("focus after first focus-in = %d, want 0", nav.Focus())
	}
}

func TestNavigatorUpDownWrap(t *testing.T) {
	_, nav := newNavTree(t) // view: [A, B]
	nav.FocusIn()

	if !nav.Handle(KeyUp) {
		t.Fatal("KeyUp not handled")
	}
	if nav.Focus() != 1 {
		t.Errorf("Up at index 0 wrapped to %d, want last index 1", nav.Focus())
	}

	if !nav.Handle(KeyDown) {
		t.Fatal("KeyDown not handled")
	}
	if nav.Focus() != 0 {
		t.Errorf("Down at last index wrapped to %d, want 0", nav.Focus())
	}
}

func TestNavigatorRightExpandsThenDescends(t *testing.T) {
	tree, nav := newNavTree(t)
	nav.FocusIn() // on A, collapsed with children

	if !nav.Handle(KeyRight) {
		t.Fatal("Right on collapsed parent not handled")
	}
	a, _ := tree.NodeByKey("A")
	if !a.Expanded {
		t.Error("Right should expand the collapsed node")
	}
	if nav.Focus() != 0 {
		t.Errorf("Right on collapsed node moved focus to %d, want stay at 0", nav.Focus())
	}

	if !nav.Handle(KeyRight) {
		t.Fatal("second Right not handled")
	}
	if got := nav.FocusedNode().Key; got != "A1" {
		t.Errorf("second Right focused %s, want first child A1", got)
	}

	// Right on a leaf is not handled.
	if nav.Handle(KeyRight) {
		t.Error("Right on a leaf should report not handled")
	}
}

func TestNavigatorLeftCollapsesThenAscends(t *testing.T) {
	tree, nav := newNavTree(t)
	a, _ := tree.NodeByKey("A")
	tree.Expand(a)
	nav.FocusIn()

	// Focus A1.
	nav.Handle(KeyDown)
	if nav.FocusedNode().Key != "A1" {
		t.Fatal("setup: expected focus on A1")
	}

	// Left on a leaf moves focus to the parent.
	if !nav.Handle(KeyLeft) {
		t.Fatal("Left on leaf with parent not handled")
	}
	if nav.FocusedNode().Key != "A" {
		t.Errorf("Left focused %s, want parent A", nav.FocusedNode().Key)
	}

	// Left on the expanded parent collapses it, focus stays.
	if !nav.Handle(KeyLeft) {
		t.Fatal("Left on expanded parent not handled")
	}
	if a.Expanded {
		t.Error("Left should collapse the expanded node")
	}
	if nav.FocusedNode().Key != "A" {
		t.Errorf("focus moved to %s during collapse, want A", nav.FocusedNode().Key)
	}

	// Left on a collapsed root is not handled.
	if nav.Handle(KeyLeft) {
		t.Error("Left on collapsed root should report not handled")
	}
}

func TestNavigatorHomeEnd(t *testing.T) {
	tree, nav := newNavTree(t)
	tree.ExpandAll() // [A, A1, A2, B]
	nav.FocusIn()

	nav.Handle(KeyEnd)
	if nav.FocusedNode().Key != "B" {
		t.Errorf("End focused %s, want B", nav.FocusedNode().Key)
	}
	nav.Handle(KeyHome)
	if nav.FocusedNode().Key != "A" {
		t.Errorf("Home focused %s, want A", nav.FocusedNode().Key)
	}
}

func TestNavigatorPageBounds(t *testing.T) {
	var items []entry
	for i := 0; i < 25; i++ {
		items = append(items, entry{id: string(rune('a' + i))})
	}
	tree := newTestTree(t, items)
	nav := NewNavigator(tree)
	nav.SetPageSize(10)
	nav.FocusIn()

	nav.Handle(KeyPageDown)
	if nav.Focus() != 10 {
		t.Errorf("PageDown focus = %d, want 10", nav.Focus())
	}
	nav.Handle(KeyPageDown)
	nav.Handle(KeyPageDown)
	if nav.Focus() != 24 {
		t.Errorf("PageDown past end focus = %d, want clamped 24 (no wrap)", nav.Focus())
	}
	nav.Handle(KeyPageUp)
	nav.Handle(KeyPageUp)
	nav.Handle(KeyPageUp)
	if nav.Focus() != 0 {
		t.Errorf("PageUp past start focus = %d, want clamped 0", nav.Focus())
	}
}

func TestNavigatorEnterTogglesExpansion(t *testing.T) {
	tree, nav := newNavTree(t)
	nav.FocusIn()
	a, _ := tree.NodeByKey("A")

	if !nav.Handle(KeyEnter) {
		t.Fatal("Enter on parent not handled")
	}
	if !a.Expanded {
		t.Error("Enter should expand a collapsed parent")
	}
	if !nav.Handle(KeyEnter) {
		t.Fatal("second Enter not handled")
	}
	if a.Expanded {
		t.Error("Enter should collapse an expanded parent")
	}

	// Enter on a leaf is not handled.
	nav.Handle(KeyEnd)
	if nav.Handle(KeyEnter) {
		t.Error("Enter on leaf should report not handled")
	}
}

func TestNavigatorSpaceChecksOrSelects(t *testing.T) {
	tree, nav := newNavTree(t)
	tree.SetSelectionMode(SelectionMultiple)
	tree.SetCheckMode(CheckCascade)
	nav.FocusIn()
	a, _ := tree.NodeByKey("A")

	// With check boxes hidden, Space toggles selection.
	nav.ShowCheckBoxes = false
	if !nav.Handle(KeySpace) {
		t.Fatal("Space not handled")
	}
	if !a.Selected {
		t.Error("Space should toggle selection when check boxes are hidden")
	}
	if a.Check != Unchecked {
		t.Error("Space must not touch check state when check boxes are hidden")
	}

	// With check boxes shown, Space toggles check state.
	nav.ShowCheckBoxes = true
	if !nav.Handle(KeySpace) {
		t.Fatal("Space not handled with check boxes shown")
	}
	if a.Check != Checked {
		t.Error("Space should toggle check state when check boxes are shown")
	}
}

func TestNavigatorSpaceNoSelectionMode(t *testing.T) {
	_, nav := newNavTree(t)
	nav.FocusIn()
	if nav.Handle(KeySpace) {
		t.Error("Space under SelectionNone without check boxes should report not handled")
	}
}

func TestNavigatorPlusMinus(t *testing.T) {
	tree, nav := newNavTree(t)
	nav.FocusIn()
	a, _ := tree.NodeByKey("A")

	if !nav.Handle(KeyExpand) {
		t.Fatal("'+' on collapsed parent not handled")
	}
	if !a.Expanded {
		t.Error("'+' should expand")
	}
	if nav.Handle(KeyExpand) {
		t.Error("'+' on expanded node should report not handled")
	}

	if !nav.Handle(KeyCollapse) {
		t.Fatal("'-' on expanded parent not handled")
	}
	if a.Expanded {
		t.Error("'-' should collapse")
	}
	if nav.Handle(KeyCollapse) {
		t.Error("'-' on collapsed node should report not handled")
	}
}

func TestNavigatorExpandSubtree(t *testing.T) {
	tree := newTestTree(t, []entry{
		{id: "r", children: []entry{
			{id: "a", children: []entry{{id: "a1"}}},
		}},
	})
	nav := NewNavigator(tree)
	nav.FocusIn()

	if !nav.Handle(KeyExpandSubtree) {
		t.Fatal("'*' not handled")
	}
	if tree.Len() != 3 {
		t.Errorf("'*' revealed %d nodes, want 3", tree.Len())
	}
	if nav.FocusedNode().Key != "r" {
		t.Errorf("'*' moved focus to %s, want stay at r", nav.FocusedNode().Key)
	}
}

func TestNavigatorSelectionFollowsFocus(t *testing.T) {
	tree, nav := newNavTree(t)
	tree.SetSelectionMode(SelectionSingle)
	nav.SelectionFollowsFocus = true
	nav.FocusIn()

	nav.Handle(KeyDown)
	b, _ := tree.NodeByKey("B")
	if !b.Selected {
		t.Error("Down with selection-follows-focus should select the focused node")
	}

	// MoveFocus is the pure focus move: no selection side effect.
	nav.MoveFocus(-1)
	a, _ := tree.NodeByKey("A")
	if a.Selected {
		t.Error("MoveFocus must not touch the selection")
	}
	if !b.Selected {
		t.Error("previous selection should be intact after MoveFocus")
	}
}

func TestNavigatorFocusClampsAfterCollapse(t *testing.T) {
	tree, nav := newNavTree(t)
	tree.ExpandAll()
	nav.FocusIn()
	nav.Handle(KeyEnd) // focus B at index 3

	tree.CollapseAll() // view shrinks to [A, B]
	if nav.Focus() >= tree.Len() {
		t.Errorf("focus %d out of bounds after collapse (len %d)", nav.Focus(), tree.Len())
	}
}

func TestNavigatorFocusNode(t *testing.T) {
	tree, nav := newNavTree(t)
	a1, _ := tree.NodeByKey("A1")

	if nav.FocusNode(a1) {
		t.Error("FocusNode on hidden node should fail")
	}
	tree.ExpandPathTo("A1")
	if !nav.FocusNode(a1) {
		t.Error("FocusNode on visible node should succeed")
	}
	if nav.FocusedNode() != a1 {
		t.Error("FocusedNode should be the requested node")
	}
}
