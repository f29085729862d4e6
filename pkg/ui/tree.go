package ui

import (
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
)

// KeyMap holds the key bindings the tree view understands.
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Left           key.Binding
	Right          key.Binding
	Home           key.Binding
	End            key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Toggle         key.Binding
	Space          key.Binding
	Expand         key.Binding
	Collapse       key.Binding
	ExpandSubtree  key.Binding
	ExpandAll      key.Binding
	CollapseAll    key.Binding
	Yank           key.Binding
	FocusUpNoSel   key.Binding
	FocusDownNoSel key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:           key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse/parent")),
		Right:          key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand/child")),
		Home:           key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		End:            key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		PageUp:         key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:       key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Toggle:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle")),
		Space:          key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check/select")),
		Expand:         key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "expand")),
		Collapse:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "collapse")),
		ExpandSubtree:  key.NewBinding(key.WithKeys("*"), key.WithHelp("*", "expand subtree")),
		ExpandAll:      key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		CollapseAll:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
		Yank:           key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank path")),
		FocusUpNoSel:   key.NewBinding(key.WithKeys("ctrl+up"), key.WithHelp("ctrl+↑", "focus up")),
		FocusDownNoSel: key.NewBinding(key.WithKeys("ctrl+down"), key.WithHelp("ctrl+↓", "focus down")),
	}
}

// TreeModel is the tree-view control: it owns a treeview engine plus its
// navigator and renders the flattened view into a scrolling window.
type TreeModel[T any] struct {
	tree *treeview.Tree[T]
	nav  *treeview.Navigator[T]

	theme Theme
	keys  KeyMap

	width          int
	height         int
	viewportOffset int // index of first visible row

	// ShowCheckBoxes renders a check glyph per row and routes Space to
	// check toggling.
	ShowCheckBoxes bool

	// statePath persists expansion/check state between sessions; empty
	// disables persistence.
	statePath string
}

// NewTreeModel wraps an engine in a renderable control.
func NewTreeModel[T any](tree *treeview.Tree[T], theme Theme) *TreeModel[T] {
	return &TreeModel[T]{
		tree:  tree,
		nav:   treeview.NewNavigator(tree),
		theme: theme,
		keys:  DefaultKeyMap(),
	}
}

// Tree exposes the underlying engine.
func (t *TreeModel[T]) Tree() *treeview.Tree[T] { return t.tree }

// Navigator exposes the focus state machine.
func (t *TreeModel[T]) Navigator() *treeview.Navigator[T] { return t.nav }

// SetKeyMap replaces the key bindings.
func (t *TreeModel[T]) SetKeyMap(k KeyMap) { t.keys = k }

// KeyMap returns the active key bindings.
func (t *TreeModel[T]) KeyMap() KeyMap { return t.keys }

// Theme returns the active theme.
func (t *TreeModel[T]) Theme() Theme { return t.theme }

// SetStatePath enables persistence of expansion/check state to the given
// file and applies any previously saved state. Call after Build and
// before the first structural change.
func (t *TreeModel[T]) SetStatePath(path string) {
	t.statePath = path
	if path == "" {
		return
	}
	if st, err := LoadTreeState(path); err != nil {
		log.Printf("warning: invalid tree state file, using defaults: %v", err)
	} else if st != nil {
		ApplyTreeState(st, t.tree)
	}
}

// SetSize updates the window the control renders into and derives the
// navigation page size from it.
func (t *TreeModel[T]) SetSize(width, height int) {
	t.width = width
	t.height = height
	if half := height / 2; half > 0 {
		t.nav.SetPageSize(half)
	}
}

// Update feeds one bubbletea message into the control. The returned bool
// reports whether the message was consumed, so an embedding model can
// propagate unhandled keys elsewhere.
func (t *TreeModel[T]) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.SetSize(msg.Width, msg.Height)
		return false, nil
	case tea.KeyMsg:
		return t.handleKey(msg), nil
	}
	return false, nil
}

func (t *TreeModel[T]) handleKey(msg tea.KeyMsg) bool {
	t.nav.ShowCheckBoxes = t.ShowCheckBoxes

	handled := false
	structural := false
	switch {
	case key.Matches(msg, t.keys.Up):
		handled = t.nav.Handle(treeview.KeyUp)
	case key.Matches(msg, t.keys.Down):
		handled = t.nav.Handle(treeview.KeyDown)
	case key.Matches(msg, t.keys.Left):
		handled = t.nav.Handle(treeview.KeyLeft)
		structural = handled
	case key.Matches(msg, t.keys.Right):
		handled = t.nav.Handle(treeview.KeyRight)
		structural = handled
	case key.Matches(msg, t.keys.Home):
		handled = t.nav.Handle(treeview.KeyHome)
	case key.Matches(msg, t.keys.End):
		handled = t.nav.Handle(treeview.KeyEnd)
	case key.Matches(msg, t.keys.PageUp):
		handled = t.nav.Handle(treeview.KeyPageUp)
	case key.Matches(msg, t.keys.PageDown):
		handled = t.nav.Handle(treeview.KeyPageDown)
	case key.Matches(msg, t.keys.Toggle):
		handled = t.nav.Handle(treeview.KeyEnter)
		structural = handled
	case key.Matches(msg, t.keys.Space):
		handled = t.nav.Handle(treeview.KeySpace)
		structural = handled && t.ShowCheckBoxes
	case key.Matches(msg, t.keys.Expand):
		handled = t.nav.Handle(treeview.KeyExpand)
		structural = handled
	case key.Matches(msg, t.keys.Collapse):
		handled = t.nav.Handle(treeview.KeyCollapse)
		structural = handled
	case key.Matches(msg, t.keys.ExpandSubtree):
		handled = t.nav.Handle(treeview.KeyExpandSubtree)
		structural = handled
	case key.Matches(msg, t.keys.ExpandAll):
		t.tree.ExpandAll()
		handled, structural = true, true
	case key.Matches(msg, t.keys.CollapseAll):
		t.tree.CollapseAll()
		handled, structural = true, true
	case key.Matches(msg, t.keys.Yank):
		handled = t.yankFocused()
	case key.Matches(msg, t.keys.FocusUpNoSel):
		handled = t.nav.MoveFocus(-1)
	case key.Matches(msg, t.keys.FocusDownNoSel):
		handled = t.nav.MoveFocus(1)
	}

	if structural {
		t.persistState()
	}
	t.ensureFocusVisible()
	return handled
}

// persistState saves expansion/check state to disk. Errors are logged but
// do not interrupt interaction.
func (t *TreeModel[T]) persistState() {
	if t.statePath == "" {
		return
	}
	if err := SaveTreeState(t.statePath, CaptureTreeState(t.tree)); err != nil {
		log.Printf("warning: failed to persist tree state: %v", err)
	}
}

// yankFocused copies the focused node's ancestry path to the clipboard.
func (t *TreeModel[T]) yankFocused() bool {
	n := t.nav.FocusedNode()
	if n == nil {
		return false
	}
	adapter := t.tree.Adapter()
	var parts []string
	for p := n; p != nil; p = p.Parent {
		parts = append([]string{adapter.Display(p.Item)}, parts...)
	}
	if err := clipboard.WriteAll(strings.Join(parts, "/")); err != nil {
		log.Printf("warning: clipboard write failed: %v", err)
		return false
	}
	return true
}

// ensureFocusVisible scrolls the window so the focused row stays on
// screen.
func (t *TreeModel[T]) ensureFocusVisible() {
	focus := t.nav.Focus()
	if focus < 0 {
		t.viewportOffset = 0
		return
	}
	h := t.rowCount()
	if focus < t.viewportOffset {
		t.viewportOffset = focus
	} else if focus >= t.viewportOffset+h {
		t.viewportOffset = focus - h + 1
	}
	if t.viewportOffset < 0 {
		t.viewportOffset = 0
	}
}

func (t *TreeModel[T]) rowCount() int {
	if t.height > 0 {
		return t.height
	}
	return 20
}

// visibleRange returns [start, end) of flattened-view rows to render, an
// O(1) calculation from the viewport offset and height.
func (t *TreeModel[T]) visibleRange() (start, end int) {
	total := t.tree.Len()
	if total == 0 {
		return 0, 0
	}
	h := t.rowCount()
	start = t.viewportOffset
	end = start + h
	if end > total {
		end = total
		start = end - h
		if start < 0 {
			start = 0
		}
	}
	if start > total {
		start = total
	}
	return start, end
}

// View renders the visible window of the flattened view.
func (t *TreeModel[T]) View() string {
	if t.tree.Len() == 0 {
		return t.renderEmptyState()
	}

	var sb strings.Builder
	focus := t.nav.Focus()
	start, end := t.visibleRange()
	for i := start; i < end; i++ {
		n := t.tree.NodeAt(i)
		line := t.renderNode(n)
		switch {
		case i == focus:
			line = t.theme.Selected.Render(line)
		case n.Selected:
			line = t.theme.Marked.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *TreeModel[T]) renderEmptyState() string {
	muted := t.theme.Renderer.NewStyle().Foreground(t.theme.Muted)
	return muted.Render("Nothing to display.")
}

// renderNode renders one row: branch prefix, expand indicator, optional
// check glyph and icon, then the truncated display text.
func (t *TreeModel[T]) renderNode(n *treeview.Node[T]) string {
	r := t.theme.Renderer
	adapter := t.tree.Adapter()
	var sb strings.Builder

	prefix := t.branchPrefix(n)
	sb.WriteString(r.NewStyle().Foreground(t.theme.Muted).Render(prefix))

	indicator := glyphLeaf
	if !n.IsLeaf() {
		if n.Expanded {
			indicator = glyphExpanded
		} else {
			indicator = glyphCollapsed
		}
	}
	sb.WriteString(r.NewStyle().Foreground(t.theme.Secondary).Render(indicator))
	sb.WriteString(" ")

	if t.ShowCheckBoxes {
		glyph := glyphUnchecked
		switch n.Check {
		case treeview.Checked:
			glyph = glyphChecked
		case treeview.Indeterminate:
			glyph = glyphIndeterminate
		}
		sb.WriteString(r.NewStyle().Foreground(t.theme.Highlight).Render(glyph))
		sb.WriteString(" ")
	}

	if adapter.IconOf != nil {
		if icon := adapter.IconOf(n.Item); icon != "" {
			sb.WriteString(icon)
			sb.WriteString(" ")
		}
	}

	text := adapter.Display(n.Item)
	maxLen := t.width - runewidth.StringWidth(prefix) - 8
	if maxLen < 12 {
		maxLen = 12
	}
	sb.WriteString(runewidth.Truncate(text, maxLen, "…"))

	return sb.String()
}

// branchPrefix builds the indentation and branch characters for a node
// from its ancestor chain: a vertical bar per ancestor level that still
// has siblings below, then the branch for the node itself.
func (t *TreeModel[T]) branchPrefix(n *treeview.Node[T]) string {
	if n.Level == 0 {
		return ""
	}
	var parts []string
	for p := n.Parent; p != nil && p.Level > 0; p = p.Parent {
		if t.hasSiblingsBelow(p) {
			parts = append([]string{"│   "}, parts...)
		} else {
			parts = append([]string{"    "}, parts...)
		}
	}
	if t.isLastChild(n) {
		parts = append(parts, "└── ")
	} else {
		parts = append(parts, "├── ")
	}
	return strings.Join(parts, "")
}

func (t *TreeModel[T]) hasSiblingsBelow(n *treeview.Node[T]) bool {
	siblings := t.siblingsOf(n)
	for i, s := range siblings {
		if s == n {
			return i < len(siblings)-1
		}
	}
	return false
}

func (t *TreeModel[T]) isLastChild(n *treeview.Node[T]) bool {
	siblings := t.siblingsOf(n)
	return len(siblings) > 0 && siblings[len(siblings)-1] == n
}

func (t *TreeModel[T]) siblingsOf(n *treeview.Node[T]) []*treeview.Node[T] {
	if n.Parent == nil {
		return t.tree.Roots()
	}
	return n.Parent.Children
}
