package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/source"
	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
	"github.com/stef-k/MauiControlsExtras-sub003/pkg/ui"
)

// splitViewThreshold is the terminal width above which the markdown
// preview pane appears next to the tree.
const splitViewThreshold = 100

type childrenLoadedMsg struct {
	key string
	err error
}

type fsChangedMsg struct{ dir string }

type previewMsg struct {
	key     string
	content string
}

// app is the top-level bubbletea model: a filesystem tree on the left
// and a markdown preview of the focused file on the right.
type app struct {
	tree *ui.TreeModel[*source.Item]
	src  *source.FSSource
	// watch is optional; when set, loaded directories are added to it so
	// external changes refresh their nodes.
	watch *source.Watcher

	viewport viewport.Model
	renderer *glamour.TermRenderer

	// loads carries lazy-load requests out of the synchronous notifier
	// so the work happens in commands, off the update path.
	loads chan *source.Item

	width    int
	height   int
	ready    bool
	showHelp bool
	status   string
	preview  string
	// previewKey is the node the current preview belongs to, so stale
	// renders for a previously focused file are dropped.
	previewKey string
}

func newApp(src *source.FSSource, tree *ui.TreeModel[*source.Item]) *app {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	a := &app{
		tree:     tree,
		src:      src,
		renderer: r,
		loads:    make(chan *source.Item, 32),
	}

	notifier := &treeview.Notifier[*source.Item]{
		LoadChildren: func(item *source.Item) {
			select {
			case a.loads <- item:
			default:
				// Load queue full; the next expand retries.
			}
		},
	}
	tree.Tree().SetNotifier(notifier)
	return a
}

// nextLoad waits for a lazy-load request and performs it.
func (a *app) nextLoad() tea.Cmd {
	return func() tea.Msg {
		item := <-a.loads
		err := a.src.Load(context.Background(), item)
		return childrenLoadedMsg{key: item.Path, err: err}
	}
}

func (a *app) Init() tea.Cmd {
	return a.nextLoad()
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case childrenLoadedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("load failed: %v", msg.err)
		} else if err := a.tree.Tree().ReloadChildren(msg.key); err != nil {
			a.status = fmt.Sprintf("reload failed: %v", err)
		} else if a.watch != nil {
			if err := a.watch.Add(msg.key); err != nil {
				a.status = fmt.Sprintf("watch failed: %v", err)
			}
		}
		return a, a.nextLoad()

	case fsChangedMsg:
		return a, a.reloadDir(msg.dir)

	case previewMsg:
		if msg.key == a.previewKey {
			a.preview = msg.content
			a.viewport.SetContent(msg.content)
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "?":
			a.showHelp = !a.showHelp
			return a, nil
		case "esc":
			if a.showHelp {
				a.showHelp = false
				return a, nil
			}
		case "m":
			a.status = "check mode: " + cycleCheckMode(a.tree.Tree())
			return a, nil
		case "x":
			a.tree.ShowCheckBoxes = !a.tree.ShowCheckBoxes
			return a, nil
		}
		if a.showHelp {
			return a, nil
		}
		handled, cmd := a.tree.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			a.status = ""
			cmds = append(cmds, a.renderPreview())
		} else {
			var vpCmd tea.Cmd
			a.viewport, vpCmd = a.viewport.Update(msg)
			cmds = append(cmds, vpCmd)
		}
		return a, tea.Batch(cmds...)
	}

	return a, nil
}

// reloadDir refreshes a directory the watcher reported as changed, if
// its node has been loaded already.
func (a *app) reloadDir(dir string) tea.Cmd {
	n, ok := a.tree.Tree().NodeByKey(dir)
	if !ok || !n.ChildrenLoaded {
		return nil
	}
	item := n.Item
	return func() tea.Msg {
		err := a.src.Load(context.Background(), item)
		return childrenLoadedMsg{key: item.Path, err: err}
	}
}

// renderPreview kicks off a markdown render of the focused file.
func (a *app) renderPreview() tea.Cmd {
	n := a.tree.Navigator().FocusedNode()
	if n == nil || n.Item.Dir {
		a.previewKey = ""
		a.preview = ""
		a.viewport.SetContent("")
		return nil
	}
	item := n.Item
	a.previewKey = item.Path
	renderer := a.renderer
	return func() tea.Msg {
		content, err := renderFile(renderer, item)
		if err != nil {
			content = fmt.Sprintf("cannot preview %s: %v", item.Name, err)
		}
		return previewMsg{key: item.Path, content: content}
	}
}

func (a *app) layout() {
	treeWidth := a.width
	if a.splitView() {
		treeWidth = a.width * 2 / 5
		a.viewport = viewport.New(a.width-treeWidth-1, a.height-2)
		a.viewport.SetContent(a.preview)
	}
	a.tree.SetSize(treeWidth, a.height-2)
}

func (a *app) splitView() bool { return a.width >= splitViewThreshold }

func (a *app) View() string {
	if !a.ready {
		return "loading..."
	}
	if a.showHelp {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			ui.RenderHelp(a.tree.Theme(), a.tree.KeyMap(), a.width))
	}

	left := a.tree.View()
	body := left
	if a.splitView() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", a.viewport.View())
	}

	status := a.status
	if status == "" {
		status = fmt.Sprintf("%d items  q: quit", a.tree.Tree().Len())
	}
	return body + "\n" + strings.TrimRight(status, "\n")
}
