package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/source"
	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
	"github.com/stef-k/MauiControlsExtras-sub003/pkg/ui"
)

// dbApp is the tree-only browser for a SQLite-backed hierarchy.
type dbApp struct {
	tree *ui.TreeModel[*source.Row]
	src  *source.SQLiteSource

	loads chan *source.Row

	height int
	ready  bool
	status string
}

func newDBApp(src *source.SQLiteSource, tree *ui.TreeModel[*source.Row]) *dbApp {
	a := &dbApp{
		tree:  tree,
		src:   src,
		loads: make(chan *source.Row, 32),
	}
	tree.Tree().SetNotifier(&treeview.Notifier[*source.Row]{
		LoadChildren: func(row *source.Row) {
			select {
			case a.loads <- row:
			default:
			}
		},
	})
	return a
}

func (a *dbApp) nextLoad() tea.Cmd {
	return func() tea.Msg {
		row := <-a.loads
		err := a.src.Load(context.Background(), row)
		return childrenLoadedMsg{key: a.src.Adapter().KeyOf(row), err: err}
	}
}

func (a *dbApp) Init() tea.Cmd { return a.nextLoad() }

func (a *dbApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.ready = true
		a.height = msg.Height
		a.tree.SetSize(msg.Width, msg.Height-2)
		return a, nil

	case childrenLoadedMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("load failed: %v", msg.err)
		} else if err := a.tree.Tree().ReloadChildren(msg.key); err != nil {
			a.status = fmt.Sprintf("reload failed: %v", err)
		}
		return a, a.nextLoad()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "m":
			a.status = "check mode: " + cycleCheckMode(a.tree.Tree())
			return a, nil
		case "x":
			a.tree.ShowCheckBoxes = !a.tree.ShowCheckBoxes
			return a, nil
		}
		if handled, cmd := a.tree.Update(msg); handled {
			a.status = ""
			return a, cmd
		}
		return a, nil
	}
	return a, nil
}

func (a *dbApp) View() string {
	if !a.ready {
		return "loading..."
	}
	status := a.status
	if status == "" {
		status = fmt.Sprintf("%d items  q: quit", a.tree.Tree().Len())
	}
	return a.tree.View() + "\n" + status
}
