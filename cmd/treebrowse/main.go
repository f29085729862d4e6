// Command treebrowse is an interactive terminal browser for hierarchical
// data: a directory tree by default, or a SQLite adjacency list with
// --db. It demonstrates lazy loading, check boxes, and selection on top
// of the treeview engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/config"
	"github.com/stef-k/MauiControlsExtras-sub003/pkg/source"
	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
	"github.com/stef-k/MauiControlsExtras-sub003/pkg/ui"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "~/.config/treebrowse/config.yaml", "Path to config file")
	dbPath := flag.String("db", "", "Browse a SQLite adjacency list instead of the filesystem")
	checks := flag.String("checks", "", "Check mode: independent, cascade, tristate (overrides config)")
	selection := flag.String("selection", "", "Selection mode: none, single, multiple (overrides config)")
	showChecks := flag.Bool("show-checks", false, "Render check boxes")
	noWatch := flag.Bool("no-watch", false, "Disable filesystem watching")
	noState := flag.Bool("no-state", false, "Do not persist expansion state between sessions")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("treebrowse %s\n", version)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "treebrowse requires an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *checks != "" {
		cfg.Checks = *checks
	}
	if *selection != "" {
		cfg.Selection = *selection
	}
	if *showChecks {
		cfg.ShowCheckBoxes = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dbPath != "" {
		runDB(cfg, *dbPath)
		return
	}

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}
	runFS(cfg, root, !*noWatch, !*noState)
}

func runFS(cfg config.Config, root string, watch, persist bool) {
	src, err := source.NewFSSource(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if list, err := source.LoadIgnoreFile(src.Root()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot read %s: %v\n", source.IgnoreFileName, err)
	} else if list != nil {
		src.SetIgnore(list)
	}

	tree, err := treeview.New(src.Adapter())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyModes(cfg, tree)

	roots, err := src.Roots(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing %s: %v\n", src.Root(), err)
		os.Exit(1)
	}

	model := ui.NewTreeModel(tree, ui.DefaultTheme(lipgloss.DefaultRenderer()))
	model.ShowCheckBoxes = cfg.ShowCheckBoxes
	model.Navigator().SelectionFollowsFocus = cfg.SelectionFollowsFocus
	if cfg.PageSize > 0 {
		model.Navigator().SetPageSize(cfg.PageSize)
	}

	a := newApp(src, model)
	tree.Build(roots)
	if persist {
		model.SetStatePath(cfg.StatePath())
	}
	model.Navigator().FocusIn()

	p := tea.NewProgram(a, tea.WithAltScreen())

	if watch {
		w, err := source.NewWatcher(func(dir string) {
			p.Send(fsChangedMsg{dir: dir})
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: filesystem watching disabled: %v\n", err)
		} else {
			defer w.Close()
			if err := w.Add(src.Root()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", src.Root(), err)
			}
			a.watch = w
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDB(cfg config.Config, path string) {
	src, err := source.OpenSQLite(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	tree, err := treeview.New(src.Adapter())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyModes(cfg, tree)

	roots, err := src.Roots(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error querying roots: %v\n", err)
		os.Exit(1)
	}

	model := ui.NewTreeModel(tree, ui.DefaultTheme(lipgloss.DefaultRenderer()))
	model.ShowCheckBoxes = cfg.ShowCheckBoxes
	model.Navigator().SelectionFollowsFocus = cfg.SelectionFollowsFocus
	if cfg.PageSize > 0 {
		model.Navigator().SetPageSize(cfg.PageSize)
	}

	a := newDBApp(src, model)
	tree.Build(roots)
	model.Navigator().FocusIn()

	if _, err := tea.NewProgram(a, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func applyModes[T any](cfg config.Config, tree *treeview.Tree[T]) {
	// Validate already ran; errors are impossible here.
	sel, _ := cfg.SelectionMode()
	cm, _ := cfg.CheckMode()
	tree.SetSelectionMode(sel)
	tree.SetCheckMode(cm)
}

// cycleCheckMode advances independent -> cascade -> tristate -> ... and
// reports the new mode.
func cycleCheckMode[T any](tree *treeview.Tree[T]) string {
	switch tree.CheckMode() {
	case treeview.CheckIndependent:
		tree.SetCheckMode(treeview.CheckCascade)
		return "cascade"
	case treeview.CheckCascade:
		tree.SetCheckMode(treeview.CheckTriState)
		return "tristate"
	default:
		tree.SetCheckMode(treeview.CheckIndependent)
		return "independent"
	}
}
