// Package source provides hierarchical item sources for the tree view:
// a lazy filesystem walker and a SQLite-backed adjacency list. Both load
// children on demand so huge hierarchies never materialize up front.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
)

// Item is one filesystem entry. Children are populated by Load, not at
// construction, so directories act as lazy nodes.
type Item struct {
	Path    string
	Name    string
	Dir     bool
	Size    int64
	ModTime time.Time

	children []*Item
}

// FSSource serves filesystem hierarchies rooted at a directory.
type FSSource struct {
	root   string
	ignore *IgnoreList
}

// NewFSSource validates root and returns a source for it.
func NewFSSource(root string) (*FSSource, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}
	return &FSSource{root: abs}, nil
}

// Root returns the absolute root path.
func (s *FSSource) Root() string { return s.root }

// SetIgnore installs a filter applied to every listing. Pass nil to
// show everything.
func (s *FSSource) SetIgnore(list *IgnoreList) { s.ignore = list }

// Adapter returns the treeview accessors for filesystem items.
// Directories always report potential children so they stay expandable
// before their contents are read.
func (s *FSSource) Adapter() treeview.Adapter[*Item] {
	return treeview.Adapter[*Item]{
		KeyOf:      func(i *Item) string { return i.Path },
		ChildrenOf: func(i *Item) []*Item { return i.children },
		DisplayOf:  func(i *Item) string { return i.Name },
		HasChildrenOf: func(i *Item) bool {
			return i.Dir
		},
		IconOf: func(i *Item) string {
			if i.Dir {
				return "🗀"
			}
			return ""
		},
	}
}

// Roots lists the entries directly under the source root.
func (s *FSSource) Roots(ctx context.Context) ([]*Item, error) {
	return s.readDir(ctx, s.root)
}

// Load populates item.children from disk. Call ReloadChildren on the
// tree afterwards to surface them.
func (s *FSSource) Load(ctx context.Context, item *Item) error {
	if !item.Dir {
		return nil
	}
	children, err := s.readDir(ctx, item.Path)
	if err != nil {
		return err
	}
	item.children = children
	return nil
}

// readDir lists one directory, stat-ing entries concurrently, and
// returns them directories-first then by name.
func (s *FSSource) readDir(ctx context.Context, dir string) ([]*Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	kept := entries[:0]
	for _, entry := range entries {
		if !s.ignore.Match(entry.Name(), entry.IsDir()) {
			kept = append(kept, entry)
		}
	}
	entries = kept

	items := make([]*Item, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(16)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := &Item{
				Path: filepath.Join(dir, entry.Name()),
				Name: entry.Name(),
				Dir:  entry.IsDir(),
			}
			// Best effort: entries that vanish mid-listing keep zero
			// size and mod time.
			if info, err := entry.Info(); err == nil {
				item.Size = info.Size()
				item.ModTime = info.ModTime()
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(items, func(a, b int) bool {
		if items[a].Dir != items[b].Dir {
			return items[a].Dir
		}
		return items[a].Name < items[b].Name
	})
	return items, nil
}
