package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
)

func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"docs", "src"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"readme.md", "docs/intro.md", "src/main.go"} {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestNewFSSourceRejectsFiles(t *testing.T) {
	root := writeTree(t)
	if _, err := NewFSSource(filepath.Join(root, "readme.md")); err == nil {
		t.Error("file root should be rejected")
	}
	if _, err := NewFSSource(filepath.Join(root, "missing")); err == nil {
		t.Error("missing root should be rejected")
	}
}

func TestRootsSortedDirsFirst(t *testing.T) {
	src, err := NewFSSource(writeTree(t))
	if err != nil {
		t.Fatal(err)
	}
	roots, err := src.Roots(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(roots))
	for i, r := range roots {
		got[i] = r.Name
	}
	want := []string{"docs", "src", "readme.md"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("roots = %v, want %v", got, want)
		}
	}
	if !roots[0].Dir || roots[2].Dir {
		t.Error("dir flags wrong")
	}
}

func TestLoadPopulatesChildren(t *testing.T) {
	src, err := NewFSSource(writeTree(t))
	if err != nil {
		t.Fatal(err)
	}
	roots, _ := src.Roots(context.Background())
	docs := roots[0]

	if len(docs.children) != 0 {
		t.Fatal("children should start empty")
	}
	if err := src.Load(context.Background(), docs); err != nil {
		t.Fatal(err)
	}
	if len(docs.children) != 1 || docs.children[0].Name != "intro.md" {
		t.Errorf("loaded children = %v", docs.children)
	}
}

// TestLazyTreeIntegration wires the filesystem source into a tree and
// drives the load-on-expand cycle: expand a directory, load it, reload
// the node, and see its entries appear.
func TestLazyTreeIntegration(t *testing.T) {
	src, err := NewFSSource(writeTree(t))
	if err != nil {
		t.Fatal(err)
	}
	tree, err := treeview.New(src.Adapter())
	if err != nil {
		t.Fatal(err)
	}

	var pending []*Item
	tree.SetNotifier(&treeview.Notifier[*Item]{
		LoadChildren: func(item *Item) { pending = append(pending, item) },
	})

	roots, _ := src.Roots(context.Background())
	tree.Build(roots)

	docs, ok := tree.NodeByKey(roots[0].Path)
	if !ok {
		t.Fatal("docs node not registered")
	}
	if docs.IsLeaf() {
		t.Fatal("unloaded directory should not look like a leaf")
	}

	tree.Expand(docs)
	if len(pending) != 1 {
		t.Fatalf("expand fired %d load requests, want 1", len(pending))
	}
	if tree.Len() != 3 {
		t.Errorf("expanded-but-loading view has %d rows, want 3", tree.Len())
	}

	if err := src.Load(context.Background(), pending[0]); err != nil {
		t.Fatal(err)
	}
	if err := tree.ReloadChildren(pending[0].Path); err != nil {
		t.Fatal(err)
	}
	if tree.Len() != 4 {
		t.Errorf("view after load has %d rows, want 4", tree.Len())
	}
	if _, ok := tree.NodeByKey(filepath.Join(roots[0].Path, "intro.md")); !ok {
		t.Error("loaded child not registered")
	}
}

func TestWatcherReportsChangedDir(t *testing.T) {
	root := writeTree(t)
	changed := make(chan string, 8)
	w, err := NewWatcher(func(dir string) { changed <- dir })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	docs := filepath.Join(root, "docs")
	if err := w.Add(docs); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(docs, "new.md"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case dir := <-changed:
		if dir != docs {
			t.Errorf("changed dir = %s, want %s", dir, docs)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification within 3s")
	}
}
