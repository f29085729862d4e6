package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
)

func TestTreeStateRoundTrip(t *testing.T) {
	tree, _ := treeview.New(fileAdapter())
	tree.Build(sampleFiles())
	tree.SetCheckMode(treeview.CheckCascade)
	docs, _ := tree.NodeByKey("/docs")
	tree.Expand(docs)
	intro, _ := tree.NodeByKey("/docs/intro.md")
	tree.SetCheckState(intro, treeview.Checked)

	path := filepath.Join(t.TempDir(), "state", "tree-state.json")
	if err := SaveTreeState(path, CaptureTreeState(tree)); err != nil {
		t.Fatalf("SaveTreeState: %v", err)
	}

	st, err := LoadTreeState(path)
	if err != nil {
		t.Fatalf("LoadTreeState: %v", err)
	}

	// Apply onto a fresh tree built from the same items.
	fresh, _ := treeview.New(fileAdapter())
	fresh.Build(sampleFiles())
	fresh.SetCheckMode(treeview.CheckCascade)
	ApplyTreeState(st, fresh)

	d, _ := fresh.NodeByKey("/docs")
	if !d.Expanded {
		t.Error("expansion not restored")
	}
	i, _ := fresh.NodeByKey("/docs/intro.md")
	if i.Check != treeview.Checked {
		t.Error("check state not restored")
	}
}

func TestLoadTreeStateMissingFile(t *testing.T) {
	st, err := LoadTreeState(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if st != nil {
		t.Error("missing file should yield nil state")
	}
}

func TestLoadTreeStateCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTreeState(path); err == nil {
		t.Error("corrupt file should error")
	}
}

func TestLoadTreeStateVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTreeState(path); err == nil {
		t.Error("version mismatch should error")
	}
}

// TestApplyTreeStateStaleKeys checks that keys for nodes that no longer
// exist are skipped without effect.
func TestApplyTreeStateStaleKeys(t *testing.T) {
	tree, _ := treeview.New(fileAdapter())
	tree.Build(sampleFiles())

	st := &TreeState{
		Version:  1,
		Expanded: []string{"/gone", "/docs"},
		Checked:  []string{"/also-gone"},
	}
	ApplyTreeState(st, tree)

	docs, _ := tree.NodeByKey("/docs")
	if !docs.Expanded {
		t.Error("surviving key should still apply")
	}
}
