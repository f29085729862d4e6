package ui

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
)

// treeStateVersion guards against loading state written by an
// incompatible build.
const treeStateVersion = 1

// TreeState is the persistable portion of a tree: which nodes are
// expanded and which are checked, addressed by key so it survives
// rebuilds.
type TreeState struct {
	Version  int      `json:"version"`
	Expanded []string `json:"expanded,omitempty"`
	Checked  []string `json:"checked,omitempty"`
}

// CaptureTreeState snapshots the expansion and check state of a tree.
// Expanded keys are recorded in pre-order so ancestors restore before
// descendants. Indeterminate states are derived, so only fully checked
// nodes are recorded.
func CaptureTreeState[T any](tree *treeview.Tree[T]) *TreeState {
	st := &TreeState{Version: treeStateVersion}
	var walk func(n *treeview.Node[T])
	walk = func(n *treeview.Node[T]) {
		if n.Expanded {
			st.Expanded = append(st.Expanded, n.Key)
		}
		if n.Check == treeview.Checked {
			st.Checked = append(st.Checked, n.Key)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range tree.Roots() {
		walk(r)
	}
	return st
}

// ApplyTreeState restores the captured state onto a built tree. Keys
// that no longer exist are skipped silently so stale state degrades
// instead of failing.
func ApplyTreeState[T any](st *TreeState, tree *treeview.Tree[T]) {
	for _, key := range st.Expanded {
		if n, ok := tree.NodeByKey(key); ok {
			tree.Expand(n)
		}
	}
	for _, key := range st.Checked {
		if n, ok := tree.NodeByKey(key); ok {
			tree.SetCheckState(n, treeview.Checked)
		}
	}
}

// SaveTreeState writes the state to path, creating parent directories as
// needed.
func SaveTreeState(path string, st *TreeState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tree state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write tree state: %w", err)
	}
	return nil
}

// LoadTreeState reads state from path. A missing file is not an error
// and yields (nil, nil); a corrupt or version-mismatched file is.
func LoadTreeState(path string) (*TreeState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tree state: %w", err)
	}
	var st TreeState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse tree state: %w", err)
	}
	if st.Version != treeStateVersion {
		return nil, fmt.Errorf("unsupported tree state version %d", st.Version)
	}
	return &st, nil
}
