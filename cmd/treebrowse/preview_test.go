package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/source"
)

func TestIsMarkdown(t *testing.T) {
	cases := map[string]bool{
		"readme.md":     true,
		"NOTES.MD":      true,
		"doc.markdown":  true,
		"main.go":       false,
		"archive.tar.g": false,
	}
	for path, want := range cases {
		if got := isMarkdown(path); got != want {
			t.Errorf("isMarkdown(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestRenderFilePlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("plain contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := renderFile(nil, &source.Item{Path: path, Name: "notes.txt"})
	if err != nil {
		t.Fatalf("renderFile: %v", err)
	}
	if out != "plain contents" {
		t.Errorf("plain file rendered as %q", out)
	}
}

func TestRenderFileBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := renderFile(nil, &source.Item{Path: path, Name: "blob", Size: 3})
	if err != nil {
		t.Fatalf("renderFile: %v", err)
	}
	if !strings.Contains(out, "binary file") {
		t.Errorf("binary file rendered as %q", out)
	}
}

func TestRenderFileMissing(t *testing.T) {
	if _, err := renderFile(nil, &source.Item{Path: filepath.Join(t.TempDir(), "gone")}); err == nil {
		t.Error("missing file should error")
	}
}
