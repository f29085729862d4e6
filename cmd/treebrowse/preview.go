package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/source"
)

// maxPreviewBytes caps how much of a file the preview reads.
const maxPreviewBytes = 256 * 1024

// renderFile produces the preview pane content for a file: glamour for
// markdown, plain text for everything else readable.
func renderFile(renderer *glamour.TermRenderer, item *source.Item) (string, error) {
	data, err := os.ReadFile(item.Path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	if len(data) > maxPreviewBytes {
		data = data[:maxPreviewBytes]
	}

	if isMarkdown(item.Path) && renderer != nil {
		out, err := renderer.Render(string(data))
		if err == nil {
			return out, nil
		}
		// Fall back to plain text on render failure.
	}

	if !isPrintable(data) {
		return fmt.Sprintf("%s\n\nbinary file, %d bytes", item.Name, item.Size), nil
	}
	return string(data), nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// isPrintable reports whether data looks like text: no NUL bytes in the
// first chunk.
func isPrintable(data []byte) bool {
	n := len(data)
	if n > 8000 {
		n = 8000
	}
	for _, b := range data[:n] {
		if b == 0 {
			return false
		}
	}
	return true
}
