// Package ui provides the terminal tree-view control: a bubbletea
// component that renders a treeview engine and feeds keyboard input into
// its navigator.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme bundles the colors and styles the tree view renders with. All
// styles are created through the theme's renderer so output degrades
// correctly on dumb terminals.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	// Selected styles the row under the cursor.
	Selected lipgloss.Style
	// Marked styles rows that are in the selection set but not under the
	// cursor.
	Marked lipgloss.Style
}

// DefaultTheme returns the stock theme bound to the given renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	primary := lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#A78BFA"}
	secondary := lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	highlight := lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

	return Theme{
		Renderer:  r,
		Primary:   primary,
		Secondary: secondary,
		Muted:     muted,
		Highlight: highlight,
		Selected: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
			Background(primary).
			Bold(true),
		Marked: r.NewStyle().
			Foreground(highlight).
			Bold(true),
	}
}

// Check glyphs for the three check states.
const (
	glyphUnchecked     = "[ ]"
	glyphChecked       = "[x]"
	glyphIndeterminate = "[~]"
)

// Expand indicators: leaf, expanded, collapsed.
const (
	glyphLeaf      = "•"
	glyphExpanded  = "▾"
	glyphCollapsed = "▸"
)
