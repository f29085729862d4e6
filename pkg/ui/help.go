package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders a compact key-reference modal for the tree view.
// Content is derived from the key map so rebinding keeps the overlay
// accurate.
func RenderHelp(theme Theme, keys KeyMap, width int) string {
	r := theme.Renderer

	modalWidth := 60
	if modalWidth > width-4 {
		modalWidth = width - 4
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)
	sectionStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Secondary)
	keyStyle := r.NewStyle().
		Foreground(theme.Highlight)
	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	row := func(b key.Binding) string {
		h := b.Help()
		return fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-9s", h.Key)), h.Desc)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Tree View Keys"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Muted).Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	for _, binding := range []key.Binding{keys.Up, keys.Down, keys.Left, keys.Right, keys.Home, keys.End, keys.PageUp, keys.PageDown} {
		b.WriteString(row(binding))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Expansion"))
	b.WriteString("\n")
	for _, binding := range []key.Binding{keys.Toggle, keys.Expand, keys.Collapse, keys.ExpandSubtree, keys.ExpandAll, keys.CollapseAll} {
		b.WriteString(row(binding))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Selection"))
	b.WriteString("\n")
	for _, binding := range []key.Binding{keys.Space, keys.Yank, keys.FocusUpNoSel, keys.FocusDownNoSel} {
		b.WriteString(row(binding))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Press ? or Esc to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	return modalStyle.Render(b.String())
}
