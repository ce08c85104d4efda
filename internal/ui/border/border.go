// Package border draws rounded panels with a title in the top edge and key
// hints in the bottom edge.
package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
)

const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

func edgeStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Foreground(styles.BorderFocused)
	}
	return lipgloss.NewStyle().Foreground(styles.BorderUnfocused)
}

// Top renders ╭─ Title ───╮ at exactly width columns.
func Top(title string, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	es := edgeStyle(focused)
	inner := width - 2
	if title == "" || inner < 4 {
		return es.Render(cornerTL + strings.Repeat(horizBar, inner) + cornerTR)
	}

	ts := styles.TextSecondaryStyle.Bold(true)
	if focused {
		ts = styles.TitleStyle
	}
	// "─ " + title + " " must leave room for the fill.
	title = lipgloss.NewStyle().MaxWidth(max(inner-3, 0)).Render(title)
	rendered := ts.Render(title)
	fill := max(inner-3-lipgloss.Width(rendered), 0)

	return es.Render(cornerTL+horizBar+" ") + rendered + es.Render(" "+strings.Repeat(horizBar, fill)+cornerTR)
}

// Bottom renders the lower edge. Key hints are only shown when focused, and
// hints that do not fit are dropped from the right.
func Bottom(hints []Keybind, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	es := edgeStyle(focused)
	inner := width - 2
	if !focused || len(hints) == 0 || inner < 4 {
		return es.Render(cornerBL + strings.Repeat(horizBar, inner) + cornerBR)
	}

	budget := max(inner-3, 0)
	var parts []string
	used := 0
	for _, kb := range hints {
		r := RenderKeybind(kb)
		w := lipgloss.Width(r)
		if len(parts) > 0 {
			w += 2
		}
		if used+w > budget {
			break
		}
		parts = append(parts, r)
		used += w
	}

	return es.Render(cornerBL+horizBar+" ") +
		strings.Join(parts, "  ") +
		es.Render(" "+strings.Repeat(horizBar, budget-used)+cornerBR)
}

// Sides wraps each content line in │…│, cropping or padding it to width-2.
func Sides(content string, width int, focused bool) string {
	if width < 2 {
		return content
	}
	es := edgeStyle(focused)
	inner := width - 2
	crop := lipgloss.NewStyle().MaxWidth(inner)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if lipgloss.Width(line) > inner {
			line = crop.Render(line)
		}
		if pad := inner - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[i] = es.Render(vertBar) + line + es.Render(vertBar)
	}
	return strings.Join(lines, "\n")
}

// RenderPanel assembles a bordered box of exactly width x height cells.
func RenderPanel(title, content string, hints []Keybind, width, height int, focused bool) string {
	if height < 2 || width < 2 {
		return ""
	}
	inner := height - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > inner {
		lines = lines[:inner]
	}
	for len(lines) < inner {
		lines = append(lines, "")
	}

	if inner == 0 {
		return Top(title, width, focused) + "\n" + Bottom(hints, width, focused)
	}
	return Top(title, width, focused) + "\n" +
		Sides(strings.Join(lines, "\n"), width, focused) + "\n" +
		Bottom(hints, width, focused)
}
