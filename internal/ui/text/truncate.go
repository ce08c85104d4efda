// Package text fits sticker names, routes and failure reports into terminal
// cells. Widths are measured in cells with ANSI escapes ignored.
package text

import (
	"path"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// wrapBreaks are the extra points a long URL or file path may be split at.
const wrapBreaks = "/.?&=_:"

// Truncate cuts s to width cells, ending in "…" when anything was dropped.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, ellipsis)
}

// TruncateName shortens a sticker file name but keeps its extension, so
// "very-long-cat.png" becomes "very-l….png" rather than "very-long-c…".
// Anything without a short extension, or too narrow to show one, falls back
// to Truncate.
func TruncateName(name string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(name) <= width {
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	room := width - ansi.StringWidth(ext)
	if len(ext) < 2 || len(ext) > 6 || strings.ContainsRune(ext, ' ') || stem == "" || room < 2 {
		return Truncate(name, width)
	}
	return ansi.Truncate(stem, room, ellipsis) + ext
}

// TruncatePath keeps the tail of a path or stack frame, where the pack name
// or file:line lives, and drops from the left.
func TruncatePath(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w <= width {
		return s
	}
	if width == 1 {
		return ellipsis
	}
	return ansi.TruncateLeft(s, w-width+1, ellipsis)
}

// WrapText wraps s to width cells, one string per line. Existing newlines
// are kept. Words longer than a line, such as asset URLs, are split at path
// separators when possible and hard-split otherwise, so nothing is lost.
func WrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	if s == "" {
		return []string{""}
	}
	lines := strings.Split(ansi.Wrap(s, width, wrapBreaks), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// PadRight pads s with spaces to width cells. Wider input is returned as is.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
