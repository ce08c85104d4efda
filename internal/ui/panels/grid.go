package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/stickerbox/internal/ui/border"
	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
	"github.com/justinpbarnett/stickerbox/internal/ui/text"
)

const (
	CardWidth = 18
	ThumbRows = 4
)

// Grid is the selection and scroll state of a card grid laid out row-major.
type Grid struct {
	count       int
	cols        int
	visibleRows int
	selected    int
	offsetRow   int
}

// Resize updates the item count and viewport, keeping the selection in range.
func (g *Grid) Resize(count, cols, visibleRows int) {
	g.count = count
	g.cols = max(cols, 1)
	g.visibleRows = max(visibleRows, 1)
	g.clamp()
}

// Move shifts the selection by dx columns and dy rows. Horizontal moves wrap
// across rows; vertical moves stop at the edges.
func (g *Grid) Move(dx, dy int) {
	if g.count == 0 {
		return
	}
	next := g.selected + dx + dy*g.cols
	if dy != 0 && (next < 0 || next >= g.count) {
		if dy > 0 && g.row(g.count-1) > g.row(g.selected) {
			next = g.count - 1
		} else {
			return
		}
	}
	g.selected = next
	g.clamp()
}

func (g *Grid) Top() {
	g.selected = 0
	g.clamp()
}

func (g *Grid) Bottom() {
	g.selected = g.count - 1
	g.clamp()
}

// Selected is the selected index, or -1 when the grid is empty.
func (g Grid) Selected() int {
	if g.count == 0 {
		return -1
	}
	return g.selected
}

// Visible returns the half-open index range currently on screen.
func (g Grid) Visible() (start, end int) {
	start = g.offsetRow * g.cols
	end = min(start+g.visibleRows*g.cols, g.count)
	return start, end
}

func (g Grid) row(i int) int { return i / max(g.cols, 1) }

func (g *Grid) clamp() {
	if g.count == 0 {
		g.selected, g.offsetRow = 0, 0
		return
	}
	g.selected = min(max(g.selected, 0), g.count-1)
	r := g.row(g.selected)
	if r < g.offsetRow {
		g.offsetRow = r
	}
	if r >= g.offsetRow+g.visibleRows {
		g.offsetRow = r - g.visibleRows + 1
	}
	lastRow := g.row(g.count - 1)
	g.offsetRow = min(g.offsetRow, max(lastRow-g.visibleRows+1, 0))
}

// card is one grid cell: optional thumbnail art above a caption.
type card struct {
	caption string
	art     string
}

func cardHeight(thumbs bool) int {
	if thumbs {
		return ThumbRows + 3
	}
	return 3
}

func gridColumns(width int) int {
	return max(width/CardWidth, 1)
}

func gridRows(height int, thumbs bool) int {
	return max(height/cardHeight(thumbs), 1)
}

// renderGrid draws the visible cards of g, highlighting the selection.
func renderGrid(cards []card, g Grid, thumbs bool) string {
	start, end := g.Visible()
	if start >= end {
		return ""
	}
	h := cardHeight(thumbs)
	inner := CardWidth - 2

	var rows []string
	var row []string
	for i := start; i < end; i++ {
		c := cards[i]
		var body strings.Builder
		if thumbs {
			art := c.art
			if art == "" {
				art = strings.Repeat("\n", ThumbRows-1)
			}
			body.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, art))
			body.WriteString("\n")
		}
		caption := text.TruncateName(c.caption, inner)
		if i == g.Selected() {
			caption = styles.SelectedCardStyle.Render(caption)
		}
		body.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, caption))

		row = append(row, border.RenderPanel("", body.String(), nil, CardWidth, h, i == g.Selected()))
		if len(row) == g.cols || i == end-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
