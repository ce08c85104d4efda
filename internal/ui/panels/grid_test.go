package panels

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGridMove(t *testing.T) {
	var g Grid
	g.Resize(7, 3, 2) // rows: [0 1 2] [3 4 5] [6]

	g.Move(1, 0)
	if g.Selected() != 1 {
		t.Fatalf("right: got %d", g.Selected())
	}
	g.Move(0, 1)
	if g.Selected() != 4 {
		t.Fatalf("down: got %d", g.Selected())
	}
	g.Move(0, 1)
	if g.Selected() != 6 {
		t.Fatalf("down into short last row: got %d, want 6", g.Selected())
	}
	g.Move(0, 1)
	if g.Selected() != 6 {
		t.Fatalf("down at bottom: got %d", g.Selected())
	}
	g.Move(-1, 0)
	if g.Selected() != 5 {
		t.Fatalf("left wraps to previous row: got %d", g.Selected())
	}
	g.Top()
	g.Move(0, -1)
	g.Move(-1, 0)
	if g.Selected() != 0 {
		t.Fatalf("up/left at top: got %d", g.Selected())
	}
}

func TestGridScrollsToSelection(t *testing.T) {
	var g Grid
	g.Resize(20, 4, 2)

	start, end := g.Visible()
	if start != 0 || end != 8 {
		t.Fatalf("initial visible [%d,%d)", start, end)
	}
	g.Bottom()
	start, end = g.Visible()
	if start != 12 || end != 20 {
		t.Errorf("visible after Bottom [%d,%d), want [12,20)", start, end)
	}
	g.Top()
	if start, _ := g.Visible(); start != 0 {
		t.Errorf("visible after Top starts at %d", start)
	}
}

func TestGridEmpty(t *testing.T) {
	var g Grid
	g.Resize(0, 3, 3)
	g.Move(1, 1)
	if g.Selected() != -1 {
		t.Errorf("empty grid selected %d", g.Selected())
	}
	if start, end := g.Visible(); start != end {
		t.Errorf("empty grid visible [%d,%d)", start, end)
	}
}

func TestGridShrinkClampsSelection(t *testing.T) {
	var g Grid
	g.Resize(10, 2, 2)
	g.Bottom()
	g.Resize(3, 2, 2)
	if g.Selected() != 2 {
		t.Errorf("selected %d after shrink, want 2", g.Selected())
	}
}

func TestRenderGridLayout(t *testing.T) {
	var g Grid
	g.Resize(5, 2, 3)
	cards := []card{{caption: "one"}, {caption: "two"}, {caption: "three"}, {caption: "four"}, {caption: "five"}}

	out := renderGrid(cards, g, false)
	lines := strings.Split(out, "\n")
	if len(lines) != 3*cardHeight(false) {
		t.Fatalf("got %d lines, want %d", len(lines), 3*cardHeight(false))
	}
	if w := lipgloss.Width(lines[0]); w != 2*CardWidth {
		t.Errorf("row width %d, want %d", w, 2*CardWidth)
	}
	for _, c := range cards {
		if !strings.Contains(out, c.caption) {
			t.Errorf("missing caption %q", c.caption)
		}
	}
}

func TestRenderGridCaptionKeepsExtension(t *testing.T) {
	var g Grid
	g.Resize(1, 1, 1)
	out := renderGrid([]card{{caption: "an-extremely-long-sticker-file-name.webp"}}, g, false)
	if !strings.Contains(out, "….webp") {
		t.Errorf("caption lost its extension:\n%s", out)
	}
}
