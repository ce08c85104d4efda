package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/stickerbox/internal/ui/border"
	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  46,
		height: 22,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(padKey(key)) + "  " + styles.TextPrimaryStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Navigation") + "\n")
	b.WriteString(kv("h/j/k/l", "Move through the grid") + "\n")
	b.WriteString(kv("gg/G", "First / last card") + "\n")
	b.WriteString(kv("Enter", "Open pack") + "\n")
	b.WriteString(kv("Esc", "Back to packs") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Stickers") + "\n")
	b.WriteString(kv("Enter", "Copy image to clipboard") + "\n")
	b.WriteString(kv("y", "Copy image link") + "\n")
	b.WriteString(kv("Esc", "Dismiss copy failure") + "\n")
	b.WriteString(kv("y", "Copy failure report") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global") + "\n")
	b.WriteString(kv("/", "Filter packs") + "\n")
	b.WriteString(kv("r", "Reload packs") + "\n")
	b.WriteString(kv("?", "Toggle this help") + "\n")
	b.WriteString(kv("q", "Quit"))

	hints := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.RenderPanel("Keybinds", b.String(), hints, h.width, h.height, true)
}

func padKey(k string) string {
	const w = 7
	if len(k) >= w {
		return k
	}
	return k + strings.Repeat(" ", w-len(k))
}
