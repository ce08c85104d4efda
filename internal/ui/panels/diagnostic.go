package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justinpbarnett/stickerbox/internal/copier"
	"github.com/justinpbarnett/stickerbox/internal/ui/border"
	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
	"github.com/justinpbarnett/stickerbox/internal/ui/text"
)

// DiagnosticOverlay shows what a failed copy recorded. It stays open until
// dismissed.
type DiagnosticOverlay struct {
	err      *copier.Error
	file     string
	viewport viewport.Model
	width    int
	height   int
}

func NewDiagnosticOverlay(file string, err *copier.Error) *DiagnosticOverlay {
	d := &DiagnosticOverlay{
		err:      err,
		file:     file,
		viewport: viewport.New(0, 0),
	}
	d.SetSize(72, 20)
	return d
}

func (d *DiagnosticOverlay) SetSize(w, h int) {
	d.width, d.height = max(w, 24), max(h, 8)
	d.viewport.Width = d.width - 2
	d.viewport.Height = d.height - 2
	d.viewport.SetContent(d.content(d.viewport.Width))
}

func (d DiagnosticOverlay) Err() *copier.Error { return d.err }

func (d DiagnosticOverlay) content(width int) string {
	label := styles.DiagnosticLabelStyle.Render
	field := func(name, value string) string {
		prefix := label(text.PadRight(name+":", 12))
		lines := text.WrapText(value, max(width-12, 8))
		for i := 1; i < len(lines); i++ {
			lines[i] = strings.Repeat(" ", 12) + lines[i]
		}
		return prefix + strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString(field("Sticker", d.file) + "\n")
	b.WriteString(field("Checkpoint", string(d.err.Checkpoint)) + "\n")
	b.WriteString(field("Category", string(d.err.Category)) + "\n")
	b.WriteString(field("Message", d.err.Message) + "\n")
	if d.err.Stack != "" {
		b.WriteString("\n" + label("Stack:") + "\n")
		for _, line := range strings.Split(strings.TrimRight(d.err.Stack, "\n"), "\n") {
			b.WriteString(styles.TextSecondaryStyle.Render(text.TruncatePath(line, width)) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d DiagnosticOverlay) Update(msg tea.Msg) (DiagnosticOverlay, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "enter":
			return d, func() tea.Msg { return DismissDiagnosticMsg{} }
		case "y":
			report := "Sticker:    " + d.file + "\n" + d.err.Diagnostic()
			return d, func() tea.Msg { return YankMsg{Text: report, Label: "diagnostic"} }
		case "g":
			d.viewport.GotoTop()
			return d, nil
		case "G":
			d.viewport.GotoBottom()
			return d, nil
		}
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d DiagnosticOverlay) View() string {
	hints := []border.Keybind{
		{Key: "j/k", Label: " scroll"},
		{Key: "y", Label: "ank report"},
		{Key: "Esc", Label: " dismiss"},
	}
	return border.RenderPanel("Copy failed", d.viewport.View(), hints, d.width, d.height, true)
}
