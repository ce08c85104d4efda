package panels

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
)

const DefaultToastDuration = 2 * time.Second

// toastSeq is shared by every view so a timer from a closed view can never
// clear a toast shown by its replacement.
var toastSeq atomic.Int64

// Toast is a transient notification that clears itself after a delay.
type Toast struct {
	text    string
	failure bool
	seq     int64
}

// Show replaces the current toast and returns the timer that clears it.
func (t *Toast) Show(msg string, failure bool, d time.Duration) tea.Cmd {
	if d <= 0 {
		d = DefaultToastDuration
	}
	t.text, t.failure = msg, failure
	t.seq = toastSeq.Add(1)
	seq := t.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearToastMsg{Seq: seq}
	})
}

// Clear drops the toast if msg belongs to it. Older timers are ignored.
func (t *Toast) Clear(msg ClearToastMsg) bool {
	if msg.Seq != t.seq || t.text == "" {
		return false
	}
	t.text = ""
	return true
}

func (t Toast) Text() string { return t.text }

func (t Toast) View(width int) string {
	if t.text == "" {
		return ""
	}
	style := styles.ToastSuccessStyle
	icon := "✓ "
	if t.failure {
		style = styles.ToastErrorStyle
		icon = "✗ "
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(icon+t.text))
}
