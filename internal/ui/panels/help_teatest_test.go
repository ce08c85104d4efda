package panels

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

func TestHelpOverlayRendersAndCloses(t *testing.T) {
	h := NewHelpOverlay()

	tm := teatest.NewTestModel(t, wrapHelpOverlay(h), teatest.WithInitialTermSize(50, 30))
	waitForAll(t, tm, "Keybinds", "Copy image link", "Copy failure report")

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}
