package panels

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const gTimeout = 300 * time.Millisecond

// GTimerExpiredMsg is sent when a "gg" window expires. ID names the view
// whose timer fired.
type GTimerExpiredMsg struct{ ID int }

const (
	gTapIDCatalog = 1
	gTapIDPack    = 2
)

// DoubleTap tracks the first "g" of a "gg" jump-to-top.
type DoubleTap struct {
	Pending bool
	id      int
}

func NewDoubleTap(id int) DoubleTap {
	return DoubleTap{id: id}
}

// Check handles a "g" keypress. It fires on the second tap; the first tap
// returns a timer that closes the window.
func (dt *DoubleTap) Check() (fired bool, cmd tea.Cmd) {
	if dt.Pending {
		dt.Pending = false
		return true, nil
	}
	dt.Pending = true
	id := dt.id
	return false, tea.Tick(gTimeout, func(time.Time) tea.Msg {
		return GTimerExpiredMsg{ID: id}
	})
}

// HandleExpiry clears Pending if msg belongs to this view.
func (dt *DoubleTap) HandleExpiry(msg GTimerExpiredMsg) bool {
	if msg.ID == dt.id {
		dt.Pending = false
		return true
	}
	return false
}
