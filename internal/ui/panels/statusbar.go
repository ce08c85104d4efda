package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
)

const flashDurationVal = 4 * time.Second

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	route      string
	keys       help.KeyMap
	help       help.Model
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
}

func NewStatusBar(keys help.KeyMap) StatusBar {
	h := help.New()
	h.ShortSeparator = " · "
	return StatusBar{keys: keys, help: h, route: "/"}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	left := " " + styles.TextSecondaryStyle.Render("stickerbox "+Version) +
		sep + styles.TextPrimaryStyle.Render(s.route)

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default:
			icon, color = "●", styles.StatusInfo
		}
		left += sep + lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon+" "+s.flash)
	}

	right := ""
	if s.keys != nil {
		h := s.help
		h.Width = max(s.width-lipgloss.Width(left)-2, 0)
		right = h.View(s.keys) + " "
	}

	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetRoute(route string) {
	s.route = route
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s StatusBar) Flash() string { return s.flash }

func (s *StatusBar) SetSize(w int) {
	s.width = w
}
