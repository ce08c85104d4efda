package layout

// Layout holds the computed cell dimensions of the single content view and
// the status bar below it.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	ContentWidth  int
	ContentHeight int

	StatusBarWidth int
}

const (
	// MinWidth fits two sticker cards side by side plus the border.
	MinWidth  = 40
	MinHeight = 12
)

// Calculate computes view dimensions from terminal size. Subtracts 1 row for
// the status bar. Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	l.ContentWidth = termWidth
	l.ContentHeight = termHeight - 1
	l.StatusBarWidth = termWidth
	return l
}
