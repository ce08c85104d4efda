package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	SelectedCardStyle  = lipgloss.NewStyle().Background(SelectedCardBg).Bold(true)
	FilterMatchStyle   = lipgloss.NewStyle().Foreground(FilterMatch).Underline(true)

	ToastSuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccess).Bold(true)
	ToastErrorStyle   = lipgloss.NewStyle().Foreground(StatusError).Bold(true)

	DiagnosticLabelStyle = lipgloss.NewStyle().Foreground(KeybindKey).Bold(true)
)

// Apply switches the global color handling for a ui.theme value. "light"
// forces the light half of every adaptive color, "mono" drops color entirely.
func Apply(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
