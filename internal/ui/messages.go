package ui

import "github.com/justinpbarnett/stickerbox/internal/ui/panels"

// Type aliases to panels message types — single source of truth.

type OpenPackMsg = panels.OpenPackMsg

type BackMsg = panels.BackMsg

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

type YankMsg = panels.YankMsg

type FlashMsg = panels.FlashMsg

// clearFlashMsg clears the status bar flash if it still shows Text.
type clearFlashMsg struct {
	Text string
}
