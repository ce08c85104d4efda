package panels

import (
	"time"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
	"github.com/justinpbarnett/stickerbox/internal/copier"
)

// OpenPackMsg asks the app to route to /pack/{Path}.
type OpenPackMsg struct {
	Path string
}

// BackMsg asks the app to route back to the catalog.
type BackMsg struct{}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// IndexLoadedMsg carries the result of one catalog index request.
type IndexLoadedMsg struct {
	Packs []catalog.PackSummary
	Err   error
}

// ManifestLoadedMsg carries the result of a manifest request for Path.
type ManifestLoadedMsg struct {
	Path     string
	Manifest *catalog.Manifest
	Err      error
}

// ThumbnailLoadedMsg carries rendered thumbnail art. Art is a placeholder
// when loading failed.
type ThumbnailLoadedMsg struct {
	Pack string
	File string
	Art  string
}

// CopyFinishedMsg reports a settled copy operation.
type CopyFinishedMsg struct {
	OpID    string
	Pack    string
	File    string
	Result  *copier.Result
	Err     error
	Elapsed time.Duration
}

// ClearToastMsg clears the toast shown with the matching sequence number.
type ClearToastMsg struct {
	Seq int64
}

// YankMsg asks the app to put Text on the clipboard. Label names what was
// copied in the status bar.
type YankMsg struct {
	Text  string
	Label string
}

// FlashMsg shows a short note in the status bar.
type FlashMsg struct {
	Text  string
	Level FlashLevel
}

// DismissDiagnosticMsg closes the copy failure panel.
type DismissDiagnosticMsg struct{}
