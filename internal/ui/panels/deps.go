package panels

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
	"github.com/justinpbarnett/stickerbox/internal/copier"
	"github.com/justinpbarnett/stickerbox/internal/preview"
)

const (
	ToastCopied     = "Copied to clipboard!"
	ToastCopyFailed = "Copy failed, press Esc then y to copy the link"
)

// Deps are the collaborators the views call into. Thumbs is nil when
// thumbnails are disabled.
type Deps struct {
	Ctx           context.Context
	Source        catalog.Source
	Pipeline      *copier.Pipeline
	Thumbs        *preview.Loader
	ToastDuration time.Duration
}

func (d *Deps) ctx() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// LoadIndexCmd requests the catalog index once.
func LoadIndexCmd(d *Deps) tea.Cmd {
	ctx, src := d.ctx(), d.Source
	return func() tea.Msg {
		packs, err := src.Index(ctx)
		return IndexLoadedMsg{Packs: packs, Err: err}
	}
}

// LoadManifestCmd requests the manifest for path.
func LoadManifestCmd(d *Deps, path string) tea.Cmd {
	ctx, src := d.ctx(), d.Source
	return func() tea.Msg {
		m, err := src.Manifest(ctx, path)
		return ManifestLoadedMsg{Path: path, Manifest: m, Err: err}
	}
}

// LoadThumbnailCmd renders pack/file into a cols x rows box. It returns nil
// when thumbnails are off or the image is already cached.
func LoadThumbnailCmd(d *Deps, pack, file string, cols, rows int) tea.Cmd {
	if d.Thumbs == nil || file == "" || cols <= 0 || rows <= 0 {
		return nil
	}
	ctx, loader := d.ctx(), d.Thumbs
	return func() tea.Msg {
		art, _ := loader.Load(ctx, pack, file, cols, rows)
		return ThumbnailLoadedMsg{Pack: pack, File: file, Art: art}
	}
}

// WaitCopyCmd blocks until op settles.
func WaitCopyCmd(d *Deps, op *copier.Operation) tea.Cmd {
	ctx := d.ctx()
	return func() tea.Msg {
		res, err := op.Wait(ctx)
		return CopyFinishedMsg{
			OpID:    op.ID,
			Pack:    op.Pack,
			File:    op.FileName,
			Result:  res,
			Err:     err,
			Elapsed: time.Since(op.StartedAt),
		}
	}
}

func thumbKey(pack, file string) string {
	return pack + "/" + file
}
