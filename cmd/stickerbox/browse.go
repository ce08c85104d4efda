package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
	"github.com/justinpbarnett/stickerbox/internal/clipboard"
	"github.com/justinpbarnett/stickerbox/internal/config"
	"github.com/justinpbarnett/stickerbox/internal/copier"
	"github.com/justinpbarnett/stickerbox/internal/preview"
	"github.com/justinpbarnett/stickerbox/internal/ui"
	"github.com/justinpbarnett/stickerbox/internal/ui/panels"
	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
)

func runBrowse(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	dir := fs.String("dir", "", "browse a local sticker directory instead of source.base_url")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *dir != "" {
		cfg.Source.Dir = *dir
	}

	route, err := ui.ParseRoute(fs.Arg(0))
	if err != nil {
		return err
	}

	logFile, err := openLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	deps, err := newDeps(ctx, cfg)
	if err != nil {
		return err
	}

	styles.Apply(cfg.UI.Theme)
	p := tea.NewProgram(ui.NewApp(deps, route), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// openLog sends the standard logger to STICKERBOX_LOG or
// ~/.stickerbox/debug.log so nothing is written over the TUI.
func openLog() (*os.File, error) {
	path := os.Getenv("STICKERBOX_LOG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate home directory: %w", err)
		}
		path = filepath.Join(home, ".stickerbox", "debug.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "stickerbox")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

func newPipeline(cfg *config.Config) (catalog.Source, *copier.Pipeline, error) {
	src, err := cfg.NewSource()
	if err != nil {
		return nil, nil, err
	}
	w, err := clipboard.New(cfg.Clipboard.Backend)
	if err != nil {
		return nil, nil, err
	}
	return src, copier.New(src, w), nil
}

func newDeps(ctx context.Context, cfg *config.Config) (*panels.Deps, error) {
	src, pipeline, err := newPipeline(cfg)
	if err != nil {
		return nil, err
	}

	deps := &panels.Deps{
		Ctx:           ctx,
		Source:        src,
		Pipeline:      pipeline,
		ToastDuration: cfg.ToastDuration(),
	}
	if !cfg.ThumbnailsEnabled() {
		return deps, nil
	}
	thumbs, err := preview.NewLoader(src, cfg.UI.ThumbnailCache)
	if err != nil {
		return nil, err
	}
	thumbs.Background = styles.ThumbnailBackground()
	deps.Thumbs = thumbs
	return deps, nil
}
