package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/justinpbarnett/stickerbox/internal/config"
	"github.com/justinpbarnett/stickerbox/internal/copier"
	"github.com/justinpbarnett/stickerbox/internal/ui/text"
)

func runCopy(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("copy", flag.ContinueOnError)
	dir := fs.String("dir", "", "read stickers from a local directory")
	verbose := fs.Bool("v", false, "print the checkpoint trace")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("usage: stickerbox copy [-dir DIR] [-v] PACK FILE")
	}
	if *dir != "" {
		cfg.Source.Dir = *dir
	}

	_, p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	op, res, err := p.Copy(ctx, fs.Arg(0), fs.Arg(1))
	if *verbose {
		steps := make([]string, 0, len(op.Trace()))
		for _, s := range op.Trace() {
			steps = append(steps, string(s))
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", op.ID, strings.Join(steps, " → "))
	}
	if err != nil {
		var cerr *copier.Error
		if errors.As(err, &cerr) {
			fmt.Fprintln(os.Stderr, cerr.Diagnostic())
		}
		return fmt.Errorf("copy %s/%s failed", op.Pack, op.FileName)
	}

	note := ""
	if res.Composited {
		note = fmt.Sprintf(", flattened %dx%d", res.Width, res.Height)
	}
	fmt.Printf("Copied %s (%s, %s%s)\n", op.FileName, res.MIME, text.FormatBytes(len(res.Data)), note)
	return nil
}
