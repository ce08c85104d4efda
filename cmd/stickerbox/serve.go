package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
	"github.com/justinpbarnett/stickerbox/internal/config"
	"github.com/justinpbarnett/stickerbox/internal/server"
)

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	dir := fs.String("dir", cfg.Server.Dir, "sticker directory to serve")
	addr := fs.String("addr", cfg.Server.Addr, "listen address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "serving %s at http://%s/stickers/\n", *dir, displayAddr(*addr))
	return server.New(*dir, *addr).Run(ctx)
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: stickerbox index DIR")
	}
	n, err := catalog.WriteIndexFile(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s/%s (%d packs)\n", fs.Arg(0), catalog.IndexName, n)
	return nil
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
