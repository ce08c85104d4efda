package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/justinpbarnett/stickerbox/internal/config"
)

const usage = `Usage: stickerbox [command] [flags]

Commands:
  browse [ROUTE]     open the sticker browser (default), ROUTE is / or /pack/NAME
  copy PACK FILE     copy one sticker to the clipboard
  index DIR          write DIR/index.json from the pack manifests in DIR
  serve              serve a sticker directory over HTTP
  version            print the version and check for updates
  update             install the latest release
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := "browse"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "index":
		return runIndex(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch cmd {
	case "browse":
		return runBrowse(ctx, cfg, args)
	case "copy":
		return runCopy(ctx, cfg, args)
	case "serve":
		return runServe(ctx, cfg, args)
	case "version":
		return runVersion(ctx, cfg)
	case "update":
		return runUpdate(ctx, cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// parseFlags parses args into fs, printing usage on error.
func parseFlags(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(os.Stderr)
	return fs.Parse(args)
}
