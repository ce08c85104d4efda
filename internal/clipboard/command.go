package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// CommandWriter shells out to the platform clipboard tools: wl-copy on
// Wayland, xclip on X11 and osascript on macOS.
type CommandWriter struct {
	goos     string
	getenv   func(string) string
	lookPath func(string) (string, error)
	run      func(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error)
	tempDir  string
}

func NewCommandWriter() *CommandWriter {
	return &CommandWriter{
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// macOS clipboard classes understood by `set the clipboard to`.
var appleClasses = map[string]string{
	"image/png":  "«class PNGf»",
	"image/jpeg": "«class JPEG»",
	"image/gif":  "«class GIFf»",
}

func (w *CommandWriter) Write(ctx context.Context, mime string, p Payload) error {
	name, args, err := w.command(mime)
	if err != nil {
		return err
	}

	data, err := p.Wait(ctx)
	if err != nil {
		return err
	}

	var stdin []byte
	if w.goos == "darwin" {
		path, cleanup, err := w.stage(data)
		if err != nil {
			return err
		}
		defer cleanup()
		args = append(args, fmt.Sprintf(`set the clipboard to (read (POSIX file %q) as %s)`, path, appleClasses[mime]))
	} else {
		stdin = data
	}

	out, err := w.run(ctx, name, args, stdin)
	if err != nil {
		return classify(name, out, err)
	}
	return nil
}

// command picks the tool for mime without touching the payload, so an
// unavailable backend gives way before any waiting happens.
func (w *CommandWriter) command(mime string) (string, []string, error) {
	switch w.goos {
	case "darwin":
		if _, ok := appleClasses[mime]; !ok {
			return "", nil, fmt.Errorf("%w: osascript cannot hold %s", ErrUnsupportedType, mime)
		}
		if _, err := w.lookPath("osascript"); err != nil {
			return "", nil, fmt.Errorf("%w: osascript not found", ErrUnavailable)
		}
		return "osascript", []string{"-e"}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		if w.getenv("WAYLAND_DISPLAY") != "" {
			if _, err := w.lookPath("wl-copy"); err == nil {
				return "wl-copy", []string{"--type", mime}, nil
			}
		}
		if w.getenv("DISPLAY") != "" {
			if _, err := w.lookPath("xclip"); err == nil {
				return "xclip", []string{"-selection", "clipboard", "-t", mime, "-i"}, nil
			}
		}
		return "", nil, fmt.Errorf("%w: no wl-copy or xclip for the current display", ErrUnavailable)
	default:
		return "", nil, fmt.Errorf("%w: no clipboard command for %s", ErrUnavailable, w.goos)
	}
}

func (w *CommandWriter) stage(data []byte) (string, func(), error) {
	f, err := os.CreateTemp(w.tempDir, "stickerbox-*.img")
	if err != nil {
		return "", nil, fmt.Errorf("clipboard: staging image: %w", err)
	}
	cleanup := func() { os.Remove(f.Name()) }
	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("clipboard: staging image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("clipboard: staging image: %w", err)
	}
	abs, err := filepath.Abs(f.Name())
	if err != nil {
		cleanup()
		return "", nil, err
	}
	return abs, cleanup, nil
}

var deniedMarkers = []string{
	"not authorized",
	"not allowed",
	"permission denied",
	"can't open display",
	"cannot open display",
}

func classify(name string, out []byte, err error) error {
	msg := strings.TrimSpace(string(out))
	lower := strings.ToLower(msg)
	for _, m := range deniedMarkers {
		if strings.Contains(lower, m) {
			return fmt.Errorf("%w: %s: %s", ErrNotAllowed, name, msg)
		}
	}
	if msg != "" {
		return fmt.Errorf("clipboard: %s: %w: %s", name, err, msg)
	}
	return fmt.Errorf("clipboard: %s: %w", name, err)
}

func runCommand(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	// wl-copy forks a server that keeps the selection alive; it inherits no
	// stdout from us so Run returns once the parent exits.
	err := cmd.Run()
	return stderr.Bytes(), err
}
