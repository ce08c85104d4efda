// Package clipboard writes images (and the occasional string) to the system
// clipboard. Image writers accept a MIME type and a Payload that may still be
// resolving when the write is issued.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"log"
)

var (
	// ErrUnsupportedType means the backend cannot hold data of the requested MIME type.
	ErrUnsupportedType = errors.New("clipboard: unsupported type")
	// ErrUnavailable means the backend cannot reach a clipboard on this machine.
	ErrUnavailable = errors.New("clipboard: unavailable")
	// ErrNotAllowed means the platform refused the write (permission prompt
	// denied, sandbox, missing display authorization).
	ErrNotAllowed = errors.New("clipboard: write not allowed")
)

// Writer puts a single typed image on the clipboard.
type Writer interface {
	Write(ctx context.Context, mime string, p Payload) error
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(ctx context.Context, mime string, p Payload) error

func (f WriterFunc) Write(ctx context.Context, mime string, p Payload) error {
	return f(ctx, mime, p)
}

// Backend names accepted by New.
const (
	BackendAuto    = "auto"
	BackendNative  = "native"
	BackendCommand = "command"
)

// New returns the writer for a configured backend name.
func New(backend string) (Writer, error) {
	switch backend {
	case BackendNative:
		return NewNativeWriter(), nil
	case BackendCommand:
		return NewCommandWriter(), nil
	case BackendAuto, "":
		return Chain{NewCommandWriter(), NewNativeWriter()}, nil
	default:
		return nil, fmt.Errorf("clipboard: unknown backend %q", backend)
	}
}

// Chain tries each writer in order, moving on only when a writer reports
// ErrUnavailable or ErrUnsupportedType. Any other error is final.
type Chain []Writer

func (c Chain) Write(ctx context.Context, mime string, p Payload) error {
	var last error = ErrUnavailable
	for _, w := range c {
		err := w.Write(ctx, mime, p)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrUnavailable) && !errors.Is(err, ErrUnsupportedType) {
			return err
		}
		log.Printf("clipboard: %T skipped: %v", w, err)
		last = err
	}
	return last
}
