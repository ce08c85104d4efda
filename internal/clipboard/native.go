package clipboard

import (
	"context"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// NativeWriter talks to the OS clipboard through golang.design/x/clipboard.
// That library only carries images as PNG, so other types are rejected.
type NativeWriter struct {
	once    sync.Once
	initErr error
	init    func() error
	write   func(data []byte)
}

func NewNativeWriter() *NativeWriter {
	return &NativeWriter{
		init: clipboard.Init,
		write: func(data []byte) {
			// The returned channel only reports a later overwrite; nothing to wait for.
			clipboard.Write(clipboard.FmtImage, data)
		},
	}
}

func (w *NativeWriter) Write(ctx context.Context, mime string, p Payload) error {
	if mime != "image/png" {
		return fmt.Errorf("%w: native clipboard holds png only, got %s", ErrUnsupportedType, mime)
	}
	w.once.Do(func() { w.initErr = w.init() })
	if w.initErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, w.initErr)
	}

	data, err := p.Wait(ctx)
	if err != nil {
		return err
	}
	w.write(data)
	return nil
}
