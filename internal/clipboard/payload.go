package clipboard

import (
	"context"
	"sync"
)

// Payload is the image data handed to a Writer. It may already be available
// or still being computed when the write is issued.
type Payload interface {
	// Wait blocks until the bytes are available, the computation fails, or
	// ctx is done.
	Wait(ctx context.Context) ([]byte, error)
}

// Deferred is a Payload resolved exactly once by its producer. Waiting on it
// from several goroutines is safe; all of them observe the same outcome.
type Deferred struct {
	once sync.Once
	done chan struct{}
	data []byte
	err  error
}

func NewDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Resolve publishes data. Calls after the first Resolve or Reject are ignored.
func (d *Deferred) Resolve(data []byte) {
	d.once.Do(func() {
		d.data = data
		close(d.done)
	})
}

// Reject publishes a failure. Calls after the first Resolve or Reject are ignored.
func (d *Deferred) Reject(err error) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
	})
}

func (d *Deferred) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-d.done:
		return d.data, d.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done is closed once the payload has been resolved or rejected.
func (d *Deferred) Done() <-chan struct{} { return d.done }

type ready []byte

func (r ready) Wait(context.Context) ([]byte, error) { return r, nil }

// Ready wraps bytes that are already available.
func Ready(data []byte) Payload { return ready(data) }
