package copier

import (
	"bytes"
	"io"
	"sync/atomic"
)

// Handles counts outstanding decode handles. A handle is the only reference
// the decoder gets to a fetched blob; every copy must release its handle
// whether decoding succeeded or not, so Live returns to zero between copies.
type Handles struct {
	live atomic.Int64
}

// Handle is a temporary reference to blob bytes for decoding.
type Handle struct {
	owner    *Handles
	data     []byte
	released atomic.Bool
}

func (h *Handles) Acquire(data []byte) *Handle {
	h.live.Add(1)
	return &Handle{owner: h, data: data}
}

// Live reports how many handles have not been released.
func (h *Handles) Live() int64 {
	return h.live.Load()
}

func (h *Handle) Reader() io.Reader {
	return bytes.NewReader(h.data)
}

// Release drops the reference. Repeated calls are no-ops.
func (h *Handle) Release() {
	if h.released.CompareAndSwap(false, true) {
		h.data = nil
		h.owner.live.Add(-1)
	}
}
