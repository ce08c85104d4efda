// Package copier fetches a sticker, flattens transparent PNGs onto white and
// writes the result to the clipboard, recording which step a failure hit.
package copier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
	"github.com/justinpbarnett/stickerbox/internal/clipboard"
)

// Result is what ended up on the clipboard.
type Result struct {
	Data       []byte
	MIME       string
	Composited bool
	Width      int
	Height     int
}

// Operation is one copy attempt. Each Start creates a fresh Operation; none
// share state and concurrent operations simply race for the clipboard.
type Operation struct {
	ID        string
	Pack      string
	FileName  string
	MIME      string
	StartedAt time.Time

	mu     sync.Mutex
	step   Checkpoint
	trace  []Checkpoint
	result *Result
	err    *Error
	done   chan struct{}
}

func newOperation(pack, file string) *Operation {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Operation{
		ID:        id.String(),
		Pack:      pack,
		FileName:  file,
		MIME:      InferMIME(file),
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}
}

func (op *Operation) enter(step Checkpoint) {
	op.mu.Lock()
	op.step = step
	op.trace = append(op.trace, step)
	op.mu.Unlock()
}

// Step is the most recent checkpoint.
func (op *Operation) Step() Checkpoint {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.step
}

// Trace lists the checkpoints reached so far, in order.
func (op *Operation) Trace() []Checkpoint {
	op.mu.Lock()
	defer op.mu.Unlock()
	return append([]Checkpoint(nil), op.trace...)
}

func (op *Operation) Done() <-chan struct{} { return op.done }

// Wait blocks until the operation settles and returns its outcome. A failed
// operation returns a *Error.
func (op *Operation) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-op.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.err != nil {
		return nil, op.err
	}
	return op.result, nil
}

func (op *Operation) finish(res *Result, e *Error) {
	op.mu.Lock()
	if e != nil {
		op.err = e
		op.step = StepFailure
	} else {
		op.result = res
		op.step = StepSuccess
	}
	op.trace = append(op.trace, op.step)
	op.mu.Unlock()
	close(op.done)
}

// Pipeline runs copy operations against a catalog source and a clipboard.
type Pipeline struct {
	source  catalog.Source
	writer  clipboard.Writer
	handles Handles
}

func New(source catalog.Source, writer clipboard.Writer) *Pipeline {
	return &Pipeline{source: source, writer: writer}
}

// LiveHandles reports decode handles not yet released across all operations.
func (p *Pipeline) LiveHandles() int64 {
	return p.handles.Live()
}

// Start begins copying pack/file. The declared MIME type is fixed here, and
// the clipboard write is dispatched with a payload that is still unresolved;
// fetching and re-encoding fill it in afterwards. Start never blocks.
func (p *Pipeline) Start(ctx context.Context, pack, file string) *Operation {
	op := newOperation(pack, file)
	payload := clipboard.NewDeferred()

	writeErr := make(chan error, 1)
	go func() {
		writeErr <- p.writer.Write(ctx, op.MIME, payload)
	}()
	go p.produce(ctx, op, payload)
	go p.settle(ctx, op, payload, writeErr)

	return op
}

// Copy runs an operation to completion.
func (p *Pipeline) Copy(ctx context.Context, pack, file string) (*Operation, *Result, error) {
	op := p.Start(ctx, pack, file)
	res, err := op.Wait(ctx)
	return op, res, err
}

func (p *Pipeline) produce(ctx context.Context, op *Operation, payload *clipboard.Deferred) {
	res, e := p.compute(ctx, op)
	if e == nil && res.MIME != op.MIME {
		e = fail(StepClipboard, CategoryClipboard,
			fmt.Errorf("payload is %s but %s was declared for %s", res.MIME, op.MIME, op.FileName))
	}
	if e != nil {
		op.mu.Lock()
		op.err = e
		op.mu.Unlock()
		payload.Reject(e)
		return
	}
	op.mu.Lock()
	op.result = res
	op.mu.Unlock()
	op.enter(StepClipboard)
	payload.Resolve(res.Data)
}

// settle waits for both halves and attributes the outcome: a payload failure
// wins over the write error it caused. produce always resolves or rejects the
// payload, so settle waits for it even after ctx is done; otherwise a late
// checkpoint could land in the trace after the terminal one.
func (p *Pipeline) settle(ctx context.Context, op *Operation, payload *clipboard.Deferred, writeErr <-chan error) {
	var werr error
	select {
	case werr = <-writeErr:
	case <-ctx.Done():
		werr = ctx.Err()
	}

	<-payload.Done()

	op.mu.Lock()
	produced, res := op.err, op.result
	op.mu.Unlock()

	switch {
	case produced != nil:
		op.finish(nil, produced)
	case werr != nil:
		var pe *Error
		if errors.As(werr, &pe) {
			op.finish(nil, pe)
			return
		}
		op.finish(nil, fail(StepClipboard, clipboardCategory(werr), werr))
	default:
		op.finish(res, nil)
	}
}

func (p *Pipeline) compute(ctx context.Context, op *Operation) (*Result, *Error) {
	op.enter(StepFetchImage)
	asset, err := p.source.Asset(ctx, op.Pack, op.FileName)
	if err != nil {
		return nil, fail(StepFetchImage, CategoryNetwork, err)
	}
	defer asset.Body.Close()

	op.enter(StepGetBlob)
	data, err := io.ReadAll(asset.Body)
	if err != nil {
		return nil, fail(StepGetBlob, CategoryNetwork, err)
	}

	typ := blobType(asset.ContentType, data)
	if typ != MIMEPNG {
		return &Result{Data: data, MIME: typ}, nil
	}
	return p.composite(op, data)
}

func (p *Pipeline) composite(op *Operation, data []byte) (*Result, *Error) {
	op.enter(StepCreateImg)
	src, err := p.decode(data)
	if err != nil {
		return nil, fail(StepCreateImg, CategoryDecode, err)
	}

	op.enter(StepCreateCanvas)
	canvas := Flatten(src)

	op.enter(StepCanvasToBlob)
	out, err := encodePNG(canvas)
	if err != nil {
		return nil, fail(StepCanvasToBlob, CategoryEncode, err)
	}

	b := canvas.Bounds()
	return &Result{Data: out, MIME: MIMEPNG, Composited: true, Width: b.Dx(), Height: b.Dy()}, nil
}

// decode holds a handle only for the duration of decoding.
func (p *Pipeline) decode(data []byte) (image.Image, error) {
	h := p.handles.Acquire(data)
	defer h.Release()

	img, _, err := image.Decode(h.Reader())
	if err != nil {
		return nil, fmt.Errorf("decoding bitmap: %w", err)
	}
	return img, nil
}

// Flatten draws src at the origin of an opaque white surface of the same
// pixel size. Transparent pixels come out white instead of black in apps
// that ignore alpha; opaque images are unchanged.
func Flatten(src image.Image) *image.RGBA {
	b := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), src, b.Min, draw.Over)
	return canvas
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	if buf.Len() == 0 {
		return nil, errors.New("encoding png: no data produced")
	}
	return buf.Bytes(), nil
}
