package copier

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/justinpbarnett/stickerbox/internal/clipboard"
)

// Checkpoint names a pipeline step; the last one reached locates a failure.
type Checkpoint string

const (
	StepFetchImage   Checkpoint = "fetch_image"
	StepGetBlob      Checkpoint = "get_blob"
	StepCreateImg    Checkpoint = "create_img_element"
	StepCreateCanvas Checkpoint = "create_canvas"
	StepCanvasToBlob Checkpoint = "canvas_to_blob"
	StepClipboard    Checkpoint = "clipboard_write"
	StepSuccess      Checkpoint = "success"
	StepFailure      Checkpoint = "failure"
)

// Category groups failures by cause.
type Category string

const (
	CategoryNetwork    Category = "NetworkError"
	CategoryDecode     Category = "DecodeError"
	CategoryEncode     Category = "EncodeError"
	CategoryNotAllowed Category = "NotAllowedError"
	CategoryClipboard  Category = "ClipboardError"
)

// Error is a failed copy, carrying what a support request needs.
type Error struct {
	Checkpoint Checkpoint
	Category   Category
	Message    string
	Stack      string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Category, e.Checkpoint, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// fail builds an Error at checkpoint, capturing the current goroutine's stack.
func fail(step Checkpoint, cat Category, err error) *Error {
	return &Error{
		Checkpoint: step,
		Category:   cat,
		Message:    err.Error(),
		Stack:      string(debug.Stack()),
		Err:        err,
	}
}

func clipboardCategory(err error) Category {
	if errors.Is(err, clipboard.ErrNotAllowed) {
		return CategoryNotAllowed
	}
	return CategoryClipboard
}

// Diagnostic renders e as the plain text shown in the failure panel.
func (e *Error) Diagnostic() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Checkpoint: %s\n", e.Checkpoint)
	fmt.Fprintf(&b, "Category:   %s\n", e.Category)
	fmt.Fprintf(&b, "Message:    %s\n", e.Message)
	if e.Stack != "" {
		b.WriteString("\nStack:\n")
		b.WriteString(strings.TrimRight(e.Stack, "\n"))
	}
	return b.String()
}
