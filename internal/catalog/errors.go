package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a missing pack, manifest or asset.
var ErrNotFound = errors.New("not found")

// IndexLoadError is returned when the catalog index cannot be fetched or parsed.
type IndexLoadError struct {
	Err error
}

func (e *IndexLoadError) Error() string {
	return fmt.Sprintf("load index: %v", e.Err)
}

func (e *IndexLoadError) Unwrap() error { return e.Err }

// ManifestLoadError is returned when a pack manifest cannot be fetched or parsed.
type ManifestLoadError struct {
	Pack string
	Err  error
}

func (e *ManifestLoadError) Error() string {
	return fmt.Sprintf("load manifest %q: %v", e.Pack, e.Err)
}

func (e *ManifestLoadError) Unwrap() error { return e.Err }

// StatusError is a non-success HTTP response.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned %d", e.URL, e.Code)
	}
	return fmt.Sprintf("%s returned %d: %s", e.URL, e.Code, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match 404 and 410 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && (e.Code == 404 || e.Code == 410)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
