package server

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
)

// IndexCache holds the generated index.json for a sticker directory until
// something under the directory changes.
type IndexCache struct {
	fsys fs.FS

	mu     sync.Mutex
	data   []byte
	valid  bool
	builds int
}

func NewIndexCache(fsys fs.FS) *IndexCache {
	return &IndexCache{fsys: fsys}
}

// Get returns the cached index, regenerating it if it was invalidated.
func (c *IndexCache) Get() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid {
		return c.data, nil
	}

	entries, err := catalog.BuildIndex(c.fsys)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	var buf bytes.Buffer
	if err := catalog.WriteIndex(&buf, entries); err != nil {
		return nil, fmt.Errorf("encoding index: %w", err)
	}
	c.data, c.valid = buf.Bytes(), true
	c.builds++
	return c.data, nil
}

func (c *IndexCache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// Builds reports how many times the index has been generated.
func (c *IndexCache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}
