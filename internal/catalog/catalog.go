// Package catalog loads the sticker pack index, per-pack manifests and the raw
// image assets they reference, either over HTTP or from a local directory laid
// out the same way as the served tree:
//
//	index.json
//	<pack>/manifest.json
//	<pack>/<sticker files>
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	// DefaultIndexPath is where the combined index is served relative to the base URL.
	DefaultIndexPath = "stickers/index.json"
	// DefaultAssetBase is the directory segment that prefixes every pack path.
	DefaultAssetBase = "stickers"
	// ManifestName is the per-pack manifest file name.
	ManifestName = "manifest.json"
	// IndexName is the file name of a pre-generated index inside a sticker directory.
	IndexName = "index.json"
)

// PackSummary is one entry of the catalog index. Identity is Path.
type PackSummary struct {
	ID           PackID `json:"id"`
	Path         string `json:"path"`
	DisplayName  string `json:"displayName"`
	PreviewImage string `json:"previewImage"`
}

// Manifest describes a single pack. Path is attached after load and is not
// part of the stored document. Stickers order is the display order.
type Manifest struct {
	DisplayName  string   `json:"displayName"`
	PreviewImage string   `json:"previewImage"`
	Stickers     []string `json:"stickers"`
	Path         string   `json:"-"`
}

// PackID accepts either a JSON number or a JSON string. Hand-written indexes
// use numbers, generated ones carry whatever the manifest had.
type PackID string

func (id *PackID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PackID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("pack id: %w", err)
	}
	*id = PackID(n.String())
	return nil
}

// Asset is an opened image resource. The caller must close Body.
type Asset struct {
	URL         string
	ContentType string
	Body        io.ReadCloser
}

// Source provides the catalog documents and image bytes.
type Source interface {
	Index(ctx context.Context) ([]PackSummary, error)
	Manifest(ctx context.Context, pack string) (*Manifest, error)
	Asset(ctx context.Context, pack, file string) (*Asset, error)
	// Locate returns a human-usable location (URL or file path) for an asset.
	Locate(pack, file string) string
}

func decodeIndex(r io.Reader) ([]PackSummary, error) {
	var packs []PackSummary
	if err := json.NewDecoder(r).Decode(&packs); err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	if packs == nil {
		packs = []PackSummary{}
	}
	return packs, nil
}

func decodeManifest(r io.Reader, pack string) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Stickers == nil {
		m.Stickers = []string{}
	}
	m.Path = pack
	return &m, nil
}

// validSegment rejects names that would escape the pack directory.
func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}

func checkSegments(parts ...string) error {
	for _, p := range parts {
		if !validSegment(p) {
			return fmt.Errorf("%w: invalid path segment %q", ErrNotFound, p)
		}
	}
	return nil
}
