package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
)

// DirSource reads packs from a local sticker directory. When the directory has
// no index.json the index is generated on every call, the same way the dev
// server does.
type DirSource struct {
	root string
	fsys fs.FS
}

func NewDirSource(root string) *DirSource {
	return &DirSource{root: root, fsys: os.DirFS(root)}
}

// NewFSSource wraps an arbitrary filesystem; root is only used by Locate.
func NewFSSource(fsys fs.FS, root string) *DirSource {
	return &DirSource{root: root, fsys: fsys}
}

func (s *DirSource) Index(ctx context.Context) ([]PackSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, &IndexLoadError{Err: err}
	}

	f, err := s.fsys.Open(IndexName)
	if err == nil {
		defer f.Close()
		packs, err := decodeIndex(f)
		if err != nil {
			return nil, &IndexLoadError{Err: err}
		}
		return packs, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, &IndexLoadError{Err: err}
	}

	entries, err := BuildIndex(s.fsys)
	if err != nil {
		return nil, &IndexLoadError{Err: err}
	}
	var buf bytes.Buffer
	if err := WriteIndex(&buf, entries); err != nil {
		return nil, &IndexLoadError{Err: err}
	}
	packs, err := decodeIndex(&buf)
	if err != nil {
		return nil, &IndexLoadError{Err: err}
	}
	return packs, nil
}

func (s *DirSource) Manifest(ctx context.Context, pack string) (*Manifest, error) {
	if err := checkSegments(pack); err != nil {
		return nil, &ManifestLoadError{Pack: pack, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &ManifestLoadError{Pack: pack, Err: err}
	}
	f, err := s.fsys.Open(path.Join(pack, ManifestName))
	if err != nil {
		return nil, &ManifestLoadError{Pack: pack, Err: notFound(err)}
	}
	defer f.Close()

	m, err := decodeManifest(f, pack)
	if err != nil {
		return nil, &ManifestLoadError{Pack: pack, Err: err}
	}
	return m, nil
}

func (s *DirSource) Asset(ctx context.Context, pack, file string) (*Asset, error) {
	if err := checkSegments(pack, file); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Join(pack, file)
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, notFound(err)
	}
	return &Asset{
		URL:         s.Locate(pack, file),
		ContentType: mime.TypeByExtension(path.Ext(file)),
		Body:        f,
	}, nil
}

func (s *DirSource) Locate(pack, file string) string {
	return filepath.Join(s.root, pack, file)
}

func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
