package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
)

// IndexEntry is one generated index record: the pack's manifest fields
// verbatim plus its directory name under "path".
type IndexEntry map[string]any

// BuildIndex scans the top level of fsys for pack directories containing a
// manifest.json. Unreadable or malformed manifests are logged and skipped so
// that one broken pack does not hide the rest. Entries follow directory order.
func BuildIndex(fsys fs.FS) ([]IndexEntry, error) {
	dirs, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading sticker dir: %w", err)
	}

	entries := make([]IndexEntry, 0, len(dirs))
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(d.Name(), ManifestName))
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("catalog: reading manifest for %s: %v", d.Name(), err)
			}
			continue
		}
		entry := IndexEntry{}
		if err := json.Unmarshal(data, &entry); err != nil {
			log.Printf("catalog: parsing manifest for %s: %v", d.Name(), err)
			continue
		}
		entry["path"] = d.Name()
		entries = append(entries, entry)
	}
	return entries, nil
}

// WriteIndex encodes entries as two-space indented JSON.
func WriteIndex(w io.Writer, entries []IndexEntry) error {
	if entries == nil {
		entries = []IndexEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteIndexFile generates the index for dir and writes it to dir/index.json,
// returning the number of packs written.
func WriteIndexFile(dir string) (int, error) {
	entries, err := BuildIndex(os.DirFS(dir))
	if err != nil {
		return 0, err
	}
	target := filepath.Join(dir, IndexName)
	tmp, err := os.CreateTemp(dir, ".index-*.json")
	if err != nil {
		return 0, fmt.Errorf("creating temp index: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteIndex(tmp, entries); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing temp index: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return 0, fmt.Errorf("writing %s: %w", target, err)
	}
	return len(entries), nil
}
