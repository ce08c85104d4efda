package preview

import (
	"context"
	"fmt"
	"image/color"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
)

const DefaultCacheSize = 256

type cacheKey struct {
	pack, file string
	cols, rows int
}

// Loader fetches and renders thumbnails, keeping recent renders in an LRU.
type Loader struct {
	source     catalog.Source
	cache      *lru.Cache[cacheKey, string]
	Background color.Color
}

func NewLoader(source catalog.Source, size int) (*Loader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating thumbnail cache: %w", err)
	}
	return &Loader{source: source, cache: cache, Background: color.Black}, nil
}

// Cached returns a previously rendered thumbnail without fetching.
func (l *Loader) Cached(pack, file string, cols, rows int) (string, bool) {
	return l.cache.Get(cacheKey{pack, file, cols, rows})
}

// Load renders pack/file into a cols x rows cell box. Failures are logged and
// yield the placeholder along with the error; placeholders are not cached.
func (l *Loader) Load(ctx context.Context, pack, file string, cols, rows int) (string, error) {
	key := cacheKey{pack, file, cols, rows}
	if s, ok := l.cache.Get(key); ok {
		return s, nil
	}

	asset, err := l.source.Asset(ctx, pack, file)
	if err != nil {
		log.Printf("preview: fetching %s/%s: %v", pack, file, err)
		return Placeholder(cols, rows), err
	}
	defer asset.Body.Close()

	img, err := Decode(asset.Body)
	if err != nil {
		log.Printf("preview: %s/%s: %v", pack, file, err)
		return Placeholder(cols, rows), err
	}

	s := Render(Fit(img, cols, rows, l.Background))
	l.cache.Add(key, s)
	return s, nil
}

func (l *Loader) Len() int { return l.cache.Len() }
