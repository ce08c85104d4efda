package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"cats/manifest.json": {Data: []byte(`{"id":1,"displayName":"Cats","previewImage":"p.png","stickers":["a.png","b.jpg"]}`)},
		"cats/a.png":         {Data: []byte("png-bytes")},
		"cats/b.jpg":         {Data: []byte("jpg-bytes")},
		"dogs/manifest.json": {Data: []byte(`{"id":"d2","displayName":"Dogs","previewImage":"d.png","stickers":["z.gif","y.webp","x.png"],"author":"someone"}`)},
		"broken/manifest.json": {Data: []byte(`{not json`)},
		"empty/readme.txt":     {Data: []byte("no manifest here")},
		"notes.txt":            {Data: []byte("top level file")},
	}
}

func TestPackIDAcceptsNumberAndString(t *testing.T) {
	t.Parallel()
	var packs []PackSummary
	err := json.Unmarshal([]byte(`[{"id":1,"path":"a"},{"id":"two","path":"b"},{"path":"c"}]`), &packs)
	require.NoError(t, err)
	require.Len(t, packs, 3)
	assert.Equal(t, PackID("1"), packs[0].ID)
	assert.Equal(t, PackID("two"), packs[1].ID)
	assert.Equal(t, PackID(""), packs[2].ID)
}

func TestBuildIndexSkipsBrokenManifests(t *testing.T) {
	t.Parallel()
	entries, err := BuildIndex(testFS())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "cats", entries[0]["path"])
	assert.Equal(t, "dogs", entries[1]["path"])
	assert.Equal(t, "someone", entries[1]["author"], "extra manifest fields are carried through")
}

func TestWriteIndexRoundTripsThroughDecode(t *testing.T) {
	t.Parallel()
	entries, err := BuildIndex(testFS())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteIndex(&buf, entries))
	assert.Contains(t, buf.String(), "\n  {", "index is indented with two spaces")

	packs, err := decodeIndex(&buf)
	require.NoError(t, err)
	require.Len(t, packs, 2)
	assert.Equal(t, PackSummary{ID: "1", Path: "cats", DisplayName: "Cats", PreviewImage: "p.png"}, packs[0])
}

func TestWriteIndexFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cats"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cats", ManifestName),
		[]byte(`{"displayName":"Cats","previewImage":"p.png","stickers":["a.png"]}`), 0o644))

	n, err := WriteIndexFile(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	packs, err := NewDirSource(dir).Index(context.Background())
	require.NoError(t, err)
	require.Len(t, packs, 1)
	assert.Equal(t, "cats", packs[0].Path)
}

func TestDirSourceGeneratesIndex(t *testing.T) {
	t.Parallel()
	src := NewFSSource(testFS(), "/srv/stickers")

	packs, err := src.Index(context.Background())
	require.NoError(t, err)
	require.Len(t, packs, 2)
	assert.Equal(t, "Cats", packs[0].DisplayName)
	assert.Equal(t, "dogs", packs[1].Path)
}

func TestDirSourceManifestForEveryIndexedPack(t *testing.T) {
	t.Parallel()
	src := NewFSSource(testFS(), "/srv/stickers")
	ctx := context.Background()

	packs, err := src.Index(ctx)
	require.NoError(t, err)

	want := map[string][]string{
		"cats": {"a.png", "b.jpg"},
		"dogs": {"z.gif", "y.webp", "x.png"},
	}
	for _, p := range packs {
		m, err := src.Manifest(ctx, p.Path)
		require.NoError(t, err, p.Path)
		assert.Equal(t, p.Path, m.Path)
		assert.NotEmpty(t, m.Stickers)
		assert.Equal(t, want[p.Path], m.Stickers, "sticker order is preserved")
	}
}

func TestDirSourceManifestNotFound(t *testing.T) {
	t.Parallel()
	src := NewFSSource(testFS(), "/srv/stickers")

	for _, pack := range []string{"missing", "..", "cats/../dogs", ""} {
		_, err := src.Manifest(context.Background(), pack)
		require.Error(t, err, pack)

		var mErr *ManifestLoadError
		require.True(t, errors.As(err, &mErr), pack)
		assert.Equal(t, pack, mErr.Pack)
		assert.ErrorIs(t, err, ErrNotFound, pack)
	}
}

func TestDirSourceAsset(t *testing.T) {
	t.Parallel()
	src := NewFSSource(testFS(), "/srv/stickers")

	a, err := src.Asset(context.Background(), "cats", "a.png")
	require.NoError(t, err)
	defer a.Body.Close()

	data, err := io.ReadAll(a.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", a.ContentType)
	assert.Equal(t, filepath.Join("/srv/stickers", "cats", "a.png"), a.URL)

	_, err = src.Asset(context.Background(), "cats", "nope.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stickers/index.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":1,"path":"cats","displayName":"Cats","previewImage":"p.png","extra":true}]`))
		case "/stickers/cats/manifest.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"displayName":"Cats","previewImage":"p.png","stickers":["a.png","b.jpg"]}`))
		case "/stickers/cats/a.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("png-bytes"))
		case "/stickers/bad/manifest.json":
			w.Write([]byte(`<html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSourceIndex(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	src, err := NewHTTPSource(srv.URL, "", "")
	require.NoError(t, err)

	packs, err := src.Index(context.Background())
	require.NoError(t, err)
	require.Len(t, packs, 1)
	assert.Equal(t, PackSummary{ID: "1", Path: "cats", DisplayName: "Cats", PreviewImage: "p.png"}, packs[0])
}

func TestHTTPSourceIndexFailure(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	src, err := NewHTTPSource(srv.URL, "missing/index.json", "")
	require.NoError(t, err)

	_, err = src.Index(context.Background())
	var iErr *IndexLoadError
	require.ErrorAs(t, err, &iErr)
	var sErr *StatusError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, http.StatusNotFound, sErr.Code)
}

func TestHTTPSourceManifest(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	src, err := NewHTTPSource(srv.URL+"/", "", "")
	require.NoError(t, err)

	m, err := src.Manifest(context.Background(), "cats")
	require.NoError(t, err)
	assert.Equal(t, "cats", m.Path)
	assert.Equal(t, []string{"a.png", "b.jpg"}, m.Stickers)

	_, err = src.Manifest(context.Background(), "dogs")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.Manifest(context.Background(), "bad")
	var mErr *ManifestLoadError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, "bad", mErr.Pack)
}

func TestHTTPSourceAsset(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	src, err := NewHTTPSource(srv.URL, "", "")
	require.NoError(t, err)

	a, err := src.Asset(context.Background(), "cats", "a.png")
	require.NoError(t, err)
	defer a.Body.Close()
	assert.Equal(t, "image/png", a.ContentType)
	assert.Equal(t, srv.URL+"/stickers/cats/a.png", a.URL)

	_, err = src.Asset(context.Background(), "cats", "gone.png")
	var sErr *StatusError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, http.StatusNotFound, sErr.Code)
}

func TestHTTPSourceLocateEscapes(t *testing.T) {
	t.Parallel()
	src, err := NewHTTPSource("https://example.com/app", "", "")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/app/stickers/cats/a%20b.png", src.Locate("cats", "a b.png"))
}

func TestNewHTTPSourceRejectsBadScheme(t *testing.T) {
	t.Parallel()
	_, err := NewHTTPSource("ftp://example.com", "", "")
	assert.Error(t, err)
}
