package ui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
	"github.com/justinpbarnett/stickerbox/internal/clipboard"
	"github.com/justinpbarnett/stickerbox/internal/copier"
	"github.com/justinpbarnett/stickerbox/internal/ui/panels"
)

const waitDuration = 3 * time.Second

// appAdapter keeps the latest App so tests can inspect it after the program
// has processed messages.
type appAdapter struct {
	mu  sync.Mutex
	app App
}

func (a *appAdapter) Init() tea.Cmd {
	return a.app.Init()
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	return a, cmd
}

func (a *appAdapter) View() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.app.View()
}

func (a *appAdapter) get() App {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.app
}

func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

type recordingWriter struct {
	mu    sync.Mutex
	err   error
	mimes []string
}

func (w *recordingWriter) Write(ctx context.Context, mime string, p clipboard.Payload) error {
	if _, err := p.Wait(ctx); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mimes = append(w.mimes, mime)
	return w.err
}

func (w *recordingWriter) writes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.mimes...)
}

func stickerPNG(tb testing.TB) []byte {
	tb.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		tb.Fatal(err)
	}
	return buf.Bytes()
}

func newTestDeps(tb testing.TB, w clipboard.Writer) *panels.Deps {
	tb.Helper()
	fsys := fstest.MapFS{
		"cats/manifest.json":  {Data: []byte(`{"displayName":"Cats","previewImage":"a.png","stickers":["a.png","b.jpg"]}`)},
		"cats/a.png":          {Data: stickerPNG(tb)},
		"cats/b.jpg":          {Data: []byte("\xff\xd8\xff\xe0jpeg")},
		"frogs/manifest.json": {Data: []byte(`{"displayName":"Frogs","previewImage":"f.png","stickers":["f.png"]}`)},
		"frogs/f.png":         {Data: stickerPNG(tb)},
	}
	src := catalog.NewFSSource(fsys, "/srv/stickers")
	return &panels.Deps{
		Ctx:           context.Background(),
		Source:        src,
		Pipeline:      copier.New(src, w),
		ToastDuration: time.Hour,
	}
}

func newTestAdapter(tb testing.TB, w clipboard.Writer, route Route) *appAdapter {
	tb.Helper()
	if w == nil {
		w = &recordingWriter{}
	}
	a := NewApp(newTestDeps(tb, w), route)
	a.yank = func(string) error { return nil }
	return &appAdapter{app: a}
}
