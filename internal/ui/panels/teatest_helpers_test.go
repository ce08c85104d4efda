package panels

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

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
	"github.com/justinpbarnett/stickerbox/internal/clipboard"
	"github.com/justinpbarnett/stickerbox/internal/copier"
)

// panelAdapter wraps views with typed Update signatures into a tea.Model so
// they can run under teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

func wrapHelpOverlay(h *HelpOverlay) tea.Model {
	return panelAdapter{
		view: func() string { return h.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newH, cmd := h.Update(msg)
			*h = newH
			return cmd
		},
	}
}

// wrapPackView runs a PackView under teatest with its view state guarded so
// the test goroutine can inspect it.
type packHarness struct {
	mu sync.Mutex
	pv PackView
}

func (h *packHarness) get() PackView {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

func wrapPackView(h *packHarness) tea.Model {
	return panelAdapter{
		view: func() string {
			h.mu.Lock()
			defer h.mu.Unlock()
			return h.pv.View()
		},
		updateFn: func(msg tea.Msg) tea.Cmd {
			h.mu.Lock()
			defer h.mu.Unlock()
			newPV, cmd := h.pv.Update(msg)
			h.pv = newPV
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// waitForAll waits until a single read of the output holds every substring.
// A view that renders once is consumed by the first successful read, so
// separate waits for parts of the same frame would time out.
func waitForAll(tb testing.TB, tm *teatest.TestModel, substrs ...string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool {
			for _, s := range substrs {
				if !bytes.Contains(bts, []byte(s)) {
					return false
				}
			}
			return true
		},
		teatest.WithDuration(waitDuration),
	)
}

// fixture catalog: two packs, one with a transparent png and a jpeg.
func pngBytes(tb testing.TB, transparent bool) []byte {
	tb.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	a := uint8(255)
	if transparent {
		a = 0
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: 10, G: 200, B: 10, A: a})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		tb.Fatal(err)
	}
	return buf.Bytes()
}

func testFS(tb testing.TB) fstest.MapFS {
	return fstest.MapFS{
		"cats/manifest.json": {Data: []byte(`{"displayName":"Cats","previewImage":"a.png","stickers":["a.png","b.jpg","c.gif"]}`)},
		"cats/a.png":         {Data: pngBytes(tb, true)},
		"cats/b.jpg":         {Data: []byte("\xff\xd8\xff\xe0jpeg-ish")},
		"dogs/manifest.json": {Data: []byte(`{"displayName":"Dogs","previewImage":"d.png","stickers":["d.png"]}`)},
		"dogs/d.png":         {Data: pngBytes(tb, false)},
	}
}

type fakeWriter struct {
	mu    sync.Mutex
	err   error
	mimes []string
}

func (w *fakeWriter) Write(ctx context.Context, mime string, p clipboard.Payload) error {
	if _, err := p.Wait(ctx); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mimes = append(w.mimes, mime)
	return w.err
}

func testDeps(tb testing.TB, w clipboard.Writer) *Deps {
	src := catalog.NewFSSource(testFS(tb), "/srv/stickers")
	if w == nil {
		w = &fakeWriter{}
	}
	return &Deps{
		Ctx:           context.Background(),
		Source:        src,
		Pipeline:      copier.New(src, w),
		ToastDuration: time.Hour,
	}
}

// drain runs cmd and feeds every resulting message back through update,
// skipping timers so tests never sleep.
func drain(cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := runWithTimeout(c)
		switch m := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, m...)
		default:
			queue = append(queue, update(m))
		}
	}
}

// runWithTimeout treats commands that do not return promptly (tea.Tick
// timers) as producing nothing.
func runWithTimeout(c tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case m := <-ch:
		return m
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

type testKeys struct{ quit key.Binding }

func (k testKeys) ShortHelp() []key.Binding  { return []key.Binding{k.quit} }
func (k testKeys) FullHelp() [][]key.Binding { return [][]key.Binding{{k.quit}} }

func newTestKeys() testKeys {
	return testKeys{quit: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
