package ui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/justinpbarnett/stickerbox/internal/clipboard"
	"github.com/justinpbarnett/stickerbox/internal/copier"
)

func startApp(t *testing.T, adapter *appAdapter) *teatest.TestModel {
	t.Helper()
	tm := teatest.NewTestModel(t, adapter, teatest.WithInitialTermSize(100, 32))
	tm.Send(tea.WindowSizeMsg{Width: 100, Height: 32})
	waitForContains(t, tm, "Sticker Packs (2)")
	return tm
}

func TestAppBrowseAndCopy(t *testing.T) {
	w := &recordingWriter{}
	adapter := newTestAdapter(t, w, Route{})
	tm := startApp(t, adapter)

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForContains(t, tm, "2 stickers")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForContains(t, tm, "Copied to clipboard!")

	if got := w.writes(); len(got) != 1 || got[0] != copier.MIMEPNG {
		t.Errorf("clipboard writes %v, want one image/png", got)
	}
	if d := adapter.get().Pack().Diagnostic(); d != nil {
		t.Error("expected no diagnostic after a successful copy")
	}

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestAppCopyDeniedShowsDiagnostic(t *testing.T) {
	w := &recordingWriter{err: fmt.Errorf("%w: focus lost", clipboard.ErrNotAllowed)}
	adapter := newTestAdapter(t, w, Route{})
	tm := startApp(t, adapter)

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForContains(t, tm, "2 stickers")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForContains(t, tm, "Copy failed")

	pv := adapter.get().Pack()
	if pv.Diagnostic() == nil {
		t.Fatal("expected diagnostic")
	}
	if pv.Diagnostic().Err().Category != copier.CategoryNotAllowed {
		t.Errorf("category %q", pv.Diagnostic().Err().Category)
	}

	// Esc dismisses the diagnostic before it navigates back.
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	time.Sleep(200 * time.Millisecond)
	app := adapter.get()
	if app.Pack() == nil || app.Pack().Diagnostic() != nil {
		t.Error("expected diagnostic dismissed and pack still open")
	}

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestAppHelpModalFlow(t *testing.T) {
	adapter := newTestAdapter(t, nil, Route{})
	tm := startApp(t, adapter)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	waitForContains(t, tm, "Keybinds")

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	time.Sleep(200 * time.Millisecond)
	if adapter.get().helpOverlay != nil {
		t.Error("expected helpOverlay to be closed after Esc")
	}

	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}
