package panels

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
)

// failingSource fails every request.
type failingSource struct{ catalog.Source }

func (failingSource) Index(context.Context) ([]catalog.PackSummary, error) {
	return nil, &catalog.IndexLoadError{Err: errors.New("connection refused")}
}

func loadedCatalog(t *testing.T, deps *Deps) CatalogView {
	t.Helper()
	c := NewCatalogView(deps)
	c.SetSize(80, 30)
	drain(c.Init(), func(msg tea.Msg) tea.Cmd {
		var cmd tea.Cmd
		c, cmd = c.Update(msg)
		return cmd
	})
	return c
}

// Scenario A: one card per pack, in index order, linking to its pack route.
func TestCatalogRendersOneCardPerPack(t *testing.T) {
	c := loadedCatalog(t, testDeps(t, nil))

	if c.Loading() {
		t.Fatal("expected index loaded")
	}
	want := []string{"/pack/cats", "/pack/dogs"}
	got := c.Links()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("links %v, want %v", got, want)
	}
	view := c.View()
	for _, name := range []string{"Cats", "Dogs", "Sticker Packs (2)"} {
		if !strings.Contains(view, name) {
			t.Errorf("expected %q in view", name)
		}
	}
}

// Scenario B: an index failure is an empty catalog, not an error screen.
func TestCatalogIndexFailureIsEmpty(t *testing.T) {
	deps := testDeps(t, nil)
	deps.Source = failingSource{deps.Source}
	c := loadedCatalog(t, deps)

	if len(c.Links()) != 0 {
		t.Errorf("expected no cards, got %v", c.Links())
	}
	view := c.View()
	if !strings.Contains(view, emptyCatalog) {
		t.Errorf("expected empty state, got:\n%s", view)
	}
	if strings.Contains(strings.ToLower(view), "error") || strings.Contains(view, "refused") {
		t.Error("index failure must not surface an error")
	}
}

func TestCatalogEnterOpensSelectedPack(t *testing.T) {
	c := loadedCatalog(t, testDeps(t, nil))

	c, _ = c.Update(keyRunes("l"))
	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command on Enter")
	}
	msg, ok := cmd().(OpenPackMsg)
	if !ok {
		t.Fatal("expected OpenPackMsg")
	}
	if msg.Path != "dogs" {
		t.Errorf("opened %q, want dogs", msg.Path)
	}
}

func TestCatalogFilterFoldsCase(t *testing.T) {
	c := loadedCatalog(t, testDeps(t, nil))

	c, _ = c.Update(keyRunes("/"))
	if !c.FilterActive() {
		t.Fatal("expected filter active after /")
	}
	for _, r := range "DOG" {
		c, _ = c.Update(keyRunes(string(r)))
	}
	if got := c.Links(); len(got) != 1 || got[0] != "/pack/dogs" {
		t.Errorf("filtered links %v", got)
	}

	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if c.FilterActive() {
		t.Error("expected filter closed on Esc")
	}
	if len(c.Links()) != 2 {
		t.Errorf("expected filter cleared, got %v", c.Links())
	}
}

func TestCatalogFilterNoMatch(t *testing.T) {
	c := loadedCatalog(t, testDeps(t, nil))
	c, _ = c.Update(keyRunes("/"))
	c, _ = c.Update(keyRunes("z"))

	if !strings.Contains(c.View(), "No matching packs.") {
		t.Error("expected no-match message")
	}
	_, cmd := c.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		if _, ok := cmd().(OpenPackMsg); ok {
			t.Error("Enter on an empty filter must not open a pack")
		}
	}
}

func TestCatalogReload(t *testing.T) {
	c := loadedCatalog(t, testDeps(t, nil))
	c, cmd := c.Update(keyRunes("r"))
	if !c.Loading() {
		t.Error("expected loading after reload")
	}
	if _, ok := cmd().(IndexLoadedMsg); !ok {
		t.Error("expected reload to request the index")
	}
}

func TestPackRouteEscapes(t *testing.T) {
	if got := PackRoute("space cats"); got != "/pack/space%20cats" {
		t.Errorf("PackRoute = %q", got)
	}
}
