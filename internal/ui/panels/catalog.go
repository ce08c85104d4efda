package panels

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
	"github.com/justinpbarnett/stickerbox/internal/ui/border"
	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
	"github.com/justinpbarnett/stickerbox/internal/ui/text"
)

const emptyCatalog = "No sticker packs."

// PackRoute is the route path of a pack view.
func PackRoute(path string) string {
	return "/pack/" + url.PathEscape(path)
}

// CatalogView lists every pack in the index as a card. A failed index load
// is logged and shown as an empty catalog.
type CatalogView struct {
	deps     *Deps
	packs    []catalog.PackSummary
	filtered []int
	loading  bool
	grid     Grid
	gtap     DoubleTap
	thumbs   map[string]string

	filterActive bool
	filterText   string
	filterInput  textinput.Model
	fold         cases.Caser

	width   int
	height  int
	focused bool
}

func NewCatalogView(deps *Deps) CatalogView {
	ti := textinput.New()
	ti.Placeholder = "Filter packs..."
	ti.CharLimit = 64

	return CatalogView{
		deps:        deps,
		loading:     true,
		gtap:        NewDoubleTap(gTapIDCatalog),
		thumbs:      make(map[string]string),
		filterInput: ti,
		fold:        cases.Fold(),
		focused:     true,
	}
}

// Init requests the index exactly once.
func (c CatalogView) Init() tea.Cmd {
	return LoadIndexCmd(c.deps)
}

func (c CatalogView) Update(msg tea.Msg) (CatalogView, tea.Cmd) {
	switch msg := msg.(type) {
	case IndexLoadedMsg:
		c.loading = false
		if msg.Err != nil {
			log.Printf("catalog: %v", msg.Err)
			c.packs = nil
		} else {
			c.packs = msg.Packs
		}
		c.applyFilter()
		return c, c.loadVisibleThumbs()

	case ThumbnailLoadedMsg:
		c.thumbs[thumbKey(msg.Pack, msg.File)] = msg.Art
		return c, nil

	case GTimerExpiredMsg:
		c.gtap.HandleExpiry(msg)
		return c, nil

	case tea.KeyMsg:
		if c.filterActive {
			return c.updateFilter(msg)
		}
		return c.updateKey(msg)
	}
	return c, nil
}

func (c CatalogView) updateKey(msg tea.KeyMsg) (CatalogView, tea.Cmd) {
	if msg.String() != "g" {
		c.gtap.Pending = false
	}
	switch msg.String() {
	case "/":
		c.filterActive = true
		c.filterInput.Focus()
		c.resizeGrid()
		return c, textinput.Blink
	case "r":
		c.loading = true
		return c, LoadIndexCmd(c.deps)
	case "enter", " ":
		if p := c.Selected(); p != nil {
			path := p.Path
			return c, func() tea.Msg { return OpenPackMsg{Path: path} }
		}
		return c, nil
	case "j", "down":
		c.grid.Move(0, 1)
	case "k", "up":
		c.grid.Move(0, -1)
	case "h", "left":
		c.grid.Move(-1, 0)
	case "l", "right":
		c.grid.Move(1, 0)
	case "G":
		c.grid.Bottom()
	case "g":
		fired, cmd := c.gtap.Check()
		if !fired {
			return c, cmd
		}
		c.grid.Top()
	default:
		return c, nil
	}
	return c, c.loadVisibleThumbs()
}

func (c CatalogView) updateFilter(msg tea.KeyMsg) (CatalogView, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if msg.Type == tea.KeyEsc {
			c.filterText = ""
			c.filterInput.SetValue("")
		}
		c.filterActive = false
		c.filterInput.Blur()
		c.applyFilter()
		return c, c.loadVisibleThumbs()
	}

	var cmd tea.Cmd
	c.filterInput, cmd = c.filterInput.Update(msg)
	c.filterText = c.filterInput.Value()
	c.applyFilter()
	return c, tea.Batch(cmd, c.loadVisibleThumbs())
}

// applyFilter keeps packs whose display name or path contains the filter
// text under Unicode case folding.
func (c *CatalogView) applyFilter() {
	c.filtered = make([]int, 0, len(c.packs))
	query := c.fold.String(strings.TrimSpace(c.filterText))
	for i, p := range c.packs {
		if query == "" ||
			strings.Contains(c.fold.String(p.DisplayName), query) ||
			strings.Contains(c.fold.String(p.Path), query) {
			c.filtered = append(c.filtered, i)
		}
	}
	c.resizeGrid()
}

func (c *CatalogView) resizeGrid() {
	rows := c.innerHeight() - 1 // selected route
	if c.filterActive || c.filterText != "" {
		rows--
	}
	thumbs := c.deps.Thumbs != nil
	c.grid.Resize(len(c.filtered), gridColumns(c.innerWidth()), gridRows(rows, thumbs))
}

func (c CatalogView) loadVisibleThumbs() tea.Cmd {
	start, end := c.grid.Visible()
	var cmds []tea.Cmd
	for i := start; i < end; i++ {
		p := c.packs[c.filtered[i]]
		if _, ok := c.thumbs[thumbKey(p.Path, p.PreviewImage)]; ok {
			continue
		}
		cmds = append(cmds, LoadThumbnailCmd(c.deps, p.Path, p.PreviewImage, CardWidth-2, ThumbRows))
	}
	return tea.Batch(cmds...)
}

// Selected returns the highlighted pack, or nil for an empty catalog.
func (c CatalogView) Selected() *catalog.PackSummary {
	i := c.grid.Selected()
	if i < 0 || i >= len(c.filtered) {
		return nil
	}
	p := c.packs[c.filtered[i]]
	return &p
}

// Links lists the route of every pack card in display order.
func (c CatalogView) Links() []string {
	links := make([]string, 0, len(c.filtered))
	for _, i := range c.filtered {
		links = append(links, PackRoute(c.packs[i].Path))
	}
	return links
}

func (c CatalogView) Loading() bool      { return c.loading }
func (c CatalogView) FilterActive() bool { return c.filterActive }

func (c *CatalogView) SetSize(w, h int) {
	c.width, c.height = w, h
	c.filterInput.Width = max(w-8, 1)
	c.resizeGrid()
}

func (c *CatalogView) SetFocused(focused bool) {
	c.focused = focused
}

func (c CatalogView) innerWidth() int  { return max(c.width-2, 0) }
func (c CatalogView) innerHeight() int { return max(c.height-2, 0) }

func (c CatalogView) View() string {
	title := "Sticker Packs"
	if !c.loading {
		title = fmt.Sprintf("Sticker Packs (%d)", len(c.filtered))
	}

	var hints []border.Keybind
	if c.focused {
		hints = []border.Keybind{
			{Key: "↵", Label: " open"},
			{Key: "/", Label: "filter"},
			{Key: "r", Label: "eload"},
			{Key: "?", Label: "help"},
		}
	}
	return border.RenderPanel(title, c.renderContent(), hints, c.width, c.height, c.focused)
}

func (c CatalogView) renderContent() string {
	var b strings.Builder
	if c.filterActive || c.filterText != "" {
		b.WriteString(styles.FilterMatchStyle.Render("/") + " " + c.filterInput.View() + "\n")
	}

	switch {
	case c.loading:
		b.WriteString(styles.TextSecondaryStyle.Render("Loading..."))
	case len(c.packs) == 0:
		b.WriteString(styles.TextSecondaryStyle.Render(emptyCatalog))
	case len(c.filtered) == 0:
		b.WriteString(styles.TextSecondaryStyle.Render("No matching packs."))
	default:
		cards := make([]card, len(c.filtered))
		for i, idx := range c.filtered {
			p := c.packs[idx]
			caption := p.DisplayName
			if caption == "" {
				caption = p.Path
			}
			cards[i] = card{
				caption: caption,
				art:     c.thumbs[thumbKey(p.Path, p.PreviewImage)],
			}
		}
		b.WriteString(renderGrid(cards, c.grid, c.deps.Thumbs != nil))
		if sel := c.Selected(); sel != nil {
			b.WriteString("\n" + styles.TextDimStyle.Render(text.TruncatePath(PackRoute(sel.Path), c.innerWidth())))
		}
	}
	return b.String()
}
