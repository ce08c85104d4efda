package ui

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/stickerbox/internal/clipboard"
	"github.com/justinpbarnett/stickerbox/internal/ui/layout"
	"github.com/justinpbarnett/stickerbox/internal/ui/panels"
	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
)

// App routes between the catalog and a single pack view. The pack view is
// created when a pack is opened and dropped on the way back, so its toast,
// loading flag and diagnostic never outlive the visit.
type App struct {
	deps        *panels.Deps
	route       Route
	catalog     panels.CatalogView
	pack        *panels.PackView
	statusBar   panels.StatusBar
	helpOverlay *panels.HelpOverlay
	keys        KeyMap
	layout      layout.Layout
	width       int
	height      int
	ready       bool
	yank        func(string) error
}

// NewApp builds the app starting at route.
func NewApp(deps *panels.Deps, route Route) App {
	a := App{
		deps:    deps,
		catalog: panels.NewCatalogView(deps),
		keys:    DefaultKeyMap(),
		yank:    clipboard.WriteText,
	}
	a.setRoute(route)
	return a
}

// Init loads the catalog index once, plus the starting pack if any.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.catalog.Init()}
	if a.pack != nil {
		cmds = append(cmds, a.pack.Init())
	}
	return tea.Batch(cmds...)
}

func (a App) Route() Route { return a.route }

func (a App) Catalog() panels.CatalogView { return a.catalog }

// Pack returns the open pack view, or nil on the catalog route.
func (a App) Pack() *panels.PackView { return a.pack }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case OpenPackMsg:
		return a, a.setRoute(Route{Pack: msg.Path})

	case BackMsg:
		return a, a.setRoute(Route{})

	case CloseModalMsg:
		a.helpOverlay = nil
		return a, nil

	case YankMsg:
		label := msg.Label
		if label == "" {
			label = "text"
		}
		if err := a.yank(msg.Text); err != nil {
			log.Printf("yank: %v", err)
			return a.flash(FlashMsg{Text: "Could not copy " + label, Level: panels.FlashError})
		}
		return a.flash(FlashMsg{Text: "Copied " + label, Level: panels.FlashSuccess})

	case FlashMsg:
		return a.flash(msg)

	case clearFlashMsg:
		if a.statusBar.Flash() == msg.Text {
			a.statusBar.ClearFlash()
		}
		return a, nil

	case panels.IndexLoadedMsg:
		var cmd tea.Cmd
		a.catalog, cmd = a.catalog.Update(msg)
		return a, cmd

	case panels.ThumbnailLoadedMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.catalog, cmd = a.catalog.Update(msg)
		cmds = append(cmds, cmd)
		if a.pack != nil {
			*a.pack, cmd = a.pack.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case panels.GTimerExpiredMsg:
		a.catalog, _ = a.catalog.Update(msg)
		if a.pack != nil {
			*a.pack, _ = a.pack.Update(msg)
		}
		return a, nil

	case panels.ManifestLoadedMsg, panels.CopyFinishedMsg, panels.ClearToastMsg, panels.DismissDiagnosticMsg:
		if a.pack == nil {
			return a, nil
		}
		var cmd tea.Cmd
		*a.pack, cmd = a.pack.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.helpOverlay != nil {
			var cmd tea.Cmd
			*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
			return a, cmd
		}
		if !a.capturesKeys() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "?":
				a.helpOverlay = panels.NewHelpOverlay()
				return a, nil
			}
		}
		return a.routeKey(msg)
	}
	return a.routeKey(msg)
}

// capturesKeys reports whether the active view needs plain letters, such as
// while typing a filter or reading a copy failure.
func (a App) capturesKeys() bool {
	if a.route.IsCatalog() {
		return a.catalog.FilterActive()
	}
	return a.pack != nil && a.pack.Diagnostic() != nil
}

func (a App) routeKey(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.route.IsCatalog() {
		a.catalog, cmd = a.catalog.Update(msg)
	} else if a.pack != nil {
		*a.pack, cmd = a.pack.Update(msg)
	}
	return a, cmd
}

// setRoute switches views. Entering a pack route issues the manifest request;
// leaving it drops the pack view.
func (a *App) setRoute(r Route) tea.Cmd {
	a.route = r
	a.statusBar = a.statusBarFor(r)
	a.catalog.SetFocused(r.IsCatalog())

	if r.IsCatalog() {
		a.pack = nil
		return nil
	}
	if a.pack != nil {
		return a.pack.SetPath(r.Pack)
	}
	pv := panels.NewPackView(a.deps, r.Pack)
	pv.SetSize(a.layout.ContentWidth, a.layout.ContentHeight)
	a.pack = &pv
	return pv.Init()
}

func (a App) statusBarFor(r Route) panels.StatusBar {
	sb := panels.NewStatusBar(a.keys.forRoute(r))
	sb.SetSize(a.layout.StatusBarWidth)
	sb.SetRoute(r.Path())
	if f := a.statusBar.Flash(); f != "" {
		sb.SetFlash(f)
	}
	return sb
}

func (a App) flash(msg FlashMsg) (tea.Model, tea.Cmd) {
	a.statusBar.SetFlashWithLevel(msg.Text, msg.Level)
	text := msg.Text
	return a, tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return clearFlashMsg{Text: text}
	})
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	content := a.catalog.View()
	if a.pack != nil {
		content = a.pack.View()
	}
	full := lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())

	if a.helpOverlay != nil {
		full = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, a.helpOverlay.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}
	return full
}

func (a *App) propagateSizes() {
	l := a.layout
	a.catalog.SetSize(l.ContentWidth, l.ContentHeight)
	if a.pack != nil {
		a.pack.SetSize(l.ContentWidth, l.ContentHeight)
	}
	a.statusBar.SetSize(l.StatusBarWidth)
}
