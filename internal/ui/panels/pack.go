package panels

import (
	"errors"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justinpbarnett/stickerbox/internal/catalog"
	"github.com/justinpbarnett/stickerbox/internal/copier"
	"github.com/justinpbarnett/stickerbox/internal/ui/border"
	"github.com/justinpbarnett/stickerbox/internal/ui/styles"
	"github.com/justinpbarnett/stickerbox/internal/ui/text"
)

const packNotFound = "Pack not found"

// PackView shows one pack's stickers and copies the selected one. Its
// loading flag, toast and diagnostic belong to this view alone.
type PackView struct {
	deps     *Deps
	path     string
	manifest *catalog.Manifest
	loading  bool
	notFound bool
	copying  int

	grid       Grid
	gtap       DoubleTap
	thumbs     map[string]string
	toast      Toast
	diagnostic *DiagnosticOverlay

	width   int
	height  int
	focused bool
}

func NewPackView(deps *Deps, path string) PackView {
	return PackView{
		deps:    deps,
		path:    path,
		loading: true,
		gtap:    NewDoubleTap(gTapIDPack),
		thumbs:  make(map[string]string),
		focused: true,
	}
}

// Init requests the manifest for the view's pack.
func (p PackView) Init() tea.Cmd {
	return LoadManifestCmd(p.deps, p.path)
}

// SetPath switches the view to another pack, dropping all state tied to the
// previous one. It returns the manifest request, or nil if path is unchanged.
func (p *PackView) SetPath(path string) tea.Cmd {
	if path == p.path {
		return nil
	}
	w, h, focused := p.width, p.height, p.focused
	*p = NewPackView(p.deps, path)
	p.focused = focused
	p.SetSize(w, h)
	return p.Init()
}

func (p PackView) Update(msg tea.Msg) (PackView, tea.Cmd) {
	switch msg := msg.(type) {
	case ManifestLoadedMsg:
		if msg.Path != p.path {
			return p, nil
		}
		p.loading = false
		if msg.Err != nil {
			log.Printf("pack %s: %v", p.path, msg.Err)
			p.notFound = true
			p.manifest = nil
			return p, nil
		}
		p.manifest = msg.Manifest
		p.manifest.Path = p.path
		p.resizeGrid()
		return p, p.loadVisibleThumbs()

	case ThumbnailLoadedMsg:
		if msg.Pack == p.path {
			p.thumbs[thumbKey(msg.Pack, msg.File)] = msg.Art
		}
		return p, nil

	case CopyFinishedMsg:
		if msg.Pack != p.path {
			return p, nil
		}
		return p.finishCopy(msg)

	case ClearToastMsg:
		p.toast.Clear(msg)
		return p, nil

	case DismissDiagnosticMsg:
		p.diagnostic = nil
		return p, nil

	case GTimerExpiredMsg:
		p.gtap.HandleExpiry(msg)
		return p, nil

	case tea.KeyMsg:
		if p.diagnostic != nil {
			var cmd tea.Cmd
			*p.diagnostic, cmd = p.diagnostic.Update(msg)
			return p, cmd
		}
		return p.updateKey(msg)
	}
	return p, nil
}

func (p PackView) updateKey(msg tea.KeyMsg) (PackView, tea.Cmd) {
	if msg.String() != "g" {
		p.gtap.Pending = false
	}
	switch msg.String() {
	case "esc", "backspace":
		return p, func() tea.Msg { return BackMsg{} }
	case "enter", " ":
		return p.startCopy()
	case "y":
		if file := p.SelectedFile(); file != "" {
			link := p.deps.Source.Locate(p.path, file)
			return p, func() tea.Msg { return YankMsg{Text: link, Label: "link"} }
		}
		return p, nil
	case "j", "down":
		p.grid.Move(0, 1)
	case "k", "up":
		p.grid.Move(0, -1)
	case "h", "left":
		p.grid.Move(-1, 0)
	case "l", "right":
		p.grid.Move(1, 0)
	case "G":
		p.grid.Bottom()
	case "g":
		fired, cmd := p.gtap.Check()
		if !fired {
			return p, cmd
		}
		p.grid.Top()
	default:
		return p, nil
	}
	return p, p.loadVisibleThumbs()
}

// startCopy hands the selected sticker to the pipeline. Each press starts a
// new operation; presses are not merged.
func (p PackView) startCopy() (PackView, tea.Cmd) {
	file := p.SelectedFile()
	if file == "" || p.deps.Pipeline == nil {
		return p, nil
	}
	op := p.deps.Pipeline.Start(p.deps.ctx(), p.path, file)
	p.copying++
	log.Printf("copy %s: started %s/%s as %s", op.ID, p.path, file, op.MIME)
	return p, WaitCopyCmd(p.deps, op)
}

func (p PackView) finishCopy(msg CopyFinishedMsg) (PackView, tea.Cmd) {
	p.copying = max(p.copying-1, 0)

	if msg.Err == nil {
		log.Printf("copy %s: success in %s", msg.OpID, text.FormatElapsed(msg.Elapsed))
		toastCmd := p.toast.Show(ToastCopied, false, p.deps.ToastDuration)
		size := 0
		if msg.Result != nil {
			size = len(msg.Result.Data)
		}
		flash := FlashMsg{
			Text:  fmt.Sprintf("%s (%s, %s)", msg.File, text.FormatBytes(size), text.FormatElapsed(msg.Elapsed)),
			Level: FlashSuccess,
		}
		return p, tea.Batch(toastCmd, func() tea.Msg { return flash })
	}

	var cerr *copier.Error
	if !errors.As(msg.Err, &cerr) {
		cerr = &copier.Error{
			Checkpoint: copier.StepFailure,
			Category:   copier.CategoryClipboard,
			Message:    msg.Err.Error(),
			Err:        msg.Err,
		}
	}
	log.Printf("copy %s: %s", msg.OpID, cerr)
	p.diagnostic = NewDiagnosticOverlay(msg.File, cerr)
	p.sizeDiagnostic()
	return p, p.toast.Show(ToastCopyFailed, true, p.deps.ToastDuration)
}

func (p *PackView) resizeGrid() {
	rows := p.innerHeight() - p.headerHeight() - 1 // toast line
	p.grid.Resize(len(p.Stickers()), gridColumns(p.innerWidth()), gridRows(rows, p.deps.Thumbs != nil))
}

func (p PackView) loadVisibleThumbs() tea.Cmd {
	stickers := p.Stickers()
	start, end := p.grid.Visible()
	var cmds []tea.Cmd
	if p.manifest != nil && p.manifest.PreviewImage != "" {
		if _, ok := p.thumbs[thumbKey(p.path, p.manifest.PreviewImage)]; !ok {
			cmds = append(cmds, LoadThumbnailCmd(p.deps, p.path, p.manifest.PreviewImage, CardWidth-2, ThumbRows))
		}
	}
	for i := start; i < end; i++ {
		if _, ok := p.thumbs[thumbKey(p.path, stickers[i])]; ok {
			continue
		}
		cmds = append(cmds, LoadThumbnailCmd(p.deps, p.path, stickers[i], CardWidth-2, ThumbRows))
	}
	return tea.Batch(cmds...)
}

func (p PackView) Path() string                   { return p.path }
func (p PackView) Manifest() *catalog.Manifest    { return p.manifest }
func (p PackView) Loading() bool                  { return p.loading }
func (p PackView) NotFound() bool                 { return p.notFound }
func (p PackView) Copying() int                   { return p.copying }
func (p PackView) Toast() string                  { return p.toast.Text() }
func (p PackView) Diagnostic() *DiagnosticOverlay { return p.diagnostic }

// Stickers returns the manifest's file names in manifest order.
func (p PackView) Stickers() []string {
	if p.manifest == nil {
		return nil
	}
	return p.manifest.Stickers
}

func (p PackView) SelectedFile() string {
	stickers := p.Stickers()
	i := p.grid.Selected()
	if i < 0 || i >= len(stickers) {
		return ""
	}
	return stickers[i]
}

func (p *PackView) SetSize(w, h int) {
	p.width, p.height = w, h
	p.resizeGrid()
	p.sizeDiagnostic()
}

func (p *PackView) sizeDiagnostic() {
	if p.diagnostic != nil {
		p.diagnostic.SetSize(min(p.width-4, 96), min(p.height-2, 30))
	}
}

func (p *PackView) SetFocused(focused bool) {
	p.focused = focused
}

func (p PackView) innerWidth() int  { return max(p.width-2, 0) }
func (p PackView) innerHeight() int { return max(p.height-2, 0) }

func (p PackView) headerHeight() int {
	if p.deps.Thumbs != nil {
		return ThumbRows + 1
	}
	return 2
}

func (p PackView) title() string {
	if p.manifest != nil && p.manifest.DisplayName != "" {
		return p.manifest.DisplayName
	}
	return p.path
}

func (p PackView) View() string {
	var hints []border.Keybind
	if p.focused && p.diagnostic == nil {
		hints = []border.Keybind{
			{Key: "↵", Label: " copy"},
			{Key: "y", Label: "ank link"},
			{Key: "Esc", Label: " back"},
			{Key: "?", Label: "help"},
		}
	}
	view := border.RenderPanel(p.title(), p.renderContent(), hints, p.width, p.height, p.focused)

	if p.diagnostic != nil {
		view = lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, p.diagnostic.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}
	return view
}

func (p PackView) renderContent() string {
	switch {
	case p.loading:
		return styles.TextSecondaryStyle.Render("Loading...")
	case p.notFound:
		return styles.TitleStyle.Render(packNotFound) + "\n" +
			styles.TextSecondaryStyle.Render(fmt.Sprintf("No pack at %s. Press Esc to go back.", PackRoute(p.path)))
	}

	var b strings.Builder
	b.WriteString(p.renderHeader())
	b.WriteString("\n")

	stickers := p.Stickers()
	if len(stickers) == 0 {
		b.WriteString(styles.TextSecondaryStyle.Render("This pack has no stickers."))
	} else {
		cards := make([]card, len(stickers))
		for i, f := range stickers {
			cards[i] = card{caption: f, art: p.thumbs[thumbKey(p.path, f)]}
		}
		b.WriteString(renderGrid(cards, p.grid, p.deps.Thumbs != nil))
	}

	if t := p.toast.View(p.innerWidth()); t != "" {
		b.WriteString("\n" + t)
	}
	return b.String()
}

func (p PackView) renderHeader() string {
	name := styles.TitleStyle.Render(p.title())
	count := styles.TextSecondaryStyle.Render(text.Count(len(p.Stickers()), "sticker"))
	status := ""
	if p.copying > 0 {
		status = styles.TextSecondaryStyle.Render("  copying…")
	}
	info := name + "\n" + count + status

	if p.deps.Thumbs == nil || p.manifest.PreviewImage == "" {
		return info
	}
	art := p.thumbs[thumbKey(p.path, p.manifest.PreviewImage)]
	if art == "" {
		art = strings.Repeat("\n", ThumbRows-1)
	}
	art = lipgloss.NewStyle().Width(CardWidth - 2).Render(art)
	return lipgloss.JoinHorizontal(lipgloss.Top, art, "  ", info)
}
