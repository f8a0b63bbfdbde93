package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"deckctl/internal/config"
	"deckctl/internal/deck"
	"deckctl/internal/htmldeck"
	"deckctl/internal/system"
)

// Options configures the presenter.
type Options struct {
	// Path is the deck file; it is watched for changes.
	Path string
	// Hash is the initial location fragment, e.g. "#3".
	Hash string
	// Config supplies engine timings and the rendering theme.
	Config *config.Config
	// Watch reloads the deck when the file changes.
	Watch bool
}

// Model for the presenter
type model struct {
	opts Options

	doc   *htmldeck.Document
	deck  *deck.Deck
	input *deck.Dispatcher
	loc   *deck.MemoryLocation
	sched *teaScheduler

	width  int
	height int

	vp   viewport.Model
	prog progress.Model
	help help.Model
	keys keyMap

	// markdown renderer cached per wrap width
	renderer      *glamour.TermRenderer
	rendererWidth int

	// goto palette
	paletteOpen bool
	ti          textinput.Model
	matches     []paletteMatch
	sel         int

	showHelp bool
	notice   string
	quitting bool

	// mouse gesture in progress
	dragging bool

	watchCh   chan struct{}
	stopWatch func()
}

func newModel(doc *htmldeck.Document, opts Options) model {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	m := model{
		opts:  opts,
		sched: &teaScheduler{},
		loc:   deck.NewMemoryLocation(opts.Hash),
		vp:    viewport.New(80, 20),
		prog:  progress.New(progress.WithSolidFill(string(Vitesse.Primary)), progress.WithoutPercentage()),
		help:  help.New(),
		keys:  defaultKeys(),
	}
	ti := textinput.New()
	ti.Prompt = " › "
	ti.Placeholder = "slide title or number"
	ti.CharLimit = 256
	m.ti = ti
	m.load(doc)
	return m
}

// load attaches doc, preserving the current fragment.
func (m *model) load(doc *htmldeck.Document) {
	m.doc = doc
	m.deck = deck.New(doc, m.loc, m.sched, m.opts.Config.EngineOptions())
	m.input = deck.NewDispatcher(m.deck)
	m.deck.Observe(func(ev deck.Event) error {
		system.Logger.Debug(ev.Kind.String(), "slide", ev.Number(), "label", ev.Slide.Label)
		return nil
	})
	m.deck.Start()
	doc.MarkLoaded()
	m.refreshContent()
}

// closeWatch stops the deck file watcher, if any.
func (m *model) closeWatch() {
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
}

// Fragment returns the location fragment of the current slide.
func (m model) Fragment() string { return m.loc.Hash() }

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.sched.drain()}
	if m.opts.Watch && m.opts.Path != "" {
		cmds = append(cmds, startWatchCmd(m.opts.Path))
	}
	return tea.Batch(cmds...)
}

// refreshContent re-renders the current slide into the viewport.
func (m *model) refreshContent() {
	s := m.deck.CurrentSlide()
	if s == nil {
		m.vp.SetContent("\n  This deck has no slides.\n")
		return
	}
	src := m.doc.Markdown(s.Element)
	m.vp.SetContent(m.renderMarkdown(src))
	m.vp.GotoTop()
}

func (m *model) renderMarkdown(src string) string {
	wrap := m.vp.Width - 4
	if wrap < 20 {
		wrap = 20
	}
	if m.renderer == nil || m.rendererWidth != wrap {
		var style glamour.TermRendererOption
		if t := m.opts.Config.Theme; t == "" || t == "auto" {
			style = glamour.WithAutoStyle()
		} else {
			style = glamour.WithStandardStyle(t)
		}
		r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(wrap))
		if err != nil {
			system.Logger.Warn("markdown renderer unavailable", "err", err)
			return src
		}
		m.renderer, m.rendererWidth = r, wrap
	}
	out, err := m.renderer.Render(src)
	if err != nil {
		return src
	}
	return out
}

// positionLabel returns "n/N".
func (m model) positionLabel() string {
	if m.deck.Len() == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", m.deck.Current()+1, m.deck.Len())
}
