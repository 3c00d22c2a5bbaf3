package viz

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/glucosim/internal/catalog"
	"github.com/san-kum/glucosim/internal/chart"
	"github.com/san-kum/glucosim/internal/config"
	"github.com/san-kum/glucosim/internal/engine"
	"github.com/san-kum/glucosim/internal/interact"
	"github.com/san-kum/glucosim/internal/watcher"
)

const (
	screenTracker = iota
	screenLearn
)

const (
	defaultWidth  = 80
	defaultHeight = 40
	chartTop      = 2
)

// Options configure the interactive program.
type Options struct {
	Config  config.Config
	Catalog *catalog.Catalog
	Modules []catalog.Module
	Theme   string
	Logger  *slog.Logger

	// Watch lists files whose changes trigger Reload.
	Watch  []string
	Reload func() (*config.Config, *catalog.Catalog, error)
}

type Model struct {
	opts    Options
	log     *slog.Logger
	session *engine.Session
	ctrl    *interact.Controller
	catalog *catalog.Catalog
	modules []catalog.Module

	screen   int
	theme    Theme
	st       styles
	showHelp bool
	status   string

	width, height int

	items     []catalog.Item
	cursor    int
	search    textinput.Model
	searching bool
	focus     int

	module, item int
}

func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "search foods or categories"
	ti.Prompt = "/ "
	ti.CharLimit = 40

	theme := GetTheme(opts.Theme)
	m := Model{
		opts:    opts,
		log:     log,
		session: engine.New(opts.Config, engine.WithLogger(log)),
		catalog: cat,
		modules: opts.Modules,
		theme:   theme,
		st:      newStyles(theme),
		width:   defaultWidth,
		height:  defaultHeight,
		items:   cat.Search(""),
		search:  ti,
	}
	m.ctrl = interact.NewController(m.session, m.frame())
	return m
}

// Run starts the full screen program and blocks until it quits.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.watch()
}

func (m Model) watch() tea.Cmd {
	if len(m.opts.Watch) == 0 || m.opts.Reload == nil {
		return nil
	}
	return watcher.Watch(watcher.DefaultDebounce, m.opts.Watch...)
}

// chartSize is the canvas size in cells for the current terminal.
func (m Model) chartSize() (cols, rows int) {
	cols = max(24, m.width-axisWidth-2)
	rows = max(6, min(14, m.height-24))
	return cols, rows
}

func (m Model) frame() chart.Frame {
	cols, rows := m.chartSize()
	return dotFrame(cols, rows, m.session.Config())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ctrl.SetFrame(m.frame())
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.status = ""
		if m.screen == screenLearn {
			return m.learnKey(msg)
		}
		return m.trackerKey(msg)
	case tea.MouseMsg:
		if m.screen == screenTracker {
			return m.trackerMouse(msg), nil
		}
		return m, nil
	case watcher.ChangedMsg:
		return m.reload(msg)
	case watcher.ErrorMsg:
		m.log.Error("watch failed", "err", msg.Err)
		m.status = "watch failed: " + msg.Err.Error()
		return m, nil
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) reload(msg watcher.ChangedMsg) (tea.Model, tea.Cmd) {
	cfg, cat, err := m.opts.Reload()
	if err != nil {
		m.log.Error("reload failed", "files", msg.Files, "err", err)
		m.status = "reload failed: " + err.Error()
		return m, m.watch()
	}
	if cfg != nil {
		m.session = m.session.Rebase(*cfg)
		m.ctrl.SetSession(m.session)
		m.ctrl.SetFrame(m.frame())
	}
	if cat != nil {
		m.catalog = cat
		if len(cat.Modules) > 0 {
			m.modules = cat.Modules
			m.module, m.item = 0, 0
		}
		m.refilter()
	}
	m.clampFocus()
	m.log.Info("reloaded", "files", msg.Files)
	m.status = fmt.Sprintf("reloaded %d file(s)", len(msg.Files))
	return m, m.watch()
}

func (m Model) View() string {
	var body string
	if m.screen == screenLearn {
		body = m.learnView()
	} else {
		body = m.trackerView()
	}
	if m.showHelp {
		return body + "\n" + m.helpView()
	}
	return body
}

func (m Model) helpView() string {
	rows := []string{
		m.st.title.Render("KEYBOARD SHORTCUTS"),
		"",
		m.st.keyHints("j/k", "move cursor", "enter", "add or remove item"),
		m.st.keyHints("/", "search", "tab", "focus next marker"),
		m.st.keyHints("h/l", "nudge marker", "x", "remove marker"),
		m.st.keyHints("i", "inspect marker", "r", "reset timeline"),
		m.st.keyHints("t", "cycle theme", "L", "learning screen"),
		m.st.keyHints("mouse", "drag markers, click to inspect"),
		m.st.keyHints("?", "toggle help", "q", "quit"),
	}
	return m.st.help.Render(strings.Join(rows, "\n"))
}

func (m *Model) cycleTheme() {
	m.theme = NextTheme(m.theme.Name)
	m.st = newStyles(m.theme)
}

// Session exposes the engine state, mainly for tests and callers embedding
// the model.
func (m Model) Session() *engine.Session { return m.session }
