package tui

import (
	"time"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"worldmap/internal/engine"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
	defaultFPS   = 30
)

type Model struct {
	world *engine.World
	log   *zap.Logger

	width  int
	height int

	showSidebar bool
	showTable   bool
	helpVisible bool

	status string

	canvas *brailleCanvas
	frame  time.Duration

	// country list
	l list.Model

	// status table
	tbl table.Model

	// hover state
	hovering  bool
	hoverLon  float64
	hoverLat  float64
	hoverName string
}

// Options tunes the terminal frontend.
type Options struct {
	FPS int
}

func New(world *engine.World, opts Options, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	m := Model{
		world:       world,
		log:         log,
		helpVisible: true,
		status:      "worldmap ready",
		canvas:      newBrailleCanvas(1, 1),
		frame:       time.Second / time.Duration(opts.FPS),
	}
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Countries"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.tbl = table.New(
		table.WithColumns([]table.Column{
			{Title: "Code", Width: 4},
			{Title: "Country", Width: 28},
			{Title: "Status", Width: 6},
		}),
		table.WithFocused(true),
	)
	m.tbl.SetHeight(12)
	m.refreshCountries()
	return m
}

type frameMsg time.Time

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Run starts the program on the alternate screen with mouse motion events.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
