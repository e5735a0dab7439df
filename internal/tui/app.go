package tui

import (
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskcalc/internal/adapter"
	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/config"
)

const appName = "jaskcalc"

// calcHost is the terminal side of the adapter capability set. It is shared
// by pointer so every copy of the model sees the same engine.
type calcHost struct {
	input   *adapter.InputAdapter
	handler adapter.KeyHandler
	display adapter.Display
}

func newCalcHost(keys *adapter.KeyRegistry) *calcHost {
	h := &calcHost{}
	h.input = adapter.NewInputAdapter(calc.NewEngine(), keys, adapter.Capabilities{
		RegisterInputSource: func(fn adapter.KeyHandler) { h.handler = fn },
		RenderOutput:        func(d adapter.Display) { h.display = d },
	})
	return h
}

// Option customizes the model.
type Option func(*model)

// WithSaveFunc replaces config.Save, mainly for tests.
func WithSaveFunc(fn func(config.Config) error) Option {
	return func(m *model) { m.save = fn }
}

type model struct {
	cfg      config.Config
	keys     *adapter.KeyRegistry
	host     *calcHost
	commands *CommandRegistry
	help     help.Model
	save     func(config.Config) error

	paletteOpen   bool
	paletteQuery  textinput.Model
	matches       []CommandMatch
	cursor        int
	lastCommandID string

	status    string
	statusErr bool
	width     int
	height    int
}

// New builds the bubbletea model for the calculator.
func New(cfg config.Config, keys *adapter.KeyRegistry, opts ...Option) tea.Model {
	return newModel(cfg, keys, opts...)
}

func newModel(cfg config.Config, keys *adapter.KeyRegistry, opts ...Option) model {
	if keys == nil {
		keys = adapter.NewKeyRegistry()
	}
	h := help.New()
	h.ShowAll = cfg.UI.ShowHelp
	h.Styles.ShortKey = helpKeyStyle
	h.Styles.ShortDesc = helpDescStyle
	h.Styles.ShortSeparator = helpSepStyle
	h.Styles.FullKey = helpKeyStyle
	h.Styles.FullDesc = helpDescStyle
	h.Styles.FullSeparator = helpSepStyle

	q := textinput.New()
	q.Prompt = "> "
	q.Placeholder = "Type a command"
	q.CharLimit = 64

	m := model{
		cfg:          cfg,
		keys:         keys,
		host:         newCalcHost(keys),
		commands:     NewCommandRegistry(),
		help:         h,
		save:         config.Save,
		paletteQuery: q,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.paletteOpen {
			return m.updatePalette(msg)
		}
		return m.updateCalculator(msg)
	}
	return m, nil
}

func (m model) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyName := msg.String()
	if b := m.keys.Lookup(keyName, adapter.ScopeCalculator); b != nil {
		switch b.Action {
		case adapter.ActionQuit:
			return m, tea.Quit
		case adapter.ActionCommandPalette:
			return m, m.openPalette()
		case adapter.ActionToggleHelp:
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}
	if m.host.handler != nil && m.host.handler(keyName) {
		m.clearStatus()
		if m.host.display.Error {
			m.setError("Press esc to clear.")
		}
	}
	return m, nil
}

func (m model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := m.keys.Lookup(msg.String(), adapter.ScopeCommandPalette); b != nil {
		switch b.Action {
		case adapter.ActionClose:
			m.closePalette()
			return m, nil
		case adapter.ActionSelect:
			return m.runSelectedCommand()
		case adapter.ActionNavigate:
			m.moveCursor(msg.String())
			return m, nil
		case adapter.ActionQuit:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.paletteQuery, cmd = m.paletteQuery.Update(msg)
	m.rebuildMatches()
	return m, cmd
}

func (m *model) openPalette() tea.Cmd {
	m.paletteOpen = true
	m.paletteQuery.Reset()
	m.cursor = 0
	m.rebuildMatches()
	return m.paletteQuery.Focus()
}

func (m *model) closePalette() {
	m.paletteOpen = false
	m.paletteQuery.Blur()
	m.paletteQuery.Reset()
	m.matches = nil
	m.cursor = 0
}

func (m *model) rebuildMatches() {
	m.matches = m.commands.Search(m.paletteQuery.Value(), *m, m.lastCommandID)
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) moveCursor(keyName string) {
	if len(m.matches) == 0 {
		return
	}
	switch keyName {
	case "up", "ctrl+p":
		m.cursor = (m.cursor - 1 + len(m.matches)) % len(m.matches)
	default:
		m.cursor = (m.cursor + 1) % len(m.matches)
	}
}

func (m model) runSelectedCommand() (tea.Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		m.closePalette()
		return m, nil
	}
	id := m.matches[m.cursor].Command.ID
	m.closePalette()
	next, cmd, err := m.commands.ExecuteByID(id, m)
	if err != nil {
		log.Printf("command %s: %v", id, err)
		m.setError(err.Error())
		return m, nil
	}
	next.lastCommandID = id
	return next, cmd
}

func (m model) saveConfig(cfg config.Config) error {
	if m.save == nil {
		return nil
	}
	return m.save(cfg)
}

func (m *model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func (m *model) clearStatus() {
	m.status = ""
	m.statusErr = false
}
