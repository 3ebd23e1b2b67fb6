// Package models provides Bubble Tea models for the TUI interface.
package models

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/config"
	"github.com/andri/asteria/pkg/flow"
	"github.com/andri/asteria/pkg/tui/components"
	"github.com/andri/asteria/pkg/tui/keys"
	"github.com/andri/asteria/pkg/tui/styles"
	"github.com/andri/asteria/pkg/tui/terminal"
)

const defaultFrameInterval = 100 * time.Millisecond

// SubModel interface that all routed models must implement
type SubModel interface {
	tea.Model
	// SetSize updates the model's terminal dimensions
	SetSize(width, height int)
	// KeyMap returns the bindings shown in the footer and help overlay
	KeyMap() help.KeyMap
	// Typing reports whether printable keys go to a text field
	Typing() bool
}

// AppConfig holds configuration for the app model
type AppConfig struct {
	// Config is the application configuration
	Config config.Config

	// Generator builds worlds for the loading stage
	Generator flow.Generator

	// Logger receives studio logs; nil discards them
	Logger *logger.Logger

	// Capability selects glyphs and colors
	Capability terminal.Capability

	// Rand drives the decorative sky; nil seeds a new source
	Rand *rand.Rand

	// Context for cancellation
	Context context.Context
}

// AppModel is the main Bubble Tea model. It owns the navigator, routes
// timer and generator results back into it and draws whichever page the
// navigator selects.
type AppModel struct {
	config AppConfig
	log    *logger.Logger
	nav    *flow.Navigator

	// Terminal dimensions
	width  int
	height int

	// Pages
	landing *LandingModel
	create  *CreateModel
	edit    *EditModel

	// Decorations
	sky    *components.Sky
	loader *components.Constellation
	fade   *components.Crossfade

	global keys.GlobalBindings
	help   help.Model

	screen   flow.Screen
	lastView string
	showHelp bool
	quitting bool
}

// NewAppModel creates a new app model with the given configuration
func NewAppModel(cfg AppConfig) *AppModel {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	nav := flow.NewNavigator(flow.Options{
		RefineOverlay:   cfg.Config.Timings.RefineOverlay(),
		GenerationDelay: cfg.Config.Timings.GenerationDelay(),
		Logger:          cfg.Logger,
	})
	loader := components.NewConstellation(cfg.Capability)

	return &AppModel{
		config:  cfg,
		log:     cfg.Logger.Component("studio"),
		nav:     nav,
		landing: NewLandingModel(nav, cfg.Capability),
		create: NewCreateModel(nav, CreateConfig{
			Context:    cfg.Context,
			Generator:  cfg.Generator,
			Logger:     cfg.Logger,
			Capability: cfg.Capability,
			Loader:     loader,
		}),
		edit:   NewEditModel(nav, cfg.Logger),
		sky:    components.NewSky(cfg.Config.UI.Stars, cfg.Rand, cfg.Capability),
		loader: loader,
		fade:   components.NewCrossfade(),
		global: keys.DefaultGlobalBindings(),
		help:   help.New(),
		screen: nav.Screen(),
	}
}

// Navigator exposes the page state machine.
func (m *AppModel) Navigator() *flow.Navigator { return m.nav }

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.create.Init(),
		m.frameCmd(),
	)
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.global.Quit) {
			return m, m.quit()
		}
		if m.nav.Screen() == flow.ScreenRefineOverlay {
			// The edit page is hidden and takes no input until the overlay lifts
			switch {
			case m.showHelp:
				m.showHelp = false
			case key.Matches(msg, m.global.Help):
				m.showHelp = true
			}
			return m, nil
		}
		if m.showHelp {
			// Any key closes the help overlay
			m.showHelp = false
			return m, nil
		}
		if key.Matches(msg, m.global.Help) && !m.currentSubModel().Typing() {
			m.showHelp = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSizeToSubModels()
		return m, nil

	case QuitMsg:
		return m, m.quit()

	case FrameMsg:
		m.advanceFrame()
		m.syncScreen()
		return m, m.frameCmd()

	case FiredMsg:
		m.nav.Fire(msg.Handle)
		m.syncScreen()
		return m, nil

	case GenerationDoneMsg:
		if s := m.nav.StagerFor(msg.StagerID); s != nil {
			s.GenerationDone(msg.Result, msg.Err)
		} else {
			m.log.Debug("dropping result of a closed session", "session", msg.StagerID)
		}
		m.syncScreen()
		return m, nil
	}

	// Delegate to current sub-model
	if !m.showHelp {
		if _, cmd := m.currentSubModel().Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.syncScreen()

	return m, tea.Batch(cmds...)
}

func (m *AppModel) quit() tea.Cmd {
	m.quitting = true
	m.nav.Close()
	return tea.Quit
}

func (m *AppModel) frameCmd() tea.Cmd {
	interval := m.config.Config.Timings.Frame()
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	return frameCmd(interval)
}

func (m *AppModel) advanceFrame() {
	interval := m.config.Config.Timings.Frame()
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	m.sky.Advance()
	m.loader.Advance()
	m.create.Advance()
	m.fade.Advance(float32(interval.Seconds()))
}

// syncScreen reacts to the navigator having moved to a different screen.
func (m *AppModel) syncScreen() {
	screen := m.nav.Screen()
	if screen == m.screen {
		return
	}
	from := m.screen
	m.screen = screen
	m.showHelp = false

	if screen == flow.ScreenEdit && from != flow.ScreenRefineOverlay {
		m.edit.Load(m.nav.Result(), m.nav.LastError())
	}
	if seconds := float32(m.config.Config.Timings.Transition().Seconds()); seconds > 0 && m.lastView != "" {
		m.fade.Start(m.lastView, seconds)
	}
	m.log.Debug("screen changed", "from", from.String(), "screen", screen.String())
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp()
	case m.screen == flow.ScreenRefineOverlay:
		body = m.loader.Render()
	default:
		body = m.renderPage()
	}

	m.sky.SetSize(m.width, m.height)
	view := m.sky.Render(body)
	m.lastView = view
	return m.fade.Render(view)
}

func (m *AppModel) renderPage() string {
	sub := m.currentSubModel()
	page := sub.View()

	m.help.Width = m.width
	footer := m.help.View(sub.KeyMap())
	if warning := terminal.SizeWarning(m.width, m.height); warning != "" {
		footer = lipgloss.JoinVertical(lipgloss.Center, footer, styles.StyleWarning.Render(warning))
	}
	return lipgloss.JoinVertical(lipgloss.Center, page, "", "", footer)
}

// renderHelp displays the help overlay with keyboard shortcuts
func (m *AppModel) renderHelp() string {
	groups := m.currentSubModel().KeyMap().FullHelp()
	groups = append(groups, []key.Binding{m.global.Quit, m.global.Help})

	m.help.Width = m.width
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		styles.StyleHeading.Render("Keyboard Shortcuts"),
		m.help.FullHelpView(groups),
		styles.StyleSubtle.Render("Press any key to close this help."))

	return styles.StyleBoxInfo.
		Width(min(72, max(m.width-4, 20))).
		Render(content)
}

// currentSubModel returns the page for the current screen
func (m *AppModel) currentSubModel() SubModel {
	switch m.nav.Page() {
	case flow.PageCreate:
		return m.create
	case flow.PageEdit:
		return m.edit
	default:
		return m.landing
	}
}

// propagateSizeToSubModels updates all pages with the room left after the
// footer
func (m *AppModel) propagateSizeToSubModels() {
	height := max(m.height-4, 1)
	m.landing.SetSize(m.width, height)
	m.create.SetSize(m.width, height)
	m.edit.SetSize(m.width, height)
}

// GetScreen returns the screen currently drawn
func (m *AppModel) GetScreen() flow.Screen {
	return m.screen
}

// GetTerminalSize returns the current terminal dimensions
func (m *AppModel) GetTerminalSize() (width, height int) {
	return m.width, m.height
}
