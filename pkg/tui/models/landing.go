package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andri/asteria/pkg/flow"
	"github.com/andri/asteria/pkg/tui/keys"
	"github.com/andri/asteria/pkg/tui/styles"
	"github.com/andri/asteria/pkg/tui/terminal"
)

var wordmark = []string{
	" █████  ███████ ████████ ███████ ██████  ██  █████ ",
	"██   ██ ██         ██    ██      ██   ██ ██ ██   ██",
	"███████ ███████    ██    █████   ██████  ██ ███████",
	"██   ██      ██    ██    ██      ██   ██ ██ ██   ██",
	"██   ██ ███████    ██    ███████ ██   ██ ██ ██   ██",
}

const (
	tagline     = "Dream, Describe, Dive into your world"
	startButton = "START CREATING"
)

// LandingModel is the title page. Its only action starts a creation flow.
type LandingModel struct {
	nav    *flow.Navigator
	keys   keys.LandingKeyMap
	cap    terminal.Capability
	width  int
	height int
}

// NewLandingModel creates the landing page.
func NewLandingModel(nav *flow.Navigator, cap terminal.Capability) *LandingModel {
	return &LandingModel{
		nav:  nav,
		keys: keys.DefaultLandingKeyMap(),
		cap:  cap,
	}
}

// Init implements tea.Model
func (m *LandingModel) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m *LandingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Start):
		m.nav.Start()
	case key.Matches(keyMsg, m.keys.Quit):
		return m, func() tea.Msg { return QuitMsg{} }
	}
	return m, nil
}

// View implements tea.Model
func (m *LandingModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		renderWordmark(m.cap, m.width),
		"",
		styles.StyleTagline.Render(tagline),
		"",
		"",
		styles.StyleButtonActive.Render(startButton),
	)
}

// SetSize updates the page dimensions.
func (m *LandingModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// KeyMap returns the bindings shown in the footer.
func (m *LandingModel) KeyMap() help.KeyMap { return m.keys }

// Typing reports whether a text field has focus.
func (m *LandingModel) Typing() bool { return false }

// renderWordmark draws the title, falling back to spaced letters when the
// block art does not fit or cannot be drawn.
func renderWordmark(cap terminal.Capability, width int) string {
	art := lipgloss.Width(wordmark[0])
	if !cap.HasUnicode || cap.HasNoColors || (width > 0 && width < art+4) {
		return styles.StyleTitle.Render("A S T E R I A")
	}
	return styles.StyleTitle.Render(strings.Join(wordmark, "\n"))
}
