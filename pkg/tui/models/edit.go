package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/flow"
	"github.com/andri/asteria/pkg/tui/format"
	"github.com/andri/asteria/pkg/tui/keys"
	"github.com/andri/asteria/pkg/tui/styles"
	"github.com/andri/asteria/pkg/world"
)

const (
	refinePlaceholder = "Refine your world…"
	noScript          = "No script was generated."
)

const (
	focusScript = iota
	focusRefine
)

// EditModel shows the generated world with a refine prompt below it.
type EditModel struct {
	nav  *flow.Navigator
	log  *logger.Logger
	keys keys.EditKeyMap

	result *world.GenerationResult
	err    error

	script viewport.Model
	refine textinput.Model
	focus  int

	width  int
	height int
}

// NewEditModel creates the edit page.
func NewEditModel(nav *flow.Navigator, log *logger.Logger) *EditModel {
	if log == nil {
		log = logger.Discard()
	}
	refine := textinput.New()
	refine.Placeholder = refinePlaceholder
	refine.Prompt = "✦ "

	m := &EditModel{
		nav:    nav,
		log:    log.Component("edit"),
		keys:   keys.DefaultEditKeyMap(),
		script: viewport.New(60, 10),
		refine: refine,
		width:  80,
		height: 24,
	}
	m.setFocus(focusRefine)
	return m
}

// Load replaces the displayed world.
func (m *EditModel) Load(result *world.GenerationResult, err error) {
	m.result = result
	m.err = err
	m.refine.Reset()
	m.setContent()
	m.script.GotoTop()
}

func (m *EditModel) setContent() {
	if m.result == nil || strings.TrimSpace(m.result.PythonScript) == "" {
		m.script.SetContent(styles.StyleSubtle.Render(noScript))
		return
	}
	m.script.SetContent(m.result.PythonScript)
}

// Init implements tea.Model
func (m *EditModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Next), key.Matches(keyMsg, m.keys.Prev):
		if m.focus == focusRefine {
			m.setFocus(focusScript)
			return m, nil
		}
		return m, m.setFocus(focusRefine)
	case key.Matches(keyMsg, m.keys.NewProject):
		m.log.Info("starting new project")
		m.nav.NewProject()
		return m, nil
	case key.Matches(keyMsg, m.keys.Save):
		m.nav.SaveProject()
		return m, nil
	case m.focus == focusRefine && key.Matches(keyMsg, m.keys.Refine):
		prompt := strings.TrimSpace(m.refine.Value())
		m.log.Info("refine requested", "prompt", prompt)
		m.refine.Reset()
		return m, scheduleCmd(m.nav.RequestRefine())
	}
	return m, m.updateFocused(msg)
}

func (m *EditModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == focusRefine {
		m.refine, cmd = m.refine.Update(msg)
		return cmd
	}
	m.script, cmd = m.script.Update(msg)
	return cmd
}

func (m *EditModel) setFocus(focus int) tea.Cmd {
	m.focus = focus
	if focus == focusRefine {
		return m.refine.Focus()
	}
	m.refine.Blur()
	return nil
}

// View implements tea.Model
func (m *EditModel) View() string {
	width := m.contentWidth()
	var sections []string

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.StyleButton.Render("New Project"),
		" ",
		styles.StyleButtonActive.Render("Save Project"),
	)
	sections = append(sections, buttons, "")

	if m.err != nil {
		sections = append(sections,
			styles.StyleError.Render(format.Wrap("Generation failed: "+m.err.Error(), width)), "")
	}

	if r := m.result; r != nil {
		title := r.Title
		if title == "" {
			title = "Untitled world"
		}
		sections = append(sections, styles.StyleHeading.Render(title))
		if r.Description != "" {
			sections = append(sections, styles.StyleNormal.Render(format.Wrap(r.Description, width)))
		}
		if r.Message != "" {
			sections = append(sections, styles.StyleSubtle.Render(format.Wrap(r.Message, width)))
		}
		if r.ExecutableFile != "" {
			sections = append(sections, styles.StyleLabel.Render("Executable: ")+r.ExecutableFile)
		}
	} else {
		sections = append(sections, styles.StyleSubtle.Render("Your world is waiting to be written."))
	}
	sections = append(sections, "")

	scriptStyle := styles.StyleField
	if m.focus == focusScript {
		scriptStyle = styles.StyleFieldFocused
	}
	sections = append(sections, scriptStyle.Render(m.script.View()))

	refineStyle := styles.StyleField
	if m.focus == focusRefine {
		refineStyle = styles.StyleFieldFocused
	}
	sections = append(sections, refineStyle.Width(width).Render(m.refine.View()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *EditModel) contentWidth() int {
	return max(min(m.width-6, 76), 20)
}

// SetSize updates the page dimensions.
func (m *EditModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := m.contentWidth()
	m.script.Width = w
	m.script.Height = max(height-18, 3)
	m.refine.Width = w - 4
	m.setContent()
}

// KeyMap returns the bindings shown in the footer.
func (m *EditModel) KeyMap() help.KeyMap { return m.keys }

// Typing reports whether a text field has focus.
func (m *EditModel) Typing() bool { return m.focus == focusRefine }
