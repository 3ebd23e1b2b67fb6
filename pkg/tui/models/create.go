package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/flow"
	"github.com/andri/asteria/pkg/generator"
	"github.com/andri/asteria/pkg/tui/components"
	"github.com/andri/asteria/pkg/tui/format"
	"github.com/andri/asteria/pkg/tui/keys"
	"github.com/andri/asteria/pkg/tui/styles"
	"github.com/andri/asteria/pkg/tui/terminal"
	"github.com/andri/asteria/pkg/world"
)

const (
	describePlaceholder = "A mystical forest where time stands still..."
	imagePlaceholder    = "A brave knight in silver armor..."
	customPlaceholder   = "Enter custom category..."
	pathPlaceholder     = "path/to/image.png"

	advanceButton  = "GENERATE BASE SETTINGS"
	generateButton = "START GENERATING"
)

// Input stage focus order
const (
	focusDescription = iota
	focusImagePath
	focusMode
	focusAdvance
	inputFields
)

// Image modal focus order
const (
	modalImageDescription = iota
	modalCategory
	modalCustomCategory
)

// CreateConfig holds what the create page needs beyond the navigator.
type CreateConfig struct {
	Context    context.Context
	Generator  flow.Generator
	Logger     *logger.Logger
	Capability terminal.Capability
	Loader     *components.Constellation
}

// CreateModel renders the creation flow of the active stager. The stager owns
// all state; this model only holds the widgets used to edit it.
type CreateModel struct {
	nav    *flow.Navigator
	config CreateConfig
	log    *logger.Logger
	keys   keys.CreateKeyMap
	icons  terminal.Icons
	chars  terminal.SliderChars

	stagerID string

	description    textarea.Model
	imagePath      textinput.Model
	imageDesc      textinput.Model
	customCategory textinput.Model

	focus      int
	modalFocus int
	slider     int

	imageName    string
	readingImage bool
	status       *components.StatusIndicator

	width  int
	height int
}

// NewCreateModel creates the create page.
func NewCreateModel(nav *flow.Navigator, config CreateConfig) *CreateModel {
	if config.Context == nil {
		config.Context = context.Background()
	}
	if config.Logger == nil {
		config.Logger = logger.Discard()
	}
	if config.Generator == nil {
		config.Generator = generator.None{}
	}
	if config.Loader == nil {
		config.Loader = components.NewConstellation(config.Capability)
	}
	m := &CreateModel{
		nav:    nav,
		config: config,
		log:    config.Logger.Component("create"),
		keys:   keys.DefaultCreateKeyMap(),
		icons:  terminal.GetIcons(config.Capability),
		chars:  terminal.GetSliderChars(config.Capability),
		width:  80,
		height: 24,
	}
	m.reset("")
	return m
}

// reset rebuilds the widgets for a new session.
func (m *CreateModel) reset(stagerID string) {
	m.stagerID = stagerID

	m.description = textarea.New()
	m.description.Placeholder = describePlaceholder
	m.description.ShowLineNumbers = false
	m.description.CharLimit = 2000
	m.description.SetHeight(4)

	m.imagePath = textinput.New()
	m.imagePath.Placeholder = pathPlaceholder
	m.imagePath.Prompt = ""

	m.imageDesc = textinput.New()
	m.imageDesc.Placeholder = imagePlaceholder
	m.imageDesc.Prompt = ""

	m.customCategory = textinput.New()
	m.customCategory.Placeholder = customPlaceholder
	m.customCategory.Prompt = ""

	m.focus = focusDescription
	m.modalFocus = modalImageDescription
	m.slider = 0
	m.imageName = ""
	m.readingImage = false
	m.status = components.NewRunningStatus("Generating").WithCapability(m.config.Capability)
	m.keys.SetStage(keys.CreateStageInput)

	m.description.Focus()
	m.SetSize(m.width, m.height)
}

// Init implements tea.Model
func (m *CreateModel) Init() tea.Cmd {
	return textarea.Blink
}

// stager returns the live stager, resetting the widgets when a new session
// has started since the last call.
func (m *CreateModel) stager() *flow.Stager {
	s := m.nav.Stager()
	if s == nil {
		return nil
	}
	if s.ID() != m.stagerID {
		m.reset(s.ID())
	}
	return s
}

// Update implements tea.Model
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.stager()
	if s == nil {
		return m, nil
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case ImageReadMsg:
		cmd = m.imageRead(msg)
	case tea.KeyMsg:
		switch {
		case s.Stage() == flow.StageInput && s.ImageModalOpen():
			cmd = m.updateModal(s, msg)
		case s.Stage() == flow.StageInput:
			cmd = m.updateInput(s, msg)
		case s.Stage() == flow.StageSliders:
			cmd = m.updateSliders(s, msg)
		}
	default:
		cmd = m.updateFocused(s, msg)
	}

	m.syncKeys(s)
	return m, cmd
}

func (m *CreateModel) imageRead(msg ImageReadMsg) tea.Cmd {
	s := m.nav.StagerFor(msg.StagerID)
	if s == nil {
		return nil
	}
	m.readingImage = false
	if msg.Err != nil {
		s.ImageFailed(msg.Err)
		return nil
	}
	s.ImageLoaded(msg.DataURI)
	m.imageName = msg.Name
	m.imagePath.Blur()
	m.description.Blur()
	m.modalFocus = modalImageDescription
	m.imageDesc.SetValue(s.Draft().ImageDescription)
	m.customCategory.SetValue(s.Draft().CustomCategory)
	return m.focusModal()
}

func (m *CreateModel) updateInput(s *flow.Stager, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % inputFields)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + inputFields - 1) % inputFields)
	case key.Matches(msg, m.keys.Continue):
		m.advance(s)
		return nil
	case key.Matches(msg, m.keys.ToggleMode):
		s.SetGameMode(s.Draft().GameMode.Toggle())
		return nil
	}

	switch m.focus {
	case focusImagePath:
		if key.Matches(msg, m.keys.LoadImage) {
			path := strings.TrimSpace(m.imagePath.Value())
			if path == "" || m.readingImage {
				return nil
			}
			m.readingImage = true
			m.log.Debug("reading image", "path", path)
			return readImageCmd(s.ID(), path)
		}
	case focusMode:
		switch msg.String() {
		case "enter", " ", "left", "right", "h", "l":
			s.SetGameMode(s.Draft().GameMode.Toggle())
		}
		return nil
	case focusAdvance:
		if msg.String() == "enter" || msg.String() == " " {
			m.advance(s)
		}
		return nil
	}
	return m.updateFocused(s, msg)
}

func (m *CreateModel) advance(s *flow.Stager) {
	if s.AdvanceToSliders() {
		m.description.Blur()
		m.imagePath.Blur()
		m.slider = 0
	}
}

func (m *CreateModel) updateModal(s *flow.Stager, msg tea.KeyMsg) tea.Cmd {
	fields := m.modalFields(s)
	switch {
	case key.Matches(msg, m.keys.CloseModal):
		s.CloseImageModal()
		m.imageDesc.Blur()
		m.customCategory.Blur()
		return m.setFocus(m.focus)
	case key.Matches(msg, m.keys.Next):
		m.modalFocus = (m.modalFocus + 1) % fields
		return m.focusModal()
	case key.Matches(msg, m.keys.Prev):
		m.modalFocus = (m.modalFocus + fields - 1) % fields
		return m.focusModal()
	case key.Matches(msg, m.keys.NextCategory):
		return m.setCategory(s, s.Draft().Category.Next())
	case key.Matches(msg, m.keys.PrevCategory):
		return m.setCategory(s, s.Draft().Category.Prev())
	}

	if m.modalFocus == modalCategory {
		switch msg.String() {
		case "right", "l", " ":
			s.SetCategory(s.Draft().Category.Next())
		case "left", "h":
			s.SetCategory(s.Draft().Category.Prev())
		}
		return nil
	}
	return m.updateFocused(s, msg)
}

// setCategory changes the category and pulls focus back into range when
// the custom category field disappears.
func (m *CreateModel) setCategory(s *flow.Stager, c world.Category) tea.Cmd {
	s.SetCategory(c)
	if last := m.modalFields(s) - 1; m.modalFocus > last {
		m.modalFocus = last
		return m.focusModal()
	}
	return nil
}

func (m *CreateModel) modalFields(s *flow.Stager) int {
	if s.Draft().Category == world.CategoryOther {
		return 3
	}
	return 2
}

func (m *CreateModel) updateSliders(s *flow.Stager, msg tea.KeyMsg) tea.Cmd {
	settings := world.AllSettings()
	switch {
	case key.Matches(msg, m.keys.PrevSlider):
		m.slider = (m.slider + len(settings) - 1) % len(settings)
	case key.Matches(msg, m.keys.NextSlider):
		m.slider = (m.slider + 1) % len(settings)
	case key.Matches(msg, m.keys.Decrease):
		s.AdjustSetting(settings[m.slider], -1)
	case key.Matches(msg, m.keys.Increase):
		s.AdjustSetting(settings[m.slider], 1)
	case key.Matches(msg, m.keys.Generate):
		gen, ok := s.StartGenerating(m.config.Context)
		if !ok {
			return nil
		}
		m.log.Info("generating world", "session", gen.StagerID, "category", gen.Request.ImageCategory, "mode", string(gen.Request.GameMode))
		return tea.Batch(scheduleCmd(gen.Timer), generateCmd(m.config.Generator, gen))
	}
	return nil
}

// updateFocused forwards msg to the focused text widget and copies its value
// into the stager.
func (m *CreateModel) updateFocused(s *flow.Stager, msg tea.Msg) tea.Cmd {
	if s.Stage() != flow.StageInput {
		return nil
	}

	var cmd tea.Cmd
	if s.ImageModalOpen() {
		switch m.modalFocus {
		case modalImageDescription:
			m.imageDesc, cmd = m.imageDesc.Update(msg)
			s.SetImageDescription(m.imageDesc.Value())
		case modalCustomCategory:
			m.customCategory, cmd = m.customCategory.Update(msg)
			s.SetCustomCategory(m.customCategory.Value())
		}
		return cmd
	}

	switch m.focus {
	case focusDescription:
		m.description, cmd = m.description.Update(msg)
		s.SetWorldDescription(m.description.Value())
	case focusImagePath:
		m.imagePath, cmd = m.imagePath.Update(msg)
	}
	return cmd
}

func (m *CreateModel) setFocus(focus int) tea.Cmd {
	m.focus = focus
	m.description.Blur()
	m.imagePath.Blur()
	switch focus {
	case focusDescription:
		return m.description.Focus()
	case focusImagePath:
		return m.imagePath.Focus()
	}
	return nil
}

func (m *CreateModel) focusModal() tea.Cmd {
	m.imageDesc.Blur()
	m.customCategory.Blur()
	switch m.modalFocus {
	case modalImageDescription:
		return m.imageDesc.Focus()
	case modalCustomCategory:
		return m.customCategory.Focus()
	}
	return nil
}

func (m *CreateModel) syncKeys(s *flow.Stager) {
	switch {
	case s.Stage() == flow.StageLoading || s.Closed():
		m.keys.SetStage(keys.CreateStageLoading)
	case s.Stage() == flow.StageSliders:
		m.keys.SetStage(keys.CreateStageSliders)
	case s.ImageModalOpen():
		m.keys.SetStage(keys.CreateStageImage)
	default:
		m.keys.SetStage(keys.CreateStageInput)
	}
	if s.Stage() == flow.StageInput && !s.ImageModalOpen() && m.focus != focusImagePath {
		m.keys.LoadImage.SetEnabled(false)
	}
}

// Advance steps the loading status animation.
func (m *CreateModel) Advance() {
	m.status.Advance()
}

// View implements tea.Model
func (m *CreateModel) View() string {
	s := m.stager()
	if s == nil {
		return ""
	}
	switch s.Stage() {
	case flow.StageSliders:
		return m.viewSliders(s)
	case flow.StageLoading:
		return m.viewLoading(s)
	}
	if s.ImageModalOpen() {
		return m.viewModal(s)
	}
	return m.viewInput(s)
}

func (m *CreateModel) contentWidth() int {
	return max(min(m.width-6, 72), 20)
}

func (m *CreateModel) field(view string, focused bool) string {
	style := styles.StyleField
	if focused {
		style = styles.StyleFieldFocused
	}
	return style.Width(m.contentWidth()).Render(view)
}

func (m *CreateModel) viewInput(s *flow.Stager) string {
	draft := s.Draft()
	var b strings.Builder

	b.WriteString(styles.StyleHeading.Render("Describe your world"))
	b.WriteString("\n")
	b.WriteString(m.field(m.description.View(), m.focus == focusDescription))
	b.WriteString("\n\n")

	b.WriteString(styles.StyleLabel.Render("Upload image"))
	b.WriteString("\n")
	b.WriteString(m.field(m.imagePath.View(), m.focus == focusImagePath))
	b.WriteString("\n")
	b.WriteString(m.imageLine(s))
	b.WriteString("\n\n")

	b.WriteString(styles.StyleLabel.Render("Game mode"))
	b.WriteString("  ")
	b.WriteString(m.modeToggle(draft.GameMode, m.focus == focusMode))
	b.WriteString("\n\n")

	button := styles.StyleButton
	switch {
	case !s.CanAdvance():
		button = styles.StyleButtonDisabled
	case m.focus == focusAdvance:
		button = styles.StyleButtonActive
	}
	b.WriteString(button.Render(advanceButton))

	return b.String()
}

func (m *CreateModel) imageLine(s *flow.Stager) string {
	draft := s.Draft()
	switch {
	case m.readingImage:
		return styles.StyleSubtle.Render("Reading image...")
	case s.ImageError() != nil:
		return styles.StyleError.Render(m.icons.Cross + " " + s.ImageError().Error())
	case draft.UploadedImage != "":
		name := m.imageName
		if name == "" {
			name = "image"
		}
		return styles.StyleSuccess.Render(fmt.Sprintf("%s %s (%s, %s)", m.icons.Checkmark,
			format.Ellipsize(name, 30, ""),
			world.DataURIMediaType(draft.UploadedImage),
			format.Bytes(int64(world.DataURISize(draft.UploadedImage)))))
	default:
		return styles.StyleSubtle.Render("Enter a file path and press Enter")
	}
}

func (m *CreateModel) modeToggle(mode world.GameMode, focused bool) string {
	var parts []string
	for _, candidate := range []world.GameMode{world.GameModeSingle, world.GameModeMultiplayer} {
		label := strings.ToUpper(candidate.Label())
		switch {
		case candidate == mode && focused:
			parts = append(parts, styles.StyleButtonActive.Render(label))
		case candidate == mode:
			parts = append(parts, styles.StyleHighlight.Render(label))
		default:
			parts = append(parts, styles.StyleSubtle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *CreateModel) viewModal(s *flow.Stager) string {
	draft := s.Draft()
	var b strings.Builder

	b.WriteString(styles.StyleLabel.Render("What is in this image?"))
	b.WriteString("\n")
	b.WriteString(m.field(m.imageDesc.View(), m.modalFocus == modalImageDescription))
	b.WriteString("\n\n")

	b.WriteString(styles.StyleLabel.Render("Category"))
	b.WriteString("\n")
	var cats []string
	for _, c := range world.Categories() {
		label := string(c)
		switch {
		case c == draft.Category && m.modalFocus == modalCategory:
			cats = append(cats, styles.StyleButtonActive.Render(label))
		case c == draft.Category:
			cats = append(cats, styles.StyleHighlight.Render(m.icons.Cursor+" "+label))
		default:
			cats = append(cats, styles.StyleSubtle.Render(label))
		}
	}
	b.WriteString(strings.Join(cats, "  "))

	if draft.Category == world.CategoryOther {
		b.WriteString("\n\n")
		b.WriteString(m.field(m.customCategory.View(), m.modalFocus == modalCustomCategory))
	}

	modal := components.NewModal(components.ModalConfig{
		Title: "Image details",
		Width: m.contentWidth() + 6,
	})
	modal.SetContent(b.String())
	return modal.Render()
}

func (m *CreateModel) viewSliders(s *flow.Stager) string {
	draft := s.Draft()
	var b strings.Builder

	b.WriteString(styles.StyleHeading.Render("Tune your world"))
	b.WriteString("\n")
	b.WriteString(styles.StyleSubtle.Render(format.Ellipsize(strings.Join(strings.Fields(draft.WorldDescription), " "), m.contentWidth(), "...")))
	b.WriteString("\n")
	category := draft.CategoryLabel()
	if category == "" {
		category = "(empty)"
	}
	b.WriteString(styles.StyleSubtle.Render(fmt.Sprintf("%s %s  %s %s", m.icons.Star, category, m.icons.Star, draft.GameMode.Label())))
	b.WriteString("\n\n")

	trackWidth := max(m.contentWidth()-34, 10)
	for i, setting := range world.AllSettings() {
		slider := components.NewSlider(setting, draft.Settings.Get(setting), m.chars)
		slider.Width = trackWidth
		slider.Focused = i == m.slider
		cursor := "  "
		if slider.Focused {
			cursor = styles.StyleHighlight.Render(m.icons.Cursor) + " "
		}
		b.WriteString(cursor + slider.Render())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.StyleButtonActive.Render(generateButton))

	return b.String()
}

func (m *CreateModel) viewLoading(s *flow.Stager) string {
	var pending []string
	if !s.Generated() {
		pending = append(pending, "waiting for the generator")
	}
	if !s.DelayElapsed() {
		pending = append(pending, "settling the stars")
	}
	m.status.Details = strings.Join(pending, ", ")
	return lipgloss.JoinVertical(lipgloss.Center,
		m.config.Loader.Render(),
		"",
		m.status.Render(),
	)
}

// SetSize updates the page dimensions.
func (m *CreateModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := m.contentWidth() - 4
	m.description.SetWidth(w)
	m.imagePath.Width = w
	m.imageDesc.Width = w
	m.customCategory.Width = w
}

// KeyMap returns the bindings shown in the footer.
func (m *CreateModel) KeyMap() help.KeyMap { return m.keys }

// Typing reports whether a text field has focus.
func (m *CreateModel) Typing() bool {
	s := m.nav.Stager()
	if s == nil || s.Stage() != flow.StageInput {
		return false
	}
	if s.ImageModalOpen() {
		return m.modalFocus != modalCategory
	}
	return m.focus == focusDescription || m.focus == focusImagePath
}
