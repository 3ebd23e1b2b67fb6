// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/andri/asteria/pkg/tui/styles"
)

// ModalConfig holds configuration for a modal component.
type ModalConfig struct {
	Title     string
	Width     int
	Height    int
	MinWidth  int
	MaxWidth  int
	MaxHeight int
	// Style overrides the frame; styles.StyleBox is used when unset.
	Style *lipgloss.Style
}

// Modal renders a centered box over the page.
type Modal struct {
	config  ModalConfig
	content string
	width   int
	height  int
}

// NewModal creates a new modal with configuration.
func NewModal(config ModalConfig) *Modal {
	return &Modal{config: config}
}

// SetContent assigns the body of the modal.
func (m *Modal) SetContent(content string) {
	m.content = content
}

// SetSize sets the terminal dimensions.
func (m *Modal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ContentWidth is the width available to the body inside the frame.
func (m *Modal) ContentWidth() int {
	w, _ := m.modalSize()
	frameW, _ := m.style().GetFrameSize()
	return max(w-frameW, 1)
}

// Render returns the modal placed in the middle of the terminal.
func (m *Modal) Render() string {
	content := m.content
	if m.config.Title != "" {
		content = fmt.Sprintf("%s\n%s", styles.StyleHeading.Render(m.config.Title), content)
	}

	modalWidth, modalHeight := m.modalSize()
	style := m.style()
	style = style.Width(max(modalWidth-style.GetHorizontalBorderSize(), 1))
	if modalHeight > 0 {
		style = style.MaxHeight(modalHeight)
	}
	box := style.Render(content)

	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Modal) style() lipgloss.Style {
	if m.config.Style != nil {
		return *m.config.Style
	}
	return styles.StyleBox
}

func (m *Modal) modalSize() (int, int) {
	width := m.config.Width
	height := m.config.Height

	if width == 0 {
		width = min(m.width-4, 72)
	}
	if height == 0 && m.height > 0 {
		height = m.height - 2
	}

	if m.config.MaxWidth > 0 {
		width = min(width, m.config.MaxWidth)
	}
	if m.config.MaxHeight > 0 && height > 0 {
		height = min(height, m.config.MaxHeight)
	}
	if m.config.MinWidth > 0 {
		width = max(width, m.config.MinWidth)
	}

	if width < 20 {
		width = 20
	}
	return width, height
}
