package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/andri/asteria/pkg/tui/styles"
	"github.com/andri/asteria/pkg/tui/terminal"
)

// StatusType represents the type of status being displayed
type StatusType int

const (
	// StatusTypeInfo is for informational messages
	StatusTypeInfo StatusType = iota
	// StatusTypeSuccess is for success messages
	StatusTypeSuccess
	// StatusTypeWarning is for warning messages
	StatusTypeWarning
	// StatusTypeError is for error messages
	StatusTypeError
	// StatusTypeRunning is for in-progress operations
	StatusTypeRunning
)

// StatusIndicator displays a status with icon, label, and optional details
type StatusIndicator struct {
	// Label is the main status text
	Label string

	// Details provides additional context (optional)
	Details string

	// Type determines the icon and color
	Type StatusType

	// Icons used for each type
	Icons terminal.Icons

	// Frames animate the running state
	Frames []string

	frame int
}

// NewStatusIndicator creates a new status indicator with Unicode icons.
func NewStatusIndicator(label string, statusType StatusType) *StatusIndicator {
	cap := terminal.Capability{HasUnicode: true}
	return &StatusIndicator{
		Label:  label,
		Type:   statusType,
		Icons:  terminal.GetIcons(cap),
		Frames: terminal.TwinkleFrames(cap),
	}
}

// NewErrorStatus creates an error status indicator
func NewErrorStatus(label string) *StatusIndicator {
	return NewStatusIndicator(label, StatusTypeError)
}

// NewRunningStatus creates a running/in-progress status indicator
func NewRunningStatus(label string) *StatusIndicator {
	return NewStatusIndicator(label, StatusTypeRunning)
}

// WithCapability switches icons and frames to match the terminal.
func (s *StatusIndicator) WithCapability(cap terminal.Capability) *StatusIndicator {
	s.Icons = terminal.GetIcons(cap)
	s.Frames = terminal.TwinkleFrames(cap)
	return s
}

// WithDetails returns the status indicator with details set (for chaining)
func (s *StatusIndicator) WithDetails(details string) *StatusIndicator {
	s.Details = details
	return s
}

// Advance moves the running animation one frame forward.
func (s *StatusIndicator) Advance() {
	if s.Type == StatusTypeRunning && len(s.Frames) > 0 {
		s.frame = (s.frame + 1) % len(s.Frames)
	}
}

// Render returns the string representation for composition
func (s *StatusIndicator) Render() string {
	result := fmt.Sprintf("%s %s", s.getStyle().Render(s.getIcon()), s.Label)
	if s.Details != "" {
		result = fmt.Sprintf("%s %s", result, styles.StyleSubtle.Render(s.Details))
	}
	return result
}

func (s *StatusIndicator) getIcon() string {
	switch s.Type {
	case StatusTypeSuccess:
		return s.Icons.Checkmark
	case StatusTypeWarning:
		return s.Icons.Warning
	case StatusTypeError:
		return s.Icons.Cross
	case StatusTypeRunning:
		if len(s.Frames) == 0 {
			return s.Icons.Star
		}
		return s.Frames[s.frame]
	default:
		return s.Icons.Arrow
	}
}

func (s *StatusIndicator) getStyle() lipgloss.Style {
	switch s.Type {
	case StatusTypeSuccess:
		return styles.StyleSuccess
	case StatusTypeWarning:
		return styles.StyleWarning
	case StatusTypeError:
		return styles.StyleError
	case StatusTypeRunning:
		return styles.StyleStar
	default:
		return styles.StyleStatus
	}
}
