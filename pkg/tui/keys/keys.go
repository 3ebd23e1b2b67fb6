// Package keys provides centralized keybinding definitions for the TUI.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// GlobalBindings are active everywhere in the application.
type GlobalBindings struct {
	Quit key.Binding
	Help key.Binding
}

// DefaultGlobalBindings returns the default global keybindings.
func DefaultGlobalBindings() GlobalBindings {
	return GlobalBindings{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// NavigationBindings for cursor movement.
type NavigationBindings struct {
	Up   key.Binding
	Down key.Binding
}

// DefaultNavigationBindings returns the default navigation keybindings.
func DefaultNavigationBindings() NavigationBindings {
	return NavigationBindings{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
	}
}

// FocusBindings move focus between fields.
type FocusBindings struct {
	Next key.Binding
	Prev key.Binding
}

// DefaultFocusBindings returns the default focus keybindings.
func DefaultFocusBindings() FocusBindings {
	return FocusBindings{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "prev field"),
		),
	}
}

// LandingKeyMap contains the landing page bindings.
type LandingKeyMap struct {
	Start key.Binding
	Quit  key.Binding
}

// DefaultLandingKeyMap returns the default landing page keybindings.
func DefaultLandingKeyMap() LandingKeyMap {
	return LandingKeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("Enter", "start creating"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k LandingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k LandingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
