package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// EditKeyMap contains the edit page bindings.
type EditKeyMap struct {
	FocusBindings
	NavigationBindings

	Refine     key.Binding
	NewProject key.Binding
	Save       key.Binding
}

// DefaultEditKeyMap returns the default edit page keybindings.
func DefaultEditKeyMap() EditKeyMap {
	return EditKeyMap{
		FocusBindings:      DefaultFocusBindings(),
		NavigationBindings: DefaultNavigationBindings(),
		Refine: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "refine"),
		),
		NewProject: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", "new project"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "save project"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k EditKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Refine, k.NewProject, k.Save}
}

// FullHelp implements help.KeyMap.
func (k EditKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down},
		{k.Refine, k.NewProject, k.Save},
	}
}
