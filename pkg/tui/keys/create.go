package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// CreateStage mirrors the creation flow stage a key map is configured for.
type CreateStage int

const (
	CreateStageInput CreateStage = iota
	CreateStageImage
	CreateStageSliders
	CreateStageLoading
)

// CreateKeyMap contains state-aware bindings for the creation flow.
type CreateKeyMap struct {
	FocusBindings

	// Input stage
	Continue   key.Binding
	LoadImage  key.Binding
	ToggleMode key.Binding

	// Image modal
	NextCategory key.Binding
	PrevCategory key.Binding
	CloseModal   key.Binding

	// Sliders stage
	PrevSlider key.Binding
	NextSlider key.Binding
	Decrease   key.Binding
	Increase   key.Binding
	Generate   key.Binding
}

// DefaultCreateKeyMap returns the creation flow bindings, configured for
// the input stage.
func DefaultCreateKeyMap() CreateKeyMap {
	k := CreateKeyMap{
		FocusBindings: DefaultFocusBindings(),
		Continue: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("Ctrl+G", "generate base settings"),
		),
		LoadImage: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "upload image"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("Ctrl+T", "single/multiplayer"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("ctrl+right", "ctrl+l"),
			key.WithHelp("Ctrl+→", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("ctrl+left", "ctrl+h"),
			key.WithHelp("Ctrl+←", "prev category"),
		),
		CloseModal: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("Enter/Esc", "done"),
		),
		PrevSlider: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev slider"),
		),
		NextSlider: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next slider"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		Generate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "start generating"),
		),
	}
	k.SetStage(CreateStageInput)
	return k
}

// SetStage enables only the bindings that act in stage.
func (k *CreateKeyMap) SetStage(stage CreateStage) {
	k.disableAll()
	switch stage {
	case CreateStageInput:
		k.Next.SetEnabled(true)
		k.Prev.SetEnabled(true)
		k.Continue.SetEnabled(true)
		k.LoadImage.SetEnabled(true)
		k.ToggleMode.SetEnabled(true)
	case CreateStageImage:
		k.Next.SetEnabled(true)
		k.Prev.SetEnabled(true)
		k.NextCategory.SetEnabled(true)
		k.PrevCategory.SetEnabled(true)
		k.CloseModal.SetEnabled(true)
	case CreateStageSliders:
		k.PrevSlider.SetEnabled(true)
		k.NextSlider.SetEnabled(true)
		k.Decrease.SetEnabled(true)
		k.Increase.SetEnabled(true)
		k.Generate.SetEnabled(true)
	case CreateStageLoading:
		// Nothing to press while the world is forged
	}
}

func (k *CreateKeyMap) disableAll() {
	for _, b := range k.all() {
		b.SetEnabled(false)
	}
}

func (k *CreateKeyMap) all() []*key.Binding {
	return []*key.Binding{
		&k.Next, &k.Prev,
		&k.Continue, &k.LoadImage, &k.ToggleMode,
		&k.NextCategory, &k.PrevCategory, &k.CloseModal,
		&k.PrevSlider, &k.NextSlider, &k.Decrease, &k.Increase, &k.Generate,
	}
}

// ShortHelp implements help.KeyMap.
func (k CreateKeyMap) ShortHelp() []key.Binding {
	var bindings []key.Binding
	for _, b := range k.all() {
		if b.Enabled() {
			bindings = append(bindings, *b)
		}
	}
	return bindings
}

// FullHelp implements help.KeyMap.
func (k CreateKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.LoadImage, k.ToggleMode, k.Continue},
		{k.NextCategory, k.PrevCategory, k.CloseModal},
		{k.PrevSlider, k.NextSlider, k.Decrease, k.Increase, k.Generate},
	}
}
