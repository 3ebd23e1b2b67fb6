package world

import (
	"errors"
	"fmt"
	"strings"
)

// Draft is the ephemeral form state collected by the creation flow.
type Draft struct {
	WorldDescription string
	// UploadedImage is a data URI, empty when no image was read.
	UploadedImage    string
	ImageDescription string
	Category         Category
	// CustomCategory replaces the category label when Category is Other.
	CustomCategory string
	GameMode       GameMode
	Settings       Settings
}

// NewDraft returns a draft with the default category, mode and sliders.
func NewDraft() Draft {
	return Draft{
		Category: CategoryMainCharacter,
		GameMode: GameModeSingle,
		Settings: DefaultSettings(),
	}
}

// HasDescription reports whether the world description has visible content.
func (d Draft) HasDescription() bool {
	return strings.TrimSpace(d.WorldDescription) != ""
}

// CategoryLabel is the category sent to the generator. Choosing Other sends
// the custom text verbatim, even when it is empty.
func (d Draft) CategoryLabel() string {
	if d.Category == CategoryOther {
		return d.CustomCategory
	}
	return string(d.Category)
}

// Request builds the generation request for the draft.
func (d Draft) Request() GenerationRequest {
	return GenerationRequest{
		WorldDescription: d.WorldDescription,
		UploadedImage:    d.UploadedImage,
		ImageDescription: d.ImageDescription,
		ImageCategory:    d.CategoryLabel(),
		GameMode:         d.GameMode,
		Settings:         d.Settings,
	}
}

// GenerationRequest is the payload sent across the generator seam.
type GenerationRequest struct {
	WorldDescription string   `json:"worldDescription" yaml:"worldDescription"`
	UploadedImage    string   `json:"uploadedImage,omitempty" yaml:"uploadedImage,omitempty"`
	ImageDescription string   `json:"imageDescription" yaml:"imageDescription"`
	ImageCategory    string   `json:"imageCategory" yaml:"imageCategory"`
	GameMode         GameMode `json:"gameMode" yaml:"gameMode"`
	Settings         Settings `json:"settings" yaml:"settings"`
}

// ErrEmptyDescription is returned for requests without a world description.
var ErrEmptyDescription = errors.New("world description must not be empty")

// Validate checks the request the way a backend would before generating.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.WorldDescription) == "" {
		return ErrEmptyDescription
	}
	if _, err := ParseGameMode(string(r.GameMode)); err != nil {
		return err
	}
	if err := r.Settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// Theme is the prompt a generator works from: the world description, with
// the image description appended when one was given.
func (r GenerationRequest) Theme() string {
	theme := strings.TrimSpace(r.WorldDescription)
	if desc := strings.TrimSpace(r.ImageDescription); desc != "" {
		theme += " with an image of " + desc
	}
	return theme
}

// GenerationResult is the record handed from the creation flow to the edit view.
type GenerationResult struct {
	Message        string `json:"message" yaml:"message"`
	Title          string `json:"title" yaml:"title"`
	Description    string `json:"description" yaml:"description"`
	PythonScript   string `json:"python_script" yaml:"python_script"`
	ExecutableFile string `json:"executable_file" yaml:"executable_file"`
}
