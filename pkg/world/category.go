// Package world holds the records exchanged while a world is being described:
// the draft form state, the generation request sent across the generator seam
// and the result handed to the edit view.
package world

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Category classifies an uploaded reference image.
type Category string

const (
	CategoryMainCharacter Category = "Main Character"
	CategoryEnemy         Category = "Enemy"
	CategoryEnvironment   Category = "Environment"
	CategoryOther         Category = "Other"
)

// Categories returns the selectable categories in display order.
func Categories() []Category {
	return []Category{CategoryMainCharacter, CategoryEnemy, CategoryEnvironment, CategoryOther}
}

// Next returns the category after c, wrapping around.
func (c Category) Next() Category {
	all := Categories()
	for i, candidate := range all {
		if candidate == c {
			return all[(i+1)%len(all)]
		}
	}
	return CategoryMainCharacter
}

// Prev returns the category before c, wrapping around.
func (c Category) Prev() Category {
	all := Categories()
	for i, candidate := range all {
		if candidate == c {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return CategoryMainCharacter
}

// UnknownCategoryError reports a category name that matched nothing.
type UnknownCategoryError struct {
	Input      string
	Suggestion Category
}

func (e *UnknownCategoryError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown image category %q (did you mean %q?)", e.Input, e.Suggestion)
	}
	return fmt.Sprintf("unknown image category %q: expected one of %s", e.Input, joinCategories())
}

// maxSuggestionDistance bounds how far a typo may be from a real category.
const maxSuggestionDistance = 3

// ParseCategory resolves a user-supplied category name. Matching ignores case,
// spaces, dashes and underscores, so "main-character" selects Main Character.
func ParseCategory(s string) (Category, error) {
	want := squash(s)
	if want == "" {
		return CategoryMainCharacter, nil
	}

	var (
		best     Category
		bestDist = maxSuggestionDistance + 1
	)
	for _, c := range Categories() {
		have := squash(string(c))
		if have == want {
			return c, nil
		}
		if d := levenshtein.ComputeDistance(want, have); d < bestDist {
			best, bestDist = c, d
		}
	}

	return "", &UnknownCategoryError{Input: s, Suggestion: best}
}

func squash(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

func joinCategories() string {
	names := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// GameMode selects between solo and shared play.
type GameMode string

const (
	GameModeSingle      GameMode = "single"
	GameModeMultiplayer GameMode = "multiplayer"
)

// ParseGameMode resolves a game mode name, defaulting to single when empty.
func ParseGameMode(s string) (GameMode, error) {
	switch GameMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", GameModeSingle:
		return GameModeSingle, nil
	case GameModeMultiplayer:
		return GameModeMultiplayer, nil
	default:
		return "", fmt.Errorf("unknown game mode %q: expected single or multiplayer", s)
	}
}

// Toggle flips between single and multiplayer.
func (m GameMode) Toggle() GameMode {
	if m == GameModeMultiplayer {
		return GameModeSingle
	}
	return GameModeMultiplayer
}

// Label is the display form of the mode.
func (m GameMode) Label() string {
	if m == GameModeMultiplayer {
		return "Multiplayer"
	}
	return "Single Player"
}
