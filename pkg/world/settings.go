package world

import "fmt"

// Setting identifies one of the four world sliders.
type Setting int

const (
	SettingHorror Setting = iota
	SettingPuzzle
	SettingAge
	SettingSpeed
)

// AllSettings lists the sliders in display order.
func AllSettings() []Setting {
	return []Setting{SettingHorror, SettingPuzzle, SettingAge, SettingSpeed}
}

// Range is an inclusive slider range.
type Range struct {
	Min, Max int
}

// Clamp limits v to the range.
func (r Range) Clamp(v int) int {
	return min(max(v, r.Min), r.Max)
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Range returns the allowed values of the setting.
func (s Setting) Range() Range {
	if s == SettingAge {
		return Range{Min: 3, Max: 18}
	}
	return Range{Min: 0, Max: 10}
}

// Label is the slider caption.
func (s Setting) Label() string {
	switch s {
	case SettingHorror:
		return "Horror Level"
	case SettingPuzzle:
		return "Puzzle Complexity"
	case SettingAge:
		return "Age Group"
	case SettingSpeed:
		return "Speed / Chaos"
	default:
		return fmt.Sprintf("Setting(%d)", int(s))
	}
}

// Key is the wire name of the setting.
func (s Setting) Key() string {
	switch s {
	case SettingHorror:
		return "horrorLevel"
	case SettingPuzzle:
		return "puzzleComplexity"
	case SettingAge:
		return "ageGroup"
	case SettingSpeed:
		return "speedChaos"
	default:
		return ""
	}
}

// Settings holds the four slider values.
type Settings struct {
	HorrorLevel      int `json:"horrorLevel" yaml:"horrorLevel"`
	PuzzleComplexity int `json:"puzzleComplexity" yaml:"puzzleComplexity"`
	AgeGroup         int `json:"ageGroup" yaml:"ageGroup"`
	SpeedChaos       int `json:"speedChaos" yaml:"speedChaos"`
}

// DefaultSettings returns the slider positions a new draft starts with.
func DefaultSettings() Settings {
	return Settings{
		HorrorLevel:      3,
		PuzzleComplexity: 5,
		AgeGroup:         7,
		SpeedChaos:       4,
	}
}

// Get returns the value of one setting.
func (s Settings) Get(k Setting) int {
	switch k {
	case SettingHorror:
		return s.HorrorLevel
	case SettingPuzzle:
		return s.PuzzleComplexity
	case SettingAge:
		return s.AgeGroup
	case SettingSpeed:
		return s.SpeedChaos
	default:
		return 0
	}
}

// Set stores v clamped to the setting's range and returns the stored value.
func (s *Settings) Set(k Setting, v int) int {
	v = k.Range().Clamp(v)
	switch k {
	case SettingHorror:
		s.HorrorLevel = v
	case SettingPuzzle:
		s.PuzzleComplexity = v
	case SettingAge:
		s.AgeGroup = v
	case SettingSpeed:
		s.SpeedChaos = v
	}
	return v
}

// Validate reports the first setting outside its range.
func (s Settings) Validate() error {
	for _, k := range AllSettings() {
		r := k.Range()
		if v := s.Get(k); !r.Contains(v) {
			return fmt.Errorf("%s must be between %d and %d, got %d", k.Key(), r.Min, r.Max, v)
		}
	}
	return nil
}
