package world

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
		suggest Category
	}{
		{"Main Character", CategoryMainCharacter, false, ""},
		{"main-character", CategoryMainCharacter, false, ""},
		{"ENEMY", CategoryEnemy, false, ""},
		{" environment ", CategoryEnvironment, false, ""},
		{"other", CategoryOther, false, ""},
		{"", CategoryMainCharacter, false, ""},
		{"enemmy", "", true, CategoryEnemy},
		{"enviroment", "", true, CategoryEnvironment},
		{"spaceship", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				var unknown *UnknownCategoryError
				if !errors.As(err, &unknown) {
					t.Fatalf("ParseCategory(%q) error = %v, want *UnknownCategoryError", tt.input, err)
				}
				if unknown.Suggestion != tt.suggest {
					t.Errorf("suggestion = %q, want %q", unknown.Suggestion, tt.suggest)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnknownCategoryErrorMessage(t *testing.T) {
	withHint := (&UnknownCategoryError{Input: "enemmy", Suggestion: CategoryEnemy}).Error()
	if !strings.Contains(withHint, `did you mean "Enemy"`) {
		t.Errorf("Error() = %q, want suggestion", withHint)
	}
	without := (&UnknownCategoryError{Input: "spaceship"}).Error()
	if !strings.Contains(without, "Main Character, Enemy, Environment, Other") {
		t.Errorf("Error() = %q, want category list", without)
	}
}

func TestCategoryCycle(t *testing.T) {
	c := CategoryMainCharacter
	for range Categories() {
		c = c.Next()
	}
	if c != CategoryMainCharacter {
		t.Errorf("Next() did not wrap, got %q", c)
	}
	if got := CategoryMainCharacter.Prev(); got != CategoryOther {
		t.Errorf("Prev() = %q, want Other", got)
	}
}

func TestParseGameMode(t *testing.T) {
	if m, err := ParseGameMode("Multiplayer"); err != nil || m != GameModeMultiplayer {
		t.Errorf("ParseGameMode(Multiplayer) = %q, %v", m, err)
	}
	if m, err := ParseGameMode(""); err != nil || m != GameModeSingle {
		t.Errorf("ParseGameMode(\"\") = %q, %v", m, err)
	}
	if _, err := ParseGameMode("coop"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if GameModeSingle.Toggle() != GameModeMultiplayer || GameModeMultiplayer.Toggle() != GameModeSingle {
		t.Error("Toggle() did not flip mode")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	want := Settings{HorrorLevel: 3, PuzzleComplexity: 5, AgeGroup: 7, SpeedChaos: 4}
	if s != want {
		t.Errorf("DefaultSettings() = %+v, want %+v", s, want)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSettingsSetClamps(t *testing.T) {
	tests := []struct {
		setting Setting
		value   int
		want    int
	}{
		{SettingHorror, 11, 10},
		{SettingHorror, -1, 0},
		{SettingPuzzle, 6, 6},
		{SettingAge, 2, 3},
		{SettingAge, 19, 18},
		{SettingSpeed, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.setting.Label(), func(t *testing.T) {
			s := DefaultSettings()
			if got := s.Set(tt.setting, tt.value); got != tt.want {
				t.Errorf("Set(%d) = %d, want %d", tt.value, got, tt.want)
			}
			if got := s.Get(tt.setting); got != tt.want {
				t.Errorf("Get() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	s.AgeGroup = 1
	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "ageGroup must be between 3 and 18") {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDraftRequest(t *testing.T) {
	d := NewDraft()
	d.WorldDescription = "A mystical forest"
	d.ImageDescription = "a fox"
	d.GameMode = GameModeMultiplayer

	req := d.Request()
	if req.ImageCategory != "Main Character" {
		t.Errorf("ImageCategory = %q, want Main Character", req.ImageCategory)
	}
	if req.GameMode != GameModeMultiplayer {
		t.Errorf("GameMode = %q", req.GameMode)
	}
	if req.Settings != DefaultSettings() {
		t.Errorf("Settings = %+v", req.Settings)
	}

	d.Category = CategoryOther
	d.CustomCategory = "Companion"
	if got := d.Request().ImageCategory; got != "Companion" {
		t.Errorf("ImageCategory with Other = %q, want Companion", got)
	}

	d.CustomCategory = ""
	if got := d.Request().ImageCategory; got != "" {
		t.Errorf("ImageCategory with empty custom text = %q, want empty", got)
	}
}

func TestDraftHasDescription(t *testing.T) {
	d := NewDraft()
	for _, text := range []string{"", "   ", "\n\t"} {
		d.WorldDescription = text
		if d.HasDescription() {
			t.Errorf("HasDescription(%q) = true", text)
		}
	}
	d.WorldDescription = "  x "
	if !d.HasDescription() {
		t.Error("HasDescription() = false for visible text")
	}
}

func TestRequestWireFormat(t *testing.T) {
	d := NewDraft()
	d.WorldDescription = "A mystical forest"
	data, err := json.Marshal(d.Request())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(data)
	for _, key := range []string{`"worldDescription":"A mystical forest"`, `"imageCategory":"Main Character"`,
		`"gameMode":"single"`, `"horrorLevel":3`, `"speedChaos":4`} {
		if !strings.Contains(got, key) {
			t.Errorf("request JSON missing %s: %s", key, got)
		}
	}
	if strings.Contains(got, "uploadedImage") {
		t.Errorf("empty image should be omitted: %s", got)
	}
}

func TestResultWireFormat(t *testing.T) {
	data, err := json.Marshal(GenerationResult{PythonScript: "print()", ExecutableFile: "game.py"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"python_script":"print()"`) ||
		!strings.Contains(string(data), `"executable_file":"game.py"`) {
		t.Errorf("unexpected result JSON: %s", data)
	}
}

func TestRequestValidate(t *testing.T) {
	req := NewDraft().Request()
	if !errors.Is(req.Validate(), ErrEmptyDescription) {
		t.Errorf("Validate() on empty description = %v", req.Validate())
	}

	req.WorldDescription = "dunes"
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	req.GameMode = "coop"
	if req.Validate() == nil {
		t.Error("expected error for bad game mode")
	}

	req.GameMode = GameModeSingle
	req.Settings.HorrorLevel = 42
	if req.Validate() == nil {
		t.Error("expected error for out of range setting")
	}
}

func TestRequestTheme(t *testing.T) {
	req := GenerationRequest{WorldDescription: " A mystical forest "}
	if got := req.Theme(); got != "A mystical forest" {
		t.Errorf("Theme() = %q", got)
	}
	req.ImageDescription = "a glowing owl"
	if got := req.Theme(); got != "A mystical forest with an image of a glowing owl" {
		t.Errorf("Theme() = %q", got)
	}
}

func TestReadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.png")
	if err := os.WriteFile(path, pngHeader, 0o600); err != nil {
		t.Fatalf("write image: %v", err)
	}

	uri, err := ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage() error = %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("ReadImage() = %q, want png data URI", uri[:min(len(uri), 40)])
	}
	if got := DataURIMediaType(uri); got != "image/png" {
		t.Errorf("DataURIMediaType() = %q", got)
	}
	if got := DataURISize(uri); got != len(pngHeader) {
		t.Errorf("DataURISize() = %d, want %d", got, len(pngHeader))
	}
}

func TestReadImageErrors(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(textPath, []byte("just some notes"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"missing file", filepath.Join(dir, "missing.png"), os.ErrNotExist},
		{"empty path", "", os.ErrNotExist},
		{"not an image", textPath, ErrNotImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadImage(tt.path)
			var readErr *ImageReadError
			if !errors.As(err, &readErr) {
				t.Fatalf("ReadImage() error = %v, want *ImageReadError", err)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("ReadImage() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestDataURIHelpersOnPlainText(t *testing.T) {
	if got := DataURIMediaType("hello"); got != "" {
		t.Errorf("DataURIMediaType() = %q, want empty", got)
	}
	if got := DataURISize("hello"); got != 0 {
		t.Errorf("DataURISize() = %d, want 0", got)
	}
}
