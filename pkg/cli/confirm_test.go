package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/andri/asteria/pkg/cli"
	"github.com/andri/asteria/pkg/world"
)

func forestDraft() world.Draft {
	d := world.NewDraft()
	d.WorldDescription = "  a mystical forest\nwhere time stands still "
	return d
}

func TestConfirmGenerate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		yes     bool
		wantErr error
	}{
		{name: "y", input: "y\n"},
		{name: "yes uppercase", input: "YES\n"},
		{name: "whitespace around yes", input: "  y  \n"},
		{name: "no", input: "n\n", wantErr: cli.ErrDeclined},
		{name: "empty line", input: "\n", wantErr: cli.ErrDeclined},
		{name: "anything else", input: "maybe\n", wantErr: cli.ErrDeclined},
		{name: "closed input", input: "", wantErr: cli.ErrDeclined},
		{name: "yes flag skips the question", yes: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := cli.ConfirmGenerate(forestDraft(), cli.ConfirmOptions{
				Yes:    tt.yes,
				Input:  strings.NewReader(tt.input),
				Output: &out,
			})

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ConfirmGenerate() = %v, want %v", err, tt.wantErr)
			}
			if tt.yes {
				if out.Len() != 0 {
					t.Errorf("question written with --yes: %q", out.String())
				}
				return
			}
			if !strings.Contains(out.String(), "(y/N)") {
				t.Errorf("question missing (y/N): %q", out.String())
			}
		})
	}
}

func TestQuestion(t *testing.T) {
	d := forestDraft()
	got := cli.Question(d, false)
	want := `Generate "a mystical forest where time stands still" as a single player game?`
	if got != want {
		t.Errorf("Question() = %q, want %q", got, want)
	}

	d.GameMode = world.GameModeMultiplayer
	got = cli.Question(d, true)
	if !strings.Contains(got, "as a multiplayer game and save it to the library?") {
		t.Errorf("Question(save) = %q", got)
	}
}

func TestQuestionTruncatesLongDescriptions(t *testing.T) {
	d := world.NewDraft()
	d.WorldDescription = strings.Repeat("endless dunes ", 20)

	got := cli.Question(d, false)
	if !strings.Contains(got, `..."`) {
		t.Errorf("long description not truncated: %q", got)
	}
	if len(got) > 100 {
		t.Errorf("question too long (%d): %q", len(got), got)
	}
}
