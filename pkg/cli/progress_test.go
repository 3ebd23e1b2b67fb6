package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andri/asteria/pkg/cli"
	"github.com/andri/asteria/pkg/flow"
	"github.com/andri/asteria/pkg/world"
)

func TestProgressWriter_OnEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    flow.Event
		wantIcon string
		wantText string
	}{
		{
			name:     "input stage",
			event:    flow.Event{Page: flow.PageCreate, Stage: flow.StageInput, Message: "describing world"},
			wantIcon: "→",
			wantText: "describing world (input)",
		},
		{
			name:     "loading stage",
			event:    flow.Event{Page: flow.PageCreate, Stage: flow.StageLoading, Message: "generating"},
			wantIcon: "→",
			wantText: "generating (loading)",
		},
		{
			name:     "edit page",
			event:    flow.Event{Page: flow.PageEdit, Message: "world ready"},
			wantIcon: "✓",
			wantText: "world ready",
		},
		{
			name:     "empty message falls back to page",
			event:    flow.Event{Page: flow.PageEdit},
			wantIcon: "✓",
			wantText: "edit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			pw := cli.NewProgressWriter(buf)

			pw.OnEvent(tt.event)

			output := buf.String()
			if !strings.HasPrefix(output, tt.wantIcon+" ") {
				t.Errorf("expected icon %q in output, got: %s", tt.wantIcon, output)
			}
			if !strings.Contains(output, tt.wantText) {
				t.Errorf("expected %q in output, got: %s", tt.wantText, output)
			}
		})
	}
}

func TestProgressWriter_ASCII(t *testing.T) {
	buf := &bytes.Buffer{}
	pw := cli.NewProgressWriter(buf).ASCII(true)

	pw.OnEvent(flow.Event{Page: flow.PageEdit, Message: "world ready"})
	pw.PrintError("boom")

	output := buf.String()
	if !strings.Contains(output, "[ok] world ready") || !strings.Contains(output, "[x] boom") {
		t.Errorf("expected ASCII prefixes, got: %s", output)
	}
	if strings.ContainsAny(output, "✓✗→") {
		t.Errorf("unexpected unicode icon in output: %s", output)
	}
}

func TestProgressWriter_PrintSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	pw := cli.NewProgressWriter(buf)

	draft := world.NewDraft()
	draft.WorldDescription = "  A floating island  "
	draft.Category = world.CategoryOther
	draft.CustomCategory = "Lighthouse"
	draft.GameMode = world.GameModeMultiplayer

	pw.PrintSummary(draft)

	output := buf.String()
	for _, want := range []string{
		"World: A floating island\n",
		"Category: Lighthouse",
		"Mode: Multiplayer",
		"  - Age Group: 7",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if strings.Contains(output, "Image:") {
		t.Errorf("expected no image line without an upload, got: %s", output)
	}
}

func TestProgressWriter_PrintSummaryEmptyCustomCategory(t *testing.T) {
	buf := &bytes.Buffer{}
	draft := world.NewDraft()
	draft.Category = world.CategoryOther

	cli.NewProgressWriter(buf).PrintSummary(draft)

	if !strings.Contains(buf.String(), "Category: (empty)") {
		t.Errorf("expected empty category marker, got: %s", buf.String())
	}
}

func TestProgressWriter_PrintSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	pw := cli.NewProgressWriter(buf)

	pw.PrintSuccess("Script written")

	output := buf.String()
	if !strings.Contains(output, "✓") {
		t.Errorf("expected checkmark in output, got: %s", output)
	}
	if !strings.Contains(output, "Script written") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestProgressWriter_PrintError(t *testing.T) {
	buf := &bytes.Buffer{}
	pw := cli.NewProgressWriter(buf)

	pw.PrintError("Something failed")

	output := buf.String()
	if !strings.Contains(output, "✗") {
		t.Errorf("expected X mark in output, got: %s", output)
	}
	if !strings.Contains(output, "Something failed") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestProgressWriter_NilWriter(t *testing.T) {
	// Test that nil writer defaults to stdout without panicking
	pw := cli.NewProgressWriter(nil)
	if pw == nil {
		t.Error("expected non-nil ProgressWriter")
	}
}
