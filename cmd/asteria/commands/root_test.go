package commands_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andri/asteria/cmd/asteria/commands"
)

func TestNewRootCmd(t *testing.T) {
	cmd := commands.NewRootCmd()

	if cmd.Use != "asteria" {
		t.Errorf("expected Use to be 'asteria', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}

	if cmd.RunE == nil {
		t.Error("expected root command to open the studio")
	}
}

func TestRootCmdHasGlobalFlags(t *testing.T) {
	cmd := commands.NewRootCmd()
	flags := cmd.PersistentFlags()

	expectedFlags := []string{"config", "generator", "endpoint", "ascii", "log-level", "log-file"}

	for _, flagName := range expectedFlags {
		if flags.Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestRootCmdHasSubcommands(t *testing.T) {
	cmd := commands.NewRootCmd()

	names := map[string]bool{}
	for _, subCmd := range cmd.Commands() {
		names[subCmd.Name()] = true
	}

	for _, want := range []string{"version", "studio", "generate", "serve", "games", "config", "completion"} {
		if !names[want] {
			t.Errorf("expected %q subcommand to exist", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	commands.SetVersionInfo("1.2.3", "abc123", "2024-01-01")

	cmd := commands.NewRootCmd()
	cmd.SetArgs([]string{"version"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "asteria version 1.2.3") {
		t.Errorf("expected output to contain version '1.2.3', got %q", output)
	}
	if !strings.Contains(output, "abc123") {
		t.Errorf("expected output to contain commit 'abc123', got %q", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := commands.NewRootCmd()
	cmd.SetArgs([]string{"--help"})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)

	// Help should not return an error
	err := cmd.Execute()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := stdout.String()
	if !strings.Contains(output, "asteria") {
		t.Errorf("expected help output to contain 'asteria', got %q", output)
	}
	if !strings.Contains(output, "World Creation Studio") {
		t.Errorf("expected help output to contain 'World Creation Studio', got %q", output)
	}
}

func TestUnknownGeneratorFails(t *testing.T) {
	cmd := commands.NewRootCmd()
	cmd.SetArgs([]string{"generate", "--generator", "oracle", "--describe", "x", "-y"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for an unknown generator")
	}
	if !strings.Contains(err.Error(), "generator.mode") {
		t.Errorf("expected error to name generator.mode, got %v", err)
	}
}
