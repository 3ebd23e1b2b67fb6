package commands_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andri/asteria/cmd/asteria/commands"
	"github.com/andri/asteria/pkg/cli"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func runGenerate(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := commands.NewRootCmd()
	cmd.SetArgs(append([]string{"generate", "--delay", "1ms", "--log-level", "error"}, args...))

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateText(t *testing.T) {
	stdout, stderr, err := runGenerate(t, "", "--describe", "a mystical forest where time stands still", "-y")
	if err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, stderr)
	}

	for _, want := range []string{"Title:", "Script:", "Executable:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected stdout to contain %q, got %q", want, stdout)
		}
	}
	for _, want := range []string{"World:", "Horror Level: 3", "world ready", "is ready"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected stderr to contain %q, got %q", want, stderr)
		}
	}
}

func TestGenerateJSON(t *testing.T) {
	stdout, stderr, err := runGenerate(t, "",
		"--describe", "a sunken city", "--mode", "multiplayer", "--horror", "9", "-o", "json", "-y")
	if err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, stderr)
	}

	var result map[string]string
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("expected JSON on stdout, got %q: %v", stdout, err)
	}
	for _, key := range []string{"title", "description", "python_script", "executable_file", "message"} {
		if result[key] == "" {
			t.Errorf("expected %q to be set", key)
		}
	}
}

func TestGenerateScript(t *testing.T) {
	stdout, _, err := runGenerate(t, "", "--describe", "a haunted lighthouse", "-o", "script", "-y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(stdout, "Title:") {
		t.Errorf("script output should only hold the script, got %q", stdout)
	}
	if !strings.HasSuffix(stdout, "\n") {
		t.Error("script output should end with a newline")
	}
}

func TestGenerateWithImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knight.png")
	if err := os.WriteFile(path, pngHeader, 0o600); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := runGenerate(t, "",
		"--describe", "a castle", "--image", path, "--image-description", "a brave knight",
		"--category", "other", "--custom-category", "hero", "-y")
	if err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{"image/png", "a brave knight", "hero"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected summary to contain %q, got %q", want, stderr)
		}
	}
}

func TestGenerateConfirm(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		wantErr error
	}{
		{"confirmed", "y\n", nil},
		{"confirmed in full", "yes\n", nil},
		{"declined", "n\n", cli.ErrDeclined},
		{"no answer", "", cli.ErrDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runGenerate(t, tt.stdin, "--describe", "a glass moon")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(stderr, `Generate "a glass moon" as a single player game? (y/N)`) {
				t.Errorf("stderr missing question: %q", stderr)
			}
			if tt.wantErr != nil && stdout != "" {
				t.Errorf("declined run should print nothing, got %q", stdout)
			}
			if tt.wantErr == nil && stdout == "" {
				t.Error("confirmed run printed no world")
			}
		})
	}
}

func TestGenerateNoneBackend(t *testing.T) {
	stdout, stderr, err := runGenerate(t, "", "--generator", "none", "--describe", "anything", "-y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no output without a result, got %q", stdout)
	}
	if !strings.Contains(stderr, "without a world") {
		t.Errorf("expected stderr to explain the missing world, got %q", stderr)
	}
}

func TestGenerateInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing description", []string{}, "--describe"},
		{"blank description", []string{"--describe", "   "}, "--describe"},
		{"unknown category", []string{"--describe", "x", "--category", "enemi"}, "Enemy"},
		{"unknown mode", []string{"--describe", "x", "--mode", "coop"}, "game mode"},
		{"horror out of range", []string{"--describe", "x", "--horror", "11"}, "Horror Level"},
		{"age out of range", []string{"--describe", "x", "--age", "2"}, "Age Group"},
		{"unknown output", []string{"--describe", "x", "-o", "xml"}, "unknown output format"},
		{"missing image", []string{"--describe", "x", "--image", "/nonexistent/a.png"}, "a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runGenerate(t, "", append(tt.args, "-y")...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to contain %q, got %v", tt.want, err)
			}
		})
	}
}
