package commands_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andri/asteria/cmd/asteria/commands"
)

func runGames(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCmd()
	cmd.SetArgs(append([]string{"games"}, args...))

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestGenerateSaveThenList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "games")

	_, stderr, err := runGenerate(t, "",
		"--describe", "a neon city", "--mode", "multiplayer", "--save", "--library", dir, "-y")
	if err != nil {
		t.Fatalf("generate: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stderr, "Saved "+filepath.Join(dir, "a_neon_city.py")) {
		t.Errorf("expected saved path on stderr, got %q", stderr)
	}

	stdout, err := runGames(t, "list", "--library", dir)
	if err != nil {
		t.Fatalf("games list: %v", err)
	}
	for _, want := range []string{"=== GAMES (1) ===", "a_neon_city.py", "A Neon City", "multiplayer"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected listing to contain %q, got:\n%s", want, stdout)
		}
	}

	stdout, err = runGames(t, "ls", "-o", "json", "--library", dir)
	if err != nil {
		t.Fatalf("games ls -o json: %v", err)
	}
	var listing struct {
		Dir   string `json:"dir"`
		Games []struct {
			File string `json:"file"`
		} `json:"games"`
	}
	if err := json.Unmarshal([]byte(stdout), &listing); err != nil {
		t.Fatalf("expected JSON, got %q: %v", stdout, err)
	}
	if listing.Dir != dir || len(listing.Games) != 1 || listing.Games[0].File != "a_neon_city.py" {
		t.Errorf("listing = %+v", listing)
	}

	stdout, err = runGames(t, "show", "a_neon_city.py", "--library", dir)
	if err != nil {
		t.Fatalf("games show: %v", err)
	}
	if !strings.Contains(stdout, "def play():") {
		t.Errorf("expected the script, got:\n%s", stdout)
	}
}

func TestGenerateWithoutSaveLeavesLibraryAlone(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "games")

	if _, stderr, err := runGenerate(t, "", "--describe", "a quiet moor", "--library", dir, "-y"); err != nil {
		t.Fatalf("generate: %v\nstderr: %s", err, stderr)
	}

	stdout, err := runGames(t, "list", "--library", dir)
	if err != nil {
		t.Fatalf("games list: %v", err)
	}
	if !strings.Contains(stdout, "No games found") {
		t.Errorf("expected an empty library, got:\n%s", stdout)
	}
}

func TestGamesShowMissing(t *testing.T) {
	_, err := runGames(t, "show", "missing.py", "--library", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), `no game named "missing.py"`) {
		t.Fatalf("err = %v", err)
	}
}

func TestGamesListRejectsScriptFormat(t *testing.T) {
	_, err := runGames(t, "list", "-o", "script", "--library", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "not supported for game listings") {
		t.Fatalf("err = %v", err)
	}
}

func TestGamesShowNeedsOneArg(t *testing.T) {
	if _, err := runGames(t, "show", "--library", t.TempDir()); err == nil {
		t.Fatal("expected an error without a file name")
	}
}
