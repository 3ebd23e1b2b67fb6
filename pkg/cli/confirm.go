// Package cli provides CLI utilities for non-TUI command execution.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/andri/asteria/pkg/world"
)

// questionWidth bounds the world description quoted in the question.
const questionWidth = 48

// ErrDeclined is returned when the user does not answer yes.
var ErrDeclined = errors.New("generation cancelled by user")

// ConfirmOptions controls the generate confirmation.
type ConfirmOptions struct {
	// Yes answers the question without asking (-y/--yes).
	Yes bool

	// Save adds the library to the question.
	Save bool

	// Input is read for the answer (defaults to os.Stdin). An input that ends
	// before a line is read counts as no.
	Input io.Reader

	// Output receives the question (defaults to os.Stdout).
	Output io.Writer
}

// Question returns the prompt shown for draft.
func Question(draft world.Draft, save bool) string {
	desc := strings.Join(strings.Fields(draft.WorldDescription), " ")
	desc = ansi.Truncate(desc, questionWidth, "...")

	q := fmt.Sprintf("Generate %q as a %s game", desc, strings.ToLower(draft.GameMode.Label()))
	if save {
		q += " and save it to the library"
	}
	return q + "?"
}

// ConfirmGenerate asks whether draft should be generated. It returns nil to
// go ahead and ErrDeclined for any answer other than y or yes.
func ConfirmGenerate(draft world.Draft, opts ConfirmOptions) error {
	if opts.Yes {
		return nil
	}

	input := opts.Input
	if input == nil {
		input = os.Stdin
	}
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	_, _ = fmt.Fprintf(output, "%s (y/N): ", Question(draft, opts.Save))

	scanner := bufio.NewScanner(input)
	if !scanner.Scan() {
		_, _ = fmt.Fprintln(output)
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		return ErrDeclined
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return nil
	default:
		return ErrDeclined
	}
}
