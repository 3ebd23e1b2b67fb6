package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andri/asteria/pkg/world"
)

// ErrNoResult is returned when there is nothing to render.
var ErrNoResult = errors.New("generation produced no result")

// Render renders result in the given format and writes it to w.
func Render(w io.Writer, result *world.GenerationResult, format Format) error {
	if result == nil {
		return ErrNoResult
	}
	switch format {
	case FormatText:
		return RenderText(w, result)
	case FormatJSON:
		return RenderJSON(w, result)
	case FormatYAML:
		return RenderYAML(w, result)
	case FormatScript:
		return RenderScript(w, result)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// RenderJSON renders result as indented JSON
func RenderJSON(w io.Writer, result *world.GenerationResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// RenderYAML renders result as YAML. Multi-line fields use literal blocks.
func RenderYAML(w io.Writer, result *world.GenerationResult) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return err
	}
	return encoder.Close()
}

// RenderScript writes the generated script with a trailing newline.
func RenderScript(w io.Writer, result *world.GenerationResult) error {
	script := result.PythonScript
	if script != "" && !strings.HasSuffix(script, "\n") {
		script += "\n"
	}
	_, err := io.WriteString(w, script)
	return err
}

// RenderText writes a labelled summary and the script.
func RenderText(w io.Writer, result *world.GenerationResult) error {
	fields := []struct{ label, value string }{
		{"Title", result.Title},
		{"Description", result.Description},
		{"Message", result.Message},
		{"Executable", result.ExecutableFile},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-12s %s\n", f.label+":", f.value); err != nil {
			return err
		}
	}

	if result.PythonScript == "" {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nScript:"); err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimRight(result.PythonScript, "\n"), "\n") {
		if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
