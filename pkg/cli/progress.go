package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andri/asteria/pkg/flow"
	"github.com/andri/asteria/pkg/world"
)

// Icons used as line prefixes.
type Icons struct {
	Done  string
	Error string
	Step  string
}

var (
	unicodeIcons = Icons{Done: "✓", Error: "✗", Step: "→"}
	asciiIcons   = Icons{Done: "[ok]", Error: "[x]", Step: "->"}
)

// ProgressWriter outputs progress updates to the terminal.
type ProgressWriter struct {
	w     io.Writer
	icons Icons
}

// NewProgressWriter creates a new ProgressWriter.
// If w is nil, os.Stdout is used.
func NewProgressWriter(w io.Writer) *ProgressWriter {
	if w == nil {
		w = os.Stdout
	}
	return &ProgressWriter{w: w, icons: unicodeIcons}
}

// ASCII switches the writer to plain ASCII prefixes.
func (pw *ProgressWriter) ASCII(enabled bool) *ProgressWriter {
	if enabled {
		pw.icons = asciiIcons
	} else {
		pw.icons = unicodeIcons
	}
	return pw
}

// OnEvent handles progress events from a headless creation run. It has the
// shape of flow.Observer.
func (pw *ProgressWriter) OnEvent(ev flow.Event) {
	prefix := pw.icons.Step
	if ev.Page == flow.PageEdit {
		prefix = pw.icons.Done
	}

	description := strings.TrimSpace(ev.Message)
	if description == "" {
		description = ev.Page.String()
	}
	if ev.Page == flow.PageCreate {
		description = fmt.Sprintf("%s (%s)", description, ev.Stage)
	}

	_, _ = fmt.Fprintf(pw.w, "%s %s\n", prefix, description)
}

// PrintSummary prints the draft that is about to be generated.
func (pw *ProgressWriter) PrintSummary(draft world.Draft) {
	_, _ = fmt.Fprintf(pw.w, "World: %s\n", strings.TrimSpace(draft.WorldDescription))
	category := draft.CategoryLabel()
	if category == "" {
		category = "(empty)"
	}
	_, _ = fmt.Fprintf(pw.w, "Category: %s\n", category)
	_, _ = fmt.Fprintf(pw.w, "Mode: %s\n", draft.GameMode.Label())

	if draft.UploadedImage != "" {
		_, _ = fmt.Fprintf(pw.w, "Image: %s, %d bytes\n",
			world.DataURIMediaType(draft.UploadedImage), world.DataURISize(draft.UploadedImage))
	}
	if draft.ImageDescription != "" {
		_, _ = fmt.Fprintf(pw.w, "Image description: %s\n", draft.ImageDescription)
	}

	_, _ = fmt.Fprintln(pw.w, "Settings:")
	for _, k := range world.AllSettings() {
		_, _ = fmt.Fprintf(pw.w, "  - %s: %d\n", k.Label(), draft.Settings.Get(k))
	}
	_, _ = fmt.Fprintln(pw.w)
}

// PrintSuccess prints a success message.
func (pw *ProgressWriter) PrintSuccess(message string) {
	_, _ = fmt.Fprintf(pw.w, "%s %s\n", pw.icons.Done, message)
}

// PrintError prints an error message.
func (pw *ProgressWriter) PrintError(message string) {
	_, _ = fmt.Fprintf(pw.w, "%s %s\n", pw.icons.Error, message)
}
