package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/andri/asteria/pkg/library"
	"github.com/andri/asteria/pkg/tui/format"
	"github.com/andri/asteria/pkg/world"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// TableWriter writes library listings as a formatted table
type TableWriter struct {
	w     io.Writer
	color bool
	width int
}

// NewTableWriter creates a new table writer. Colors are only used on terminals.
func NewTableWriter(w io.Writer) *TableWriter {
	tw := &TableWriter{
		w:     w,
		color: isTerminalWriter(w),
		width: 100,
	}

	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			tw.width = width
		}
	}

	return tw
}

// WriteGames writes one row per game under a section header.
func (tw *TableWriter) WriteGames(dir string, entries []library.Entry) {
	tw.writeSectionHeader("GAMES", len(entries))
	_, _ = fmt.Fprintf(tw.w, "Library: %s\n\n", dir)

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(tw.w, "No games found. Create some games first!")
		return
	}

	cols := []column{
		{header: "FILE", width: 28},
		{header: "TITLE", width: 28},
		{header: "MODE", width: 11},
		{header: "SIZE", width: 10},
		{header: "CREATED", width: 16},
	}
	tw.fitTitle(cols)

	tw.writeTableHeader(cols)
	tw.writeTableSeparator(cols)

	for _, entry := range entries {
		title := entry.Title()
		titleColor := ""
		mode := "-"
		created := entry.ModTime.Local().Format("2006-01-02 15:04")
		switch {
		case entry.MetaErr != nil:
			title += " (metadata error)"
			titleColor = colorRed
		case entry.Meta == nil:
			titleColor = colorYellow
		default:
			if entry.Meta.GameMode != "" {
				mode = string(entry.Meta.GameMode)
			}
			if !entry.Meta.CreatedAt.IsZero() {
				created = entry.Meta.CreatedAt.Local().Format("2006-01-02 15:04")
			}
		}

		modeColor := ""
		if mode == string(world.GameModeMultiplayer) {
			modeColor = colorCyan
		}

		row := []cell{
			{value: format.Ellipsize(entry.File, cols[0].width, "...")},
			{value: format.Ellipsize(title, cols[1].width, "..."), color: titleColor},
			{value: mode, color: modeColor},
			{value: format.Bytes(entry.Size)},
			{value: created},
		}
		tw.writeTableRow(cols, row)
	}
}

// fitTitle gives the title column whatever width the terminal has spare.
func (tw *TableWriter) fitTitle(cols []column) {
	used := 0
	for _, col := range cols {
		used += col.width + 1
	}
	if spare := tw.width - used; spare > 0 {
		cols[1].width += min(spare, 32)
	}
}

func (tw *TableWriter) writeSectionHeader(title string, count int) {
	header := fmt.Sprintf("=== %s (%d) ===", title, count)
	_, _ = fmt.Fprintln(tw.w, tw.colorize(header, colorBold+colorCyan))
}

// column defines a table column
type column struct {
	header string
	width  int
}

// cell defines a table cell
type cell struct {
	value string
	color string
}

func (tw *TableWriter) writeTableHeader(cols []column) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = format.PadRight(col.header, col.width)
	}
	_, _ = fmt.Fprintln(tw.w, tw.colorize(strings.TrimRight(strings.Join(parts, " "), " "), colorBold))
}

func (tw *TableWriter) writeTableSeparator(cols []column) {
	totalWidth := 0
	for _, col := range cols {
		totalWidth += col.width + 1
	}
	_, _ = fmt.Fprintln(tw.w, strings.Repeat("-", totalWidth-1))
}

func (tw *TableWriter) writeTableRow(cols []column, cells []cell) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		value := ""
		color := ""
		if i < len(cells) {
			value = cells[i].value
			color = cells[i].color
		}
		padded := format.PadRight(value, col.width)
		if color != "" {
			padded = tw.colorize(padded, color)
		}
		parts[i] = padded
	}
	_, _ = fmt.Fprintln(tw.w, strings.TrimRight(strings.Join(parts, " "), " "))
}

// colorize adds ANSI color codes if color is enabled
func (tw *TableWriter) colorize(s, color string) string {
	if !tw.color || color == "" {
		return s
	}
	return color + s + colorReset
}

func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
