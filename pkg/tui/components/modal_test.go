package components

import (
	"strings"
	"testing"

	"github.com/andri/asteria/pkg/tui/format"
	"github.com/andri/asteria/pkg/tui/styles"
)

func TestModal_RendersTitleAndContent(t *testing.T) {
	modal := NewModal(ModalConfig{Title: "Describe your image", Width: 40})
	modal.SetContent("A brave knight")

	view := format.Strip(modal.Render())
	if !strings.Contains(view, "Describe your image") {
		t.Errorf("missing title:\n%s", view)
	}
	if !strings.Contains(view, "A brave knight") {
		t.Errorf("missing content:\n%s", view)
	}
}

func TestModal_CentersInTerminal(t *testing.T) {
	modal := NewModal(ModalConfig{Width: 30})
	modal.SetContent("x")
	modal.SetSize(100, 30)

	lines := strings.Split(modal.Render(), "\n")
	if len(lines) != 30 {
		t.Fatalf("placed modal has %d lines, want 30", len(lines))
	}
	for _, line := range lines {
		if w := format.DisplayWidth(line); w != 100 {
			t.Fatalf("placed line width = %d, want 100", w)
		}
	}
}

func TestModal_ContentWidth(t *testing.T) {
	modal := NewModal(ModalConfig{Width: 40})
	frameW, _ := styles.StyleBox.GetFrameSize()
	if got := modal.ContentWidth(); got != 40-frameW {
		t.Errorf("ContentWidth() = %d, want %d", got, 40-frameW)
	}
}

func TestModal_MinimumWidth(t *testing.T) {
	modal := NewModal(ModalConfig{})
	modal.SetSize(10, 10)
	if w, _ := modal.modalSize(); w != 20 {
		t.Errorf("modal width = %d, want minimum 20", w)
	}
}
