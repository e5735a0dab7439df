package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/jaskcalc/internal/adapter"
)

func TestViewShowsGroupedOperands(t *testing.T) {
	m := testModel(t)
	m = press(t, m, runeKey("1"), runeKey("2"), runeKey("3"), runeKey("4"), runeKey("*"), runeKey("5"))
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "1,234 ×") {
		t.Fatalf("expected previous line with operator, got:\n%s", out)
	}
	if !strings.Contains(out, "5") {
		t.Fatalf("expected current operand, got:\n%s", out)
	}
}

func TestViewKeypadToggle(t *testing.T) {
	m := testModel(t)
	if !strings.Contains(ansi.Strip(m.View()), "AC") {
		t.Fatal("keypad should render by default")
	}
	m.cfg.UI.ShowKeypad = false
	if strings.Contains(ansi.Strip(m.View()), "DEL") {
		t.Fatal("keypad should be hidden")
	}
}

func TestViewShowsPaletteMatches(t *testing.T) {
	m := testModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK}, runeKey("modulo"))
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "Modulo") {
		t.Fatalf("expected palette match in view, got:\n%s", out)
	}
}

func TestViewRespectsWindowWidth(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	m = next.(model)
	for i := 0; i < 40; i++ {
		m = press(t, m, runeKey("9"))
	}
	for _, line := range strings.Split(m.View(), "\n") {
		if w := ansi.StringWidth(line); w > 30 {
			t.Fatalf("line width %d exceeds window: %q", w, ansi.Strip(line))
		}
	}
}

func TestRenderDisplayErrorIsRightAligned(t *testing.T) {
	out := ansi.Strip(renderDisplay(adapter.Display{Current: "Error: Division by zero", Error: true}, 36))
	if !strings.Contains(out, "Error: Division by zero") {
		t.Fatalf("missing error text:\n%s", out)
	}
}

func TestRenderDisplayKeepsLastDigits(t *testing.T) {
	long := "1,234,567,890,123,456,789,012,345,678,901"
	out := ansi.Strip(renderDisplay(adapter.Display{Current: long}, 30))
	if !strings.Contains(out, "…") {
		t.Fatalf("expected an ellipsis marking the cut:\n%s", out)
	}
	if !strings.Contains(out, "345,678,901") {
		t.Fatalf("expected the trailing digits to stay visible:\n%s", out)
	}
	if strings.Contains(out, "1,234,567") {
		t.Fatalf("expected the leading digits to be cut:\n%s", out)
	}
}

func TestKeepTail(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "12345", width: 8, want: "12345"},
		{in: "12345", width: 5, want: "12345"},
		{in: "123456789", width: 5, want: "…6789"},
		{in: "123", width: 1, want: "…"},
	}
	for _, tt := range tests {
		if got := keepTail(tt.in, tt.width); got != tt.want {
			t.Fatalf("keepTail(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestChunkBindings(t *testing.T) {
	keys := adapter.NewKeyRegistry().HelpBindings(adapter.ScopeCalculator)
	chunks := chunkBindings(keys, 4)
	total := 0
	for _, c := range chunks {
		if len(c) > 4 {
			t.Fatalf("chunk too large: %d", len(c))
		}
		total += len(c)
	}
	if total != len(keys) {
		t.Fatalf("chunked %d bindings, want %d", total, len(keys))
	}
}
