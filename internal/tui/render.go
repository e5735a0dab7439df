package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/jaskcalc/internal/adapter"
)

// keypadRows mirrors the button grid of the web page. Each cell is a label
// and the key name it stands for.
var keypadRows = [][]keypadCell{
	{{"AC", "esc"}, {"DEL", "backspace"}, {"%", "%"}, {"÷", "/"}},
	{{"7", "7"}, {"8", "8"}, {"9", "9"}, {"×", "*"}},
	{{"4", "4"}, {"5", "5"}, {"6", "6"}, {"−", "-"}},
	{{"1", "1"}, {"2", "2"}, {"3", "3"}, {"+", "+"}},
	{{"±", "n"}, {"0", "0"}, {".", "."}, {"=", "enter"}},
}

type keypadCell struct {
	label string
	key   string
}

const keypadGap = 1

func (m model) View() string {
	width := m.cfg.UI.Width
	if m.width > 0 && m.width < width {
		width = m.width
	}

	sections := []string{
		renderHeader(width),
		renderDisplay(m.host.display, width),
	}
	if m.cfg.UI.ShowKeypad {
		sections = append(sections, m.renderKeypad(width))
	}
	if m.paletteOpen {
		sections = append(sections, m.renderPalette(width))
	}
	sections = append(sections, m.renderStatus(width), m.renderFooter(width))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderHeader(width int) string {
	return headerBarStyle.Width(width).Render(headerAppStyle.Render(appName))
}

// renderDisplay draws the previous line above the current line, both right
// aligned. Long values lose their leading cells so the last digits stay in
// view.
func renderDisplay(d adapter.Display, width int) string {
	inner := width - displayBoxStyle.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	fit := func(s string) string {
		return alignRight(keepTail(s, inner), inner)
	}

	prev := previousStyle.Render(fit(d.Previous))
	curStyle := currentStyle
	if d.Error {
		curStyle = errorStyle
	}
	cur := curStyle.Render(fit(d.Current))
	return displayBoxStyle.Width(width - 2).Render(prev + "\n" + cur)
}

// keepTail cuts s from the left to at most width cells, marking the cut
// with an ellipsis.
func keepTail(s string, width int) string {
	w := ansi.StringWidth(s)
	if w <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return ansi.TruncateLeft(s, w-width+1, "…")
}

func alignRight(s string, width int) string {
	return strings.Repeat(" ", max(0, width-ansi.StringWidth(s))) + s
}

func (m model) renderKeypad(width int) string {
	cols := len(keypadRows[0])
	cellWidth := (width - keypadGap*(cols-1)) / cols
	if cellWidth < 3 {
		cellWidth = 3
	}
	rows := make([]string, 0, len(keypadRows))
	gap := strings.Repeat(" ", keypadGap)
	for _, row := range keypadRows {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, keypadStyle(c).Width(cellWidth).Render(c.label))
		}
		rows = append(rows, strings.Join(cells, gap))
	}
	return strings.Join(rows, "\n")
}

func keypadStyle(c keypadCell) lipgloss.Style {
	switch c.key {
	case "enter":
		return keyEqualsStyle
	case "+", "-", "*", "/", "%":
		return keyOperatorStyle
	case "esc", "backspace", "n":
		return keyControlStyle
	}
	return keyDigitStyle
}

func (m model) renderPalette(width int) string {
	var b strings.Builder
	b.WriteString(m.paletteQuery.View())
	b.WriteString("\n")
	if len(m.matches) == 0 {
		b.WriteString(paletteDisabledStyle.Render("No matching commands"))
	}
	inner := width - modalStyle.GetHorizontalFrameSize() - 2
	for i, match := range m.matches {
		if i >= 8 {
			b.WriteString(paletteDisabledStyle.Render(fmt.Sprintf("… %d more", len(m.matches)-i)))
			break
		}
		prefix := "  "
		style := paletteItemStyle
		if i == m.cursor {
			prefix = "> "
			style = paletteCursorStyle
		}
		label := match.Command.Label
		if !match.Enabled {
			style = paletteDisabledStyle
			if match.DisabledReason != "" {
				label += " (" + match.DisabledReason + ")"
			}
		}
		line := ansi.Truncate(prefix+label, inner, "…")
		b.WriteString(style.Render(line))
		b.WriteString(" ")
		b.WriteString(paletteCategoryStyle.Render(match.Command.Category))
		b.WriteString("\n")
	}
	return modalStyle.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m model) renderStatus(width int) string {
	text := strings.ReplaceAll(m.status, "\n", " ")
	style := statusBarStyle
	if m.statusErr {
		style = statusErrStyle
	}
	return style.Width(width).Render(text)
}

func (m model) renderFooter(width int) string {
	scope := adapter.ScopeCalculator
	if m.paletteOpen {
		scope = adapter.ScopeCommandPalette
	}
	bindings := m.keys.HelpBindings(scope)
	if !m.paletteOpen {
		bindings = append(bindings, m.keys.HelpBindings(adapter.ScopeGlobal)...)
	}

	h := m.help
	h.Width = width - footerStyle.GetHorizontalFrameSize()
	var content string
	if h.ShowAll {
		content = h.FullHelpView(chunkBindings(bindings, 4))
	} else {
		content = h.ShortHelpView(bindings)
	}
	return footerStyle.Width(width).Render(content)
}

func chunkBindings(bindings []key.Binding, size int) [][]key.Binding {
	var out [][]key.Binding
	for len(bindings) > size {
		out = append(out, bindings[:size])
		bindings = bindings[size:]
	}
	if len(bindings) > 0 {
		out = append(out, bindings)
	}
	return out
}
