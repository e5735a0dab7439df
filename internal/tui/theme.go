package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values.
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent   = colorPink
	colorBrand    = colorPink
	colorFocus    = colorLavender
	colorError    = colorRed
	colorOperator = colorPeach
	colorEquals   = colorGreen
	colorControl  = colorMauve
)

// AllPaletteColors returns every palette color in use, for tests.
func AllPaletteColors() []lipgloss.Color {
	return []lipgloss.Color{
		colorPink, colorMauve, colorRed, colorPeach, colorYellow,
		colorGreen, colorTeal, colorBlue, colorLavender,
		colorText, colorSubtext1, colorSubtext0,
		colorOverlay1, colorOverlay0,
		colorSurface2, colorSurface1, colorSurface0,
		colorBase, colorMantle,
	}
}

var (
	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	displayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface2).
			Padding(0, 1)

	previousStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	currentStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	keyDigitStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Align(lipgloss.Center)
	keyOperatorStyle = keyDigitStyle.Foreground(colorOperator)
	keyEqualsStyle   = keyDigitStyle.Foreground(colorBase).Background(colorEquals).Bold(true)
	keyControlStyle  = keyDigitStyle.Foreground(colorControl)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)
	statusErrStyle = statusBarStyle.Foreground(colorError)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	paletteCursorStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	paletteItemStyle     = lipgloss.NewStyle().Foreground(colorText)
	paletteDisabledStyle = lipgloss.NewStyle().Foreground(colorOverlay0)
	paletteCategoryStyle = lipgloss.NewStyle().Foreground(colorOverlay1)

	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	helpSepStyle  = lipgloss.NewStyle().Foreground(colorSurface2)
)
