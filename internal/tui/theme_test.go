package tui

import (
	"regexp"
	"testing"
)

var hexColor = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestPaletteColorsAreHex(t *testing.T) {
	for _, c := range AllPaletteColors() {
		if !hexColor.MatchString(string(c)) {
			t.Errorf("palette color %q is not #rrggbb", c)
		}
	}
}

func TestSemanticAliasesMatchPalette(t *testing.T) {
	palette := make(map[string]bool)
	for _, c := range AllPaletteColors() {
		palette[string(c)] = true
	}
	for name, c := range map[string]string{
		"accent":   string(colorAccent),
		"brand":    string(colorBrand),
		"focus":    string(colorFocus),
		"error":    string(colorError),
		"operator": string(colorOperator),
		"equals":   string(colorEquals),
		"control":  string(colorControl),
	} {
		if !palette[c] {
			t.Errorf("%s alias %q not in palette", name, c)
		}
	}
}
