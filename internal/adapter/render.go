package adapter

import (
	"github.com/jask/jaskcalc/internal/calc"
)

// Display is what a front-end shows after each engine call.
type Display struct {
	Current  string `json:"current"`
	Previous string `json:"previous"`
	Operator string `json:"operator,omitempty"`
	Error    bool   `json:"error"`
}

// DisplayRenderer turns engine snapshots into display strings.
type DisplayRenderer struct{}

// Render formats both operands and appends the pending operator symbol to the
// previous line. Without a pending operator the previous line is empty.
func (DisplayRenderer) Render(s calc.Snapshot) Display {
	d := Display{
		Current: calc.FormatForDisplay(s.Current),
		Error:   s.Err(),
	}
	if s.Pending() {
		d.Operator = s.Operator.Symbol()
		d.Previous = calc.FormatForDisplay(s.Previous) + " " + d.Operator
	}
	return d
}
