package calc

import (
	"math"
	"strings"
)

// DivisionByZero is the display text of the error state.
const DivisionByZero = "Error: Division by zero"

const errorPrefix = "Error"

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Current          string
	Previous         string
	Operator         Operator
	ResetOnNextInput bool
}

// Pending reports whether an operator is waiting for its second operand.
func (s Snapshot) Pending() bool {
	return s.Operator.Valid()
}

// Err reports whether the current operand is an error message.
func (s Snapshot) Err() bool {
	return strings.HasPrefix(s.Current, errorPrefix)
}

// Engine is the calculator state machine. It performs no I/O and is not safe
// for concurrent use.
//
// Failed operations never return errors: a bad operand or a duplicate decimal
// point leaves the state untouched, and division by zero shows up only in the
// current operand.
type Engine struct {
	current  string
	previous string
	op       Operator
	reset    bool
}

// NewEngine returns an engine in its initial Idle state.
func NewEngine() *Engine {
	e := &Engine{}
	e.ClearAll()
	return e
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Current:          e.current,
		Previous:         e.previous,
		Operator:         e.op,
		ResetOnNextInput: e.reset,
	}
}

// CurrentOperand returns the operand being typed or the last result.
func (e *Engine) CurrentOperand() string { return e.current }

// PreviousOperand returns the operand captured when an operator was chosen.
func (e *Engine) PreviousOperand() string { return e.previous }

// PendingOperator returns the pending operator, if any.
func (e *Engine) PendingOperator() (Operator, bool) {
	return e.op, e.op.Valid()
}

// InError reports whether the engine is waiting for ClearAll after an error.
func (e *Engine) InError() bool {
	return strings.HasPrefix(e.current, errorPrefix)
}

// AppendDigit adds a digit or decimal point to the current operand. Runes
// other than '0'-'9' and '.' are ignored.
func (e *Engine) AppendDigit(r rune) {
	if e.InError() {
		return
	}
	if r != '.' && (r < '0' || r > '9') {
		return
	}
	in := string(r)

	if e.reset {
		e.reset = false
		if r == '.' {
			e.current = "0."
		} else {
			e.current = in
		}
		return
	}
	if r == '.' && strings.Contains(e.current, ".") {
		return
	}
	if e.current == "0" && r != '.' {
		e.current = in
		return
	}
	e.current += in
}

// ChooseOperator makes op the pending operator. A previously pending
// operation with a second operand already typed is folded first, so chains
// evaluate strictly left to right.
func (e *Engine) ChooseOperator(op Operator) {
	if e.InError() || !op.Valid() || e.current == "" {
		return
	}
	// operator pressed twice in a row: swap it, keep the operands
	if e.op.Valid() && e.reset {
		e.op = op
		return
	}
	if e.previous != "" {
		e.Compute()
		if e.InError() {
			return
		}
	}
	e.op = op
	e.previous = e.current
	e.reset = true
}

// Compute applies the pending operator to the previous and current operands.
func (e *Engine) Compute() {
	if e.InError() {
		return
	}
	prev, ok := parseFinite(e.previous)
	if !ok {
		return
	}
	cur, ok := parseFinite(e.current)
	if !ok {
		return
	}
	if e.op == Divide && cur == 0 {
		e.current = DivisionByZero
		e.previous = ""
		e.op = OpNone
		return
	}
	result, ok := apply(e.op, prev, cur)
	if !ok {
		return
	}
	e.current = FormatNumber(result)
	e.previous = ""
	e.op = OpNone
}

// ClearAll restores the construction defaults.
func (e *Engine) ClearAll() {
	e.current = "0"
	e.previous = ""
	e.op = OpNone
	e.reset = false
}

// DeleteLastChar removes the last character of the current operand.
func (e *Engine) DeleteLastChar() {
	if e.InError() || e.current == "0" {
		return
	}
	if len(e.current) <= 1 {
		e.current = "0"
		return
	}
	e.current = e.current[:len(e.current)-1]
}

// Negate flips the sign of the current operand.
func (e *Engine) Negate() {
	e.transformCurrent(func(v float64) float64 { return v * -1 })
}

// Percent divides the current operand by one hundred.
func (e *Engine) Percent() {
	e.transformCurrent(func(v float64) float64 { return v / 100 })
}

func (e *Engine) transformCurrent(fn func(float64) float64) {
	if e.InError() {
		return
	}
	v, ok := parseFinite(e.current)
	if !ok {
		return
	}
	e.current = FormatNumber(fn(v))
}

// apply is the single dispatch point for operators; ok is false for OpNone.
func apply(op Operator, a, b float64) (float64, bool) {
	switch op {
	case Add:
		return a + b, true
	case Subtract:
		return a - b, true
	case Multiply:
		return a * b, true
	case Divide:
		return a / b, true
	case Modulo:
		return math.Mod(a, b), true
	case OpNone:
		return 0, false
	}
	return 0, false
}
